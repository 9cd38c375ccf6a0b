package theme

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// GetEmbeddedTheme returns the CSS of a bundled theme.
func GetEmbeddedTheme(name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, "_") {
		return "", false
	}
	return readBundled(name + ".css")
}

// GetEmbeddedPartial returns a bundled partial. Partials start with an
// underscore and only exist to be imported.
func GetEmbeddedPartial(name string) (string, bool) {
	name = strings.TrimSuffix(name, ".css")
	if !strings.HasPrefix(name, "_") {
		name = "_" + name
	}
	return readBundled(name + ".css")
}

func readBundled(file string) (string, bool) {
	data, err := bundled.ReadFile(path.Join("themes", file))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns the bundled theme names, sorted.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(bundled, "themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || path.Ext(name) != ".css" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".css"))
	}
	slices.Sort(names)
	return names
}

// IsEmbeddedTheme reports whether name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, ok := GetEmbeddedTheme(name)
	return ok
}
