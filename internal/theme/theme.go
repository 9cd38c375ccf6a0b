package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jmylchreest/shout/internal/config"
)

// importRegex matches @import "a.css"; @import 'a.css'; and @import url("a.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?\s*;?`)

// Theme is a resolved theme with its imports inlined.
type Theme struct {
	Name    string
	Path    string // empty for bundled themes
	CSS     string
	ModTime time.Time
	Bundled bool
}

// ThemesDir returns the directory searched for user themes.
func ThemesDir() string {
	return filepath.Join(filepath.Dir(config.ConfigPath()), "themes")
}

// FromFile loads a theme from a CSS file.
func FromFile(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat theme %s: %w", name, err)
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", name, err)
	}
	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// Default returns the bundled default theme.
func Default() *Theme {
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	return &Theme{
		Name:    DefaultThemeName,
		CSS:     ProcessImports(css, "", nil),
		Bundled: true,
	}
}

// Resolve finds a theme by name in dir, then among the bundled themes. An
// empty name means the default theme. Unknown names are an error.
func Resolve(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}
	if dir != "" {
		p := filepath.Join(dir, name+".css")
		if _, err := os.Stat(p); err == nil {
			return FromFile(name, p)
		}
	}
	if css, ok := GetEmbeddedTheme(name); ok {
		return &Theme{
			Name:    name,
			CSS:     ProcessImports(css, "", nil),
			Bundled: true,
		}, nil
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Load resolves a theme from the user themes directory or the bundled set,
// falling back to the default theme. The returned error reports why the
// fallback was used.
func Load(name string) (*Theme, error) {
	t, err := Resolve(name, ThemesDir())
	if err != nil {
		return Default(), err
	}
	return t, nil
}

// ProcessImports inlines @import statements, resolving paths against baseDir.
// Files that cannot be read fall back to bundled partials and themes of the
// same name. seen guards against import cycles.
func ProcessImports(css, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}
	return importRegex.ReplaceAllStringFunc(css, func(stmt string) string {
		m := importRegex.FindStringSubmatch(stmt)
		if len(m) < 2 {
			return stmt
		}
		target := m[1]
		full := target
		if !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, target)
		}
		if seen[full] {
			return "/* circular import prevented: " + target + " */"
		}
		seen[full] = true

		data, err := os.ReadFile(full)
		if err == nil {
			return "/* imported: " + target + " */\n" + ProcessImports(string(data), filepath.Dir(full), seen)
		}

		base := filepath.Base(target)
		if strings.HasPrefix(base, "_") {
			if css, ok := GetEmbeddedPartial(base); ok {
				return "/* imported (embedded): " + target + " */\n" + css
			}
		}
		if css, ok := GetEmbeddedTheme(strings.TrimSuffix(base, ".css")); ok {
			return "/* imported (embedded): " + target + " */\n" + css
		}
		return "/* import failed: " + target + " - " + err.Error() + " */"
	})
}

// Reload rereads a file theme when it changed on disk. It reports whether
// the CSS differs from before.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled {
		return false, nil
	}
	fresh, err := FromFile(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	changed := fresh.CSS != t.CSS
	t.CSS = fresh.CSS
	t.ModTime = fresh.ModTime
	return changed, nil
}

// Info describes an available theme.
type Info struct {
	Name    string
	Path    string
	Bundled bool
}

// List returns the bundled themes followed by user themes in dir. A user
// theme with a bundled name overrides it.
func List(dir string) ([]Info, error) {
	index := make(map[string]int)
	var out []Info
	for _, name := range ListEmbeddedThemes() {
		index[name] = len(out)
		out = append(out, Info{Name: name, Bundled: true})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, fmt.Errorf("failed to read themes directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".css" || strings.HasPrefix(e.Name(), "_") {
			continue
		}
		info := Info{
			Name: strings.TrimSuffix(e.Name(), ".css"),
			Path: filepath.Join(dir, e.Name()),
		}
		if i, ok := index[info.Name]; ok {
			out[i] = info
			continue
		}
		out = append(out, info)
	}
	return out, nil
}
