package theme

import (
	"regexp"
	"strings"
)

var defineColorRegex = regexp.MustCompile(`@define-color\s+(shout_[a-z_]+)\s+(#[0-9a-fA-F]{3,8})\s*;`)

// Palette holds the banner colours as hex strings for hosts that cannot
// load CSS.
type Palette struct {
	Background string
	Title      string
	Subtitle   string
	Indicator  string
	Border     string
}

// DefaultPalette returns the colours matching the default theme.
func DefaultPalette(dark bool) Palette {
	if dark {
		return Palette{
			Background: "#303030",
			Title:      "#ffffff",
			Subtitle:   "#c0c0c0",
			Indicator:  "#6e6e6e",
			Border:     "#4a4a4a",
		}
	}
	return Palette{
		Background: "#f6f5f4",
		Title:      "#1e1e1e",
		Subtitle:   "#5e5c64",
		Indicator:  "#b0afb4",
		Border:     "#d5d4d8",
	}
}

// ParsePalette overrides base with the shout_* colours a theme defines.
// Only literal hex values are understood.
func ParsePalette(css string, base Palette) Palette {
	p := base
	for _, m := range defineColorRegex.FindAllStringSubmatch(css, -1) {
		value := strings.ToLower(m[2])
		switch m[1] {
		case "shout_background":
			p.Background = value
		case "shout_title":
			p.Title = value
		case "shout_subtitle":
			p.Subtitle = value
		case "shout_indicator":
			p.Indicator = value
		case "shout_border":
			p.Border = value
		}
	}
	return p
}

// PaletteFor resolves a theme by name and derives its palette. Unknown
// themes yield the default palette.
func PaletteFor(name string, dark bool) Palette {
	t, _ := Load(name)
	return ParsePalette(t.CSS, DefaultPalette(dark))
}
