package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePalette(t *testing.T) {
	base := DefaultPalette(true)

	css := `
@define-color shout_background #1E1E2E;
@define-color shout_title #cdd6f4;
@define-color shout_subtitle alpha(@window_fg_color, 0.7);
@define-color other_color #000000;
`
	p := ParsePalette(css, base)
	assert.Equal(t, "#1e1e2e", p.Background)
	assert.Equal(t, "#cdd6f4", p.Title)
	assert.Equal(t, base.Subtitle, p.Subtitle, "non-hex values are ignored")
	assert.Equal(t, base.Indicator, p.Indicator)
}

func TestPaletteFor(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.Equal(t, DefaultPalette(false), PaletteFor("default", false))
	assert.Equal(t, DefaultPalette(true), PaletteFor("missing", true))
	assert.Equal(t, "#1e1e2e", PaletteFor("catppuccin", false).Background)
	assert.NotEqual(t, DefaultPalette(true), DefaultPalette(false))
}
