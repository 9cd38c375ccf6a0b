package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/shout/internal/banner"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 18.0, cfg.Dimensions.InsetLeft)
	assert.Equal(t, 40.0, cfg.Dimensions.TouchOffset)
	assert.Equal(t, 2, cfg.Dimensions.SubtitleLines)
	assert.Equal(t, 350*time.Millisecond, cfg.Tuning.PresentDuration.Duration())
	assert.Equal(t, 25.0, cfg.Tuning.OverdragDivisor)
	assert.True(t, cfg.Tuning.ExclusiveGestures)
	assert.Equal(t, 1.0, cfg.Terminal.Dimensions.TouchOffset)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_MatchesBannerDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, banner.DefaultDimensions(), cfg.Dimensions.Banner())
	assert.Equal(t, banner.DefaultTuning(), cfg.Tuning.Banner())
	assert.Equal(t, banner.TerminalDimensions(), cfg.Terminal.Dimensions.Banner())
	assert.Equal(t, banner.TerminalTuning(), cfg.Terminal.Tuning.Banner())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/shout.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shout.toml")

	content := `
[dimensions]
touch_offset = 24.0
image_rounded_corners = false

[tuning]
present_duration = "500ms"
settle_duration = "150"
overdrag_divisor = 10.0
exclusive_gestures = false

[timeouts]
normal = "8s"

[display]
monitor = 2
safe_area_top = 32.0

[terminal]
safe_area_top = 1.0

[terminal.dimensions]
indicator_width = 12.0

[theme]
name = "minimal"
color_scheme = "dark"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 24.0, cfg.Dimensions.TouchOffset)
	assert.False(t, cfg.Dimensions.ImageRoundedCorners)
	assert.Equal(t, 500*time.Millisecond, cfg.Tuning.PresentDuration.Duration())
	assert.Equal(t, 150*time.Millisecond, cfg.Tuning.SettleDuration.Duration())
	assert.Equal(t, 10.0, cfg.Tuning.OverdragDivisor)
	assert.False(t, cfg.Tuning.ExclusiveGestures)
	assert.Equal(t, 8*time.Second, cfg.Timeouts.Normal.Duration())
	assert.Equal(t, 2, cfg.Display.Monitor)
	assert.Equal(t, 32.0, cfg.Display.SafeAreaTop)
	assert.Equal(t, 1.0, cfg.Terminal.SafeAreaTop)
	assert.Equal(t, 12.0, cfg.Terminal.Dimensions.IndicatorWidth)
	assert.Equal(t, "minimal", cfg.Theme.Name)

	// untouched fields keep their defaults
	assert.Equal(t, 18.0, cfg.Dimensions.InsetLeft)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Low.Duration())
	assert.Equal(t, 1.0, cfg.Terminal.Dimensions.TouchOffset)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shout.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero timeout", "[timeouts]\nnormal = \"0s\"\n"},
		{"negative inset", "[dimensions]\ninset_left = -1\n"},
		{"small divisor", "[tuning]\noverdrag_divisor = 0.5\n"},
		{"bad duration", "[tuning]\npresent_duration = \"soon\"\n"},
		{"bad scheme", "[theme]\ncolor_scheme = \"sepia\"\n"},
		{"opacity", "[display]\nopacity = 1.5\n"},
		{"volume", "[audio]\nvolume = 101\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shout.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "shout.toml")

	cfg := DefaultConfig()
	cfg.Tuning.DragThreshold = 8
	cfg.Timeouts.Critical = Duration(time.Minute)

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, loaded.Tuning.DragThreshold)
	assert.Equal(t, time.Minute, loaded.Timeouts.Critical.Duration())
}

func TestConfig_TimeoutForUrgency(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3*time.Second, cfg.TimeoutForUrgency(UrgencyLow))
	assert.Equal(t, 5*time.Second, cfg.TimeoutForUrgency(UrgencyNormal))
	assert.Equal(t, 10*time.Second, cfg.TimeoutForUrgency(UrgencyCritical))
	assert.Equal(t, 5*time.Second, cfg.TimeoutForUrgency(7))
}

func TestConfig_SoundForUrgency(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig()
	cfg.Audio.Sounds.Critical = "~/sounds/alert.wav"
	cfg.Audio.Sounds.Normal = "/usr/share/sounds/chime.oga"

	assert.Equal(t, "/home/tester/sounds/alert.wav", cfg.SoundForUrgency(UrgencyCritical))
	assert.Equal(t, "/usr/share/sounds/chime.oga", cfg.SoundForUrgency(UrgencyNormal))
	assert.Empty(t, cfg.SoundForUrgency(UrgencyLow))
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"350ms", 350 * time.Millisecond},
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
		{"200", 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalText([]byte(tt.in)))
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("later")))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/shout/shout.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), "shout/shout.toml")
}

func TestStatePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state/shout", StatePath())
}
