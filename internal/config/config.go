// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/shout/internal/banner"
)

// Config is the shout configuration, shared by the CLI and the daemon.
// Loaded from ~/.config/shout/shout.toml.
type Config struct {
	Dimensions DimensionsConfig `toml:"dimensions" yaml:"dimensions"`
	Tuning     TuningConfig     `toml:"tuning" yaml:"tuning"`
	Timeouts   TimeoutConfig    `toml:"timeouts" yaml:"timeouts"`
	Display    DisplayConfig    `toml:"display" yaml:"display"`
	Terminal   TerminalConfig   `toml:"terminal" yaml:"terminal"`
	Audio      AudioConfig      `toml:"audio" yaml:"audio"`
	Theme      ThemeConfig      `toml:"theme" yaml:"theme"`
}

// DimensionsConfig mirrors banner.Dimensions.
type DimensionsConfig struct {
	InsetTop              float64 `toml:"inset_top" yaml:"inset_top"`
	InsetLeft             float64 `toml:"inset_left" yaml:"inset_left"`
	InsetBottom           float64 `toml:"inset_bottom" yaml:"inset_bottom"`
	InsetRight            float64 `toml:"inset_right" yaml:"inset_right"`
	TextToImageMargin     float64 `toml:"text_to_image_margin" yaml:"text_to_image_margin"`
	LabelSpacing          float64 `toml:"label_spacing" yaml:"label_spacing"`
	IndicatorHeight       float64 `toml:"indicator_height" yaml:"indicator_height"`
	IndicatorWidth        float64 `toml:"indicator_width" yaml:"indicator_width"`
	IndicatorBottomMargin float64 `toml:"indicator_bottom_margin" yaml:"indicator_bottom_margin"`
	TouchOffset           float64 `toml:"touch_offset" yaml:"touch_offset"`
	ImageRoundedCorners   bool    `toml:"image_rounded_corners" yaml:"image_rounded_corners"`
	TitleLines            int     `toml:"title_lines" yaml:"title_lines"`
	SubtitleLines         int     `toml:"subtitle_lines" yaml:"subtitle_lines"`
}

// TuningConfig mirrors banner.Tuning.
type TuningConfig struct {
	PresentDuration   Duration `toml:"present_duration" yaml:"present_duration"`
	DismissDuration   Duration `toml:"dismiss_duration" yaml:"dismiss_duration"`
	SettleDuration    Duration `toml:"settle_duration" yaml:"settle_duration"`
	OverdragDivisor   float64  `toml:"overdrag_divisor" yaml:"overdrag_divisor"`
	DragThreshold     float64  `toml:"drag_threshold" yaml:"drag_threshold"`
	ExclusiveGestures bool     `toml:"exclusive_gestures" yaml:"exclusive_gestures"`
}

// TimeoutConfig holds the auto-dismiss delay per urgency level, used when a
// notification does not carry its own timeout.
type TimeoutConfig struct {
	Low      Duration `toml:"low" yaml:"low"`
	Normal   Duration `toml:"normal" yaml:"normal"`
	Critical Duration `toml:"critical" yaml:"critical"`
}

// DisplayConfig contains desktop banner settings.
type DisplayConfig struct {
	Monitor     int     `toml:"monitor" yaml:"monitor"`             // 0 = compositor default, 1+ = specific monitor
	SafeAreaTop float64 `toml:"safe_area_top" yaml:"safe_area_top"` // pixels kept clear at the top edge
	ImageSize   int     `toml:"image_size" yaml:"image_size"`       // icon size in pixels
	Opacity     float64 `toml:"opacity" yaml:"opacity"`             // 0.0-1.0
}

// TerminalConfig contains the cell-based settings of the terminal host.
type TerminalConfig struct {
	Dimensions  DimensionsConfig `toml:"dimensions" yaml:"dimensions"`
	Tuning      TuningConfig     `toml:"tuning" yaml:"tuning"`
	SafeAreaTop float64          `toml:"safe_area_top" yaml:"safe_area_top"` // rows
	ImageWidth  int              `toml:"image_width" yaml:"image_width"`     // cells, 0 disables images
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled" yaml:"enabled"`
	Volume  int         `toml:"volume" yaml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds" yaml:"sounds"`
}

// SoundConfig contains per-urgency sound file paths.
type SoundConfig struct {
	Low      string `toml:"low" yaml:"low"`
	Normal   string `toml:"normal" yaml:"normal"`
	Critical string `toml:"critical" yaml:"critical"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name" yaml:"name"`                 // theme name without extension
	ColorScheme string `toml:"color_scheme" yaml:"color_scheme"` // "system", "light", or "dark"
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// Urgency levels from the desktop notification protocol.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dimensions: dimensionsFrom(banner.DefaultDimensions()),
		Tuning:     tuningFrom(banner.DefaultTuning()),
		Timeouts: TimeoutConfig{
			Low:      Duration(3 * time.Second),
			Normal:   Duration(5 * time.Second),
			Critical: Duration(10 * time.Second),
		},
		Display: DisplayConfig{
			Monitor:     0,
			SafeAreaTop: 0,
			ImageSize:   40,
			Opacity:     1.0,
		},
		Terminal: TerminalConfig{
			Dimensions:  dimensionsFrom(banner.TerminalDimensions()),
			Tuning:      tuningFrom(banner.TerminalTuning()),
			SafeAreaTop: 0,
			ImageWidth:  6,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shout", "shout.toml")
}

// StatePath returns the directory for logs and other runtime state.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StatePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "shout")
}

// LoadConfig loads configuration from path, or the default path when empty.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, or the default path when empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Dimensions.validate("dimensions"); err != nil {
		return err
	}
	if err := c.Terminal.Dimensions.validate("terminal.dimensions"); err != nil {
		return err
	}
	if err := c.Tuning.validate("tuning"); err != nil {
		return err
	}
	if err := c.Terminal.Tuning.validate("terminal.tuning"); err != nil {
		return err
	}

	for name, d := range map[string]Duration{
		"low":      c.Timeouts.Low,
		"normal":   c.Timeouts.Normal,
		"critical": c.Timeouts.Critical,
	} {
		if d <= 0 {
			return fmt.Errorf("timeouts.%s must be positive, got %s", name, d.Duration())
		}
	}

	if c.Display.Opacity < 0 || c.Display.Opacity > 1 {
		return fmt.Errorf("display.opacity must be between 0 and 1, got %v", c.Display.Opacity)
	}
	if c.Display.ImageSize < 0 || c.Terminal.ImageWidth < 0 {
		return errors.New("image sizes must not be negative")
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	return nil
}

func (d DimensionsConfig) validate(section string) error {
	for name, v := range map[string]float64{
		"inset_top":               d.InsetTop,
		"inset_left":              d.InsetLeft,
		"inset_bottom":            d.InsetBottom,
		"inset_right":             d.InsetRight,
		"text_to_image_margin":    d.TextToImageMargin,
		"label_spacing":           d.LabelSpacing,
		"indicator_height":        d.IndicatorHeight,
		"indicator_width":         d.IndicatorWidth,
		"indicator_bottom_margin": d.IndicatorBottomMargin,
		"touch_offset":            d.TouchOffset,
	} {
		if v < 0 {
			return fmt.Errorf("%s.%s must not be negative, got %v", section, name, v)
		}
	}
	if d.TitleLines < 0 || d.SubtitleLines < 0 {
		return fmt.Errorf("%s line limits must not be negative", section)
	}
	return nil
}

func (t TuningConfig) validate(section string) error {
	if t.PresentDuration < 0 || t.DismissDuration < 0 || t.SettleDuration < 0 {
		return fmt.Errorf("%s animation durations must not be negative", section)
	}
	if t.OverdragDivisor < 1 {
		return fmt.Errorf("%s.overdrag_divisor must be at least 1, got %v", section, t.OverdragDivisor)
	}
	if t.DragThreshold < 0 {
		return fmt.Errorf("%s.drag_threshold must not be negative, got %v", section, t.DragThreshold)
	}
	return nil
}

// Banner returns the desktop layout metrics.
func (d DimensionsConfig) Banner() banner.Dimensions {
	return banner.Dimensions{
		ContentInsets: banner.Insets{
			Top:    d.InsetTop,
			Left:   d.InsetLeft,
			Bottom: d.InsetBottom,
			Right:  d.InsetRight,
		},
		TextToImageMargin:     d.TextToImageMargin,
		LabelSpacing:          d.LabelSpacing,
		IndicatorHeight:       d.IndicatorHeight,
		IndicatorWidth:        d.IndicatorWidth,
		IndicatorBottomMargin: d.IndicatorBottomMargin,
		TouchOffset:           d.TouchOffset,
		ImageRoundedCorners:   d.ImageRoundedCorners,
		TitleLines:            d.TitleLines,
		SubtitleLines:         d.SubtitleLines,
	}
}

// Banner returns the presenter tuning.
func (t TuningConfig) Banner() banner.Tuning {
	return banner.Tuning{
		PresentDuration:   t.PresentDuration.Duration(),
		DismissDuration:   t.DismissDuration.Duration(),
		SettleDuration:    t.SettleDuration.Duration(),
		OverdragDivisor:   t.OverdragDivisor,
		DragThreshold:     t.DragThreshold,
		ExclusiveGestures: t.ExclusiveGestures,
	}
}

func dimensionsFrom(d banner.Dimensions) DimensionsConfig {
	return DimensionsConfig{
		InsetTop:              d.ContentInsets.Top,
		InsetLeft:             d.ContentInsets.Left,
		InsetBottom:           d.ContentInsets.Bottom,
		InsetRight:            d.ContentInsets.Right,
		TextToImageMargin:     d.TextToImageMargin,
		LabelSpacing:          d.LabelSpacing,
		IndicatorHeight:       d.IndicatorHeight,
		IndicatorWidth:        d.IndicatorWidth,
		IndicatorBottomMargin: d.IndicatorBottomMargin,
		TouchOffset:           d.TouchOffset,
		ImageRoundedCorners:   d.ImageRoundedCorners,
		TitleLines:            d.TitleLines,
		SubtitleLines:         d.SubtitleLines,
	}
}

func tuningFrom(t banner.Tuning) TuningConfig {
	return TuningConfig{
		PresentDuration:   Duration(t.PresentDuration),
		DismissDuration:   Duration(t.DismissDuration),
		SettleDuration:    Duration(t.SettleDuration),
		OverdragDivisor:   t.OverdragDivisor,
		DragThreshold:     t.DragThreshold,
		ExclusiveGestures: t.ExclusiveGestures,
	}
}

// TimeoutForUrgency returns the configured auto-dismiss delay for an urgency level.
func (c *Config) TimeoutForUrgency(urgency int) time.Duration {
	switch urgency {
	case UrgencyLow:
		return c.Timeouts.Low.Duration()
	case UrgencyCritical:
		return c.Timeouts.Critical.Duration()
	default:
		return c.Timeouts.Normal.Duration()
	}
}

// SoundForUrgency returns the sound file path for an urgency level with ~ expanded.
func (c *Config) SoundForUrgency(urgency int) string {
	var path string
	switch urgency {
	case UrgencyLow:
		path = c.Audio.Sounds.Low
	case UrgencyCritical:
		path = c.Audio.Sounds.Critical
	default:
		path = c.Audio.Sounds.Normal
	}
	return ExpandPath(path)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
