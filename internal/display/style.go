package display

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/theme"
)

// StyleLoader installs the banner theme CSS on the default display.
type StyleLoader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	theme    *theme.Theme
	applied  bool
}

// NewStyleLoader creates a loader with nothing loaded.
func NewStyleLoader(logger *slog.Logger) *StyleLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &StyleLoader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Load resolves and installs a theme by name. An unknown theme installs the
// default theme and returns the lookup error.
func (l *StyleLoader) Load(name string) error {
	t, err := theme.Load(name)
	if err != nil {
		l.logger.Warn("theme not found, using default", "theme", name, "error", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.theme = t
	l.provider.LoadFromString(t.CSS)
	l.applyLocked()
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.Bundled)
	return err
}

// Reload rereads the current theme file. It reports whether the CSS changed.
func (l *StyleLoader) Reload() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return false, nil
	}
	changed, err := l.theme.Reload()
	if err != nil || !changed {
		return false, err
	}
	l.provider.LoadFromString(l.theme.CSS)
	l.logger.Info("hot-reloaded theme", "name", l.theme.Name)
	return true, nil
}

// Theme returns the installed theme.
func (l *StyleLoader) Theme() *theme.Theme {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.theme
}

// Path returns the file backing the installed theme, or "" when bundled.
func (l *StyleLoader) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Path
}

func (l *StyleLoader) applyLocked() {
	if l.applied {
		return
	}
	display := gdk.DisplayGetDefault()
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	l.applied = true
}

// ApplyColorScheme forces light or dark styling, or follows the system.
func ApplyColorScheme(scheme string) {
	sm := adw.StyleManagerGetDefault()
	switch config.ColorScheme(scheme) {
	case config.ColorSchemeLight:
		sm.SetColorScheme(adw.ColorSchemeForceLight)
	case config.ColorSchemeDark:
		sm.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		sm.SetColorScheme(adw.ColorSchemeDefault)
	}
}

// colorSchemeClass returns "dark" or "light" for the effective scheme.
func colorSchemeClass() string {
	if adw.StyleManagerGetDefault().Dark() {
		return "dark"
	}
	return "light"
}
