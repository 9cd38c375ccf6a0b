package display

import (
	"log/slog"
	"time"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/config"
)

// Manager shows one banner at a time on the layer-shell surface. All methods
// must be called on the GTK main loop.
type Manager struct {
	logger *slog.Logger

	presenter *banner.Presenter
	surface   *Surface
	monitors  *MonitorWatcher
	frames    *FrameDriver
}

// NewManager creates the banner window and its presenter.
func NewManager(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		logger:   logger,
		monitors: NewMonitorWatcher(cfg.Display.Monitor, logger),
	}
	m.presenter = banner.NewPresenter(NewLabelMeasurer(),
		banner.WithDimensions(cfg.Dimensions.Banner()),
		banner.WithTuning(cfg.Tuning.Banner()),
		banner.WithLogger(logger),
	)
	m.surface = NewSurface(app, m.monitors, m.presenter, logger)
	m.frames = NewFrameDriver(m.tick)

	m.presenter.OnChange(func(s banner.Snapshot) {
		m.surface.Render(s)
		if s.State != banner.StateIdle {
			m.frames.Start()
		}
	})
	m.monitors.SetChangeCallback(m.rotated)
	m.applyConfig(cfg)
	return m
}

// Start selects the output monitor.
func (m *Manager) Start() error {
	if err := m.monitors.Start(); err != nil {
		return err
	}
	m.logger.Info("display manager started", "width", m.monitors.Width())
	return nil
}

// Stop stops ticking and destroys the window.
func (m *Manager) Stop() {
	m.frames.Stop()
	m.surface.Destroy()
	m.logger.Info("display manager stopped")
}

// OnDismiss sets the function called once for every banner that ends.
func (m *Manager) OnDismiss(fn func(banner.Announcement, banner.DismissReason)) {
	m.presenter.OnDismiss(fn)
}

// Show presents a banner, superseding the current one.
func (m *Manager) Show(a banner.Announcement) error {
	if m.monitors.Monitor() == nil {
		return &DisplayError{Message: "no monitor available"}
	}
	if err := m.presenter.Present(a, m.surface, nil); err != nil {
		return &DisplayError{Message: "failed to present banner", Cause: err}
	}
	m.frames.Start()
	return nil
}

// Close dismisses the banner if it is still showing announcementID.
func (m *Manager) Close(announcementID string) {
	if a, ok := m.presenter.Announcement(); ok && a.ID == announcementID {
		m.presenter.Dismiss()
	}
}

// Presenter returns the presenter driving the surface.
func (m *Manager) Presenter() *banner.Presenter {
	return m.presenter
}

// UpdateConfig applies reloaded settings. Geometry changes take effect from
// the next layout pass.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.applyConfig(cfg)
	m.monitors.SetIndex(cfg.Display.Monitor)
	m.logger.Debug("display manager config updated")
}

func (m *Manager) applyConfig(cfg *config.Config) {
	m.presenter.SetDimensions(cfg.Dimensions.Banner())
	m.presenter.SetTuning(cfg.Tuning.Banner())
	m.surface.SetSafeAreaTop(cfg.Display.SafeAreaTop)
	m.surface.SetOpacity(cfg.Display.Opacity)
	ApplyColorScheme(cfg.Theme.ColorScheme)
}

func (m *Manager) rotated() {
	m.presenter.RotationChanged()
	m.presenter.LayoutPass()
}

func (m *Manager) tick(now time.Time) bool {
	m.presenter.LayoutPass()
	m.presenter.Tick(now)
	return m.presenter.Active()
}
