package tui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/theme"
)

const frameInterval = time.Second / 60

// frameMsg drives the presenter while it is active.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// bannerHost owns the presenter and everything that puts it on screen. It is
// shared by the demo and watch models.
type bannerHost struct {
	cfg    *config.Config
	logger *slog.Logger

	presenter *banner.Presenter
	surface   *Surface
	renderer  *Renderer
	gestures  *Gestures
	zones     *zone.Manager

	ticking bool
	width   int
	height  int
}

func newBannerHost(cfg *config.Config, logger *slog.Logger) *bannerHost {
	if logger == nil {
		logger = slog.Default()
	}
	zones := zone.New()
	h := &bannerHost{
		cfg:     cfg,
		logger:  logger,
		surface: NewSurface(cfg.Terminal.SafeAreaTop, logger),
		zones:   zones,
	}
	h.presenter = banner.NewPresenter(Measurer{},
		banner.WithDimensions(cfg.Terminal.Dimensions.Banner()),
		banner.WithTuning(cfg.Terminal.Tuning.Banner()),
		banner.WithLogger(logger),
	)
	h.renderer = NewRenderer(theme.PaletteFor(cfg.Theme.Name, darkBackground(cfg.Theme.ColorScheme)), zones, logger)
	h.gestures = NewGestures(h.presenter, ZoneHitTester{Zones: zones})
	return h
}

// darkBackground resolves the configured colour scheme against the terminal.
func darkBackground(scheme string) bool {
	switch config.ColorScheme(scheme) {
	case config.ColorSchemeLight:
		return false
	case config.ColorSchemeDark:
		return true
	default:
		return lipgloss.HasDarkBackground()
	}
}

func (h *bannerHost) present(a banner.Announcement) (tea.Cmd, error) {
	if err := h.presenter.Present(a, h.surface, nil); err != nil {
		return nil, err
	}
	return h.startFrames(), nil
}

func (h *bannerHost) dismiss() tea.Cmd {
	h.presenter.Dismiss()
	return h.startFrames()
}

// rotate relays a geometry change to the presenter.
func (h *bannerHost) rotate() tea.Cmd {
	h.gestures.Cancel()
	h.presenter.RotationChanged()
	h.presenter.LayoutPass()
	return h.startFrames()
}

func (h *bannerHost) startFrames() tea.Cmd {
	if h.ticking || !h.presenter.Active() {
		return nil
	}
	h.ticking = true
	return nextFrame()
}

// update handles the messages every banner model shares. It reports whether
// msg was consumed.
func (h *bannerHost) update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.surface.SetWidth(msg.Width)
		return h.rotate(), false

	case tea.MouseMsg:
		if h.gestures.Handle(msg) {
			return h.startFrames(), true
		}

	case frameMsg:
		h.presenter.LayoutPass()
		h.presenter.Tick(time.Time(msg))
		if h.presenter.Active() {
			return nextFrame(), true
		}
		h.ticking = false
		return nil, true
	}
	return nil, false
}

// view overlays the banner on base and registers its mouse zones.
func (h *bannerHost) view(base string) string {
	return h.zones.Scan(h.renderer.Overlay(h.presenter.Snapshot(), base))
}

// imageSize is the cell size of a banner image. Cells are about twice as
// tall as they are wide.
func (h *bannerHost) imageSize() (banner.Size, bool) {
	w := h.cfg.Terminal.ImageWidth
	if w <= 0 {
		return banner.Size{}, false
	}
	return banner.Size{Width: float64(w), Height: math.Ceil(float64(w) / 2)}, true
}

func (h *bannerHost) close() {
	h.zones.Close()
}

// status describes the presenter for the status line.
func (h *bannerHost) status(now time.Time) string {
	state := h.presenter.State()
	a, ok := h.presenter.Announcement()
	if !ok {
		return state.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", state, a.Title)
	if rem := h.presenter.TimeRemaining(now); rem > 0 {
		fmt.Fprintf(&b, ", dismisses in %s", humanDuration(rem))
	}
	return b.String()
}

// humanDuration formats d as "3 seconds" or "1 minute".
func humanDuration(d time.Duration) string {
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", ""))
}

// eventLog collects lines for the scrolling log under the banner.
type eventLog struct {
	entries []string
	limit   int
}

func newEventLog(limit int) *eventLog {
	return &eventLog{limit: limit}
}

func (l *eventLog) add(now time.Time, format string, args ...any) {
	line := now.Format("15:04:05") + "  " + fmt.Sprintf(format, args...)
	l.entries = append(l.entries, line)
	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

func (l *eventLog) String() string {
	return strings.Join(l.entries, "\n")
}
