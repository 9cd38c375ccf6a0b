package tui

import (
	"image"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/config"
)

// DemoOptions sets the content of demo banners. Empty fields cycle through
// built-in samples.
type DemoOptions struct {
	Title    string
	Subtitle string
	Image    string
	Duration time.Duration
}

type sample struct {
	title, subtitle string
}

var samples = []sample{
	{"Build finished", "All 214 tests passed in 38 seconds."},
	{"New message from Ana", "Are we still on for lunch? I found a place near the station that does great dumplings."},
	{"Battery low", "12% remaining. Connect a charger soon."},
	{"Download complete", ""},
	{"Meeting in 5 minutes", "Design review in room 3. Drag down to read the agenda: layout engine, drag thresholds, rotation handling and the terminal host."},
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// DemoModel presents banners on demand over a scrolling event log.
type DemoModel struct {
	host *bannerHost
	log  *eventLog
	opts DemoOptions

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	image    image.Image

	shown int
	ready bool
	now   func() time.Time
}

// NewDemoModel creates the demo. opts.Image is decoded up front; on failure
// the built-in sample image is used.
func NewDemoModel(cfg *config.Config, opts DemoOptions, logger *slog.Logger) DemoModel {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Duration <= 0 {
		opts.Duration = cfg.Timeouts.Normal.Duration()
	}

	m := DemoModel{
		host:     newBannerHost(cfg, logger),
		log:      newEventLog(500),
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		image:    SampleImage(),
		now:      time.Now,
	}
	if opts.Image != "" {
		img, err := LoadImage(opts.Image)
		if err != nil {
			logger.Warn("failed to load demo image", "error", err)
		} else {
			m.image = img
		}
	}
	m.host.presenter.OnDismiss(func(a banner.Announcement, reason banner.DismissReason) {
		m.log.add(m.now(), "ended %q: %s", a.Title, reason)
	})
	return m
}

// Init implements tea.Model.
func (m DemoModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, handled := m.host.update(msg)
	if handled {
		return m, cmd
	}
	cmds := []tea.Cmd{cmd}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := !m.ready
		m.ready = true
		m.help.Width = msg.Width
		m.resize()
		if first {
			m.log.add(m.now(), "terminal %dx%d", msg.Width, msg.Height)
			cmds = append(cmds, m.present(false))
		} else {
			m.log.add(m.now(), "resized to %dx%d", msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.New):
			cmds = append(cmds, m.present(false))
		case key.Matches(msg, m.keys.WithImage):
			cmds = append(cmds, m.present(true))
		case key.Matches(msg, m.keys.Dismiss):
			m.log.add(m.now(), "dismiss requested")
			cmds = append(cmds, m.host.dismiss())
		case key.Matches(msg, m.keys.Rotate):
			m.log.add(m.now(), "rotation")
			cmds = append(cmds, m.host.rotate())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		default:
			var vcmd tea.Cmd
			m.viewport, vcmd = m.viewport.Update(msg)
			cmds = append(cmds, vcmd)
		}
	}

	m.syncLog()
	return m, tea.Batch(cmds...)
}

func (m *DemoModel) present(withImage bool) tea.Cmd {
	a := m.announcement(withImage)
	cmd, err := m.host.present(a)
	if err != nil {
		m.log.add(m.now(), "present failed: %v", err)
		return nil
	}
	m.shown++
	m.log.add(m.now(), "presented %q for %s", a.Title, humanDuration(a.Duration))
	return cmd
}

func (m *DemoModel) announcement(withImage bool) banner.Announcement {
	title, subtitle := m.opts.Title, m.opts.Subtitle
	if title == "" && subtitle == "" {
		s := samples[m.shown%len(samples)]
		title, subtitle = s.title, s.subtitle
	}

	a := banner.NewAnnouncement(title, subtitle, m.opts.Duration)
	if withImage || m.opts.Image != "" {
		if size, ok := m.host.imageSize(); ok {
			a.Image = &banner.Image{Size: size, Source: m.image}
		}
	}
	log := m.log
	now := m.now
	a.Action = func() { log.add(now(), "action for %q", title) }
	a.Dismissed = func() { log.add(now(), "%q flung away", title) }
	return a
}

func (m *DemoModel) resize() {
	footer := lipgloss.Height(m.footer())
	m.viewport.Width = m.host.width
	m.viewport.Height = max(m.host.height-footer, 0)
}

func (m *DemoModel) syncLog() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.log.String())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m DemoModel) footer() string {
	return statusStyle.Render(m.host.status(m.now())) + "\n" + m.help.View(m.keys)
}

// View implements tea.Model.
func (m DemoModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.host.view(m.viewport.View() + "\n" + m.footer())
}
