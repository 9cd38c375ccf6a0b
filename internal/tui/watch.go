package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/daemon"
	"github.com/jmylchreest/shout/internal/dbus"
)

// NotificationMsg carries a desktop notification seen on the session bus.
type NotificationMsg struct {
	Notification *dbus.DBusNotification
	ID           uint32
}

// WatchModel mirrors desktop notifications as terminal banners. Each new
// notification supersedes the one on screen.
type WatchModel struct {
	host   *bannerHost
	log    *eventLog
	logger *slog.Logger

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	seen  int
	ready bool
	now   func() time.Time
}

// NewWatchModel creates a model that waits for NotificationMsg.
func NewWatchModel(cfg *config.Config, logger *slog.Logger) WatchModel {
	if logger == nil {
		logger = slog.Default()
	}
	m := WatchModel{
		host:     newBannerHost(cfg, logger),
		log:      newEventLog(500),
		logger:   logger,
		keys:     DefaultKeyMap().WatchKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		now:      time.Now,
	}
	m.log.add(m.now(), "watching for notifications")
	m.host.presenter.OnDismiss(func(a banner.Announcement, reason banner.DismissReason) {
		m.log.add(m.now(), "ended %q: %s", a.Title, reason)
	})
	return m
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, handled := m.host.update(msg)
	if handled {
		return m, cmd
	}
	cmds := []tea.Cmd{cmd}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.help.Width = msg.Width
		m.resize()

	case NotificationMsg:
		cmds = append(cmds, m.show(msg))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Dismiss):
			cmds = append(cmds, m.host.dismiss())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		default:
			var vcmd tea.Cmd
			m.viewport, vcmd = m.viewport.Update(msg)
			cmds = append(cmds, vcmd)
		}
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.log.String())
	if atBottom {
		m.viewport.GotoBottom()
	}
	return m, tea.Batch(cmds...)
}

func (m *WatchModel) show(msg NotificationMsg) tea.Cmd {
	n := msg.Notification
	if n == nil {
		return nil
	}
	m.seen++
	m.log.add(m.now(), "[%d] %s: %s", msg.ID, n.AppName, n.Summary)

	a := m.announcementFor(n)
	cmd, err := m.host.present(a)
	if err != nil {
		m.logger.Debug("failed to present notification", "id", msg.ID, "error", err)
		m.log.add(m.now(), "could not show [%d]: %v", msg.ID, err)
		return nil
	}
	return cmd
}

// announcementFor maps a notification onto a terminal banner. Only image
// files are shown; icon names have no terminal rendering.
func (m *WatchModel) announcementFor(n *dbus.DBusNotification) banner.Announcement {
	a := daemon.AnnouncementFromNotification(n, m.host.cfg)
	a.Image = nil

	path := daemon.ImagePathFor(n)
	size, ok := m.host.imageSize()
	if path == "" || !ok || !filepath.IsAbs(path) {
		return a
	}
	img, err := LoadImage(path)
	if err != nil {
		m.logger.Debug("failed to load notification image", "error", err)
		return a
	}
	a.Image = &banner.Image{Size: size, Source: img}
	return a
}

func (m *WatchModel) resize() {
	m.viewport.Width = m.host.width
	m.viewport.Height = max(m.host.height-lipgloss.Height(m.footer()), 0)
}

func (m WatchModel) footer() string {
	status := fmt.Sprintf("%s, %s seen", m.host.status(m.now()), humanize.Comma(int64(m.seen)))
	return statusStyle.Render(status) + "\n" + m.help.View(m.keys)
}

// View implements tea.Model.
func (m WatchModel) View() string {
	if !m.ready {
		return "Waiting for terminal size..."
	}
	return m.host.view(m.viewport.View() + "\n" + m.footer())
}
