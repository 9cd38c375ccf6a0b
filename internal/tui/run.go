package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/dbus"
)

// OpenLog returns a logger writing to shout-tui.log in the state directory,
// so log output does not tear the terminal UI.
func OpenLog(level slog.Level) (*slog.Logger, io.Closer, error) {
	dir := config.StatePath()
	if dir == "" {
		return nil, nil, fmt.Errorf("could not determine state directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "shout-tui.log"), "shout")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

func newProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

// RunDemo runs the interactive banner demo until the user quits.
func RunDemo(cfg *config.Config, opts DemoOptions, logger *slog.Logger) error {
	m := NewDemoModel(cfg, opts, logger)
	defer m.host.close()
	_, err := newProgram(m).Run()
	return err
}

// RunWatch mirrors desktop notifications until the user quits.
func RunWatch(cfg *config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	m := NewWatchModel(cfg, logger)
	defer m.host.close()
	p := newProgram(m)

	monitor := dbus.NewMonitor(logger)
	monitor.SetNotifyHandler(func(n *dbus.DBusNotification, id uint32) {
		p.Send(NotificationMsg{Notification: n, ID: id})
	})
	if err := monitor.Start(); err != nil {
		return fmt.Errorf("failed to start notification monitor: %w", err)
	}
	defer func() {
		if err := monitor.Stop(); err != nil {
			logger.Warn("failed to stop notification monitor", "error", err)
		}
	}()

	_, err := p.Run()
	return err
}
