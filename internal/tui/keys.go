package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the terminal banner host.
type KeyMap struct {
	// Banners
	New       key.Binding
	WithImage key.Binding
	Dismiss   key.Binding
	Rotate    key.Binding

	// Event log
	Up   key.Binding
	Down key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.WithImage, k.Dismiss, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.WithImage, k.Dismiss, k.Rotate},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// WatchKeyMap returns the bindings that apply while mirroring notifications.
func (k KeyMap) WatchKeyMap() KeyMap {
	k.New.SetEnabled(false)
	k.WithImage.SetEnabled(false)
	k.Rotate.SetEnabled(false)
	return k
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new banner"),
		),
		WithImage: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "banner with image"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
