package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Input    key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Up       key.Binding
	Down     key.Binding
	Compress key.Binding
	Rank     key.Binding
	Panel    key.Binding
	Pause    key.Binding
	Skip     key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Input: key.NewBinding(
			key.WithKeys(":", "i"),
			key.WithHelp(":", "command"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Compress: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compression"),
		),
		Rank: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "by rank"),
		),
		Panel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "nodes"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip anim"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InputKeyMap returns the bindings active while the command line has focus.
// Single-letter shortcuts are disabled so they can be typed.
func InputKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Input.SetEnabled(false)
	km.Up.SetEnabled(false)
	km.Down.SetEnabled(false)
	km.Compress.SetEnabled(false)
	km.Rank.SetEnabled(false)
	km.Panel.SetEnabled(false)
	km.Pause.SetEnabled(false)
	km.Skip.SetEnabled(false)
	km.Reset.SetEnabled(false)
	km.Quit.SetKeys("ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")
	return km
}
