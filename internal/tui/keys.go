package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the bug list.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	New     key.Binding
	Refresh key.Binding

	// Status changes mirror the "Mark as ..." actions.
	MarkOpen       key.Binding
	MarkInProgress key.Binding
	MarkResolved   key.Binding

	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Form navigation.
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "report bug"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r", "f5"),
		key.WithHelp("C-r", "refresh"),
	),
	MarkOpen: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "mark open"),
	),
	MarkInProgress: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "mark in progress"),
	),
	MarkResolved: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "mark resolved"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "submit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
