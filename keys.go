package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the global key bindings.
type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Open    key.Binding
	Back    key.Binding
	Forward key.Binding
	Reload  key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "shift+tab", "h"),
		key.WithHelp("←", "prev link"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "tab", "l"),
		key.WithHelp("→", "next link"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace", "b"),
		key.WithHelp("b", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "forward"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k", "pgup"),
		key.WithHelp("↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "pgdown"),
		key.WithHelp("↓", "scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Open, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Open},
		{k.Back, k.Forward, k.Reload},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
