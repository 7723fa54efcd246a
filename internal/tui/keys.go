package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab         key.Binding
	ShiftTab    key.Binding
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	Help        key.Binding
	AddActivity key.Binding
	AddEvent    key.Binding
	AddBreak    key.Binding
	Cancel      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.AddActivity, k.AddEvent, k.AddBreak, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down},
		{k.AddActivity, k.AddEvent, k.AddBreak},
		{k.Cancel, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		AddActivity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add activity"),
		),
		AddEvent: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "add compulsory event"),
		),
		AddBreak: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "add break"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel form"),
		),
	}
}
