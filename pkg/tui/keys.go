package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Enter         key.Binding
	SetFocus      key.Binding
	CompleteFocus key.Binding
	ClearFocus    key.Binding
	StartPause    key.Binding
	ResetTimer    key.Binding
	Longer        key.Binding
	Shorter       key.Binding
	Presets       key.Binding
	AddTodo       key.Binding
	AddLink       key.Binding
	Delete        key.Binding
	Background    key.Binding
	DarkMode      key.Binding
	Reload        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle todo / open link"),
		),
		SetFocus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "set focus"),
		),
		CompleteFocus: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete focus"),
		),
		ClearFocus: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear focus"),
		),
		StartPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "start/pause timer"),
		),
		ResetTimer: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset timer"),
		),
		Longer: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "5 min longer"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "5 min shorter"),
		),
		Presets: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "duration preset"),
		),
		AddTodo: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add todo"),
		),
		AddLink: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "add quick link"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next background"),
		),
		DarkMode: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "toggle dark mode"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
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
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "f focus  c done  space timer  r reset  a todo  L link  d delete  D dark  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"f", "Set today's focus"},
		{"c", "Complete focus (counts toward streak)"},
		{"x", "Clear focus"},
		{"space", "Start / pause timer"},
		{"r", "Reset timer to default"},
		{"+ / -", "Timer 5 minutes longer / shorter"},
		{"1-9", "Timer duration preset"},
		{"↑/k ↓/j", "Move in todos and links"},
		{"enter", "Toggle todo / open link"},
		{"a", "Add todo"},
		{"L", "Add quick link (name url)"},
		{"d", "Delete selected todo or link"},
		{"b", "Cycle background preset"},
		{"D", "Toggle dark mode"},
		{"R", "Reload from storage"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
