package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Today    key.Binding

	// Packs
	PrevPack key.Binding
	NextPack key.Binding
	Buy      key.Binding

	// View modes
	ToggleView key.Binding
	Category   key.Binding
	ToggleHelp key.Binding

	// Application
	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("PgUp/[", "prev month/week"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("PgDn/]", "next month/week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t", "home"),
			key.WithHelp("t", "today"),
		),

		// Packs
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab", "p"),
			key.WithHelp("p", "prev pack"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next pack"),
		),
		Buy: key.NewBinding(
			key.WithKeys("b", "enter"),
			key.WithHelp("b/Enter", "mark as bought"),
		),

		// View modes
		ToggleView: key.NewBinding(
			key.WithKeys("tab", "v"),
			key.WithHelp("Tab", "month/week"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),

		// Application
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload purchases"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.ToggleView, k.Category, k.NextPack, k.Buy, k.ToggleHelp, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevPage, k.NextPage, k.Today},
		{k.PrevPack, k.NextPack, k.Buy},
		{k.ToggleView, k.Category, k.Refresh, k.ToggleHelp, k.Quit},
	}
}
