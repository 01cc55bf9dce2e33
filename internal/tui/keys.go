package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the browser bindings. It satisfies help.KeyMap.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	MoveTop    key.Binding
	MoveBottom key.Binding
	AddBlock   key.Binding
	AddSection key.Binding
	Delete     key.Binding
	Copy       key.Binding
	Paste      key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		MoveTop: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "move to top"),
		),
		MoveBottom: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "move to bottom"),
		),
		AddBlock: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add block"),
		),
		AddSection: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "add section"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "copy"),
		),
		Paste: key.NewBinding(
			key.WithKeys("v", "p"),
			key.WithHelp("v", "paste"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "w"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.AddBlock, k.Delete, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.MoveTop, k.MoveBottom},
		{k.AddBlock, k.AddSection, k.Delete},
		{k.Copy, k.Paste, k.Save, k.Help, k.Quit},
	}
}
