package explore

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Cursor
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Simulation
	Step    key.Binding
	Play    key.Binding
	Young   key.Binding
	Mixed   key.Binding
	Full    key.Binding
	Restart key.Binding

	// Actions
	Enter key.Binding
	Esc   key.Binding
	Copy  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "region above"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "region below"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous region"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next region"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "."),
			key.WithHelp("n", "step one iteration"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Young: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "young collection"),
		),
		Mixed: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mixed collection"),
		),
		Full: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "full collection"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart workload"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "region detail"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy snapshot JSON"),
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

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Play, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Step, k.Play, k.Restart},
		{k.Young, k.Mixed, k.Full},
		{k.Enter, k.Esc, k.Copy, k.Help, k.Quit},
	}
}
