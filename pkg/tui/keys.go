package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Find       key.Binding
	Swap       key.Binding
	Reset      key.Binding
	View       key.Binding
	Directions key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Play       key.Binding
	Replay     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select point")),
		Find:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "find route")),
		Swap:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		View:       key.NewBinding(key.WithKeys("g", "tab"), key.WithHelp("g", "map/graph")),
		Directions: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "directions")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Play:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Replay:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "replay")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Find, k.Swap, k.Reset, k.View, k.Play, k.Replay, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Find, k.Swap, k.Reset},
		{k.View, k.Directions, k.ZoomIn, k.ZoomOut},
		{k.Play, k.Replay, k.Help, k.Quit},
	}
}
