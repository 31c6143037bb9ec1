package viewer

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Down key.Binding
	Up   key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next: key.NewBinding(key.WithKeys("right", "l", "n", "pgdown"), key.WithHelp("→", "next page")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "p", "pgup"), key.WithHelp("←", "prev page")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Up, k.Down}, {k.Help, k.Quit}}
}
