package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/lox/fingerhunt/internal/game"
)

type keyMap struct {
	Quit    key.Binding
	Hide    key.Binding
	Fingers [len(game.Fingers)]key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h", " "),
			key.WithHelp("h", "show/hide hand"),
		),
	}
	for i, f := range game.Fingers {
		k := string(rune('1' + i))
		km.Fingers[i] = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, f.String()),
		)
	}
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Quit, k.Hide}, k.Fingers[:]...)
}
