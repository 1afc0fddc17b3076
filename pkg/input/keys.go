package input

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Advance key.Binding
	Retreat key.Binding
	Jump    key.Binding
	Blow    key.Binding
	Music   key.Binding
	Logs    key.Binding
	Quit    key.Binding
}

var Keys = KeyMap{
	Advance: key.NewBinding(
		key.WithKeys("right", " "),
		key.WithHelp("→/space", "next"),
	),
	Retreat: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous"),
	),
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "jump to slide"),
	),
	Blow: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "blow out the candles"),
	),
	Music: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "music"),
	),
	Logs: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

func (this KeyMap) Help() []key.Binding {
	return []key.Binding{this.Retreat, this.Advance, this.Jump, this.Blow, this.Music, this.Logs, this.Quit}
}

// JumpIndex translates a pressed digit into a zero based slide index. It
// returns false if the key is not a digit or the slide does not exist.
func JumpIndex(pressed string, slideCount int) (int, bool) {
	if len(pressed) != 1 || pressed[0] < '1' || pressed[0] > '9' {
		return 0, false
	}
	index := int(pressed[0] - '1')
	if index >= slideCount {
		return 0, false
	}
	return index, true
}
