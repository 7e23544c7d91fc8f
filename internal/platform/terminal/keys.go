package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/touchstone/internal/input"
)

// KeyMap maps terminal keys onto unified buttons.
type KeyMap struct {
	Keys  map[tcell.Key]input.Button
	Runes map[rune]input.Button
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Keys: map[tcell.Key]input.Button{
			tcell.KeyUp:         input.ButtonNavUp,
			tcell.KeyDown:       input.ButtonNavDown,
			tcell.KeyLeft:       input.ButtonNavLeft,
			tcell.KeyRight:      input.ButtonNavRight,
			tcell.KeyEnter:      input.ButtonA,
			tcell.KeyEscape:     input.ButtonB,
			tcell.KeyBackspace:  input.ButtonB,
			tcell.KeyBackspace2: input.ButtonB,
			tcell.KeyTab:        input.ButtonRB,
			tcell.KeyBacktab:    input.ButtonLB,
			tcell.KeyPgUp:       input.ButtonLT,
			tcell.KeyPgDn:       input.ButtonRT,
		},
		Runes: map[rune]input.Button{
			' ': input.ButtonA,
			'k': input.ButtonNavUp,
			'j': input.ButtonNavDown,
			'h': input.ButtonNavLeft,
			'l': input.ButtonNavRight,
			'x': input.ButtonX,
			'y': input.ButtonY,
		},
	}
}

// Lookup returns the button bound to a key event.
func (m KeyMap) Lookup(ev *tcell.EventKey) (input.Button, bool) {
	if ev.Key() == tcell.KeyRune {
		b, ok := m.Runes[ev.Rune()]
		return b, ok
	}
	b, ok := m.Keys[ev.Key()]
	return b, ok
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
