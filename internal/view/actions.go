package view

import (
	"slices"

	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
)

// ActionFunc handles an action on the view it is registered on. It returns
// false when the action did not apply, letting an ancestor handle the
// button instead.
type ActionFunc func(id ID) bool

// Action binds a controller button to a handler.
type Action struct {
	Button input.Button
	// Hint is the label shown for the action.
	Hint string
	// Disabled actions are skipped.
	Disabled bool
	// AllowRepeating lets the action fire on auto-repeat.
	AllowRepeating bool
	// Sound is played when the handler consumes the action.
	Sound   gesture.Sound
	Handler ActionFunc
}

// SetRoot sets the view that handles actions when nothing is focused.
func (t *Tree) SetRoot(id ID) {
	t.root = id
}

// Root returns the root view set with SetRoot.
func (t *Tree) Root() ID {
	return t.root
}

// RegisterAction attaches a to id and returns it so that callers can toggle
// it later.
func (t *Tree) RegisterAction(id ID, a Action) *Action {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	action := &a
	n.actions = append(n.actions, action)
	return action
}

// UnregisterAction removes an action returned by RegisterAction.
func (t *Tree) UnregisterAction(id ID, a *Action) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if i := slices.Index(n.actions, a); i >= 0 {
		n.actions = slices.Delete(n.actions, i, i+1)
	}
}

// Actions returns the actions registered on id.
func (t *Tree) Actions(id ID) []*Action {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.actions)
}

// HandleAction runs the first available action for button, searching from
// the focused view (or the root) up to the top of the tree. It reports
// whether an action consumed the press and the sound it asked for.
func (t *Tree) HandleAction(button input.Button, repeating bool) (bool, gesture.Sound) {
	start := t.focus
	if start == None {
		start = t.root
	}

	for id := start; id != None; id = t.Parent(id) {
		n, ok := t.nodes[id]
		if !ok {
			break
		}
		for _, a := range slices.Clone(n.actions) {
			if a.Button != button || a.Disabled || a.Handler == nil {
				continue
			}
			if repeating && !a.AllowRepeating {
				continue
			}
			if !a.Handler(id) {
				continue
			}
			if button == input.ButtonA {
				t.PlayClickAnimation(id, true)
			}
			return true, a.Sound
		}
	}
	return false, gesture.SoundNone
}
