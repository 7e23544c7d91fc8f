package view

import (
	"slices"

	"github.com/dshills/touchstone/internal/gesture"
)

// Direction is a focus navigation direction.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// Vertical reports whether d is UP or DOWN.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// Step returns -1 for UP and LEFT, +1 for DOWN and RIGHT.
func (d Direction) Step() int {
	if d == DirectionUp || d == DirectionLeft {
		return -1
	}
	return 1
}

// Traverses reports whether a container with this axis walks its children
// for the direction.
func (a Axis) Traverses(d Direction) bool {
	if a == AxisColumn {
		return d.Vertical()
	}
	return !d.Vertical()
}

// Focus returns the focused view, or None.
func (t *Tree) Focus() ID {
	return t.focus
}

// DefaultFocus resolves the view that should receive focus when id is
// given focus: id itself if focusable, otherwise the first child with a
// default focus. Hidden views resolve to None.
func (t *Tree) DefaultFocus(id ID) ID {
	n, ok := t.nodes[id]
	if !ok || n.hidden {
		return None
	}
	if n.defaultFocus != nil {
		return n.defaultFocus()
	}
	if n.focusable {
		return id
	}
	for _, c := range n.children {
		if f := t.DefaultFocus(c); f != None {
			return f
		}
	}
	return None
}

// NextFocus returns the view that focus moves to when leaving from in the
// given direction, or None at a dead end. The search starts in from's
// parent and climbs while containers have nothing to offer.
func (t *Tree) NextFocus(dir Direction, from ID) ID {
	parent := t.Parent(from)
	if parent == None {
		return None
	}
	if n := t.nodes[parent]; n.navigate != nil {
		return n.navigate(dir, from)
	}
	return t.BoxNextFocus(parent, dir, from)
}

// BoxNextFocus is the default container traversal. Children along the
// container's axis are visited from the one after from, skipping those
// without a default focus; a direction across the axis, or running off
// either end, defers to the container's own parent.
func (t *Tree) BoxNextFocus(box ID, dir Direction, from ID) ID {
	n, ok := t.nodes[box]
	if !ok {
		return None
	}

	if n.axis.Traverses(dir) {
		if i := slices.Index(n.children, from); i >= 0 {
			step := dir.Step()
			for j := i + step; j >= 0 && j < len(n.children); j += step {
				if f := t.DefaultFocus(n.children[j]); f != None {
					return f
				}
			}
		}
	}

	return t.NextFocus(dir, box)
}

// GiveFocus moves focus to id's default focus. It reports whether focus
// changed; when id has nothing focusable the current focus is kept.
func (t *Tree) GiveFocus(id ID) bool {
	target := t.DefaultFocus(id)
	if target == None {
		t.log.Debug("%s has no focusable view, keeping focus", t.Describe(id))
		return false
	}
	if target == t.focus {
		return false
	}
	t.setFocus(target)
	return true
}

// SetFocus focuses id itself, skipping default-focus resolution. It fails
// for views that are hidden or not focusable.
func (t *Tree) SetFocus(id ID) bool {
	n, ok := t.nodes[id]
	if !ok || n.hidden || !n.focusable {
		return false
	}
	if id != t.focus {
		t.setFocus(id)
	}
	return true
}

func (t *Tree) setFocus(target ID) {
	old := t.focus
	if n, ok := t.nodes[old]; ok {
		for _, fn := range n.onFocus {
			fn(false)
		}
	}

	t.focus = target

	if n, ok := t.nodes[target]; ok {
		for _, fn := range n.onFocus {
			fn(true)
		}
		t.log.Debug("giving focus to %s", t.Describe(target))
	}
	t.FocusChanged.Fire(FocusChange{Old: old, New: target})
}

// recoverFocus moves focus to the nearest focusable view at or above from
// after the focused view was detached.
func (t *Tree) recoverFocus(from ID) {
	for id := from; id != None; id = t.Parent(id) {
		if t.GiveFocus(id) {
			return
		}
	}
	t.log.Warn("focused view removed with nothing to take focus")
	t.setFocus(None)
}

// Navigate moves focus one step in dir. It returns whether focus moved and
// the feedback sound to play. A dead end shakes the focused view and asks
// for SoundFocusError; a repeated press that lands on the same view does
// nothing.
func (t *Tree) Navigate(dir Direction, repeating bool) (bool, gesture.Sound) {
	current := t.focus
	if current == None {
		return false, gesture.SoundNone
	}

	next := t.NextFocus(dir, current)
	if next == None {
		t.Shaken.Fire(Shake{View: current, Direction: dir})
		return false, gesture.SoundFocusError
	}
	if repeating && t.DefaultFocus(next) == current {
		return false, gesture.SoundNone
	}
	if !t.GiveFocus(next) {
		return false, gesture.SoundNone
	}
	return true, gesture.SoundFocusChange
}
