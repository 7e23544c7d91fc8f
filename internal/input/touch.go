package input

import "github.com/dshills/touchstone/internal/geom"

// RawTouchState is one touch point as reported by the platform this frame.
type RawTouchState struct {
	FingerID int
	Pressed  bool
	Position geom.Point
}

// TouchState is a touch point with its derived phase.
type TouchState struct {
	FingerID int
	Phase    Phase
	Position geom.Point
}

// ComputeTouchState derives the touch state for this frame from the raw
// sample and the state computed last frame.
func ComputeTouchState(raw RawTouchState, last TouchState) TouchState {
	state := TouchState{
		FingerID: last.FingerID,
		Phase:    NextPhase(last.Phase, raw.Pressed),
		Position: raw.Position,
	}
	if state.Phase == PhaseEnd {
		state.Position = last.Position
	}
	return state
}

// TouchTracker follows fingers across frames by id.
//
// A finger that disappears from the raw sample while pressed produces one
// END state on the next frame and is then dropped.
type TouchTracker struct {
	current []TouchState
}

// NewTouchTracker creates an empty tracker.
func NewTouchTracker() *TouchTracker {
	return &TouchTracker{}
}

// Update consumes this frame's raw touches and returns the derived states,
// ordered as the raw sample followed by fingers that were released by
// omission.
func (t *TouchTracker) Update(raw []RawTouchState) []TouchState {
	next := make([]TouchState, 0, len(raw)+len(t.current))

	for _, r := range raw {
		last, ok := t.find(r.FingerID)
		if !ok {
			last = TouchState{FingerID: r.FingerID}
		}
		next = append(next, ComputeTouchState(r, last))
	}

	for _, old := range t.current {
		if old.Phase == PhaseNone {
			continue
		}
		if containsFinger(raw, old.FingerID) {
			continue
		}
		next = append(next, ComputeTouchState(RawTouchState{FingerID: old.FingerID}, old))
	}

	t.current = next

	out := make([]TouchState, len(next))
	copy(out, next)
	return out
}

// Active returns the number of fingers currently pressed.
func (t *TouchTracker) Active() int {
	n := 0
	for _, s := range t.current {
		if s.Phase.Pressed() {
			n++
		}
	}
	return n
}

// Reset forgets every tracked finger.
func (t *TouchTracker) Reset() {
	t.current = nil
}

func (t *TouchTracker) find(fingerID int) (TouchState, bool) {
	for _, s := range t.current {
		if s.FingerID == fingerID {
			return s, true
		}
	}
	return TouchState{}, false
}

func containsFinger(raw []RawTouchState, fingerID int) bool {
	for _, r := range raw {
		if r.FingerID == fingerID {
			return true
		}
	}
	return false
}
