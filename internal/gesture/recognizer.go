package gesture

import (
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/input"
)

// Input is what a recognizer sees for one frame.
type Input struct {
	Frame input.Frame
	// Touch is the finger routed to this view, or a zero TouchState
	// (phase NONE) when the frame is driven by the mouse.
	Touch input.TouchState
	Mouse input.MouseState
	// Bounds is the attached view's frame in window coordinates.
	Bounds geom.Rect
}

// pointer returns the finger id, phase and position that drive recognition.
// The touch wins; with no touch activity the mouse's left button is used,
// reported as finger 0.
func (in Input) pointer() (fingerID int, phase input.Phase, pos geom.Point) {
	if in.Touch.Phase != input.PhaseNone {
		return in.Touch.FingerID, in.Touch.Phase, in.Touch.Position
	}
	return 0, in.Mouse.Left, in.Mouse.Position
}

// Recognizer is a gesture state machine attached to a view.
type Recognizer interface {
	// Recognize advances the state machine by one frame and returns the
	// new state. Handlers may write feedback into sound, which is never nil.
	Recognize(in Input, sound *Sound) State

	// Interrupt moves the recognizer to INTERRUPTED. With onlyIfUnsure set
	// only a recognizer still in UNSURE is affected.
	Interrupt(onlyIfUnsure bool)

	// State returns the current state.
	State() State

	// Enabled reports whether the recognizer participates in recognition.
	Enabled() bool

	// SetEnabled turns recognition on or off.
	SetEnabled(enabled bool)
}

// base holds what every recognizer tracks: the current state, the state
// reported on the previous frame and the enabled flag.
type base struct {
	state     State
	lastState State
	disabled  bool
}

// State returns the current state.
func (b *base) State() State {
	return b.state
}

// Enabled reports whether the recognizer is enabled.
func (b *base) Enabled() bool {
	return !b.disabled
}

// SetEnabled turns recognition on or off.
func (b *base) SetEnabled(enabled bool) {
	b.disabled = !enabled
}

// Interrupt moves the recognizer to INTERRUPTED.
func (b *base) Interrupt(onlyIfUnsure bool) {
	if onlyIfUnsure && b.state != StateUnsure {
		return
	}
	b.state = StateInterrupted
}

// holdCancelled handles a non-START frame while the recognizer is FAILED or
// INTERRUPTED. It reports whether the frame was consumed and whether the
// cancellation has not been reported yet.
func (b *base) holdCancelled(phase input.Phase) (consumed, report bool) {
	if phase == input.PhaseStart || !b.state.Cancelled() {
		return false, false
	}
	report = b.state != b.lastState
	b.lastState = b.state
	return true, report
}

func soundOrScratch(sound *Sound) *Sound {
	if sound == nil {
		return new(Sound)
	}
	return sound
}
