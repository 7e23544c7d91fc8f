package gesture

import (
	"github.com/dshills/touchstone/internal/event"
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/input"
)

// TapStatus is a snapshot of a tap recognizer.
type TapStatus struct {
	State    State
	Position geom.Point
}

// TapEvent is delivered to tap handlers. Sound may be set by the handler.
type TapEvent struct {
	TapStatus
	Sound *Sound
}

// Tap recognizes a press that is released inside the view's bounds.
type Tap struct {
	base

	// ForceRecognition makes a press report START immediately instead of
	// UNSURE, so that other recognizers in the chain are interrupted.
	ForceRecognition bool

	position geom.Point

	// Tapped fires on every reported transition.
	Tapped event.Event[TapEvent]
}

// NewTap creates a tap recognizer. A nil handler is allowed; handlers can be
// subscribed to Tapped later.
func NewTap(handler func(TapEvent)) *Tap {
	t := &Tap{}
	if handler != nil {
		t.Tapped.Subscribe(handler)
	}
	return t
}

// Status returns the current status snapshot.
func (t *Tap) Status() TapStatus {
	return TapStatus{State: t.state, Position: t.position}
}

// Recognize advances the tap state machine by one frame.
func (t *Tap) Recognize(in Input, sound *Sound) State {
	sound = soundOrScratch(sound)
	_, phase, pos := in.pointer()

	if t.disabled || phase == input.PhaseNone {
		return StateFailed
	}

	if consumed, report := t.holdCancelled(phase); consumed {
		if report {
			t.fire(sound)
		}
		return t.state
	}

	switch phase {
	case input.PhaseStart:
		t.state = StateUnsure
		if t.ForceRecognition {
			t.state = StateStart
		}
		t.position = pos
		t.fire(sound)
	case input.PhaseStay:
		if !in.Bounds.Contains(pos) {
			t.state = StateFailed
			t.fire(sound)
		}
	case input.PhaseEnd:
		t.state = StateEnd
		t.fire(sound)
	}

	t.lastState = t.state
	return t.state
}

func (t *Tap) fire(sound *Sound) {
	t.Tapped.Fire(TapEvent{TapStatus: t.Status(), Sound: sound})
}
