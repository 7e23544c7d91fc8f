package input

import "github.com/dshills/touchstone/internal/geom"

// RawMouseState is the mouse as reported by the platform this frame.
type RawMouseState struct {
	Position geom.Point
	// Offset is the cursor movement since last frame.
	Offset geom.Point
	// Scroll is the wheel movement since last frame.
	Scroll geom.Point

	Left   bool
	Middle bool
	Right  bool
}

// MouseState is the mouse with per-button phases.
type MouseState struct {
	Position geom.Point
	Offset   geom.Point
	Scroll   geom.Point

	Left   Phase
	Middle Phase
	Right  Phase
}

// ComputeMouseState derives this frame's mouse state. Position, offset and
// scroll are threaded through untouched; each button is edge-detected on
// its own.
func ComputeMouseState(raw RawMouseState, last MouseState) MouseState {
	return MouseState{
		Position: raw.Position,
		Offset:   raw.Offset,
		Scroll:   raw.Scroll,
		Left:     NextPhase(last.Left, raw.Left),
		Middle:   NextPhase(last.Middle, raw.Middle),
		Right:    NextPhase(last.Right, raw.Right),
	}
}

// HasButtonActivity reports whether any button is in a non-NONE phase.
func (m MouseState) HasButtonActivity() bool {
	return m.Left != PhaseNone || m.Middle != PhaseNone || m.Right != PhaseNone
}

// IsIdle reports whether the mouse neither moved, scrolled nor had button
// activity this frame.
func (m MouseState) IsIdle() bool {
	return m.Offset.IsZero() && m.Scroll.IsZero() && !m.HasButtonActivity()
}

// Engaged reports whether the mouse should be routed to a responder this
// frame: a wheel movement or any button activity.
func (m MouseState) Engaged() bool {
	return !m.Scroll.IsZero() || m.HasButtonActivity()
}
