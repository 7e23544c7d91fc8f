package gesture

// Scroll is a pan recognizer that also reports mouse wheel movement. A
// frame with wheel movement fires a delta-only STAY status carrying the
// wheel delta and leaves the pan state machine untouched.
type Scroll struct {
	*Pan
}

// NewScroll creates a scroll recognizer with the default configuration.
func NewScroll(axis Axis, handler func(PanEvent)) *Scroll {
	return &Scroll{Pan: NewPan(axis, handler)}
}

// NewScrollWithConfig creates a scroll recognizer.
func NewScrollWithConfig(axis Axis, cfg Config, handler func(PanEvent)) *Scroll {
	return &Scroll{Pan: NewPanWithConfig(axis, cfg, handler)}
}

// Recognize handles wheel movement, then falls back to pan recognition.
func (s *Scroll) Recognize(in Input, sound *Sound) State {
	if s.disabled {
		return StateFailed
	}

	if !in.Mouse.Scroll.IsZero() {
		s.fire(PanStatus{
			State:     StateStay,
			Position:  in.Mouse.Position,
			Delta:     in.Mouse.Scroll,
			DeltaOnly: true,
		}, soundOrScratch(sound))
		return StateStay
	}

	return s.Pan.Recognize(in, sound)
}
