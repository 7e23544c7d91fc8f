package input

// Phase is the edge-detected state of a single pointer or button for the
// current frame.
type Phase uint8

const (
	// PhaseNone means the pointer was up last frame and is still up.
	PhaseNone Phase = iota
	// PhaseStart means the pointer went down this frame.
	PhaseStart
	// PhaseStay means the pointer was down last frame and still is.
	PhaseStay
	// PhaseEnd means the pointer was released this frame.
	PhaseEnd
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseStay:
		return "stay"
	case PhaseEnd:
		return "end"
	default:
		return "none"
	}
}

// Pressed reports whether the phase implies the pointer is currently down.
func (p Phase) Pressed() bool {
	return p == PhaseStart || p == PhaseStay
}

// PhaseOf derives a phase from last frame's and this frame's pressed flags.
func PhaseOf(wasPressed, pressed bool) Phase {
	switch {
	case !wasPressed && pressed:
		return PhaseStart
	case wasPressed && pressed:
		return PhaseStay
	case wasPressed && !pressed:
		return PhaseEnd
	default:
		return PhaseNone
	}
}

// NextPhase derives this frame's phase from last frame's phase.
func NextPhase(last Phase, pressed bool) Phase {
	return PhaseOf(last.Pressed(), pressed)
}
