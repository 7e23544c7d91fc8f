package gesture

// State is the recognition state of a gesture recognizer.
type State uint8

const (
	// StateUnsure means a pointer is down but the gesture is not yet known.
	StateUnsure State = iota
	// StateStart means the gesture was recognized this frame.
	StateStart
	// StateStay means a recognized gesture continues.
	StateStay
	// StateEnd means the gesture completed this frame.
	StateEnd
	// StateFailed means the pointer did not match the gesture.
	StateFailed
	// StateInterrupted means another recognizer claimed the pointer.
	StateInterrupted
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnsure:
		return "unsure"
	case StateStart:
		return "start"
	case StateStay:
		return "stay"
	case StateEnd:
		return "end"
	case StateFailed:
		return "failed"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Cancelled reports whether the state is FAILED or INTERRUPTED.
func (s State) Cancelled() bool {
	return s == StateFailed || s == StateInterrupted
}

// Sound is audio feedback requested by a gesture handler.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundFocusChange
	SoundFocusError
	SoundClick
	SoundClickError
	SoundFocusSidebar
	SoundClickSidebar
	SoundTouchUnfocus
	SoundTouch

	// SoundCount is the number of sounds.
	SoundCount
)

// String returns a string representation of the sound.
func (s Sound) String() string {
	switch s {
	case SoundNone:
		return "none"
	case SoundFocusChange:
		return "focus-change"
	case SoundFocusError:
		return "focus-error"
	case SoundClick:
		return "click"
	case SoundClickError:
		return "click-error"
	case SoundFocusSidebar:
		return "focus-sidebar"
	case SoundClickSidebar:
		return "click-sidebar"
	case SoundTouchUnfocus:
		return "touch-unfocus"
	case SoundTouch:
		return "touch"
	default:
		return "unknown"
	}
}
