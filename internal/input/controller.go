package input

import "time"

// Button is a unified controller button. Keyboards and gamepads are both
// mapped onto this set by the platform sampler.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonLT
	ButtonRT
	ButtonStart
	ButtonBack
	ButtonGuide
	ButtonNavUp
	ButtonNavDown
	ButtonNavLeft
	ButtonNavRight

	// ButtonCount is the number of buttons in ControllerState.
	ButtonCount
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	case ButtonX:
		return "x"
	case ButtonY:
		return "y"
	case ButtonLB:
		return "lb"
	case ButtonRB:
		return "rb"
	case ButtonLT:
		return "lt"
	case ButtonRT:
		return "rt"
	case ButtonStart:
		return "start"
	case ButtonBack:
		return "back"
	case ButtonGuide:
		return "guide"
	case ButtonNavUp:
		return "nav-up"
	case ButtonNavDown:
		return "nav-down"
	case ButtonNavLeft:
		return "nav-left"
	case ButtonNavRight:
		return "nav-right"
	default:
		return "unknown"
	}
}

// IsNavigation reports whether the button is a directional navigation button.
func (b Button) IsNavigation() bool {
	return b == ButtonNavUp || b == ButtonNavDown || b == ButtonNavLeft || b == ButtonNavRight
}

// ControllerState is the pressed state of every unified button.
type ControllerState struct {
	Buttons [ButtonCount]bool
}

// Press marks buttons as pressed and returns the state for chaining.
func (s ControllerState) Press(buttons ...Button) ControllerState {
	for _, b := range buttons {
		if b < ButtonCount {
			s.Buttons[b] = true
		}
	}
	return s
}

// MapButton returns the button that should be read for b when face buttons
// are swapped (A<->B, X<->Y). Other buttons map to themselves.
func MapButton(b Button, swap bool) Button {
	if !swap {
		return b
	}
	switch b {
	case ButtonA:
		return ButtonB
	case ButtonB:
		return ButtonA
	case ButtonX:
		return ButtonY
	case ButtonY:
		return ButtonX
	default:
		return b
	}
}

// SwapButtons returns the state with face buttons swapped when swap is set.
func SwapButtons(s ControllerState, swap bool) ControllerState {
	if !swap {
		return s
	}
	var out ControllerState
	for i := Button(0); i < ButtonCount; i++ {
		out.Buttons[i] = s.Buttons[MapButton(i, true)]
	}
	return out
}

// Default repeat timings for held buttons.
const (
	DefaultRepeatTrigger = 250 * time.Millisecond
	DefaultRepeatDelay   = 100 * time.Millisecond
)

// ButtonPress is a press reported by ButtonTracker.
type ButtonPress struct {
	Button    Button
	Repeating bool
}

// ButtonTracker reports button presses with auto-repeat. A newly pressed
// button fires once; if held past the trigger time it fires again, marked
// as repeating, every repeat delay.
type ButtonTracker struct {
	trigger time.Duration
	delay   time.Duration

	last       ControllerState
	repeatStop [ButtonCount]time.Time
}

// NewButtonTracker creates a tracker with the given repeat timings.
// Non-positive values fall back to the defaults.
func NewButtonTracker(trigger, delay time.Duration) *ButtonTracker {
	if trigger <= 0 {
		trigger = DefaultRepeatTrigger
	}
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	return &ButtonTracker{trigger: trigger, delay: delay}
}

// SetTimings updates the repeat timings.
func (t *ButtonTracker) SetTimings(trigger, delay time.Duration) {
	if trigger > 0 {
		t.trigger = trigger
	}
	if delay > 0 {
		t.delay = delay
	}
}

// Update consumes this frame's controller state and returns the presses to
// dispatch, in button order.
func (t *ButtonTracker) Update(state ControllerState, now time.Time) []ButtonPress {
	var presses []ButtonPress

	for i := Button(0); i < ButtonCount; i++ {
		if !state.Buttons[i] {
			t.repeatStop[i] = time.Time{}
			continue
		}

		repeating := !t.repeatStop[i].IsZero() && now.After(t.repeatStop[i])
		if repeating {
			t.repeatStop[i] = now.Add(t.delay)
		}

		if !t.last.Buttons[i] {
			t.repeatStop[i] = now.Add(t.trigger)
		}

		if !t.last.Buttons[i] || repeating {
			presses = append(presses, ButtonPress{Button: i, Repeating: repeating})
		}
	}

	t.last = state
	return presses
}

// Pressed reports whether b was held in the last processed state.
func (t *ButtonTracker) Pressed(b Button) bool {
	return b < ButtonCount && t.last.Buttons[b]
}
