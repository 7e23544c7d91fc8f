package input

import "time"

// DefaultFPS is the rate assumed before the first full second of frames has
// been measured.
const DefaultFPS = 60

// Frame is the per-frame context threaded through recognizers.
type Frame struct {
	// Now is the frame timestamp.
	Now time.Time
	// Delta is the time since the previous frame.
	Delta time.Duration
	// FPS is the measured frame rate.
	FPS float64
}

// FPSAtLeast returns the frame rate, or 0 when it is below min. A zero
// result means "no usable rate": callers must treat it as zero velocity
// rather than divide by it.
func (f Frame) FPSAtLeast(min float64) float64 {
	if min <= 0 {
		min = 1
	}
	if f.FPS < min {
		return 0
	}
	return f.FPS
}

// Clock measures the frame rate by counting frames per wall-clock second
// and produces Frame values.
type Clock struct {
	last       time.Time
	windowFrom time.Time
	frames     int
	fps        float64
}

// NewClock creates a clock reporting DefaultFPS until measured.
func NewClock() *Clock {
	return &Clock{fps: DefaultFPS}
}

// Tick advances the clock to now and returns the frame context.
func (c *Clock) Tick(now time.Time) Frame {
	if c.last.IsZero() {
		c.last = now
		c.windowFrom = now
	}

	delta := now.Sub(c.last)
	if delta < 0 {
		delta = 0
	}
	c.last = now

	c.frames++
	if elapsed := now.Sub(c.windowFrom); elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.windowFrom = now
	}

	return Frame{Now: now, Delta: delta, FPS: c.fps}
}

// FPS returns the last measured frame rate.
func (c *Clock) FPS() float64 {
	return c.fps
}

// InputType is the kind of device the user last interacted with.
type InputType uint8

const (
	// InputGamepad covers controllers and keyboards.
	InputGamepad InputType = iota
	// InputTouch covers touch screens and mice.
	InputTouch
)

// String returns a string representation of the input type.
func (t InputType) String() string {
	if t == InputTouch {
		return "touch"
	}
	return "gamepad"
}
