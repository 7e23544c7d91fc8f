package scroll

import "time"

// EasingFunc maps linear progress in [0,1] to eased progress.
type EasingFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// QuadraticOut decelerates towards the end.
func QuadraticOut(t float64) float64 {
	return -t * (t - 2)
}

// Animation eases a single value from one point to another over a fixed
// duration. It is advanced explicitly by Tick.
type Animation struct {
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	easing   EasingFunc
	running  bool
}

// Start begins animating from from to to over d. A non-positive duration
// completes on the next Tick.
func (a *Animation) Start(from, to float64, d time.Duration, easing EasingFunc) {
	if easing == nil {
		easing = QuadraticOut
	}
	a.from = from
	a.to = to
	a.duration = d
	a.elapsed = 0
	a.easing = easing
	a.running = true
}

// Stop halts the animation where it is.
func (a *Animation) Stop() {
	a.running = false
}

// Running reports whether the animation has not finished.
func (a *Animation) Running() bool {
	return a.running
}

// Target returns the end value of the current or last animation.
func (a *Animation) Target() float64 {
	return a.to
}

// Tick advances the animation by delta and returns the current value. The
// second result is false once the end value has been reached.
func (a *Animation) Tick(delta time.Duration) (float64, bool) {
	if !a.running {
		return a.to, false
	}

	a.elapsed += delta
	if a.duration <= 0 || a.elapsed >= a.duration {
		a.running = false
		return a.to, false
	}

	progress := a.easing(float64(a.elapsed) / float64(a.duration))
	return a.from + (a.to-a.from)*progress, true
}
