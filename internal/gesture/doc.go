// Package gesture implements per-view gesture recognizers.
//
// A recognizer is fed one pointer per frame (a touch, or the mouse's left
// button when no touch is active for the view) and moves through a small
// state machine:
//
//	UNSURE -> START -> STAY ... -> END
//	   \         \
//	    FAILED    INTERRUPTED
//
// FAILED and INTERRUPTED are terminal until the next pointer START. A
// recognizer fires its event on every transition worth reporting; terminal
// states are reported exactly once.
//
// # Recognizers
//
//   - Tap reports a press that ends inside the view's bounds.
//   - Pan reports movement along an axis once it crosses a small threshold
//     and computes a fling (Acceleration) from recent positions on release.
//   - Scroll is a Pan that additionally turns mouse wheel movement into
//     delta-only updates.
//
// # Sounds
//
// Every Recognize call receives a *Sound. Event handlers may set it to ask
// the caller to play feedback for this frame; the view tree picks the first
// sound set along the responder chain.
//
// # Frame Context
//
// The frame rate used for fling computation comes from the input.Frame in
// Input, never from global state. Rates below Config.MinFPS yield a zero
// Acceleration.
package gesture
