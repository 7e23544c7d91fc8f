// Package input turns raw per-frame samples into phase-tagged pointer and
// controller state.
//
// Platform backends implement Sampler and hand out one Sample per frame:
// raw touch points, the mouse, and the unified controller buttons. Nothing
// in this package keeps global state; the previous frame's states are held
// by the caller (TouchTracker, ButtonTracker, the app loop) and passed back
// in to derive edges.
//
// # Phases
//
// Every finger and every mouse button is edge-detected independently:
//
//	released -> pressed  START
//	pressed  -> pressed  STAY
//	pressed  -> released END
//	released -> released NONE
//
// On END a touch reports the last pressed position rather than the raw
// release coordinates, which some touch panels report as garbage.
//
// # Frame Context
//
// Frame carries the frame timestamp, the elapsed time and the measured
// frame rate. It is threaded explicitly into gesture recognizers instead of
// being read from process-wide statics.
package input
