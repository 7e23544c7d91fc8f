// Package scroll provides a vertically scrolling viewport driven by touch,
// mouse wheel and focus.
//
// A Frame clamps its content offset to [0, contentHeight-viewportHeight].
// Dragging follows the finger one to one; releasing flings the content
// using the pan recognizer's Acceleration, eased with QuadraticOut, unless
// the fling would be shorter than MinFlingDuration. A tap stops a running
// fling. Wheel movement scrolls by the wheel delta directly.
//
// When focus moves to a view inside the content, the frame scrolls just
// enough to show it.
package scroll
