// Package view holds the view tree that focus navigation and gesture
// routing operate on.
//
// Views live in a Tree arena and are addressed by stable ID handles; the
// zero ID (None) means "no view". A view has a parent, ordered children, a
// frame in window coordinates, and the flags and hooks that focus and
// gestures need. Rendering and layout are not modelled here: whoever owns a
// subtree (a scroll frame, a recycler) positions its children by setting
// their frames.
//
// # Focus
//
// Exactly one view holds focus at a time. GiveFocus resolves the target's
// default focus first, so handing focus to a container focuses its first
// focusable descendant. Navigate moves focus one step in a direction using
// box traversal along each container's axis, climbing to the parent when a
// container runs out of children. A container may replace traversal with its
// own NavigateFunc, which is how the recycler answers for cells that are not
// materialized yet.
//
// # Gestures
//
// Recognizers are attached per view. RouteGesture runs the recognizers of a
// first responder and then of each of its ancestors; when one reaches START
// every recognizer along the chain still in UNSURE is interrupted.
//
// # Actions
//
// Actions bind a controller button to a callback on a view. HandleAction
// walks from the focused view to the root and runs the first available
// action for the button.
package view
