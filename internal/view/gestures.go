package view

import (
	"slices"

	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
)

// AddGestureRecognizer attaches r to id. Recognizers run in the order they
// were added.
func (t *Tree) AddGestureRecognizer(id ID, r gesture.Recognizer) {
	if n, ok := t.nodes[id]; ok && r != nil {
		n.recognizers = append(n.recognizers, r)
	}
}

// Recognizers returns the recognizers attached to id.
func (t *Tree) Recognizers(id ID) []gesture.Recognizer {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.recognizers)
}

// RouteGesture feeds one frame of pointer input to the responder chain
// starting at responder. Every enabled recognizer of the responder and of
// each ancestor runs in order; a recognizer reaching START interrupts all
// recognizers along the chain that are still UNSURE.
//
// The returned sound is the responder's, falling back to the nearest
// ancestor that asked for one. A touch START defaults to SoundTouch.
func (t *Tree) RouteGesture(responder ID, frame input.Frame, touch input.TouchState, mouse input.MouseState) gesture.Sound {
	return t.recognize(responder, responder, frame, touch, mouse)
}

func (t *Tree) recognize(id, responder ID, frame input.Frame, touch input.TouchState, mouse input.MouseState) gesture.Sound {
	n, ok := t.nodes[id]
	if !ok {
		return gesture.SoundNone
	}

	sound := gesture.SoundNone
	if touch.Phase == input.PhaseStart {
		sound = gesture.SoundTouch
	}

	in := gesture.Input{Frame: frame, Touch: touch, Mouse: mouse, Bounds: n.frame}
	for _, r := range slices.Clone(n.recognizers) {
		if !r.Enabled() {
			continue
		}
		if r.Recognize(in, &sound) == gesture.StateStart {
			t.InterruptGestures(responder, true)
		}
	}

	parentSound := t.recognize(n.parent, responder, frame, touch, mouse)
	if sound == gesture.SoundNone {
		sound = parentSound
	}
	return sound
}

// InterruptGestures interrupts the recognizers of id and every ancestor.
// With onlyIfUnsure set, recognizers past UNSURE are left alone.
func (t *Tree) InterruptGestures(id ID, onlyIfUnsure bool) {
	for cur := id; cur != None; cur = t.Parent(cur) {
		n, ok := t.nodes[cur]
		if !ok {
			return
		}
		for _, r := range n.recognizers {
			r.Interrupt(onlyIfUnsure)
		}
	}
}

// HitTest returns the deepest visible view under root whose frame contains
// p, or None. Children are searched in order and the first hit wins.
func (t *Tree) HitTest(root ID, p geom.Point) ID {
	n, ok := t.nodes[root]
	if !ok || n.hidden || !n.frame.Contains(p) {
		return None
	}
	for _, c := range n.children {
		if hit := t.HitTest(c, p); hit != None {
			return hit
		}
	}
	return root
}
