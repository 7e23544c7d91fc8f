package view

import "errors"

// Sentinel errors for tree operations.
var (
	// ErrUnknownView is returned when an ID does not name a live view.
	ErrUnknownView = errors.New("unknown view")

	// ErrHasParent is returned when attaching a view that is already attached.
	ErrHasParent = errors.New("view already has a parent")

	// ErrCycle is returned when attaching a view below one of its descendants.
	ErrCycle = errors.New("view cannot be its own ancestor")

	// ErrNotChild is returned when detaching a view from the wrong parent.
	ErrNotChild = errors.New("view is not a child of parent")
)
