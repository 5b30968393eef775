package rotation

import "errors"

// Sentinel errors for the rotation package.
var (
	// ErrBusy is returned when a programmatic turn is requested while the
	// user is dragging a slice.
	ErrBusy = errors.New("rotation: a drag gesture is in progress")

	// ErrInvalidAxis is returned for axes that are not axis-aligned.
	ErrInvalidAxis = errors.New("rotation: axis is not axis-aligned")

	// ErrReconcile means a rotated facelet matched no existing facelet slot.
	// It is an invariant violation and indicates a bug.
	ErrReconcile = errors.New("rotation: reconciliation found no matching facelet")
)
