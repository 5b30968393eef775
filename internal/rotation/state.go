package rotation

import (
	"github.com/go-gl/mathgl/mgl64"
)

// State is the engine's position in the turn state machine.
//
//	Idle -> DragPendingAxis -> DragActive -> Snapping -> Idle   (user drag)
//	Idle -> Animating -> Idle                                  (animated turn)
//	Idle -> InstantApply -> Idle                               (instant turn)
type State int

const (
	StateIdle State = iota
	StateDragPendingAxis
	StateDragActive
	StateSnapping
	StateAnimating
	StateInstantApply
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragPendingAxis:
		return "drag_pending_axis"
	case StateDragActive:
		return "drag_active"
	case StateSnapping:
		return "snapping"
	case StateAnimating:
		return "animating"
	case StateInstantApply:
		return "instant_apply"
	default:
		return "unknown"
	}
}

// Status is returned by Advance.
type Status int

const (
	// Continue means an operation is still in flight; call Advance again
	// on the next frame.
	Continue Status = iota
	// Done means the engine is idle with nothing scheduled.
	Done
)

func (s Status) String() string {
	if s == Done {
		return "done"
	}
	return "continue"
}

// Source tells who requested a turn.
type Source int

const (
	SourceDrag Source = iota
	SourcePlane
	SourceScramble
)

func (s Source) String() string {
	switch s {
	case SourceDrag:
		return "drag"
	case SourcePlane:
		return "plane"
	case SourceScramble:
		return "scramble"
	default:
		return "unknown"
	}
}

// DragReference is the screen direction chosen when a drag gesture picked
// its axis, together with the facelet pair it was measured from. Later drag
// deltas are projected onto Direction to get a signed angle.
type DragReference struct {
	Direction  mgl64.Vec2 // unit vector in pixel space
	InFace     mgl64.Vec3 // puzzle-local direction whose projection is Direction
	Source     int        // pivot facelet
	Target     int        // neighbor the direction was measured toward
	CoarseSize float64    // projected puzzle width along InFace, pixels
}

// PlaneTurn is a programmatic quarter-turn request.
type PlaneTurn struct {
	Pivot    int
	Axis     mgl64.Vec3
	Quarters int
}

// TurnResult describes a turn after reconciliation.
type TurnResult struct {
	PlaneTurn
	Active []int
	Source Source
}

// Changed reports whether the turn left facelets in new places.
func (r TurnResult) Changed() bool {
	return r.Quarters%4 != 0
}

// Turn is the in-flight rotation. The engine holds at most one, created when
// a gesture picks a slice or a turn is requested and dropped as soon as the
// facelet data is reconciled.
type Turn struct {
	Pivot       int
	Active      []int // ids into the puzzle data, not copies
	Axis        mgl64.Vec3
	Reference   *DragReference // nil for programmatic turns
	Accumulated float64        // radians applied so far
	Target      float64        // radians to end at once snapping/animating

	source     Source
	frameStep  float64
	framesLeft int
	onDone     func(TurnResult)
}

// gesture is a pressed pointer whose slice has not been chosen yet.
type gesture struct {
	pivot int
	start mgl64.Vec2
}
