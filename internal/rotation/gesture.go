package rotation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// BeginDrag starts a slice gesture on the pivot facelet at screen point at.
// It returns false, and changes nothing, when another rotation or a snap is
// still running or the pivot is unknown.
func (e *Engine) BeginDrag(pivot int, at mgl64.Vec2) bool {
	if e.Busy() {
		return false
	}
	if _, err := e.data.Facelet(pivot); err != nil {
		return false
	}
	e.gesture = &gesture{pivot: pivot, start: at}
	e.state = StateDragPendingAxis
	return true
}

// Drag feeds the current pointer position of an active gesture. The first
// call that travels past the drag threshold picks the axis and slice; every
// call after that rotates the slice. It returns whether anything moved.
func (e *Engine) Drag(at mgl64.Vec2) bool {
	switch e.state {
	case StateDragPendingAxis:
		if !e.pickAxis(at) {
			return false
		}
		e.dragTo(at)
		return true
	case StateDragActive:
		e.dragTo(at)
		return true
	default:
		return false
	}
}

// EndDrag releases the gesture. A gesture that never chose an axis simply
// ends; an active one starts snapping to the nearest quarter turn.
func (e *Engine) EndDrag() {
	switch e.state {
	case StateDragPendingAxis:
		e.gesture = nil
		e.state = StateIdle
	case StateDragActive:
		e.turn.Target = float64(SnapQuarters(e.turn.Accumulated)) * vecmath.QuarterTurn
		e.state = StateSnapping
	}
}

// pickAxis chooses the rotation axis and slice for the pending gesture.
func (e *Engine) pickAxis(at mgl64.Vec2) bool {
	g := e.gesture
	delta := at.Sub(g.start)
	if delta.Len() < e.cfg.dragThreshold || delta == (mgl64.Vec2{}) {
		return false
	}

	pivot := e.data.Facelets[g.pivot]
	ref, ok := e.chooseReference(pivot, delta)
	if !ok {
		return false
	}

	axis := vecmath.Normalize(pivot.Normal.Cross(ref.InFace))
	active, err := e.data.Slice(pivot.ID, axis)
	if err != nil || len(active) == 0 {
		return false
	}

	ref.CoarseSize = e.coarseSize(ref.InFace)
	if ref.CoarseSize < 1 {
		return false
	}

	e.turn = &Turn{
		Pivot:     pivot.ID,
		Active:    active,
		Axis:      axis,
		Reference: &ref,
		source:    SourceDrag,
	}
	e.state = StateDragActive

	e.log.Debug("drag axis chosen",
		zap.Int("pivot", pivot.ID),
		zap.Int("target", ref.Target),
		zap.Float64s("axis", axis[:]),
		zap.Int("slice", len(active)))
	return true
}

// chooseReference builds the four candidate screen directions from the
// pivot's in-face neighbors and their negations, and returns the one closest
// to the drag. The first minimum wins.
func (e *Engine) chooseReference(pivot puzzle.Facelet, drag mgl64.Vec2) (DragReference, bool) {
	origin := e.ScreenPoint(pivot.Position)

	var (
		best     DragReference
		bestDiff = math.Inf(1)
		found    bool
	)
	for _, dir := range inFaceAxes(pivot.Normal) {
		nbr, ok := e.data.Neighbor(pivot.ID, dir)
		if !ok {
			dir = dir.Mul(-1)
			if nbr, ok = e.data.Neighbor(pivot.ID, dir); !ok {
				continue
			}
		}
		screen := e.ScreenPoint(e.data.Facelets[nbr].Position).Sub(origin)
		if screen.Len() == 0 {
			continue
		}
		screen = screen.Normalize()

		for _, sign := range []float64{1, -1} {
			cand := screen.Mul(sign)
			diff := vecmath.AngleBetween(cand, drag)
			if diff < bestDiff {
				bestDiff = diff
				best = DragReference{
					Direction: cand,
					InFace:    dir.Mul(sign),
					Source:    pivot.ID,
					Target:    nbr,
				}
				found = true
			}
		}
	}
	return best, found
}

// inFaceAxes returns the two positive coordinate axes lying in the face with
// the given normal.
func inFaceAxes(normal mgl64.Vec3) []mgl64.Vec3 {
	var axes []mgl64.Vec3
	for _, a := range []mgl64.Vec3{vecmath.AxisPosX, vecmath.AxisPosY, vecmath.AxisPosZ} {
		if math.Abs(a.Dot(normal)) < 0.5 {
			axes = append(axes, a)
		}
	}
	return axes
}

// coarseSize estimates the on-screen width of the puzzle along dir.
func (e *Engine) coarseSize(dir mgl64.Vec3) float64 {
	half := dir.Mul(e.data.Extent())
	return e.ScreenPoint(half).Sub(e.ScreenPoint(half.Mul(-1))).Len()
}

// dragTo converts the total drag since the gesture started into an angle
// and applies only the difference to what is already applied.
func (e *Engine) dragTo(at mgl64.Vec2) {
	t := e.turn
	delta := at.Sub(e.gesture.start)
	projected := math.Cos(vecmath.AngleBetween(t.Reference.Direction, delta)) * delta.Len()
	angle := projected / t.Reference.CoarseSize * vecmath.QuarterTurn
	e.applyDelta(angle - t.Accumulated)
}
