package rotation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// RotatePlane turns the slice through pivot around axis by quarters quarter
// turns (positive is counter-clockwise looking down the axis). The axis must
// be one of the six canonical directions, within tolerance.
//
// With animated false the turn is applied and reconciled before RotatePlane
// returns. Otherwise it runs over the configured frame count as Advance is
// called. onDone, if set, fires after reconciliation.
//
// A running snap, animated turn or scramble is superseded: it is settled at
// its target immediately and the scramble plan is dropped. Requests made
// while the user is dragging fail with ErrBusy.
func (e *Engine) RotatePlane(pivot int, axis mgl64.Vec3, quarters int, animated bool, onDone func(TurnResult)) error {
	if e.scramble != nil {
		e.log.Debug("scramble superseded by plane turn")
		e.scramble = nil
	}
	return e.rotatePlane(PlaneTurn{Pivot: pivot, Axis: axis, Quarters: quarters}, animated, SourcePlane, onDone)
}

func (e *Engine) rotatePlane(req PlaneTurn, animated bool, source Source, onDone func(TurnResult)) error {
	if e.state == StateDragPendingAxis || e.state == StateDragActive {
		return ErrBusy
	}
	if _, err := e.data.Facelet(req.Pivot); err != nil {
		return err
	}
	axis := vecmath.SnapToAxis(req.Axis)
	if !vecmath.SameDirection(req.Axis, axis, vecmath.DefaultTolerance) {
		return fmt.Errorf("%w: %v", ErrInvalidAxis, req.Axis)
	}
	if err := e.Settle(); err != nil {
		return err
	}
	if req.Quarters == 0 {
		return nil
	}

	active, err := e.data.Slice(req.Pivot, axis)
	if err != nil {
		return err
	}

	target := float64(req.Quarters) * vecmath.QuarterTurn
	e.turn = &Turn{
		Pivot:  req.Pivot,
		Active: active,
		Axis:   axis,
		Target: target,
		source: source,
		onDone: onDone,
	}

	if !animated {
		e.state = StateInstantApply
		return e.complete()
	}

	e.turn.framesLeft = e.cfg.turnFrames
	e.turn.frameStep = target / float64(e.cfg.turnFrames)
	e.state = StateAnimating
	e.log.Debug("animated turn started",
		zap.Int("pivot", req.Pivot),
		zap.Int("quarters", req.Quarters),
		zap.Int("frames", e.cfg.turnFrames))
	return nil
}
