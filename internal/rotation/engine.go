// Package rotation implements the slice rotation engine: it turns drag
// gestures and programmatic requests into quarter turns of an order-N
// puzzle, animates them under an external frame clock and reconciles the
// logical facelet data afterwards.
//
// The engine is single-threaded. The host calls Advance once per frame with
// the real elapsed time; nothing inside schedules its own callbacks.
package rotation

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// Engine drives turns on one puzzle.
type Engine struct {
	cfg  *config
	log  *zap.Logger
	data *puzzle.Data

	state       State
	gesture     *gesture
	turn        *Turn
	scramble    *scramblePlan
	orientation mgl64.Mat4   // whole-puzzle transform, puzzle-local to world
	transforms  []mgl64.Mat4 // per-facelet slice rotation, identity at rest
}

// New creates an engine operating on data.
func New(data *puzzle.Data, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	e := &Engine{
		cfg:         cfg,
		log:         cfg.logger,
		orientation: mgl64.Ident4(),
	}
	e.SetData(data)
	return e
}

// Data returns the puzzle the engine is mutating.
func (e *Engine) Data() *puzzle.Data {
	return e.data
}

// SetData replaces the puzzle wholesale (scramble from storage, reset).
// Any in-flight turn, gesture or scramble is dropped without reconciling.
func (e *Engine) SetData(data *puzzle.Data) {
	e.data = data
	e.state = StateIdle
	e.gesture = nil
	e.turn = nil
	e.scramble = nil
	e.transforms = make([]mgl64.Mat4, data.Len())
	for i := range e.transforms {
		e.transforms[i] = mgl64.Ident4()
		e.notify(i)
	}
}

// State returns the current state machine position.
func (e *Engine) State() State {
	return e.state
}

// Busy reports whether a turn, gesture or scramble is in progress.
func (e *Engine) Busy() bool {
	return e.state != StateIdle || e.scramble != nil
}

// Scrambling reports whether an animated scramble is still running.
func (e *Engine) Scrambling() bool {
	return e.scramble != nil
}

// CurrentTurn returns a copy of the in-flight turn.
func (e *Engine) CurrentTurn() (Turn, bool) {
	if e.turn == nil {
		return Turn{}, false
	}
	return *e.turn, true
}

// Transform returns the slice rotation currently applied to a facelet.
func (e *Engine) Transform(id int) mgl64.Mat4 {
	if id < 0 || id >= len(e.transforms) {
		return mgl64.Ident4()
	}
	return e.transforms[id]
}

// WorldTransform returns the full transform of a facelet: whole-puzzle
// orientation after its slice rotation.
func (e *Engine) WorldTransform(id int) mgl64.Mat4 {
	return e.orientation.Mul4(e.Transform(id))
}

// Orientation returns the whole-puzzle transform.
func (e *Engine) Orientation() mgl64.Mat4 {
	return e.orientation
}

// SetOrientation replaces the whole-puzzle transform.
func (e *Engine) SetOrientation(m mgl64.Mat4) {
	e.orientation = m
}

// RotateWhole spins the whole puzzle around a world axis.
func (e *Engine) RotateWhole(axis mgl64.Vec3, rad float64) {
	if axis.Len() == 0 || rad == 0 {
		return
	}
	e.orientation = vecmath.RotateAroundWorldAxis(e.orientation, axis, rad)
}

// Camera returns the projection camera.
func (e *Engine) Camera() vecmath.Camera {
	return e.cfg.camera
}

// SetCamera replaces the projection camera.
func (e *Engine) SetCamera(cam vecmath.Camera) {
	e.cfg.camera = cam
}

// Viewport returns the render target size.
func (e *Engine) Viewport() vecmath.Viewport {
	return e.cfg.viewport
}

// SetViewport replaces the render target size.
func (e *Engine) SetViewport(vp vecmath.Viewport) {
	e.cfg.viewport = vp
}

// ScreenPoint projects a puzzle-local point to pixels through the
// whole-puzzle orientation.
func (e *Engine) ScreenPoint(local mgl64.Vec3) mgl64.Vec2 {
	world := vecmath.TransformPoint(e.orientation, local)
	return e.cfg.viewport.Project(world, e.cfg.camera)
}

// Advance moves any running animation forward by dt of wall-clock time.
// Snaps use dt; animated programmatic turns advance one frame per call.
func (e *Engine) Advance(dt time.Duration) (Status, error) {
	switch e.state {
	case StateSnapping:
		return e.advanceSnap(dt)
	case StateAnimating:
		return e.advanceFrame()
	case StateDragPendingAxis, StateDragActive:
		return Continue, nil
	case StateIdle:
		if e.scramble != nil {
			return e.advanceScramble(dt)
		}
	}
	return Done, nil
}

// Settle completes any running animation immediately. Drags are left alone.
func (e *Engine) Settle() error {
	if e.state != StateSnapping && e.state != StateAnimating {
		return nil
	}
	return e.complete()
}

// applyDelta rotates the active slice by rad more and tells the renderer.
func (e *Engine) applyDelta(rad float64) {
	t := e.turn
	if t == nil || rad == 0 {
		return
	}
	rot := vecmath.Rotation(t.Axis, rad)
	for _, id := range t.Active {
		e.transforms[id] = rot.Mul4(e.transforms[id])
		e.notify(id)
	}
	t.Accumulated += rad
}

// complete jumps the turn to its target, reconciles and clears it.
func (e *Engine) complete() error {
	t := e.turn
	if t == nil {
		e.state = StateIdle
		return nil
	}
	e.applyDelta(t.Target - t.Accumulated)
	t.Accumulated = t.Target

	err := e.reconcile(t)
	for _, id := range t.Active {
		e.transforms[id] = mgl64.Ident4()
		e.notify(id)
	}

	result := TurnResult{
		PlaneTurn: PlaneTurn{
			Pivot:    t.Pivot,
			Axis:     t.Axis,
			Quarters: int(math.Round(t.Target / vecmath.QuarterTurn)),
		},
		Active: t.Active,
		Source: t.source,
	}
	e.turn = nil
	e.gesture = nil
	e.state = StateIdle

	if err != nil {
		e.log.Error("turn reconciliation failed",
			zap.Int("pivot", t.Pivot),
			zap.Int("quarters", result.Quarters),
			zap.Error(err))
		return err
	}

	e.log.Debug("turn complete",
		zap.String("source", t.source.String()),
		zap.Int("pivot", t.Pivot),
		zap.Float64s("axis", t.Axis[:]),
		zap.Int("quarters", result.Quarters),
		zap.Int("facelets", len(t.Active)))

	if t.onDone != nil {
		t.onDone(result)
	}
	if e.cfg.onTurn != nil {
		e.cfg.onTurn(result)
	}
	return nil
}

func (e *Engine) notify(id int) {
	if e.cfg.onTransform != nil {
		e.cfg.onTransform(id, e.transforms[id])
	}
}
