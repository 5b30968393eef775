// Package input translates pointer, touch, gyroscope and smart-cube events
// into rotation engine calls.
package input

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/rotation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// DefaultSensitivity is the whole-puzzle rotation in radians per pixel.
const DefaultSensitivity = 0.01

var (
	// ErrUnsupportedOrder is returned for smart cube turns on any order but 3.
	ErrUnsupportedOrder = errors.New("input: smart cube turns need an order-3 puzzle")
	// ErrUnknownColor is returned when no face center carries the turned color.
	ErrUnknownColor = errors.New("input: no face center has that color")
)

type mode int

const (
	modeNone mode = iota
	modeSlice
	modeWhole
)

// Adapter owns the pointer and touch state of one view of an engine.
type Adapter struct {
	engine      *rotation.Engine
	log         *zap.Logger
	sensitivity float64

	mode    mode
	last    mgl64.Vec2
	touches map[int]mgl64.Vec2
	order   []int // touch ids in arrival order

	gyroRef  *mgl64.Quat
	gyroLast mgl64.Quat
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSensitivity sets radians of whole-puzzle rotation per pixel dragged.
func WithSensitivity(rad float64) Option {
	return func(a *Adapter) {
		if rad > 0 {
			a.sensitivity = rad
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// New wraps engine.
func New(engine *rotation.Engine, opts ...Option) *Adapter {
	a := &Adapter{
		engine:      engine,
		log:         zap.NewNop(),
		sensitivity: DefaultSensitivity,
		touches:     make(map[int]mgl64.Vec2),
		gyroLast:    mgl64.QuatIdent(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PointerDown presses at a screen point. A press on a facelet starts a
// slice gesture, anywhere else it starts a free rotation of the whole
// puzzle. It returns false if the press was ignored because a turn is
// still running.
func (a *Adapter) PointerDown(at mgl64.Vec2) bool {
	a.last = at
	if id, ok := a.engine.Pick(at); ok {
		if !a.engine.BeginDrag(id, at) {
			a.mode = modeNone
			return false
		}
		a.mode = modeSlice
		return true
	}
	a.mode = modeWhole
	return true
}

// PointerMove moves the pressed pointer.
func (a *Adapter) PointerMove(at mgl64.Vec2) {
	switch a.mode {
	case modeSlice:
		a.engine.Drag(at)
	case modeWhole:
		a.rotateWhole(at.Sub(a.last))
	}
	a.last = at
}

// PointerUp releases the pointer.
func (a *Adapter) PointerUp() {
	if a.mode == modeSlice {
		a.engine.EndDrag()
	}
	a.mode = modeNone
}

// TouchStart registers a touch. The first touch acts as the pointer; a
// second one ends any slice gesture and turns the pair into a whole-puzzle
// rotation driven by their midpoint.
func (a *Adapter) TouchStart(id int, at mgl64.Vec2) {
	if _, ok := a.touches[id]; ok {
		return
	}
	a.touches[id] = at
	a.order = append(a.order, id)

	switch len(a.order) {
	case 1:
		a.PointerDown(at)
	case 2:
		if a.mode == modeSlice {
			a.engine.EndDrag()
		}
		a.mode = modeWhole
		a.last = a.midpoint()
	}
}

// TouchMove moves a registered touch.
func (a *Adapter) TouchMove(id int, at mgl64.Vec2) {
	if _, ok := a.touches[id]; !ok {
		return
	}
	a.touches[id] = at
	if len(a.order) >= 2 {
		if id != a.order[0] && id != a.order[1] {
			return
		}
		mid := a.midpoint()
		a.rotateWhole(mid.Sub(a.last))
		a.last = mid
		return
	}
	a.PointerMove(at)
}

// TouchEnd lifts a touch. The gesture ends when the last touch lifts.
func (a *Adapter) TouchEnd(id int) {
	if _, ok := a.touches[id]; !ok {
		return
	}
	delete(a.touches, id)
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	switch len(a.order) {
	case 0:
		a.PointerUp()
	case 1:
		// Keep rotating the whole puzzle with the remaining finger.
		a.last = a.touches[a.order[0]]
	default:
		a.last = a.midpoint()
	}
}

func (a *Adapter) midpoint() mgl64.Vec2 {
	p, q := a.touches[a.order[0]], a.touches[a.order[1]]
	return p.Add(q).Mul(0.5)
}

// rotateWhole spins the puzzle around the screen-plane axis perpendicular
// to a pixel delta.
func (a *Adapter) rotateWhole(delta mgl64.Vec2) {
	if delta.Len() == 0 {
		return
	}
	view := mgl64.Vec3{delta.Y(), delta.X(), 0}
	axis := vecmath.TransformDirection(a.engine.Camera().View.Inv(), view)
	a.engine.RotateWhole(axis, delta.Len()*a.sensitivity)
}

// Gyro sets the whole-puzzle orientation from an absolute device attitude.
// The first reading after construction or Calibrate becomes the reference.
func (a *Adapter) Gyro(q mgl64.Quat) {
	q = q.Normalize()
	a.gyroLast = q
	if a.gyroRef == nil {
		ref := q
		a.gyroRef = &ref
	}
	rel := q.Mul(a.gyroRef.Inverse())
	a.engine.SetOrientation(rel.Mat4())
}

// Calibrate makes the latest gyro reading the neutral orientation.
func (a *Adapter) Calibrate() {
	ref := a.gyroLast
	a.gyroRef = &ref
	a.engine.SetOrientation(mgl64.Ident4())
	a.log.Debug("gyro calibrated")
}

// SmartCubeTurn mirrors a physical face turn reported by a smart cube. The
// face is identified by the color of its center facelet; clockwise is as
// seen looking at that face.
func (a *Adapter) SmartCubeTurn(color puzzle.Color, clockwise bool) error {
	d := a.engine.Data()
	if d.Order != 3 {
		return fmt.Errorf("%w: order %d", ErrUnsupportedOrder, d.Order)
	}
	for _, face := range puzzle.Faces {
		id, ok := d.CenterOf(face)
		if !ok || d.Facelets[id].Color != color {
			continue
		}
		quarters := 1
		if clockwise {
			quarters = -1
		}
		a.log.Debug("smart cube turn",
			zap.String("face", face.String()),
			zap.String("color", color.String()),
			zap.Bool("clockwise", clockwise))
		return a.engine.RotatePlane(id, face.Normal(), quarters, true, nil)
	}
	return fmt.Errorf("%w: %v", ErrUnknownColor, color)
}
