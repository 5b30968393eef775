// Package puzzle holds the logical model of an order-N cube: every facelet's
// color, position and outward normal, the solved layout, slice membership,
// persistence and the solved-state check.
package puzzle

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// Order limits.
const (
	MinOrder     = 2
	MaxOrder     = 20
	DefaultOrder = 3
)

// DefaultSize is the default facelet edge length (spacing unit).
const DefaultSize = 1.0

// Sentinel errors for the puzzle package.
var (
	ErrInvalidOrder   = errors.New("puzzle: invalid order")
	ErrInvalidSize    = errors.New("puzzle: invalid facelet size")
	ErrFaceletCount   = errors.New("puzzle: facelet count does not match order")
	ErrInvalidFacelet = errors.New("puzzle: facelet is not on the solved layout")
	ErrUnknownFacelet = errors.New("puzzle: unknown facelet id")
)

// Facelet is one colored square on the puzzle surface.
type Facelet struct {
	ID           int
	Color        Color
	Position     mgl64.Vec3 // center in puzzle-local space
	Normal       mgl64.Vec3 // one of the six canonical axes
	CenterMarker bool       // logo-bearing facelet, ignored by the solved check
}

// Data owns every facelet of one puzzle. Facelet IDs equal their index in
// Facelets and never change; turns only rewrite Position and Normal.
type Data struct {
	Order    int
	Size     float64
	Facelets []Facelet
}

// Option configures a new puzzle.
type Option func(*options)

type options struct {
	size float64
}

// WithSize sets the facelet edge length.
func WithSize(size float64) Option {
	return func(o *options) {
		o.size = size
	}
}

func buildOptions(opts []Option) options {
	o := options{size: DefaultSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New lays out a solved puzzle of the given order: for each face a regular
// order × order grid offset from the center by order·size/2 along the normal.
// On odd orders the front face's center facelet carries the marker.
func New(order int, opts ...Option) (*Data, error) {
	if order < MinOrder || order > MaxOrder {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidOrder, order, MinOrder, MaxOrder)
	}
	o := buildOptions(opts)
	if o.size <= 0 || math.IsNaN(o.size) || math.IsInf(o.size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, o.size)
	}

	d := &Data{
		Order:    order,
		Size:     o.size,
		Facelets: make([]Facelet, 0, 6*order*order),
	}
	half := float64(order-1) / 2
	mid := (order - 1) / 2

	for _, face := range Faces {
		n := face.Normal()
		right, down := face.basis()
		center := n.Mul(float64(order) * o.size / 2)
		for row := 0; row < order; row++ {
			for col := 0; col < order; col++ {
				pos := center.
					Add(right.Mul((float64(col) - half) * o.size)).
					Add(down.Mul((float64(row) - half) * o.size))
				d.Facelets = append(d.Facelets, Facelet{
					ID:           len(d.Facelets),
					Color:        face.SolvedColor(),
					Position:     pos,
					Normal:       n,
					CenterMarker: face == F && order%2 == 1 && row == mid && col == mid,
				})
			}
		}
	}
	return d, nil
}

// MustNew is New that panics on error. Intended for tests and constants.
func MustNew(order int, opts ...Option) *Data {
	d, err := New(order, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of facelets.
func (d *Data) Len() int {
	return len(d.Facelets)
}

// Facelet returns the facelet with the given id.
func (d *Data) Facelet(id int) (Facelet, error) {
	if id < 0 || id >= len(d.Facelets) {
		return Facelet{}, fmt.Errorf("%w: %d", ErrUnknownFacelet, id)
	}
	return d.Facelets[id], nil
}

// Clone returns a deep copy.
func (d *Data) Clone() *Data {
	c := &Data{Order: d.Order, Size: d.Size, Facelets: make([]Facelet, len(d.Facelets))}
	copy(c.Facelets, d.Facelets)
	return c
}

// Extent returns the distance from the center to each face (order·size/2).
func (d *Data) Extent() float64 {
	return float64(d.Order) * d.Size / 2
}

// ReferencePoint returns the facelet's position pulled inward by half a
// facelet along its normal, i.e. the center of the cubie it sits on.
// Facelets on perpendicular faces can share a coordinate plane value at
// their raw positions but never at their cubie centers.
func (d *Data) ReferencePoint(f Facelet) mgl64.Vec3 {
	return f.Position.Sub(f.Normal.Mul(d.Size / 2))
}

// Slice returns the ids of every facelet that turns together with pivotID
// around axis: those whose reference point lies in the plane through the
// pivot's reference point perpendicular to axis.
func (d *Data) Slice(pivotID int, axis mgl64.Vec3) ([]int, error) {
	pivot, err := d.Facelet(pivotID)
	if err != nil {
		return nil, err
	}
	axis = vecmath.Normalize(axis)
	ref := d.ReferencePoint(pivot)
	eps := d.Size * 1e-3

	var ids []int
	for _, f := range d.Facelets {
		if math.Abs(d.ReferencePoint(f).Sub(ref).Dot(axis)) < eps {
			ids = append(ids, f.ID)
		}
	}
	return ids, nil
}

// Neighbor returns the facelet on the same face one facelet away from id in
// direction dir.
func (d *Data) Neighbor(id int, dir mgl64.Vec3) (int, bool) {
	f, err := d.Facelet(id)
	if err != nil {
		return 0, false
	}
	target := f.Position.Add(vecmath.Normalize(dir).Mul(d.Size))
	for _, g := range d.Facelets {
		if g.ID == id || !vecmath.SameDirection(g.Normal, f.Normal, vecmath.DefaultTolerance) {
			continue
		}
		if g.Position.Sub(target).Len() < 0.1*d.Size {
			return g.ID, true
		}
	}
	return 0, false
}

// FaceCounts returns how many facelets currently face each direction.
func (d *Data) FaceCounts() map[Face]int {
	counts := make(map[Face]int, 6)
	for _, f := range d.Facelets {
		if face, ok := FaceOf(f.Normal); ok {
			counts[face]++
		}
	}
	return counts
}

// CenterOf returns the facelet at the middle of face on odd orders.
func (d *Data) CenterOf(face Face) (int, bool) {
	if d.Order%2 == 0 {
		return 0, false
	}
	target := face.Normal().Mul(d.Extent())
	for _, f := range d.Facelets {
		if f.Normal == face.Normal() && f.Position.Sub(target).Len() < 0.1*d.Size {
			return f.ID, true
		}
	}
	return 0, false
}

// SwapColors exchanges the colors of two facelets. It is the move of the
// color-matching mode that follows ShuffleColorsOnly.
func (d *Data) SwapColors(a, b int) error {
	if _, err := d.Facelet(a); err != nil {
		return err
	}
	if _, err := d.Facelet(b); err != nil {
		return err
	}
	d.Facelets[a].Color, d.Facelets[b].Color = d.Facelets[b].Color, d.Facelets[a].Color
	return nil
}

// ShuffleColorsOnly permutes the colors of all facelets (Fisher–Yates) and
// leaves geometry untouched. The result is an easy variant that can be
// "solved" by color matching; it is not reachable by turning slices.
func (d *Data) ShuffleColorsOnly(rng *rand.Rand) {
	for i := len(d.Facelets) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.Facelets[i].Color, d.Facelets[j].Color = d.Facelets[j].Color, d.Facelets[i].Color
	}
}
