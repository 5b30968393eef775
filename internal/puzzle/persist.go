package puzzle

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// vec3JSON is the persisted shape of a point or direction.
type vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func toVec3JSON(v mgl64.Vec3) vec3JSON {
	return vec3JSON{X: v[0], Y: v[1], Z: v[2]}
}

func (v vec3JSON) vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// faceletJSON is one element of the persisted blob.
type faceletJSON struct {
	Color          Color    `json:"color"`
	Position       vec3JSON `json:"position"`
	Normal         vec3JSON `json:"normal"`
	IsCenterMarker bool     `json:"isCenterMarker,omitempty"`
}

// Marshal serializes every facelet in id order.
func (d *Data) Marshal() ([]byte, error) {
	out := make([]faceletJSON, len(d.Facelets))
	for i, f := range d.Facelets {
		out[i] = faceletJSON{
			Color:          f.Color,
			Position:       toVec3JSON(f.Position),
			Normal:         toVec3JSON(f.Normal),
			IsCenterMarker: f.CenterMarker,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal puzzle: %w", err)
	}
	return data, nil
}

// Unmarshal restores a puzzle of the given order from a blob written by
// Marshal. Every facelet must sit on a distinct slot of the solved layout
// (within tolerance); restored positions and normals are replaced by the
// exact layout values so no drift survives a round trip.
func Unmarshal(blob []byte, order int, opts ...Option) (*Data, error) {
	layout, err := New(order, opts...)
	if err != nil {
		return nil, err
	}

	var in []faceletJSON
	if err := json.Unmarshal(blob, &in); err != nil {
		return nil, fmt.Errorf("failed to unmarshal puzzle: %w", err)
	}
	if len(in) != layout.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFaceletCount, len(in), layout.Len())
	}

	used := make([]bool, layout.Len())
	d := &Data{Order: order, Size: layout.Size, Facelets: make([]Facelet, len(in))}
	for i, rec := range in {
		slot, ok := layout.match(rec.Position.vec3(), rec.Normal.vec3(), used)
		if !ok {
			return nil, fmt.Errorf("%w: facelet %d at %v", ErrInvalidFacelet, i, rec.Position.vec3())
		}
		used[slot] = true
		d.Facelets[i] = Facelet{
			ID:           i,
			Color:        rec.Color,
			Position:     layout.Facelets[slot].Position,
			Normal:       layout.Facelets[slot].Normal,
			CenterMarker: rec.IsCenterMarker,
		}
	}
	return d, nil
}

// match finds an unused facelet of d at position p facing n.
func (d *Data) match(p, n mgl64.Vec3, used []bool) (int, bool) {
	tol := 0.1 * d.Size
	for i, f := range d.Facelets {
		if used[i] {
			continue
		}
		if f.Normal.Sub(n).Len() < tol && f.Position.Sub(p).Len() < tol {
			return i, true
		}
	}
	return 0, false
}

// Restore is Unmarshal that falls back to a solved layout when the blob is
// empty or malformed. The returned bool reports whether the blob was used.
// It only fails when the order itself is invalid.
func Restore(blob []byte, order int, opts ...Option) (*Data, bool, error) {
	if len(blob) > 0 {
		if d, err := Unmarshal(blob, order, opts...); err == nil {
			return d, true, nil
		}
	}
	d, err := New(order, opts...)
	if err != nil {
		return nil, false, err
	}
	return d, false, nil
}
