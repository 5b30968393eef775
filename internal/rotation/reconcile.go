package rotation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// reconcile writes a finished turn back into the facelet data. Every active
// facelet's position and normal are rotated by the net turn and then
// replaced by the pre-turn values of the active facelet they landed on, so
// the data only ever holds the exact solved-layout slots and never drifts.
// Nothing is written unless every facelet finds its match.
func (e *Engine) reconcile(t *Turn) error {
	net := math.Mod(t.Accumulated, 2*math.Pi)
	if math.Abs(net) < vecmath.DefaultTolerance || 2*math.Pi-math.Abs(net) < vecmath.DefaultTolerance {
		return nil
	}
	rot := vecmath.Rotation(t.Axis, net)

	before := make([]puzzle.Facelet, len(t.Active))
	for i, id := range t.Active {
		before[i] = e.data.Facelets[id]
	}

	type slot struct {
		position mgl64.Vec3
		normal   mgl64.Vec3
	}
	after := make([]slot, len(before))
	tol := 0.1 * e.data.Size

	for i, f := range before {
		pos := vecmath.TransformPoint(rot, f.Position)
		normal := vecmath.TransformDirection(rot, f.Normal)

		found := false
		for _, g := range before {
			if g.Position.Sub(pos).Len() < tol && vecmath.SameDirection(g.Normal, normal, vecmath.DefaultTolerance) {
				after[i] = slot{position: g.Position, normal: g.Normal}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: facelet %d rotated to %v", ErrReconcile, f.ID, pos)
		}
	}

	for i, id := range t.Active {
		e.data.Facelets[id].Position = after[i].position
		e.data.Facelets[id].Normal = after[i].normal
	}
	return nil
}
