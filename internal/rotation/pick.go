package rotation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// Pick returns the facelet under screen point at: the nearest front-facing
// facelet whose projected center lies within half a projected facelet
// (diagonal included) of the point.
func (e *Engine) Pick(at mgl64.Vec2) (int, bool) {
	eye := e.cfg.camera.Eye()
	half := e.data.Size / 2

	best, bestDist := 0, math.Inf(1)
	for _, f := range e.data.Facelets {
		world := e.WorldTransform(f.ID)
		pos := vecmath.TransformPoint(world, f.Position)
		normal := vecmath.TransformDirection(world, f.Normal)
		if eye.Sub(pos).Dot(normal) <= 0 {
			continue
		}

		center := e.cfg.viewport.Project(pos, e.cfg.camera)
		radius := 0.0
		for _, dir := range inFaceAxes(vecmath.SnapToAxis(f.Normal)) {
			edge := vecmath.TransformPoint(world, f.Position.Add(dir.Mul(half)))
			if r := e.cfg.viewport.Project(edge, e.cfg.camera).Sub(center).Len(); r > radius {
				radius = r
			}
		}

		d := at.Sub(center).Len()
		if d <= radius*math.Sqrt2 && d < bestDist {
			best, bestDist = f.ID, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
