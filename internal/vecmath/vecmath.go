// Package vecmath provides the geometric helpers used by the rotation engine:
// angles between vectors, direction comparison with tolerance, screen-space
// projection and world-axis rotation of transforms.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTolerance is the angular tolerance (radians) used when comparing
// directions that went through a rotation matrix.
const DefaultTolerance = 0.1

// QuarterTurn is a 90 degree rotation in radians.
const QuarterTurn = math.Pi / 2

// Canonical face normals in puzzle-local space.
var (
	AxisPosX = mgl64.Vec3{1, 0, 0}
	AxisNegX = mgl64.Vec3{-1, 0, 0}
	AxisPosY = mgl64.Vec3{0, 1, 0}
	AxisNegY = mgl64.Vec3{0, -1, 0}
	AxisPosZ = mgl64.Vec3{0, 0, 1}
	AxisNegZ = mgl64.Vec3{0, 0, -1}
)

// CanonicalAxes returns the six axis-aligned unit vectors in a fixed order:
// +Y, -Y, +Z, -Z, +X, -X.
func CanonicalAxes() [6]mgl64.Vec3 {
	return [6]mgl64.Vec3{AxisPosY, AxisNegY, AxisPosZ, AxisNegZ, AxisPosX, AxisNegX}
}

// clamp limits a cosine to [-1, 1] so acos never sees floating overshoot.
func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// AngleBetween returns the angle in [0, π] between two screen-space vectors.
// A zero-length input yields π so it never wins a "closest direction" search.
func AngleBetween(u, v mgl64.Vec2) float64 {
	denom := u.Len() * v.Len()
	if denom == 0 {
		return math.Pi
	}
	return math.Acos(clamp(u.Dot(v) / denom))
}

// AngleBetween3 is AngleBetween for 3D vectors.
func AngleBetween3(u, v mgl64.Vec3) float64 {
	denom := u.Len() * v.Len()
	if denom == 0 {
		return math.Pi
	}
	return math.Acos(clamp(u.Dot(v) / denom))
}

// SameDirection reports whether u and v point the same way within tol radians.
func SameDirection(u, v mgl64.Vec3, tol float64) bool {
	return AngleBetween3(u, v) < tol
}

// Normalize returns v scaled to unit length, or the zero vector unchanged.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// Rotation returns the homogeneous rotation of rad radians around axis
// (right-hand rule).
func Rotation(axis mgl64.Vec3, rad float64) mgl64.Mat4 {
	return mgl64.HomogRotate3D(rad, Normalize(axis))
}

// RotateAroundWorldAxis left-multiplies m by a rotation around axis, so the
// rotation happens in world space after the existing transform instead of
// around the object's own local axes.
func RotateAroundWorldAxis(m mgl64.Mat4, axis mgl64.Vec3, rad float64) mgl64.Mat4 {
	return Rotation(axis, rad).Mul4(m)
}

// TransformPoint applies m to a point (w = 1).
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, m)
}

// TransformDirection applies m to a direction (w = 0), ignoring translation.
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformNormal(d, m)
}

// SnapToAxis returns the canonical axis closest to v.
func SnapToAxis(v mgl64.Vec3) mgl64.Vec3 {
	best := AxisPosY
	bestDot := math.Inf(-1)
	for _, a := range CanonicalAxes() {
		if d := a.Dot(v); d > bestDot {
			best, bestDot = a, d
		}
	}
	return best
}
