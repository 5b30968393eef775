package vecmath

import "github.com/go-gl/mathgl/mgl64"

// Camera holds the view and projection matrices used to map puzzle points to
// the screen. It is owned by the render layer; the engine only reads it.
type Camera struct {
	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// NewPerspectiveCamera builds a camera looking from eye at center.
// fovy is in radians.
func NewPerspectiveCamera(eye, center, up mgl64.Vec3, fovy, aspect float64) Camera {
	return Camera{
		View:       mgl64.LookAtV(eye, center, up),
		Projection: mgl64.Perspective(fovy, aspect, 0.1, 1000),
	}
}

// DefaultCamera looks at the origin from +Z (slightly raised and to the
// right so three faces are visible) for a viewport of the given aspect.
func DefaultCamera(aspect float64) Camera {
	return NewPerspectiveCamera(
		mgl64.Vec3{4, 4, 8},
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 1, 0},
		mgl64.DegToRad(45),
		aspect,
	)
}

// Eye returns the camera position in world space.
func (c Camera) Eye() mgl64.Vec3 {
	return TransformPoint(c.View.Inv(), mgl64.Vec3{})
}

// Viewport is the pixel size of the render target.
type Viewport struct {
	Width  float64
	Height float64
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// ProjectToScreen projects a world-space point to pixel coordinates. The
// returned Y grows downward: device "up" maps to smaller pixel rows.
func ProjectToScreen(p mgl64.Vec3, cam Camera, width, height float64) mgl64.Vec2 {
	clip := cam.Projection.Mul4(cam.View).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = 1
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	return mgl64.Vec2{
		ndcX*width/2 + width/2,
		height/2 - ndcY*height/2,
	}
}

// Project is ProjectToScreen using a Viewport.
func (v Viewport) Project(p mgl64.Vec3, cam Camera) mgl64.Vec2 {
	return ProjectToScreen(p, cam, v.Width, v.Height)
}
