package puzzle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// Color is an opaque facelet color. Only equality matters to the engine.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// ParseColor converts a color letter or name into a Color.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "W", "w", "white":
		return White, true
	case "Y", "y", "yellow":
		return Yellow, true
	case "G", "g", "green":
		return Green, true
	case "B", "b", "blue":
		return Blue, true
	case "R", "r", "red":
		return Red, true
	case "O", "o", "orange":
		return Orange, true
	default:
		return 0, false
	}
}

// Face identifies one of the six canonical faces by its outward normal.
type Face int

const (
	U Face = 0 // Up (+Y)
	D Face = 1 // Down (-Y)
	F Face = 2 // Front (+Z)
	B Face = 3 // Back (-Z)
	R Face = 4 // Right (+X)
	L Face = 5 // Left (-X)
)

// Faces lists all faces in layout order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl64.Vec3 {
	return vecmath.CanonicalAxes()[f]
}

// SolvedColor returns the color of the face when solved.
func (f Face) SolvedColor() Color {
	switch f {
	case U:
		return White
	case D:
		return Yellow
	case F:
		return Green
	case B:
		return Blue
	case R:
		return Red
	case L:
		return Orange
	default:
		return White
	}
}

// basis returns the in-face axes as seen from outside the face: right and
// down on the unfolded net (U above F, D below F, L F R B left to right).
func (f Face) basis() (right, down mgl64.Vec3) {
	switch f {
	case U:
		return vecmath.AxisPosX, vecmath.AxisPosZ
	case D:
		return vecmath.AxisPosX, vecmath.AxisNegZ
	case F:
		return vecmath.AxisPosX, vecmath.AxisNegY
	case B:
		return vecmath.AxisNegX, vecmath.AxisNegY
	case R:
		return vecmath.AxisNegZ, vecmath.AxisNegY
	default: // L
		return vecmath.AxisPosZ, vecmath.AxisNegY
	}
}

// FaceOf returns the face whose normal exactly equals n.
func FaceOf(n mgl64.Vec3) (Face, bool) {
	for _, f := range Faces {
		if f.Normal() == n {
			return f, true
		}
	}
	return 0, false
}

// NearestFace returns the face whose normal is closest to n. It is used for
// vectors that went through a rotation and carry floating drift.
func NearestFace(n mgl64.Vec3) Face {
	f, _ := FaceOf(vecmath.SnapToAxis(n))
	return f
}
