package puzzle

import (
	"math"
	"strings"
)

// Net is the unfolded puzzle: Net[face][row][col] as seen from outside the
// face, with U above F, D below F and L F R B left to right.
type Net [6][][]Color

// Net unfolds the current state.
func (d *Data) Net() Net {
	var net Net
	for _, face := range Faces {
		net[face] = make([][]Color, d.Order)
		for row := range net[face] {
			net[face][row] = make([]Color, d.Order)
		}
	}
	for _, f := range d.Facelets {
		if face, row, col, ok := d.cellOf(f); ok {
			net[face][row][col] = f.Color
		}
	}
	return net
}

// FaceletAt returns the facelet drawn at row, col of face on the net.
func (d *Data) FaceletAt(face Face, row, col int) (int, bool) {
	for _, f := range d.Facelets {
		if fc, r, c, ok := d.cellOf(f); ok && fc == face && r == row && c == col {
			return f.ID, true
		}
	}
	return 0, false
}

// cellOf locates a facelet on the net.
func (d *Data) cellOf(f Facelet) (face Face, row, col int, ok bool) {
	face, ok = FaceOf(f.Normal)
	if !ok {
		return 0, 0, 0, false
	}
	half := float64(d.Order-1) / 2
	right, down := face.basis()
	col = int(math.Round(f.Position.Dot(right)/d.Size + half))
	row = int(math.Round(f.Position.Dot(down)/d.Size + half))
	if row < 0 || row >= d.Order || col < 0 || col >= d.Order {
		return 0, 0, 0, false
	}
	return face, row, col, true
}

// String returns a text representation of the cube.
func (d *Data) String() string {
	net := d.Net()
	n := d.Order
	indent := strings.Repeat(" ", 2*n)

	var b strings.Builder
	writeRow := func(face Face, row int) {
		for col := 0; col < n; col++ {
			b.WriteString(net[face][row][col].String())
			b.WriteByte(' ')
		}
	}

	// U face (indented)
	for row := 0; row < n; row++ {
		b.WriteString(indent)
		writeRow(U, row)
		b.WriteByte('\n')
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < n; row++ {
		for _, face := range []Face{L, F, R, B} {
			writeRow(face, row)
		}
		b.WriteByte('\n')
	}

	// D face (indented)
	for row := 0; row < n; row++ {
		b.WriteString(indent)
		writeRow(D, row)
		b.WriteByte('\n')
	}
	return b.String()
}
