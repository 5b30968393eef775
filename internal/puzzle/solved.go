package puzzle

// IsSolved reports whether every face is monochromatic. Facelets are grouped
// by exact canonical normal; a facelet with any other normal means the data
// is inconsistent and the puzzle is reported unsolved.
func (d *Data) IsSolved() bool {
	var (
		seen  [6]bool
		color [6]Color
	)
	for _, f := range d.Facelets {
		face, ok := FaceOf(f.Normal)
		if !ok {
			return false
		}
		if !seen[face] {
			seen[face] = true
			color[face] = f.Color
			continue
		}
		if color[face] != f.Color {
			return false
		}
	}
	return true
}

// SolvedFaces returns how many faces are currently a single color.
func (d *Data) SolvedFaces() int {
	uniform := [6]bool{true, true, true, true, true, true}
	var (
		seen  [6]bool
		color [6]Color
	)
	for _, f := range d.Facelets {
		face, ok := FaceOf(f.Normal)
		if !ok {
			continue
		}
		if !seen[face] {
			seen[face] = true
			color[face] = f.Color
		} else if color[face] != f.Color {
			uniform[face] = false
		}
	}
	n := 0
	for i := range uniform {
		if uniform[i] && seen[i] {
			n++
		}
	}
	return n
}
