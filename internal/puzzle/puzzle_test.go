package puzzle

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

func TestNewFaceletCount(t *testing.T) {
	for order := MinOrder; order <= 7; order++ {
		d := MustNew(order)
		if d.Len() != 6*order*order {
			t.Errorf("order %d: got %d facelets, want %d", order, d.Len(), 6*order*order)
		}
		counts := d.FaceCounts()
		for _, face := range Faces {
			if counts[face] != order*order {
				t.Errorf("order %d face %v: got %d facelets, want %d", order, face, counts[face], order*order)
			}
		}
		for i, f := range d.Facelets {
			if f.ID != i {
				t.Fatalf("order %d: facelet %d has id %d", order, i, f.ID)
			}
		}
	}
}

func TestNewIsSolved(t *testing.T) {
	for order := MinOrder; order <= 5; order++ {
		if !MustNew(order).IsSolved() {
			t.Errorf("new order-%d puzzle should be solved", order)
		}
	}
}

func TestNewInvalidOrder(t *testing.T) {
	for _, order := range []int{-1, 0, 1, MaxOrder + 1} {
		if _, err := New(order); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("New(%d) error = %v, want ErrInvalidOrder", order, err)
		}
	}
	if _, err := New(3, WithSize(0)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("New with zero size error = %v, want ErrInvalidSize", err)
	}
}

func TestLayoutOffsets(t *testing.T) {
	d := MustNew(3, WithSize(2))
	for _, f := range d.Facelets {
		along := f.Position.Dot(f.Normal)
		if math.Abs(along-d.Extent()) > 1e-9 {
			t.Fatalf("facelet %d sits %v from center along its normal, want %v", f.ID, along, d.Extent())
		}
	}

	markers := 0
	for _, f := range d.Facelets {
		if f.CenterMarker {
			markers++
			if f.Normal != F.Normal() {
				t.Errorf("marker should be on the front face, got normal %v", f.Normal)
			}
		}
	}
	if markers != 1 {
		t.Errorf("got %d center markers, want 1", markers)
	}
	if n := countMarkers(MustNew(4)); n != 0 {
		t.Errorf("even order should carry no marker, got %d", n)
	}
}

func countMarkers(d *Data) int {
	n := 0
	for _, f := range d.Facelets {
		if f.CenterMarker {
			n++
		}
	}
	return n
}

func TestShuffleColorsOnly(t *testing.T) {
	d := MustNew(3)
	before := d.Clone()
	d.ShuffleColorsOnly(rand.New(rand.NewPCG(1, 2)))

	if d.IsSolved() {
		t.Fatal("shuffled puzzle should not be solved")
	}

	colors := make(map[Color]int)
	for i, f := range d.Facelets {
		if f.Position != before.Facelets[i].Position || f.Normal != before.Facelets[i].Normal {
			t.Fatalf("facelet %d geometry changed during color shuffle", i)
		}
		colors[f.Color]++
	}
	for _, face := range Faces {
		if colors[face.SolvedColor()] != 9 {
			t.Errorf("color %v appears %d times, want 9", face.SolvedColor(), colors[face.SolvedColor()])
		}
	}
}

func TestIsSolvedDetectsSingleSwap(t *testing.T) {
	d := MustNew(3)
	d.Facelets[0].Color, d.Facelets[len(d.Facelets)-1].Color = d.Facelets[len(d.Facelets)-1].Color, d.Facelets[0].Color
	if d.IsSolved() {
		t.Error("swapping two facelets of different faces should break the solve")
	}
	if got := d.SolvedFaces(); got != 4 {
		t.Errorf("SolvedFaces() = %d, want 4", got)
	}
}

func TestIsSolvedRejectsNonCanonicalNormal(t *testing.T) {
	d := MustNew(2)
	d.Facelets[0].Normal = mgl64.Vec3{0, 0.99, 0.01}
	if d.IsSolved() {
		t.Error("a non-canonical normal should never count as solved")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	d := MustNew(4)
	d.ShuffleColorsOnly(rand.New(rand.NewPCG(7, 7)))

	blob, err := d.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(blob, 4)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Len() != d.Len() {
		t.Fatalf("got %d facelets, want %d", got.Len(), d.Len())
	}
	for i := range d.Facelets {
		want, have := d.Facelets[i], got.Facelets[i]
		if want.Color != have.Color {
			t.Errorf("facelet %d color = %v, want %v", i, have.Color, want.Color)
		}
		if !near(want.Position, have.Position) || !near(want.Normal, have.Normal) {
			t.Errorf("facelet %d geometry mismatch: %v/%v vs %v/%v", i, have.Position, have.Normal, want.Position, want.Normal)
		}
	}
}

func TestBlobShape(t *testing.T) {
	blob, err := MustNew(3).Marshal()
	if err != nil {
		t.Fatal(err)
	}
	s := string(blob)
	for _, key := range []string{`"color"`, `"position":{"x"`, `"normal":{"x"`, `"isCenterMarker":true`} {
		if !strings.Contains(s, key) {
			t.Errorf("blob missing %s", key)
		}
	}
}

func TestUnmarshalRejectsBadBlobs(t *testing.T) {
	blob, err := MustNew(3).Marshal()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Unmarshal(blob, 4); !errors.Is(err, ErrFaceletCount) {
		t.Errorf("wrong order error = %v, want ErrFaceletCount", err)
	}
	if _, err := Unmarshal([]byte("not json"), 3); err == nil {
		t.Error("expected error for unparseable blob")
	}

	dup := MustNew(2)
	dup.Facelets[1].Position = dup.Facelets[0].Position
	dupBlob, _ := dup.Marshal()
	if _, err := Unmarshal(dupBlob, 2); !errors.Is(err, ErrInvalidFacelet) {
		t.Errorf("duplicate slot error = %v, want ErrInvalidFacelet", err)
	}
}

func TestRestoreFallsBackToSolved(t *testing.T) {
	blob, _ := MustNew(3).Marshal()

	tests := []struct {
		name     string
		blob     []byte
		order    int
		restored bool
	}{
		{"valid", blob, 3, true},
		{"empty", nil, 3, false},
		{"garbage", []byte("{"), 3, false},
		{"mismatched length", blob, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, restored, err := Restore(tt.blob, tt.order)
			if err != nil {
				t.Fatalf("Restore failed: %v", err)
			}
			if restored != tt.restored {
				t.Errorf("restored = %v, want %v", restored, tt.restored)
			}
			if d.Len() != 6*tt.order*tt.order || !d.IsSolved() {
				t.Errorf("expected solved order-%d puzzle", tt.order)
			}
		})
	}

	if _, _, err := Restore(nil, 1); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("Restore with invalid order error = %v", err)
	}
}

// Exhaustive slice selection for every pivot and axis: an outer layer holds
// a whole face plus one row from each of four sides, an inner layer only
// the four side rows.
func TestSliceSizesExhaustive(t *testing.T) {
	axes := []mgl64.Vec3{vecmath.AxisPosX, vecmath.AxisPosY, vecmath.AxisPosZ}
	for order := 2; order <= 5; order++ {
		d := MustNew(order)
		outer := d.Extent() - d.Size/2
		for _, pivot := range d.Facelets {
			for _, axis := range axes {
				ids, err := d.Slice(pivot.ID, axis)
				if err != nil {
					t.Fatal(err)
				}
				layer := d.ReferencePoint(pivot).Dot(axis)
				want := 4 * order
				if math.Abs(math.Abs(layer)-outer) < 1e-9 {
					want += order * order
				}
				if len(ids) != want {
					t.Fatalf("order %d pivot %d axis %v: slice has %d facelets, want %d", order, pivot.ID, axis, len(ids), want)
				}
				if !containsID(ids, pivot.ID) {
					t.Fatalf("order %d pivot %d: slice does not contain its pivot", order, pivot.ID)
				}
			}
		}
	}
}

func TestSliceTopLayerOrder3(t *testing.T) {
	d := MustNew(3)
	top, ok := d.CenterOf(U)
	if !ok {
		t.Fatal("order 3 should have a U center")
	}
	ids, err := d.Slice(top, vecmath.AxisPosY)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 21 {
		t.Fatalf("top layer has %d facelets, want 21", len(ids))
	}
	onTop := 0
	for _, id := range ids {
		if d.Facelets[id].Normal == U.Normal() {
			onTop++
		}
	}
	if onTop != 9 {
		t.Errorf("top layer has %d top-face facelets, want 9", onTop)
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestNeighbor(t *testing.T) {
	d := MustNew(3)
	front, _ := d.CenterOf(F)

	right, ok := d.Neighbor(front, vecmath.AxisPosX)
	if !ok {
		t.Fatal("front center should have a +X neighbor")
	}
	if got := d.Facelets[right].Position; !near(got, mgl64.Vec3{1, 0, 1.5}) {
		t.Errorf("neighbor at %v, want (1, 0, 1.5)", got)
	}
	if _, ok := d.Neighbor(right, vecmath.AxisPosX); ok {
		t.Error("edge facelet should have no neighbor past the edge")
	}
	if _, ok := d.Neighbor(-1, vecmath.AxisPosX); ok {
		t.Error("unknown id should have no neighbor")
	}
}

func TestNetSolved(t *testing.T) {
	d := MustNew(3)
	net := d.Net()
	for _, face := range Faces {
		for _, row := range net[face] {
			for _, c := range row {
				if c != face.SolvedColor() {
					t.Fatalf("face %v contains %v", face, c)
				}
			}
		}
	}

	lines := strings.Split(strings.TrimRight(d.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("String() has %d lines, want 9", len(lines))
	}
	if !strings.HasPrefix(lines[3], "O O O G G G R R R B B B") {
		t.Errorf("middle band = %q", lines[3])
	}
}

func TestNetOrientation(t *testing.T) {
	d := MustNew(3)
	// Paint the top row of the front face and check it lands in net row 0.
	for i, f := range d.Facelets {
		if f.Normal == F.Normal() && f.Position.Y() > 0.5 {
			d.Facelets[i].Color = Red
		}
	}
	net := d.Net()
	for col := 0; col < 3; col++ {
		if net[F][0][col] != Red {
			t.Errorf("net[F][0][%d] = %v, want R", col, net[F][0][col])
		}
		if net[F][2][col] != Green {
			t.Errorf("net[F][2][%d] = %v, want G", col, net[F][2][col])
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, face := range Faces {
		c := face.SolvedColor()
		got, ok := ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseColor("purple"); ok {
		t.Error("purple should not parse")
	}
}

func near(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestSwapColors(t *testing.T) {
	d := MustNew(3)
	u, _ := d.CenterOf(U)
	f, _ := d.CenterOf(F)
	if err := d.SwapColors(u, f); err != nil {
		t.Fatal(err)
	}
	if d.Facelets[u].Color != Green || d.Facelets[f].Color != White {
		t.Errorf("colors after swap = %v, %v", d.Facelets[u].Color, d.Facelets[f].Color)
	}
	if d.IsSolved() {
		t.Error("swapped puzzle reported solved")
	}
	if err := d.SwapColors(u, d.Len()); !errors.Is(err, ErrUnknownFacelet) {
		t.Errorf("err = %v, want ErrUnknownFacelet", err)
	}
}

func TestShuffleSolvableByColorMatching(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		d := MustNew(3)
		d.ShuffleColorsOnly(rand.New(rand.NewPCG(seed, seed)))
		// Fix the net cell by cell, pulling each wanted color from a cell
		// that is not fixed yet.
		fixed := make(map[int]bool)
		for _, face := range Faces {
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					id, ok := d.FaceletAt(face, row, col)
					if !ok {
						t.Fatalf("no facelet at %v %d,%d", face, row, col)
					}
					want := face.SolvedColor()
					if d.Facelets[id].Color != want {
						for _, other := range d.Facelets {
							if !fixed[other.ID] && other.ID != id && other.Color == want {
								if err := d.SwapColors(id, other.ID); err != nil {
									t.Fatal(err)
								}
								break
							}
						}
					}
					fixed[id] = true
				}
			}
		}
		if !d.IsSolved() {
			t.Errorf("seed %d: color matching did not solve", seed)
		}
	}
}

func TestFaceletAtCoversNet(t *testing.T) {
	for _, n := range []int{2, 3, 4} {
		d := MustNew(n)
		seen := make(map[int]bool)
		for _, face := range Faces {
			for row := 0; row < n; row++ {
				for col := 0; col < n; col++ {
					id, ok := d.FaceletAt(face, row, col)
					if !ok {
						t.Fatalf("order %d: no facelet at %v %d,%d", n, face, row, col)
					}
					if d.Facelets[id].Normal != face.Normal() {
						t.Errorf("order %d: facelet %d is not on %v", n, id, face)
					}
					seen[id] = true
				}
			}
		}
		if len(seen) != d.Len() {
			t.Errorf("order %d: net covers %d facelets, want %d", n, len(seen), d.Len())
		}
		if _, ok := d.FaceletAt(U, n, 0); ok {
			t.Errorf("order %d: row %d should be off the net", n, n)
		}
	}
}
