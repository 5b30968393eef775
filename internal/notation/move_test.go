package notation

import (
	"errors"
	"testing"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/rotation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", Move{Face: FaceR, Turn: CW}},
		{"U'", Move{Face: FaceU, Turn: CCW}},
		{"f2", Move{Face: FaceF, Turn: Double}},
		{"B2'", Move{Face: FaceB, Turn: Double}},
		{"D`", Move{Face: FaceD, Turn: CCW}},
		{"2L'", Move{Face: FaceL, Turn: CCW, Layer: 2}},
		{" 3R ", Move{Face: FaceR, Turn: CW, Layer: 3}},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, in := range []string{"", "X", "R3", "0R", "2", "R''"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) err = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	in := "R U R' U' 2F2 B"
	moves, err := ParseMoves(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != in {
		t.Errorf("FormatMoves = %q, want %q", got, in)
	}
	if got := FormatMoves(InverseSequence(moves)); got != "B' 2F2 U R U' R'" {
		t.Errorf("inverse = %q", got)
	}
}

func TestParseMovesRejectsGarbage(t *testing.T) {
	if _, err := ParseMoves("R U Q"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("err = %v, want ErrInvalidNotation", err)
	}
}

func apply(t *testing.T, e *rotation.Engine, seq string) {
	t.Helper()
	moves, err := ParseMoves(seq)
	if err != nil {
		t.Fatal(err)
	}
	if err := Apply(e, moves); err != nil {
		t.Fatal(err)
	}
}

func TestFourTurnsIdentity(t *testing.T) {
	for _, face := range []string{"R", "L", "U", "D", "F", "B"} {
		e := rotation.New(puzzle.MustNew(3))
		apply(t, e, face)
		if e.Data().IsSolved() {
			t.Errorf("%s left the puzzle solved", face)
		}
		apply(t, e, face+" "+face+" "+face)
		if !e.Data().IsSolved() {
			t.Errorf("%s x 4 should return to solved", face)
			t.Log(e.Data().String())
		}
	}
}

func TestMoveThenInverse(t *testing.T) {
	e := rotation.New(puzzle.MustNew(3))
	apply(t, e, "R R'")
	if !e.Data().IsSolved() {
		t.Error("R R' should return to solved")
	}
}

func TestSexyMoveOrderSix(t *testing.T) {
	e := rotation.New(puzzle.MustNew(3))
	for i := 0; i < 6; i++ {
		apply(t, e, "R U R' U'")
		if i < 5 && e.Data().IsSolved() {
			t.Fatalf("solved after %d repetitions", i+1)
		}
	}
	if !e.Data().IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
	}
}

func TestSequenceThenInverse(t *testing.T) {
	e := rotation.New(puzzle.MustNew(5))
	moves, _ := ParseMoves("R U2 2F' 3L D B' 2R2")
	if err := Apply(e, moves); err != nil {
		t.Fatal(err)
	}
	if e.Data().IsSolved() {
		t.Fatal("sequence left the puzzle solved")
	}
	if err := Apply(e, InverseSequence(moves)); err != nil {
		t.Fatal(err)
	}
	if !e.Data().IsSolved() {
		t.Error("sequence and inverse should return to solved")
	}
}

func TestClockwiseR(t *testing.T) {
	e := rotation.New(puzzle.MustNew(3))
	apply(t, e, "R")
	// R carries the right column of F up onto U.
	for _, f := range e.Data().Facelets {
		if f.Normal == vecmath.AxisPosY && f.Position.X() > 0.5 && f.Color != puzzle.Green {
			t.Errorf("U facelet at %v is %v, want G", f.Position, f.Color)
		}
	}
}

func TestLayerOutOfRange(t *testing.T) {
	e := rotation.New(puzzle.MustNew(3))
	if err := Do(e, Move{Face: FaceR, Turn: CW, Layer: 4}, false, nil); !errors.Is(err, ErrLayerOutOfRange) {
		t.Errorf("err = %v, want ErrLayerOutOfRange", err)
	}
}
