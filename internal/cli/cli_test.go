package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/analysis"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/notation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/protocol"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
)

func TestKeyMove(t *testing.T) {
	tests := []struct {
		key  string
		want notation.Move
		ok   bool
	}{
		{"r", notation.Move{Face: notation.FaceR, Turn: notation.CW}, true},
		{"R", notation.Move{Face: notation.FaceR, Turn: notation.CCW}, true},
		{"u", notation.Move{Face: notation.FaceU, Turn: notation.CW}, true},
		{"B", notation.Move{Face: notation.FaceB, Turn: notation.CCW}, true},
		{"x", notation.Move{}, false},
		{"3", notation.Move{}, false},
		{"ctrl+r", notation.Move{}, false},
	}
	for _, tt := range tests {
		got, ok := keyMove(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("keyMove(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFaceMove(t *testing.T) {
	got := faceMove(protocol.RotationEvent{Color: puzzle.Red, Clockwise: true})
	if got.Notation() != "R" {
		t.Errorf("red clockwise = %s, want R", got.Notation())
	}
	got = faceMove(protocol.RotationEvent{Color: puzzle.White})
	if got.Notation() != "U'" {
		t.Errorf("white counter-clockwise = %s, want U'", got.Notation())
	}
}

func TestRenderNetShape(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		net := puzzle.MustNew(n).Net()
		lines := strings.Split(strings.TrimSuffix(renderNet(net), "\n"), "\n")
		if len(lines) != 3*n {
			t.Errorf("order %d: %d lines, want %d", n, len(lines), 3*n)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{75 * time.Second, "1m15.0s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
	if got := formatElapsed(61500 * time.Millisecond); got != "1:01.50" {
		t.Errorf("formatElapsed = %q", got)
	}
}

func TestFormatAverages(t *testing.T) {
	a := analysis.Averages{Count: 5, Best: 10 * time.Second, Mean: 12 * time.Second, Ao5: 11 * time.Second}
	want := "Last 5: best 10.00s  mean 12.00s  ao5 11.00s"
	if got := formatAverages(a); got != want {
		t.Errorf("formatAverages = %q, want %q", got, want)
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in       string
		face     puzzle.Face
		row, col int
		ok       bool
	}{
		{"F2,3", puzzle.F, 1, 2, true},
		{"u1,1", puzzle.U, 0, 0, true},
		{"L12,10", puzzle.L, 11, 9, true},
		{"X1,1", 0, 0, 0, false},
		{"F0,1", 0, 0, 0, false},
		{"F23", 0, 0, 0, false},
		{"F", 0, 0, 0, false},
	}
	for _, tt := range tests {
		face, row, col, err := parseCell(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseCell(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && (face != tt.face || row != tt.row || col != tt.col) {
			t.Errorf("parseCell(%q) = %v %d,%d", tt.in, face, row, col)
		}
	}

	d := puzzle.MustNew(3)
	if _, err := cellFacelet(d, "R4,1"); err == nil {
		t.Error("off-net cell accepted")
	}
	id, err := cellFacelet(d, "F2,2")
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := d.CenterOf(puzzle.F); c != id {
		t.Errorf("F2,2 = facelet %d, want front center %d", id, c)
	}
}
