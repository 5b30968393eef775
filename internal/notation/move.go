// Package notation parses and formats face-turn notation (R U' F2, 2R for
// an inner layer) and applies it to a rotation engine.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
)

// ErrInvalidNotation is returned by ParseMove and ParseMoves for text that
// is not a move.
var ErrInvalidNotation = errors.New("notation: invalid move")

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Puzzle returns the puzzle face this notation face turns.
func (f Face) Puzzle() puzzle.Face {
	switch f {
	case FaceU:
		return puzzle.U
	case FaceD:
		return puzzle.D
	case FaceF:
		return puzzle.F
	case FaceB:
		return puzzle.B
	case FaceR:
		return puzzle.R
	default:
		return puzzle.L
	}
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move is one face turn. Layer counts inward from the face, starting at 1
// for the outer layer; zero means 1.
type Move struct {
	Face  Face
	Turn  Turn
	Layer int
}

func (m Move) layer() int {
	if m.Layer < 1 {
		return 1
	}
	return m.Layer
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, 2R'
func (m Move) Notation() string {
	var b strings.Builder
	if l := m.layer(); l > 1 {
		b.WriteString(strconv.Itoa(l))
	}
	b.WriteString(string(m.Face))
	switch m.Turn {
	case CCW:
		b.WriteByte('\'')
	case Double:
		b.WriteByte('2')
	}
	return b.String()
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// Quarters returns the signed quarter-turn count around the face's outward
// normal. Clockwise, seen from outside the face, is negative.
func (m Move) Quarters() int {
	return -int(m.Turn)
}

// ParseMove parses a standard notation string into a Move.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	orig := s

	layer := 0
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 {
		n, err := strconv.Atoi(s[:i])
		if err != nil || n < 1 {
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, orig)
		}
		layer = n
		s = s[i:]
	}
	if len(s) == 0 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, orig)
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, orig)
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = CCW
	case "2", "2'", "2`":
		turn = Double
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, orig)
	}

	return Move{Face: face, Turn: turn, Layer: layer}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}
	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// InverseSequence returns the moves that undo seq.
func InverseSequence(seq []Move) []Move {
	inv := make([]Move, len(seq))
	for i, m := range seq {
		inv[len(seq)-1-i] = m.Inverse()
	}
	return inv
}
