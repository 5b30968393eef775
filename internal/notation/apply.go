package notation

import (
	"errors"
	"fmt"
	"math"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/rotation"
)

// ErrLayerOutOfRange is returned when a move names a layer deeper than the
// puzzle has.
var ErrLayerOutOfRange = errors.New("notation: layer out of range")

// Pivot returns a facelet lying in the slice a move turns on d.
func Pivot(d *puzzle.Data, m Move) (int, error) {
	if m.layer() > d.Order {
		return 0, fmt.Errorf("%w: %s on order %d", ErrLayerOutOfRange, m, d.Order)
	}
	normal := m.Face.Puzzle().Normal()
	depth := d.Extent() - d.Size/2 - float64(m.layer()-1)*d.Size
	for _, f := range d.Facelets {
		if math.Abs(d.ReferencePoint(f).Dot(normal)-depth) < d.Size*1e-3 {
			return f.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLayerOutOfRange, m)
}

// Do turns the slice of one move.
func Do(e *rotation.Engine, m Move, animated bool, onDone func(rotation.TurnResult)) error {
	pivot, err := Pivot(e.Data(), m)
	if err != nil {
		return err
	}
	return e.RotatePlane(pivot, m.Face.Puzzle().Normal(), m.Quarters(), animated, onDone)
}

// Apply turns every move instantly, in order.
func Apply(e *rotation.Engine, moves []Move) error {
	for _, m := range moves {
		if err := Do(e, m, false, nil); err != nil {
			return fmt.Errorf("failed to apply %s: %w", m, err)
		}
	}
	return nil
}
