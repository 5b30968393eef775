package rotation

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// scramblePlan is a queue of turns applied one after another, each waiting
// for the previous turn's completion plus a short pause.
type scramblePlan struct {
	turns  []PlaneTurn
	next   int
	wait   time.Duration
	onDone func()
}

// RandomTurns picks count quarter turns with a random axis, random pivot
// facelet and random direction. Consecutive turns may cancel out. A count
// below one yields no turns.
func (e *Engine) RandomTurns(count int, rng *rand.Rand) []PlaneTurn {
	if count <= 0 {
		return nil
	}
	axes := [3]mgl64.Vec3{vecmath.AxisPosX, vecmath.AxisPosY, vecmath.AxisPosZ}
	turns := make([]PlaneTurn, count)
	for i := range turns {
		q := 1
		if rng.IntN(2) == 0 {
			q = -1
		}
		turns[i] = PlaneTurn{
			Pivot:    rng.IntN(e.data.Len()),
			Axis:     axes[rng.IntN(len(axes))],
			Quarters: q,
		}
	}
	return turns
}

// Scramble applies count random quarter turns through the instant path and
// returns them.
func (e *Engine) Scramble(count int, rng *rand.Rand) ([]PlaneTurn, error) {
	e.scramble = nil
	turns := e.RandomTurns(count, rng)
	for _, t := range turns {
		if err := e.rotatePlane(t, false, SourceScramble, nil); err != nil {
			return nil, err
		}
	}
	e.log.Info("puzzle scrambled", zap.Int("turns", count))
	return turns, nil
}

// StartScramble queues count random turns and plays them as animated turns
// one at a time, pausing for the scramble delay between them. onDone fires
// after the last turn is reconciled.
func (e *Engine) StartScramble(count int, rng *rand.Rand, onDone func()) error {
	if e.state == StateDragPendingAxis || e.state == StateDragActive {
		return ErrBusy
	}
	if err := e.Settle(); err != nil {
		return err
	}
	e.scramble = &scramblePlan{
		turns:  e.RandomTurns(count, rng),
		wait:   e.cfg.scrambleDelay,
		onDone: onDone,
	}
	e.log.Info("animated scramble started", zap.Int("turns", count))
	return nil
}

// advanceScramble runs between scramble turns, while the engine is idle.
func (e *Engine) advanceScramble(dt time.Duration) (Status, error) {
	p := e.scramble
	p.wait += dt
	if p.wait < e.cfg.scrambleDelay {
		return Continue, nil
	}

	if p.next >= len(p.turns) {
		e.scramble = nil
		if p.onDone != nil {
			p.onDone()
		}
		return e.idleStatus(), nil
	}

	t := p.turns[p.next]
	p.next++
	p.wait = 0
	if err := e.rotatePlane(t, true, SourceScramble, nil); err != nil {
		e.scramble = nil
		return Done, err
	}
	return Continue, nil
}
