package rotation

import (
	"math"
	"time"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// SnapQuarters returns the quarter-turn count an accumulated angle settles
// on. The remainder past the last boundary snaps forward when it is at least
// half a quarter turn (ties go forward) and back otherwise; the sign of the
// angle is kept.
func SnapQuarters(angle float64) int {
	rem := math.Mod(angle, vecmath.QuarterTurn)
	q := int(math.Round((angle - rem) / vecmath.QuarterTurn))
	if math.Abs(rem) >= vecmath.QuarterTurn/2 {
		if angle > 0 {
			q++
		} else {
			q--
		}
	}
	return q
}

// SnapAngle is SnapQuarters expressed in radians.
func SnapAngle(angle float64) float64 {
	return float64(SnapQuarters(angle)) * vecmath.QuarterTurn
}

// advanceSnap moves the released slice toward its target at a quarter turn
// per snap duration, proportional to the real elapsed time.
func (e *Engine) advanceSnap(dt time.Duration) (Status, error) {
	t := e.turn
	speed := vecmath.QuarterTurn / e.cfg.snapDuration.Seconds()
	step := speed * dt.Seconds()
	remaining := t.Target - t.Accumulated

	if math.Abs(remaining) <= step {
		if err := e.complete(); err != nil {
			return Done, err
		}
		return e.idleStatus(), nil
	}
	e.applyDelta(math.Copysign(step, remaining))
	return Continue, nil
}

// advanceFrame moves an animated programmatic turn by one frame.
func (e *Engine) advanceFrame() (Status, error) {
	t := e.turn
	if t.framesLeft > 1 {
		e.applyDelta(t.frameStep)
		t.framesLeft--
		return Continue, nil
	}
	if err := e.complete(); err != nil {
		return Done, err
	}
	return e.idleStatus(), nil
}

func (e *Engine) idleStatus() Status {
	if e.scramble != nil || e.state != StateIdle {
		return Continue
	}
	return Done
}
