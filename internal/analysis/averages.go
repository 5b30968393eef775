package analysis

import (
	"slices"
	"time"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

// Averages are the usual speedcubing statistics over finished solves.
type Averages struct {
	Count int
	Best  time.Duration
	Worst time.Duration
	Mean  time.Duration
	Ao5   time.Duration // zero with fewer than 5 solves
	Ao12  time.Duration // zero with fewer than 12 solves
}

// Compute derives averages from finished solves given newest first.
// Unfinished solves are ignored.
func Compute(recent []storage.Solve) Averages {
	var times []time.Duration
	for _, s := range recent {
		if s.DurationMs != nil {
			times = append(times, s.Duration())
		}
	}

	a := Averages{Count: len(times)}
	if len(times) == 0 {
		return a
	}
	a.Best = slices.Min(times)
	a.Worst = slices.Max(times)
	var total time.Duration
	for _, t := range times {
		total += t
	}
	a.Mean = total / time.Duration(len(times))
	a.Ao5, _ = AverageOf(times, 5)
	a.Ao12, _ = AverageOf(times, 12)
	return a
}

// AverageOf returns the trimmed mean of the first n times: the best and
// the worst are dropped and the rest averaged. It reports false when there
// are fewer than n times or n is below 3.
func AverageOf(times []time.Duration, n int) (time.Duration, bool) {
	if n < 3 || len(times) < n {
		return 0, false
	}
	window := slices.Clone(times[:n])
	slices.Sort(window)
	var total time.Duration
	for _, t := range window[1 : n-1] {
		total += t
	}
	return total / time.Duration(n-2), true
}
