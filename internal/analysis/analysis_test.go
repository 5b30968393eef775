package analysis

import (
	"testing"
	"time"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

func finished(d time.Duration) storage.Solve {
	ms := d.Milliseconds()
	return storage.Solve{DurationMs: &ms}
}

func TestAverageOf(t *testing.T) {
	times := []time.Duration{
		10 * time.Second, 12 * time.Second, 8 * time.Second, 30 * time.Second, 11 * time.Second,
		5 * time.Second,
	}

	got, ok := AverageOf(times, 5)
	if !ok {
		t.Fatal("AverageOf(5) not ok")
	}
	// Drops 8s and 30s from the first five.
	if want := 11 * time.Second; got != want {
		t.Errorf("ao5 = %v, want %v", got, want)
	}

	if _, ok := AverageOf(times, 12); ok {
		t.Error("ao12 over 6 times should not be ok")
	}
	if _, ok := AverageOf(times, 2); ok {
		t.Error("n below 3 should not be ok")
	}
}

func TestCompute(t *testing.T) {
	recent := []storage.Solve{
		finished(20 * time.Second),
		{}, // abandoned
		finished(10 * time.Second),
		finished(30 * time.Second),
	}
	a := Compute(recent)
	if a.Count != 3 {
		t.Errorf("count = %d, want 3", a.Count)
	}
	if a.Best != 10*time.Second || a.Worst != 30*time.Second || a.Mean != 20*time.Second {
		t.Errorf("averages = %+v", a)
	}
	if a.Ao5 != 0 || a.Ao12 != 0 {
		t.Errorf("ao5/ao12 should be unset: %+v", a)
	}

	if empty := Compute(nil); empty.Count != 0 || empty.Best != 0 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestSummarize(t *testing.T) {
	ms := int64(6000)
	s := storage.Solve{SolveID: "s1", Order: 3, Mode: storage.ModeScramble, DurationMs: &ms, MoveCount: 4}
	turns := []storage.TurnRecord{
		{TsMs: 0, Quarters: 1, Source: "drag"},
		{TsMs: 500, Quarters: -2, Source: "plane"},
		{TsMs: 2500, Quarters: -1, Source: "plane"},
		{TsMs: 3000, Quarters: 1, Source: "drag"},
	}

	sum := Summarize(s, turns)
	if sum.TotalTurns != 4 || sum.DurationMs != 6000 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.TPSOverall < 0.66 || sum.TPSOverall > 0.67 {
		t.Errorf("tps = %v", sum.TPSOverall)
	}
	if sum.LongestPauseMs != 2000 || sum.PauseCountOver1500 != 1 {
		t.Errorf("pauses = %d, %d", sum.LongestPauseMs, sum.PauseCountOver1500)
	}
	if sum.AvgTurnGapMs != 1000 {
		t.Errorf("avg gap = %v", sum.AvgTurnGapMs)
	}
	if sum.QuarterTurns != 5 || sum.Sources["drag"] != 2 || sum.Sources["plane"] != 2 {
		t.Errorf("quarters %d sources %v", sum.QuarterTurns, sum.Sources)
	}

	pauses := AnalyzePauses(turns, 1500)
	if len(pauses) != 1 || pauses[0].AfterTurnIndex != 1 || pauses[0].DurationMs != 2000 {
		t.Errorf("pauses = %+v", pauses)
	}
}

func TestSummarizeUnfinished(t *testing.T) {
	turns := []storage.TurnRecord{{TsMs: 0}, {TsMs: 4000}}
	sum := Summarize(storage.Solve{SolveID: "s2"}, turns)
	if sum.DurationMs != 4000 || sum.TPSOverall != 0.5 {
		t.Errorf("summary = %+v", sum)
	}
}
