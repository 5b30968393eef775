// Package analysis computes statistics over recorded solves and their
// turn logs.
package analysis

import (
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

// DefaultPauseThresholdMs is the gap between turns counted as a pause.
const DefaultPauseThresholdMs = 1500

// SolveSummary contains statistics for a single solve.
type SolveSummary struct {
	SolveID            string         `json:"solve_id"`
	Order              int            `json:"order"`
	Mode               string         `json:"mode"`
	Player             string         `json:"player"`
	DurationMs         int64          `json:"duration_ms"`
	TotalTurns         int            `json:"total_turns"`
	TPSOverall         float64        `json:"tps_overall"`
	LongestPauseMs     int64          `json:"longest_pause_ms"`
	PauseCountOver1500 int            `json:"pause_count_over_1500ms"`
	AvgTurnGapMs       float64        `json:"avg_turn_gap_ms"`
	QuarterTurns       int            `json:"quarter_turns"`
	Sources            map[string]int `json:"sources,omitempty"`
}

// PauseInfo represents a pause during solving.
type PauseInfo struct {
	AfterTurnIndex int   `json:"after_turn_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Summarize builds the summary of a solve from its turn log. An unfinished
// solve is measured up to its last turn.
func Summarize(s storage.Solve, turns []storage.TurnRecord) SolveSummary {
	sum := SolveSummary{
		SolveID:            s.SolveID,
		Order:              s.Order,
		Mode:               s.Mode,
		Player:             s.Player,
		TotalTurns:         len(turns),
		LongestPauseMs:     FindLongestPause(turns),
		PauseCountOver1500: CountPausesOver(turns, DefaultPauseThresholdMs),
		AvgTurnGapMs:       CalculateAvgTurnGap(turns),
		Sources:            make(map[string]int),
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	} else if len(turns) > 0 {
		sum.DurationMs = turns[len(turns)-1].TsMs
	}
	if s.MoveCount > sum.TotalTurns {
		sum.TotalTurns = s.MoveCount
	}
	sum.TPSOverall = CalculateTPS(sum.TotalTurns, sum.DurationMs)

	for _, t := range turns {
		sum.QuarterTurns += abs(t.Quarters)
		sum.Sources[t.Source]++
	}
	return sum
}

// AnalyzePauses finds all gaps between turns of at least thresholdMs.
func AnalyzePauses(turns []storage.TurnRecord, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterTurnIndex: i - 1,
				DurationMs:     gap,
				TsMs:           turns[i-1].TsMs,
			})
		}
	}
	return pauses
}

// CalculateTPS calculates turns per second.
func CalculateTPS(turns int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(turns) / (float64(durationMs) / 1000.0)
}

// CalculateAvgTurnGap calculates the average time between turns.
func CalculateAvgTurnGap(turns []storage.TurnRecord) float64 {
	if len(turns) < 2 {
		return 0
	}
	total := turns[len(turns)-1].TsMs - turns[0].TsMs
	return float64(total) / float64(len(turns)-1)
}

// FindLongestPause finds the longest gap between turns.
func FindLongestPause(turns []storage.TurnRecord) int64 {
	var longest int64
	for i := 1; i < len(turns); i++ {
		if gap := turns[i].TsMs - turns[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps longer than thresholdMs.
func CountPausesOver(turns []storage.TurnRecord, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(turns); i++ {
		if turns[i].TsMs-turns[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
