package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/analysis"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

var (
	boardMode  string
	boardLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the fastest solves",
	Long:  `Display the fastest finished solves for a puzzle order and scramble mode.`,
	RunE:  runLeaderboard,
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	leaderboardCmd.Flags().StringVar(&boardMode, "mode", storage.ModeScramble, "Scramble mode (scramble or shuffle)")
	leaderboardCmd.Flags().IntVar(&boardLimit, "limit", 10, "Maximum number of solves to display")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	if boardMode != storage.ModeScramble && boardMode != storage.ModeShuffle {
		return fmt.Errorf("unknown mode %q (want %s or %s)", boardMode, storage.ModeScramble, storage.ModeShuffle)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	n := cfg.Puzzle.Order
	if order == 0 {
		if sf, err := openStateFile(); err == nil && sf.State().Order != 0 {
			n = sf.State().Order
		}
	}

	repo := storage.NewSolveRepository(db)
	solves, err := repo.Leaderboard(n, boardMode, boardLimit)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if len(solves) == 0 {
		fmt.Printf("No %d×%d×%d %s solves recorded yet\n", n, n, n, boardMode)
		fmt.Println("Start one with: rubiks play")
		return nil
	}

	fmt.Printf("Leaderboard %d×%d×%d (%s):\n", n, n, n, boardMode)
	fmt.Println()
	fmt.Printf("%-4s  %-16s  %-10s  %-6s  %-6s  %s\n", "#", "Player", "Time", "Moves", "TPS", "Date")
	fmt.Println("----  ----------------  ----------  ------  ------  -------------------")

	for i, s := range solves {
		tps := "-"
		if d := s.Duration(); d > 0 {
			tps = fmt.Sprintf("%.2f", float64(s.MoveCount)/d.Seconds())
		}
		name := s.Player
		if len(name) > 16 {
			name = name[:13] + "..."
		}
		fmt.Printf("%-4d  %-16s  %-10s  %-6d  %-6s  %s\n",
			i+1,
			name,
			formatDuration(s.Duration()),
			s.MoveCount,
			tps,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}

	recent, err := repo.Recent(n, boardMode, 12)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(formatAverages(analysis.Compute(recent)))
	return nil
}

func formatAverages(a analysis.Averages) string {
	line := fmt.Sprintf("Last %d: best %s  mean %s", a.Count, formatDuration(a.Best), formatDuration(a.Mean))
	if a.Ao5 > 0 {
		line += "  ao5 " + formatDuration(a.Ao5)
	}
	if a.Ao12 > 0 {
		line += "  ao12 " + formatDuration(a.Ao12)
	}
	return line
}
