package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/analysis"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/session"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

var (
	listLimit  int
	showLast   bool
	jsonOutput bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent solves",
	Long:  `Display a list of recent solve attempts with basic statistics.`,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a specific solve including:
- Solve metadata (order, mode, duration, turns, TPS)
- Pauses between turns
- Turn sources (drag, keyboard or smart cube, color swap)

Use --last to show the most recent solve.`,
	RunE: runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solves to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")
	historyShowCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(listLimit)
	if err != nil {
		return err
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Start a new solve with: rubiks play")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-5s  %-8s  %-10s  %-6s  %s\n", "ID", "Started", "Order", "Mode", "Duration", "Moves", "TPS")
	fmt.Println("------------------------------------  --------------------  -----  --------  ----------  ------  ------")

	for _, s := range solves {
		duration := "-"
		tps := "-"
		if s.DurationMs != nil {
			duration = formatDuration(s.Duration())
			if *s.DurationMs > 0 {
				tps = fmt.Sprintf("%.2f", analysis.CalculateTPS(s.MoveCount, *s.DurationMs))
			}
		}

		status := ""
		if s.EndedAt == nil {
			status = " (unfinished)"
		}

		fmt.Printf("%-36s  %-20s  %-5d  %-8s  %-10s  %-6d  %s%s\n",
			s.SolveID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Order,
			s.Mode,
			duration,
			s.MoveCount,
			tps,
			status,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	turnRepo := storage.NewTurnRepository(db)

	var solveID string
	if showLast {
		solves, err := solveRepo.List(1)
		if err != nil {
			return fmt.Errorf("failed to get latest solve: %w", err)
		}
		if len(solves) == 0 {
			return fmt.Errorf("no solves found")
		}
		solveID = solves[0].SolveID
	} else if len(args) > 0 {
		solveID = args[0]
	} else {
		return fmt.Errorf("please provide a solve ID or use --last")
	}

	solve, err := solveRepo.Get(solveID)
	if err != nil {
		return err
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", solveID)
	}
	turns, err := turnRepo.GetBySolve(solveID)
	if err != nil {
		return err
	}
	sum := analysis.Summarize(*solve, turns)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()
	fmt.Printf("ID:      %s\n", solve.SolveID)
	fmt.Printf("Player:  %s\n", solve.Player)
	fmt.Printf("Puzzle:  %d×%d×%d (%s)\n", solve.Order, solve.Order, solve.Order, solve.Mode)
	fmt.Printf("Started: %s\n", solve.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if solve.EndedAt != nil {
		fmt.Printf("Ended:   %s\n", solve.EndedAt.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Ended:   (unfinished)")
	}
	fmt.Println()

	fmt.Println("Statistics")
	fmt.Println("----------")
	fmt.Printf("Time:          %s\n", formatDuration(time.Duration(sum.DurationMs)*time.Millisecond))
	fmt.Printf("Turns:         %d (%d quarter turns)\n", sum.TotalTurns, sum.QuarterTurns)
	fmt.Printf("TPS:           %.2f\n", sum.TPSOverall)
	fmt.Printf("Avg turn gap:  %.0fms\n", sum.AvgTurnGapMs)
	fmt.Printf("Longest pause: %s\n", formatDuration(time.Duration(sum.LongestPauseMs)*time.Millisecond))
	fmt.Printf("Pauses > 1.5s: %d\n", sum.PauseCountOver1500)

	if len(sum.Sources) > 0 {
		fmt.Println()
		fmt.Println("Turn sources")
		fmt.Println("------------")
		for _, src := range []string{"drag", "plane", session.SourceSwap} {
			if n := sum.Sources[src]; n > 0 {
				fmt.Printf("  %-6s %d\n", src, n)
			}
		}
	}
	return nil
}
