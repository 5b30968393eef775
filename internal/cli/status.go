package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show saved state and cube information",
	Long:  `Display the database, the last used order, any attempt in progress and the last connected smart cube.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	sf, err := openStateFile()
	if err != nil {
		return err
	}
	state := sf.State()

	fmt.Println("Rubik's Status")
	fmt.Println("==============")
	fmt.Println()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	fmt.Printf("Database: %s\n", db.Path())
	fmt.Printf("State:    %s\n", sf.Path())

	solves, err := storage.NewSolveRepository(db).List(10000)
	if err == nil {
		finished := 0
		for _, s := range solves {
			if s.EndedAt != nil {
				finished++
			}
		}
		if len(solves) > 0 {
			fmt.Printf("Last solve: %s\n", solves[0].StartedAt.Local().Format(time.RFC3339))
		}
		fmt.Printf("Total solves: %d (%d finished)\n", len(solves), finished)
	}
	fmt.Println()

	n := state.Order
	if n == 0 {
		n = cfg.Puzzle.Order
	}
	fmt.Printf("Order: %d\n", n)
	if state.ActiveSolveID != "" {
		fmt.Printf("Active attempt: %s (%s)\n", state.ActiveSolveID, state.ActiveMode)
		fmt.Println("  (Use 'rubiks play' to continue or 'rubiks reset' to abandon it)")
	} else {
		fmt.Println("No active attempt")
	}
	fmt.Println()

	if state.LastDeviceAddr != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceAddr)
	} else {
		fmt.Println("No device history")
	}
	return nil
}
