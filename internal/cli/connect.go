package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/logger"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Play with a GoCube smart cube",
	Long: `Scan for a GoCube, connect to it and start the terminal puzzle.

Turns of the physical cube are mirrored on the 3×3×3 puzzle and its
gyroscope drives the puzzle orientation. The keyboard shortcuts of 'play'
work as well; 'c' recalibrates the orientation.`,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	if cfg.Puzzle.Order != 3 && order != 0 {
		return fmt.Errorf("smart cubes need order 3, got %d", cfg.Puzzle.Order)
	}
	// Physical turns only map onto a 3×3×3.
	order = 3
	cfg.Puzzle.Order = 3

	sf, err := openStateFile()
	if err != nil {
		return err
	}

	// Scan before the TUI takes over the screen.
	client, results, err := scanForCube()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No GoCube devices found.")
		fmt.Println()
		fmt.Println("To fix this:")
		fmt.Println("  1. Rotate your cube to wake it up")
		fmt.Println("  2. Make sure it's not connected to your phone")
		fmt.Println("  3. Run this command again")
		return nil
	}

	target := pickDevice(results, sf.State().LastDeviceAddr)
	fmt.Printf("Connecting to %s...\n", target.Name)
	if err := client.Connect(context.Background(), target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer client.Disconnect()

	if err := sf.SetLastDevice(target.Name, target.Address.String()); err != nil {
		logger.Warn("failed to save state file", zap.Error(err))
	}
	return runProgram(client)
}
