// Package cli implements the command-line interface for rubiks.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/config"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/input"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/logger"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/rotation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/session"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	order      int
	player     string
	verbose    bool

	cfg *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "rubiks",
	Short: "Rubik's cube of any order in the terminal",
	Long: `rubiks - An N×N×N Rubik's cube with scrambles, a solve timer and a leaderboard.

Play in the terminal with the keyboard, or connect a GoCube smart cube over
Bluetooth and mirror its turns. The puzzle of every order is saved after each
turn and restored on the next start.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ./rubiks.yaml or ~/.rubiks/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.rubiks/rubiks.db)")
	rootCmd.PersistentFlags().IntVarP(&order, "order", "n", 0, "Puzzle order (default: last used, then config)")
	rootCmd.PersistentFlags().StringVar(&player, "player", "", "Player name recorded on the leaderboard")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads the configuration, applies flags over it and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Storage.DBPath = dbPath
	}
	if order != 0 {
		c.Puzzle.Order = order
	}
	if player != "" {
		c.Player.Name = player
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	// The terminal UI owns the screen; its logs only go to the file.
	console := !fullScreen(cmd)
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, console); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.Int("order", cfg.Puzzle.Order),
		zap.String("db", cfg.Storage.DBPath))
	return nil
}

func fullScreen(cmd *cobra.Command) bool {
	return cmd == playCmd || cmd == connectCmd
}

func openDB() (*storage.DB, error) {
	var (
		db  *storage.DB
		err error
	)
	if cfg.Storage.DBPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(cfg.Storage.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func openStateFile() (*session.StateFile, error) {
	path := cfg.Storage.StatePath
	if path == "" {
		p, err := session.DefaultStatePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	sf, err := session.NewStateFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// openGame opens the database, the state file and a game configured from
// cfg. The returned close function persists the puzzle and releases both.
func openGame(opts ...session.Option) (*session.Game, func(), error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	sf, err := openStateFile()
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	base := []session.Option{
		session.WithOrder(cfg.Puzzle.Order),
		session.WithSize(cfg.Puzzle.Size),
		session.WithPlayer(cfg.Player.Name),
		session.WithScrambleTurns(cfg.Animation.ScrambleTurns),
		session.WithLogger(logger.Named("session")),
		session.WithStateFile(sf),
		session.WithEngineOptions(
			rotation.WithDragThreshold(cfg.Interaction.DragThreshold),
			rotation.WithSnapDuration(cfg.Animation.SnapDuration),
			rotation.WithTurnFrames(cfg.Animation.TurnFrames),
			rotation.WithScrambleDelay(cfg.Animation.ScrambleDelay),
		),
		session.WithInputOptions(input.WithSensitivity(cfg.Interaction.Sensitivity)),
	}
	if order == 0 {
		base = append(base, session.WithLastOrder())
	}

	g, err := session.New(db, append(base, opts...)...)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to open game: %w", err)
	}
	closeFn := func() {
		if err := g.Close(); err != nil {
			logger.Warn("failed to save puzzle", zap.Error(err))
		}
		db.Close()
	}
	return g, closeFn, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
