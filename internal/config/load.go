package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid value")

// Load loads configuration with priority: defaults < file. An empty path
// searches the standard locations; a missing file there is not an error.
// Command-line overrides are applied by the caller afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the puzzle cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Puzzle.Order < 2 || c.Puzzle.Order > 20:
		return fmt.Errorf("%w: puzzle.order %d", ErrInvalid, c.Puzzle.Order)
	case c.Puzzle.Size <= 0:
		return fmt.Errorf("%w: puzzle.size %v", ErrInvalid, c.Puzzle.Size)
	case c.Animation.TurnFrames < 1:
		return fmt.Errorf("%w: animation.turn_frames %d", ErrInvalid, c.Animation.TurnFrames)
	case c.Animation.FrameInterval <= 0:
		return fmt.Errorf("%w: animation.frame_interval %v", ErrInvalid, c.Animation.FrameInterval)
	case c.Animation.ScrambleTurns < 0:
		return fmt.Errorf("%w: animation.scramble_turns %d", ErrInvalid, c.Animation.ScrambleTurns)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./rubiks.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Rubiks")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Rubiks")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "rubiks")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "rubiks")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
