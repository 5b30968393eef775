// Package config handles configuration loading and management.
package config

import "time"

// Config holds all settings.
type Config struct {
	Puzzle      PuzzleConfig      `yaml:"puzzle"`
	Interaction InteractionConfig `yaml:"interaction"`
	Animation   AnimationConfig   `yaml:"animation"`
	Storage     StorageConfig     `yaml:"storage"`
	Player      PlayerConfig      `yaml:"player"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PuzzleConfig holds the puzzle geometry.
type PuzzleConfig struct {
	Order int     `yaml:"order"`
	Size  float64 `yaml:"size"` // facelet edge length
}

// InteractionConfig holds pointer handling settings.
type InteractionConfig struct {
	DragThreshold float64 `yaml:"drag_threshold"` // pixels before a drag picks its axis
	Sensitivity   float64 `yaml:"sensitivity"`    // whole-puzzle radians per pixel
}

// AnimationConfig holds timing settings.
type AnimationConfig struct {
	SnapDuration  time.Duration `yaml:"snap_duration"`
	TurnFrames    int           `yaml:"turn_frames"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	ScrambleTurns int           `yaml:"scramble_turns"`
	ScrambleDelay time.Duration `yaml:"scramble_delay"`
}

// StorageConfig holds file locations. Empty paths use the defaults.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	StatePath string `yaml:"state_path"`
}

// PlayerConfig holds the leaderboard identity.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Puzzle: PuzzleConfig{
			Order: 3,
			Size:  1.0,
		},
		Interaction: InteractionConfig{
			DragThreshold: 5,
			Sensitivity:   0.01,
		},
		Animation: AnimationConfig{
			SnapDuration:  500 * time.Millisecond,
			TurnFrames:    30,
			FrameInterval: 16 * time.Millisecond,
			ScrambleTurns: 25,
			ScrambleDelay: 80 * time.Millisecond,
		},
		Player: PlayerConfig{
			Name: "player",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
