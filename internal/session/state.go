package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppState is what survives between runs besides the database.
type AppState struct {
	Order          int    `json:"order,omitempty"`
	ActiveSolveID  string `json:"active_solve_id,omitempty"`
	ActiveMode     string `json:"active_mode,omitempty"`
	ArmedMode      string `json:"armed_mode,omitempty"`
	ArmedOrder     int    `json:"armed_order,omitempty"`
	LastDeviceName string `json:"last_device_name,omitempty"`
	LastDeviceAddr string `json:"last_device_addr,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".rubiks", "state.json"), nil
}

// NewStateFile loads the state file at path; a missing file is empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sf, nil
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Path returns the state file location.
func (sf *StateFile) Path() string {
	return sf.path
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetOrder records the last played order.
func (sf *StateFile) SetOrder(order int) error {
	sf.state.Order = order
	return sf.Save()
}

// SetArmed records a scrambled puzzle waiting for its first turn.
func (sf *StateFile) SetArmed(mode string, order int) error {
	sf.state.ArmedMode = mode
	sf.state.ArmedOrder = order
	return sf.Save()
}

// SetActiveSolve records the running attempt, which replaces any armed one.
func (sf *StateFile) SetActiveSolve(solveID, mode string) error {
	sf.state.ActiveSolveID = solveID
	sf.state.ActiveMode = mode
	sf.state.ArmedMode = ""
	sf.state.ArmedOrder = 0
	return sf.Save()
}

// ClearActiveSolve clears the running or armed attempt.
func (sf *StateFile) ClearActiveSolve() error {
	sf.state.ActiveSolveID = ""
	sf.state.ActiveMode = ""
	sf.state.ArmedMode = ""
	sf.state.ArmedOrder = 0
	return sf.Save()
}

// SetLastDevice remembers the last connected smart cube.
func (sf *StateFile) SetLastDevice(name, addr string) error {
	sf.state.LastDeviceName = name
	sf.state.LastDeviceAddr = addr
	return sf.Save()
}
