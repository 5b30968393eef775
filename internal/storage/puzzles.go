package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PuzzleRepository stores one serialized puzzle per order.
type PuzzleRepository struct {
	db *DB
}

// NewPuzzleRepository creates a new puzzle repository.
func NewPuzzleRepository(db *DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

// Save replaces the stored blob for order.
func (r *PuzzleRepository) Save(order int, blob []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO puzzles (puzzle_order, facelets_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (puzzle_order) DO UPDATE SET
			facelets_json = excluded.facelets_json,
			updated_at = excluded.updated_at
	`, order, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save puzzle: %w", err)
	}
	return nil
}

// Load returns the stored blob for order, or ok false if there is none.
func (r *PuzzleRepository) Load(order int) (blob []byte, ok bool, err error) {
	var s string
	err = r.db.QueryRow("SELECT facelets_json FROM puzzles WHERE puzzle_order = ?", order).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load puzzle: %w", err)
	}
	return []byte(s), true, nil
}

// Delete forgets the stored blob for order.
func (r *PuzzleRepository) Delete(order int) error {
	if _, err := r.db.Exec("DELETE FROM puzzles WHERE puzzle_order = ?", order); err != nil {
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}
	return nil
}
