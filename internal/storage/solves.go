package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Solve modes.
const (
	ModeScramble = "scramble" // geometric scramble, solvable by turning
	ModeShuffle  = "shuffle"  // color-only shuffle
)

// timeFormat is fixed-width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Solve represents one timed attempt.
type Solve struct {
	SolveID    string
	Order      int
	Mode       string
	Player     string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	MoveCount  int
}

// Duration returns the solve time, or zero if unfinished.
func (s Solve) Duration() time.Duration {
	if s.DurationMs == nil {
		return 0
	}
	return time.Duration(*s.DurationMs) * time.Millisecond
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create starts a solve and returns its ID.
func (r *SolveRepository) Create(order int, mode, player string, startedAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, puzzle_order, mode, player, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, order, mode, player, startedAt.UTC().Format(timeFormat))
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}
	return id, nil
}

// Finish records the end of a solve.
func (r *SolveRepository) Finish(solveID string, endedAt time.Time, duration time.Duration, moveCount int) error {
	res, err := r.db.Exec(`
		UPDATE solves
		SET ended_at = ?, duration_ms = ?, move_count = ?
		WHERE solve_id = ?
	`, endedAt.UTC().Format(timeFormat), duration.Milliseconds(), moveCount, solveID)
	if err != nil {
		return fmt.Errorf("failed to finish solve: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("failed to finish solve %s: %w", solveID, sql.ErrNoRows)
	}
	return nil
}

const solveColumns = `solve_id, puzzle_order, mode, player, started_at, ended_at, duration_ms, move_count`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (Solve, error) {
	var (
		s       Solve
		started string
		ended   sql.NullString
		dur     sql.NullInt64
	)
	if err := row.Scan(&s.SolveID, &s.Order, &s.Mode, &s.Player, &started, &ended, &dur, &s.MoveCount); err != nil {
		return Solve{}, err
	}
	s.StartedAt, _ = time.Parse(timeFormat, started)
	if ended.Valid {
		t, _ := time.Parse(timeFormat, ended.String)
		s.EndedAt = &t
	}
	if dur.Valid {
		ms := dur.Int64
		s.DurationMs = &ms
	}
	return s, nil
}

// Get retrieves a solve by ID. It returns nil if there is none.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow("SELECT "+solveColumns+" FROM solves WHERE solve_id = ?", solveID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return &s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	return r.query("failed to list solves", `
		SELECT `+solveColumns+` FROM solves
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
}

// Leaderboard returns the fastest finished solves for an order and mode.
// Ties go to the earlier solve.
func (r *SolveRepository) Leaderboard(order int, mode string, limit int) ([]Solve, error) {
	return r.query("failed to load leaderboard", `
		SELECT `+solveColumns+` FROM solves
		WHERE puzzle_order = ? AND mode = ? AND duration_ms IS NOT NULL
		ORDER BY duration_ms ASC, started_at ASC
		LIMIT ?
	`, order, mode, limit)
}

// Recent returns the latest finished solves for an order and mode, newest
// first.
func (r *SolveRepository) Recent(order int, mode string, limit int) ([]Solve, error) {
	return r.query("failed to list recent solves", `
		SELECT `+solveColumns+` FROM solves
		WHERE puzzle_order = ? AND mode = ? AND duration_ms IS NOT NULL
		ORDER BY started_at DESC
		LIMIT ?
	`, order, mode, limit)
}

func (r *SolveRepository) query(msg, q string, args ...any) ([]Solve, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return solves, nil
}

// Delete deletes a solve and its turns.
func (r *SolveRepository) Delete(solveID string) error {
	if _, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID); err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}
