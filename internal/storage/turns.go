package storage

import (
	"database/sql"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// TurnRecord is one reconciled turn logged during a solve.
type TurnRecord struct {
	TurnID    int64
	SolveID   string
	TurnIndex int
	TsMs      int64 // since solve start
	Pivot     int
	Axis      mgl64.Vec3
	Quarters  int
	Target    int // other facelet of a color swap, -1 for slice turns
	Source    string
}

// TurnRepository provides access to the per-solve turn log.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

// Create appends a turn and returns its ID.
func (r *TurnRepository) Create(t TurnRecord) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO turns (solve_id, turn_index, ts_ms, pivot, axis_x, axis_y, axis_z, quarters, target, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.SolveID, t.TurnIndex, t.TsMs, t.Pivot, t.Axis.X(), t.Axis.Y(), t.Axis.Z(), t.Quarters, t.Target, t.Source)
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}
	return id, nil
}

// CreateBatch appends several turns in a single transaction.
func (r *TurnRepository) CreateBatch(turns []TurnRecord) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, t := range turns {
			_, err := tx.Exec(`
				INSERT INTO turns (solve_id, turn_index, ts_ms, pivot, axis_x, axis_y, axis_z, quarters, target, source)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, t.SolveID, t.TurnIndex, t.TsMs, t.Pivot, t.Axis.X(), t.Axis.Y(), t.Axis.Z(), t.Quarters, t.Target, t.Source)
			if err != nil {
				return fmt.Errorf("failed to create turn %d: %w", t.TurnIndex, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves all turns of a solve in order.
func (r *TurnRepository) GetBySolve(solveID string) ([]TurnRecord, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, solve_id, turn_index, ts_ms, pivot, axis_x, axis_y, axis_z, quarters, target, source
		FROM turns
		WHERE solve_id = ?
		ORDER BY turn_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		var x, y, z float64
		if err := rows.Scan(&t.TurnID, &t.SolveID, &t.TurnIndex, &t.TsMs, &t.Pivot, &x, &y, &z, &t.Quarters, &t.Target, &t.Source); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Axis = mgl64.Vec3{x, y, z}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Count returns the number of turns logged for a solve.
func (r *TurnRepository) Count(solveID string) (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE solve_id = ?", solveID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}
