package export

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"splatpath/planner"
)

// ErrPlanNotFound is returned when a plan id is not in the store.
var ErrPlanNotFound = errors.New("export: plan not found")

// PlanRecord is one stored plan.
type PlanRecord struct {
	ID         string
	Label      string
	Mode       string
	FrameCount int
	Frames     planner.Path
	CreatedAt  time.Time
}

// Store keeps a history of generated plans in sqlite.
type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the plan history database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("export: open store: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			label TEXT,
			mode TEXT,
			frame_count INTEGER,
			frames TEXT,
			created_at INTEGER
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("export: init schema: %w", err)
	}

	return &Store{db}, nil
}

// RecordPlan inserts a plan. CreatedAt defaults to now when unset.
func (s *Store) RecordPlan(rec PlanRecord) error {
	frames, err := json.Marshal(rec.Frames)
	if err != nil {
		return fmt.Errorf("export: marshal frames: %w", err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.Exec(
		`INSERT INTO plans (id, label, mode, frame_count, frames, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Label, rec.Mode, len(rec.Frames), string(frames), created.Unix(),
	)
	if err != nil {
		return fmt.Errorf("export: record plan: %w", err)
	}
	return nil
}

// GetPlan fetches one plan with its frames.
func (s *Store) GetPlan(id string) (PlanRecord, error) {
	row := s.QueryRow(
		`SELECT id, label, mode, frame_count, frames, created_at FROM plans WHERE id = ?`, id)

	var rec PlanRecord
	var frames string
	var created int64
	err := row.Scan(&rec.ID, &rec.Label, &rec.Mode, &rec.FrameCount, &frames, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return PlanRecord{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return PlanRecord{}, fmt.Errorf("export: get plan: %w", err)
	}
	if err := json.Unmarshal([]byte(frames), &rec.Frames); err != nil {
		return PlanRecord{}, fmt.Errorf("export: decode frames: %w", err)
	}
	rec.CreatedAt = time.Unix(created, 0)
	return rec, nil
}

// ListPlans returns plan metadata (no frames), newest first.
func (s *Store) ListPlans() ([]PlanRecord, error) {
	rows, err := s.Query(
		`SELECT id, label, mode, frame_count, created_at FROM plans ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("export: list plans: %w", err)
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var created int64
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Mode, &rec.FrameCount, &created); err != nil {
			return nil, fmt.Errorf("export: scan plan: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}
