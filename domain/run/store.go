package run

import (
	"context"
	"encoding/json"
	"time"
)

// Store defines the interface for run persistence.
// Implementations may be in-memory, SQLite, or any other backend.
type Store interface {
	// Save persists a new run.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*Run, error)

	// Update updates an existing run.
	Update(ctx context.Context, run *Run) error

	// Delete removes a run by ID.
	Delete(ctx context.Context, id string) error

	// List returns runs matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Run, error)
}

// ListFilter specifies criteria for listing runs.
type ListFilter struct {
	// Status filters by run status (empty means all).
	Status []Status

	// FromTime filters runs started after this time.
	FromTime time.Time

	// ToTime filters runs started before this time.
	ToTime time.Time

	// ScenarioPattern filters by scenario name (substring match).
	ScenarioPattern string

	// Limit is the maximum number of runs to return (0 = no limit).
	Limit int

	// Offset is the number of runs to skip for pagination.
	Offset int
}

// Snapshot is one persisted grid view of a run, keyed by tick, for replay.
// State holds the renderer-facing view serialized by the caller; the store
// does not interpret it.
type Snapshot struct {
	RunID     string          `json:"run_id"`
	Tick      int             `json:"tick"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
}

// SnapshotStore defines the interface for per-tick snapshot persistence.
type SnapshotStore interface {
	// Append persists a snapshot. Ticks for a run must be appended in order.
	Append(ctx context.Context, snap Snapshot) error

	// List returns all snapshots for a run in tick order.
	List(ctx context.Context, runID string) ([]Snapshot, error)

	// DeleteRun removes all snapshots for a run.
	DeleteRun(ctx context.Context, runID string) error
}
