// Package run provides the record of an exploration session and the domain
// interfaces for its persistence.
package run

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// Status represents the lifecycle status of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"   // Session in progress
	StatusCompleted Status = "completed" // Full coverage reached
	StatusStalled   Status = "stalled"   // Remaining cells unreachable
	StatusAborted   Status = "aborted"   // Stopped before a terminal outcome
)

// Run records a single exploration session. It is the aggregate persisted by
// the stores; the live session itself is owned by the application layer.
type Run struct {
	ID               string         `json:"id"`
	Scenario         string         `json:"scenario"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	AgentCount       int            `json:"agent_count"`
	DynamicObstacles int            `json:"dynamic_obstacles"`
	Seed             int64          `json:"seed"`
	Ticks            int            `json:"ticks"`
	Moves            int            `json:"moves"`
	Waits            int            `json:"waits"`
	Coverage         float64        `json:"coverage"`
	FinalPositions   []grid.Coord   `json:"final_positions,omitempty"`
	Histories        [][]grid.Coord `json:"histories,omitempty"`
	Status           Status         `json:"status"`
	StartTime        time.Time      `json:"start_time"`
	EndTime          time.Time      `json:"end_time,omitempty"`
}

// New creates a run record for a starting session.
func New(scenario string, width, height, agents, dynamicObstacles int, seed int64) *Run {
	return &Run{
		ID:               uuid.New().String(),
		Scenario:         scenario,
		Width:            width,
		Height:           height,
		AgentCount:       agents,
		DynamicObstacles: dynamicObstacles,
		Seed:             seed,
		Status:           StatusRunning,
		StartTime:        time.Now(),
	}
}

// Complete marks the run as fully covered.
func (r *Run) Complete() {
	r.Status = StatusCompleted
	r.EndTime = time.Now()
}

// Stall marks the run as stalled with unreachable cells remaining.
func (r *Run) Stall() {
	r.Status = StatusStalled
	r.EndTime = time.Now()
}

// Abort marks the run as stopped before reaching a terminal outcome.
func (r *Run) Abort() {
	r.Status = StatusAborted
	r.EndTime = time.Now()
}

// IsTerminal returns true once the run has a final status.
func (r *Run) IsTerminal() bool {
	return r.Status != StatusRunning
}

// Duration returns the wall-clock duration of the run.
func (r *Run) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
