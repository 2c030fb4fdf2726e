// Package memory provides in-memory implementations of the run storage
// interfaces, suitable for tests and one-shot CLI sessions.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/felixgeelhaar/explore-go/domain/run"
)

// RunStore is an in-memory implementation of run.Store.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*run.Run
}

// NewRunStore creates an empty in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]*run.Run),
	}
}

// clone deep-copies a run through JSON so callers cannot mutate stored state.
func clone(r *run.Run) *run.Run {
	data, err := json.Marshal(r)
	if err != nil {
		cp := *r
		return &cp
	}
	var out run.Run
	if err := json.Unmarshal(data, &out); err != nil {
		cp := *r
		return &cp
	}
	return &out
}

// Save persists a new run.
func (s *RunStore) Save(ctx context.Context, r *run.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.ID == "" {
		return run.ErrInvalidRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[r.ID]; exists {
		return run.ErrRunExists
	}
	s.runs[r.ID] = clone(r)
	return nil
}

// Get retrieves a run by ID.
func (s *RunStore) Get(ctx context.Context, id string) (*run.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, run.ErrInvalidRunID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return nil, run.ErrRunNotFound
	}
	return clone(r), nil
}

// Update updates an existing run.
func (s *RunStore) Update(ctx context.Context, r *run.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.ID == "" {
		return run.ErrInvalidRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.ID]; !ok {
		return run.ErrRunNotFound
	}
	s.runs[r.ID] = clone(r)
	return nil
}

// Delete removes a run by ID.
func (s *RunStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return run.ErrInvalidRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return run.ErrRunNotFound
	}
	delete(s.runs, id)
	return nil
}

// List returns runs matching the filter, newest first.
func (s *RunStore) List(ctx context.Context, filter run.ListFilter) ([]*run.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var matched []*run.Run
	for _, r := range s.runs {
		if matches(r, filter) {
			matched = append(matched, clone(r))
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.After(matched[j].StartTime)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matches(r *run.Run, filter run.ListFilter) bool {
	if len(filter.Status) > 0 {
		found := false
		for _, st := range filter.Status {
			if r.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !filter.FromTime.IsZero() && r.StartTime.Before(filter.FromTime) {
		return false
	}
	if !filter.ToTime.IsZero() && r.StartTime.After(filter.ToTime) {
		return false
	}
	if filter.ScenarioPattern != "" && !strings.Contains(r.Scenario, filter.ScenarioPattern) {
		return false
	}
	return true
}
