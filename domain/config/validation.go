package config

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// ValidationError collects the individual problems found in a scenario.
type ValidationError struct {
	Problems []string
}

// Error returns the joined problem list.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(e.Problems, "; "))
}

// Unwrap lets callers match against ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks a scenario for structural problems. It returns nil or a
// *ValidationError listing every problem found.
func (s *Scenario) Validate() error {
	var problems []string

	w, h := s.Grid.Width, s.Grid.Height
	if w <= 0 || h <= 0 {
		problems = append(problems, fmt.Sprintf("grid dimensions must be positive, got %dx%d", w, h))
	}

	inBounds := func(c grid.Coord) bool {
		return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
	}

	obstacleSet := make(map[grid.Coord]struct{}, len(s.StaticObstacles))
	if w > 0 && h > 0 {
		for _, c := range s.StaticObstacles {
			if !inBounds(c) {
				problems = append(problems, fmt.Sprintf("static obstacle %s out of bounds", c))
				continue
			}
			obstacleSet[c] = struct{}{}
		}
	}

	starts := s.Agents.Starts
	if len(starts) == 0 {
		count := s.Agents.Count
		if count <= 0 {
			count = 1
		}
		starts = DefaultStarts(w, h, count)
	}
	if s.Agents.Count > 0 && len(s.Agents.Starts) > 0 && s.Agents.Count != len(s.Agents.Starts) {
		problems = append(problems, fmt.Sprintf("agent count %d does not match %d start positions",
			s.Agents.Count, len(s.Agents.Starts)))
	}
	seen := make(map[grid.Coord]struct{}, len(starts))
	if w > 0 && h > 0 {
		for i, c := range starts {
			if !inBounds(c) {
				problems = append(problems, fmt.Sprintf("agent %d start %s out of bounds", i, c))
				continue
			}
			if _, dup := seen[c]; dup {
				problems = append(problems, fmt.Sprintf("agent start %s used twice", c))
			}
			seen[c] = struct{}{}
			if _, blocked := obstacleSet[c]; blocked {
				problems = append(problems, fmt.Sprintf("agent %d start %s collides with an obstacle", i, c))
			}
		}
	}

	if s.DynamicObstacles.Count < 0 {
		problems = append(problems, fmt.Sprintf("dynamic obstacle count must not be negative, got %d",
			s.DynamicObstacles.Count))
	}
	if w > 0 && h > 0 {
		free := w*h - len(obstacleSet) - len(seen)
		if s.DynamicObstacles.Count > free {
			problems = append(problems, fmt.Sprintf("%d dynamic obstacles exceed %d available cells",
				s.DynamicObstacles.Count, free))
		}
	}

	if s.MaxTicks < 0 {
		problems = append(problems, fmt.Sprintf("max_ticks must not be negative, got %d", s.MaxTicks))
	}

	switch s.Storage.Backend {
	case "", "memory", "sqlite", "badger":
	default:
		problems = append(problems, fmt.Sprintf("unknown storage backend %q", s.Storage.Backend))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ResolvedStarts returns the effective agent start positions, applying the
// corner defaults when no explicit starts are configured.
func (s *Scenario) ResolvedStarts() []grid.Coord {
	if len(s.Agents.Starts) > 0 {
		out := make([]grid.Coord, len(s.Agents.Starts))
		copy(out, s.Agents.Starts)
		return out
	}
	count := s.Agents.Count
	if count <= 0 {
		count = 1
	}
	return DefaultStarts(s.Grid.Width, s.Grid.Height, count)
}
