// Package obstacle provides the dynamic obstacle stepper: a local,
// best-effort random walk for each mobile obstacle, one cell per tick.
package obstacle

import (
	"fmt"
	"math/rand"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// Stepper owns the dynamic obstacles of a session and advances each one cell
// per tick. The randomized direction choice is driven by an injected
// generator so obstacle motion is reproducible under a fixed seed.
type Stepper struct {
	grid      *grid.Grid
	rng       *rand.Rand
	obstacles []grid.Coord
}

// NewStepper creates a stepper over the given grid and random source.
func NewStepper(g *grid.Grid, rng *rand.Rand) *Stepper {
	return &Stepper{grid: g, rng: rng}
}

// Place seeds count obstacles into randomly chosen cells whose current state
// is Unvisited. It fails when fewer such cells exist than requested.
func (s *Stepper) Place(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative obstacle count %d", grid.ErrInvalidCoordinate, count)
	}

	var candidates []grid.Coord
	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			c := grid.Coord{X: x, Y: y}
			if s.grid.At(c) == grid.Unvisited {
				candidates = append(candidates, c)
			}
		}
	}
	if count > len(candidates) {
		return fmt.Errorf("%w: %d dynamic obstacles requested, %d free cells available",
			grid.ErrCellOccupied, count, len(candidates))
	}

	for i := 0; i < count; i++ {
		pick := s.rng.Intn(len(candidates))
		c := candidates[pick]
		candidates[pick] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		if err := s.grid.PlaceDynamicObstacle(c); err != nil {
			return err
		}
		s.obstacles = append(s.obstacles, c)
	}
	return nil
}

// Step advances every obstacle by at most one cell. For each obstacle the
// vacated cell is restored to its logical terrain state, then the four
// cardinal directions are shuffled and the first candidate that is in
// bounds, not an obstacle, not an agent, and not another dynamic obstacle is
// taken. An obstacle with no candidate stays put. Degenerate oscillation is
// accepted behavior; the walk never plans globally.
func (s *Stepper) Step() {
	for i, current := range s.obstacles {
		s.grid.RemoveDynamicObstacle(current)

		dirs := grid.CardinalDirections()
		s.rng.Shuffle(len(dirs), func(a, b int) {
			dirs[a], dirs[b] = dirs[b], dirs[a]
		})

		next := current
		for _, d := range dirs {
			candidate := current.Add(d)
			if !s.grid.InBounds(candidate) {
				continue
			}
			if st := s.grid.At(candidate); st == grid.Obstacle ||
				st == grid.AgentPresent || st == grid.DynamicObstacle {
				continue
			}
			next = candidate
			break
		}

		// A boxed-in obstacle keeps its cell; re-marking is unconditional.
		if err := s.grid.PlaceDynamicObstacle(next); err != nil {
			next = current
			_ = s.grid.PlaceDynamicObstacle(next)
		}
		s.obstacles[i] = next
	}
}

// Positions returns a copy of the current obstacle positions.
func (s *Stepper) Positions() []grid.Coord {
	out := make([]grid.Coord, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Count returns the number of dynamic obstacles.
func (s *Stepper) Count() int { return len(s.obstacles) }
