package planner

import (
	"container/heap"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// FrontierExplorer finds a path from an agent's cell to a nearby unvisited
// cell using greedy best-first search over partial paths.
//
// The priority of a candidate is path length minus the candidate's count of
// unexplored neighbors, so short paths toward dense frontier regions are
// expanded first. The search returns as soon as any expansion reaches a
// member of the grid's unvisited set; it deliberately does not look for the
// globally nearest one.
type FrontierExplorer struct {
	grid *grid.Grid
}

// NewFrontierExplorer creates a frontier explorer over the given grid.
func NewFrontierExplorer(g *grid.Grid) *FrontierExplorer {
	return &FrontierExplorer{grid: g}
}

// FindPath returns a path from start (exclusive) to the first unvisited cell
// the priority order surfaces (inclusive), or nil if no unvisited cell is
// reachable under the current obstacle placement.
func (f *FrontierExplorer) FindPath(start grid.Coord) []grid.Coord {
	open := make(frontierQueue, 0)
	heap.Init(&open)
	heap.Push(&open, &frontierItem{Cell: start})

	// Local visited set: prevents search cycles only, distinct from the
	// grid's coverage partition.
	seen := map[grid.Coord]struct{}{start: {}}

	for open.Len() > 0 {
		current := heap.Pop(&open).(*frontierItem)

		for _, d := range grid.ExpansionOrder {
			neighbor := current.Cell.Add(d)
			if !f.grid.InBounds(neighbor) {
				continue
			}
			if s := f.grid.At(neighbor); s == grid.Obstacle || s == grid.DynamicObstacle {
				continue
			}
			if _, ok := seen[neighbor]; ok {
				continue
			}

			path := make([]grid.Coord, len(current.Path), len(current.Path)+1)
			copy(path, current.Path)
			path = append(path, neighbor)

			if f.grid.IsUnvisited(neighbor) {
				return path
			}

			seen[neighbor] = struct{}{}
			heap.Push(&open, &frontierItem{
				Cell:     neighbor,
				Path:     path,
				Priority: len(path) - f.grid.UnexploredNeighborCount(neighbor),
			})
		}
	}

	return nil
}
