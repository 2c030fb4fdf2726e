package planner

import (
	"container/heap"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// ShortestPathFinder runs A* between two explicit cells on the grid.
// Step cost is 1 and the heuristic is Manhattan distance, so returned paths
// are shortest under the obstacle placement at call time.
type ShortestPathFinder struct {
	grid *grid.Grid
}

// NewShortestPathFinder creates an A* finder over the given grid.
func NewShortestPathFinder(g *grid.Grid) *ShortestPathFinder {
	return &ShortestPathFinder{grid: g}
}

// FindPath returns the shortest path from start (exclusive) to target
// (inclusive), or nil if no path exists. Obstacles may have moved since the
// caller last checked reachability; a nil result is an expected outcome.
func (s *ShortestPathFinder) FindPath(start, target grid.Coord) []grid.Coord {
	if !s.grid.InBounds(start) || !s.grid.InBounds(target) {
		return nil
	}
	if start == target {
		return nil
	}

	open := make(astarQueue, 0)
	heap.Init(&open)
	heap.Push(&open, &astarItem{Cell: start, GScore: 0, FCost: manhattan(start, target)})

	gScore := map[grid.Coord]int{start: 0}
	cameFrom := make(map[grid.Coord]grid.Coord)
	closed := make(map[grid.Coord]struct{})

	for open.Len() > 0 {
		current := heap.Pop(&open).(*astarItem)

		if _, ok := closed[current.Cell]; ok {
			continue
		}
		closed[current.Cell] = struct{}{}

		if current.Cell == target {
			return reconstruct(cameFrom, start, target)
		}

		for _, d := range grid.ExpansionOrder {
			neighbor := current.Cell.Add(d)
			if !s.grid.InBounds(neighbor) {
				continue
			}
			if st := s.grid.At(neighbor); st == grid.Obstacle || st == grid.DynamicObstacle {
				continue
			}

			tentative := gScore[current.Cell] + 1
			if best, ok := gScore[neighbor]; !ok || tentative < best {
				gScore[neighbor] = tentative
				cameFrom[neighbor] = current.Cell
				heap.Push(&open, &astarItem{
					Cell:   neighbor,
					GScore: tentative,
					FCost:  tentative + manhattan(neighbor, target),
				})
			}
		}
	}

	return nil
}

// manhattan is the L1 distance between two cells.
func manhattan(a, b grid.Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// reconstruct walks cameFrom back from target and returns the path exclusive
// of start, inclusive of target.
func reconstruct(cameFrom map[grid.Coord]grid.Coord, start, target grid.Coord) []grid.Coord {
	var reversed []grid.Coord
	for current := target; current != start; {
		reversed = append(reversed, current)
		previous, ok := cameFrom[current]
		if !ok {
			return nil
		}
		current = previous
	}

	path := make([]grid.Coord, len(reversed))
	for i := range reversed {
		path[i] = reversed[len(reversed)-1-i]
	}
	return path
}
