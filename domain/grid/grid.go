package grid

import "fmt"

// Grid owns the cell-state matrix and the visited/unvisited partition of the
// free cells. Its size is fixed at construction. The two sets are disjoint
// and together cover every non-obstacle cell; every mutation below preserves
// that invariant.
type Grid struct {
	width  int
	height int
	cells  [][]CellState
	// visited and unvisited partition the free (non-Obstacle) cells.
	visited   map[Coord]struct{}
	unvisited map[Coord]struct{}
}

// New creates a grid of the given size with every cell unvisited.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([][]CellState, height)
	for y := range cells {
		cells[y] = make([]CellState, width)
	}

	g := &Grid{
		width:     width,
		height:    height,
		cells:     cells,
		visited:   make(map[Coord]struct{}),
		unvisited: make(map[Coord]struct{}, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.unvisited[Coord{X: x, Y: y}] = struct{}{}
		}
	}
	return g, nil
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if the coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// At returns the current state of an in-bounds cell.
func (g *Grid) At(c Coord) CellState {
	return g.cells[c.Y][c.X]
}

// PlaceStaticObstacles marks the given cells Obstacle and removes them from
// the unvisited set. It fails if a coordinate is out of bounds or holds an
// agent; already-obstacle coordinates are accepted (duplicate list entries).
func (g *Grid) PlaceStaticObstacles(coords []Coord) error {
	for _, c := range coords {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: obstacle at %s", ErrInvalidCoordinate, c)
		}
		if g.cells[c.Y][c.X] == AgentPresent {
			return fmt.Errorf("%w: obstacle at agent cell %s", ErrCellOccupied, c)
		}
	}
	for _, c := range coords {
		g.cells[c.Y][c.X] = Obstacle
		delete(g.unvisited, c)
		delete(g.visited, c)
	}
	return nil
}

// PlaceAgent marks a cell AgentPresent and counts it as visited.
func (g *Grid) PlaceAgent(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: agent at %s", ErrInvalidCoordinate, c)
	}
	if s := g.cells[c.Y][c.X]; s == Obstacle || s.IsOccupancy() {
		return fmt.Errorf("%w: agent at %s (%s)", ErrCellOccupied, c, s)
	}
	g.MarkVisited(c)
	g.cells[c.Y][c.X] = AgentPresent
	return nil
}

// PlaceDynamicObstacle marks a traversable, unoccupied cell DynamicObstacle.
func (g *Grid) PlaceDynamicObstacle(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: dynamic obstacle at %s", ErrInvalidCoordinate, c)
	}
	if s := g.cells[c.Y][c.X]; s == Obstacle || s.IsOccupancy() {
		return fmt.Errorf("%w: dynamic obstacle at %s (%s)", ErrCellOccupied, c, s)
	}
	g.cells[c.Y][c.X] = DynamicObstacle
	return nil
}

// RemoveDynamicObstacle restores the vacated cell to its logical state.
func (g *Grid) RemoveDynamicObstacle(c Coord) {
	g.cells[c.Y][c.X] = g.LogicalState(c)
}

// LogicalState derives the terrain state of a cell from set membership:
// Visited if covered, Unvisited if still pending, RetracedPath otherwise.
// Obstacles keep their matrix state. Occupancy markers carry no terrain
// memory, so this derivation is the single source of truth on restore.
func (g *Grid) LogicalState(c Coord) CellState {
	if g.cells[c.Y][c.X] == Obstacle {
		return Obstacle
	}
	if _, ok := g.visited[c]; ok {
		return Visited
	}
	if _, ok := g.unvisited[c]; !ok {
		return RetracedPath
	}
	return Unvisited
}

// MarkVisited moves a coordinate from the unvisited to the visited set.
// Idempotent if the cell is already visited; obstacles are ignored.
func (g *Grid) MarkVisited(c Coord) {
	if !g.InBounds(c) || g.cells[c.Y][c.X] == Obstacle {
		return
	}
	delete(g.unvisited, c)
	g.visited[c] = struct{}{}
	if g.cells[c.Y][c.X] == Unvisited {
		g.cells[c.Y][c.X] = Visited
	}
}

// Retrace marks an already-visited cell as retraced. Cells in any other
// state are left alone.
func (g *Grid) Retrace(c Coord) {
	if g.InBounds(c) && g.cells[c.Y][c.X] == Visited {
		g.cells[c.Y][c.X] = RetracedPath
	}
}

// MoveAgent commits an agent move: the origin reverts to Visited and the
// destination becomes AgentPresent and counts as covered.
func (g *Grid) MoveAgent(from, to Coord) {
	g.cells[from.Y][from.X] = Visited
	g.MarkVisited(to)
	g.cells[to.Y][to.X] = AgentPresent
}

// IsFree returns true iff the cell is in bounds, not an obstacle, and not
// currently held by a dynamic obstacle.
func (g *Grid) IsFree(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	s := g.cells[c.Y][c.X]
	return s != Obstacle && s != DynamicObstacle
}

// Neighbors returns the in-bounds 4-connected neighbors of c in the order
// given by dirs. Direction order drives search tie-breaking, so it is owned
// by the caller.
func (g *Grid) Neighbors(c Coord, dirs []Direction) []Coord {
	out := make([]Coord, 0, len(dirs))
	for _, d := range dirs {
		n := c.Add(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// UnexploredNeighborCount counts the in-bounds neighbors whose matrix state
// is Unvisited. This is the frontier bias used by the greedy planner.
func (g *Grid) UnexploredNeighborCount(c Coord) int {
	count := 0
	for _, d := range ExpansionOrder {
		n := c.Add(d)
		if g.InBounds(n) && g.cells[n.Y][n.X] == Unvisited {
			count++
		}
	}
	return count
}

// IsUnvisited reports membership in the unvisited set.
func (g *Grid) IsUnvisited(c Coord) bool {
	_, ok := g.unvisited[c]
	return ok
}

// UnvisitedCount returns the number of cells still to cover.
func (g *Grid) UnvisitedCount() int { return len(g.unvisited) }

// VisitedCount returns the number of covered cells.
func (g *Grid) VisitedCount() int { return len(g.visited) }

// FreeCellCount returns the total number of non-obstacle cells.
func (g *Grid) FreeCellCount() int { return len(g.visited) + len(g.unvisited) }

// SingleUnvisited returns the sole remaining unvisited cell, if exactly one
// remains. The direct A* route is used for the final cell.
func (g *Grid) SingleUnvisited() (Coord, bool) {
	if len(g.unvisited) != 1 {
		return Coord{}, false
	}
	for c := range g.unvisited {
		return c, true
	}
	return Coord{}, false
}

// IsComplete returns true once no unvisited cells remain.
func (g *Grid) IsComplete() bool { return len(g.unvisited) == 0 }

// Cells returns a copy of the cell-state matrix, row-major, for rendering.
func (g *Grid) Cells() [][]CellState {
	out := make([][]CellState, g.height)
	for y := range g.cells {
		row := make([]CellState, g.width)
		copy(row, g.cells[y])
		out[y] = row
	}
	return out
}
