package grid

import "fmt"

// Coord identifies a grid cell by column (X) and row (Y).
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the coordinate offset by a direction.
func (c Coord) Add(d Direction) Coord {
	return Coord{X: c.X + d.DX, Y: c.Y + d.DY}
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit step along one cardinal axis.
type Direction struct {
	DX int
	DY int
}

// ExpansionOrder is the fixed direction order used by the planners:
// down, right, up, left. Search tie-breaking depends on this order, so it
// is passed to Grid.Neighbors explicitly rather than baked into the grid.
var ExpansionOrder = []Direction{
	{DX: 0, DY: 1},
	{DX: 1, DY: 0},
	{DX: 0, DY: -1},
	{DX: -1, DY: 0},
}

// CardinalDirections returns a fresh copy of the four cardinal directions,
// safe for callers that shuffle in place.
func CardinalDirections() []Direction {
	dirs := make([]Direction, len(ExpansionOrder))
	copy(dirs, ExpansionOrder)
	return dirs
}
