// Package grid provides the core domain model for the exploration grid.
package grid

// CellState represents the state of a single grid cell.
// Exactly one state applies to a coordinate at any instant: AgentPresent and
// DynamicObstacle are occupancy markers layered over the logical terrain
// state, which is recovered through Grid.LogicalState when a marker is lifted.
type CellState uint8

// Canonical cell states.
const (
	Unvisited       CellState = iota // free cell, not yet covered
	Visited                          // free cell, covered at least once
	Obstacle                         // static obstacle, fixed at construction
	AgentPresent                     // free cell currently holding an agent
	RetracedPath                     // free cell traversed again after being visited
	DynamicObstacle                  // free cell currently holding a mobile obstacle
)

// IsTerrain returns true for states that describe the cell itself rather
// than a transient occupant.
func (s CellState) IsTerrain() bool {
	switch s {
	case Unvisited, Visited, Obstacle, RetracedPath:
		return true
	default:
		return false
	}
}

// IsOccupancy returns true for the transient occupancy markers.
func (s CellState) IsOccupancy() bool {
	return s == AgentPresent || s == DynamicObstacle
}

// Traversable returns true if a planner may route through a cell in this
// state. Agents may cross each other's cells; only obstacles block.
func (s CellState) Traversable() bool {
	return s != Obstacle && s != DynamicObstacle
}

// IsValid returns true if the state is a recognized canonical state.
func (s CellState) IsValid() bool {
	return s <= DynamicObstacle
}

// String returns the string representation of the state.
func (s CellState) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Visited:
		return "visited"
	case Obstacle:
		return "obstacle"
	case AgentPresent:
		return "agent"
	case RetracedPath:
		return "retraced"
	case DynamicObstacle:
		return "dynamic_obstacle"
	default:
		return "unknown"
	}
}
