package agent

import "github.com/felixgeelhaar/explore-go/domain/grid"

// Agent is a mobile explorer identified by its index. It owns its current
// position and the ordered sequence of cells it has stopped on. Cell
// occupancy exclusivity between agents is enforced by the coordinator, not
// here.
type Agent struct {
	Index    int          `json:"index"`
	Position grid.Coord   `json:"position"`
	History  []grid.Coord `json:"history"`
	State    State        `json:"state"`
}

// New creates an agent at its start position. The start cell counts as the
// first entry in the travel history.
func New(index int, start grid.Coord) *Agent {
	return &Agent{
		Index:    index,
		Position: start,
		History:  []grid.Coord{start},
		State:    StateIdle,
	}
}

// MoveTo records a committed move: the destination becomes the current
// position and is appended to the travel history.
func (a *Agent) MoveTo(dest grid.Coord) {
	a.Position = dest
	a.History = append(a.History, dest)
}

// Moves returns the number of committed moves (history minus the start).
func (a *Agent) Moves() int {
	if len(a.History) == 0 {
		return 0
	}
	return len(a.History) - 1
}
