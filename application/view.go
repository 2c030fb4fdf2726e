package application

import (
	"github.com/felixgeelhaar/explore-go/domain/agent"
	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// AgentView is the renderer-facing snapshot of one agent.
type AgentView struct {
	Index     int         `json:"index"`
	Position  grid.Coord  `json:"position"`
	State     agent.State `json:"state"`
	Travelled int         `json:"travelled"`
}

// GridView is a point-in-time snapshot of the session, serializable for
// rendering and replay.
type GridView struct {
	Tick      int                `json:"tick"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Cells     [][]grid.CellState `json:"cells"`
	Agents    []AgentView        `json:"agents"`
	Obstacles []grid.Coord       `json:"obstacles"`
	Remaining int                `json:"remaining"`
	Coverage  float64            `json:"coverage"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() GridView {
	agents := make([]AgentView, len(s.agents))
	for i, a := range s.agents {
		agents[i] = AgentView{
			Index:     a.Index,
			Position:  a.Position,
			State:     s.interps[i].State(),
			Travelled: a.Moves(),
		}
	}

	return GridView{
		Tick:      s.tick,
		Width:     s.grid.Width(),
		Height:    s.grid.Height(),
		Cells:     s.grid.Cells(),
		Agents:    agents,
		Obstacles: s.stepper.Positions(),
		Remaining: s.grid.UnvisitedCount(),
		Coverage:  s.Coverage(),
	}
}
