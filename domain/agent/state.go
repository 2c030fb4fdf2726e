// Package agent provides the core domain model for exploration agents.
package agent

// State represents a step in an agent's per-tick lifecycle.
// States are identified by stable strings, not behavioral definitions.
type State string

// Canonical states.
const (
	StateIdle     State = "idle"     // Awaiting the next tick
	StatePlanning State = "planning" // A path has been requested
	StateMoving   State = "moving"   // A move is being committed
	StateWaiting  State = "waiting"  // Path blocked by a dynamic obstacle
	StateDone     State = "done"     // Terminal: coverage complete or target unreachable
)

// IsTerminal returns true if this is the terminal state.
func (s State) IsTerminal() bool {
	return s == StateDone
}

// IsValid returns true if the state is a recognized canonical state.
func (s State) IsValid() bool {
	switch s {
	case StateIdle, StatePlanning, StateMoving, StateWaiting, StateDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// AllStates returns all canonical states.
func AllStates() []State {
	return []State{StateIdle, StatePlanning, StateMoving, StateWaiting, StateDone}
}
