package agent

// Transitions is the allowed-transition table for the agent lifecycle.
type Transitions struct {
	allowed map[State][]State
}

// DefaultTransitions returns the canonical lifecycle table:
// idle → planning, planning → moving|waiting, moving → idle,
// waiting → planning|idle, and done reachable from every non-terminal state.
func DefaultTransitions() *Transitions {
	return &Transitions{
		allowed: map[State][]State{
			StateIdle:     {StatePlanning, StateDone},
			StatePlanning: {StateMoving, StateWaiting, StateDone},
			StateMoving:   {StateIdle, StateDone},
			StateWaiting:  {StatePlanning, StateIdle, StateDone},
			StateDone:     {},
		},
	}
}

// CanTransition returns true if the move from one state to another is allowed.
func (t *Transitions) CanTransition(from, to State) bool {
	for _, s := range t.allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedFrom returns the states reachable from the given state.
func (t *Transitions) AllowedFrom(from State) []State {
	out := make([]State, len(t.allowed[from]))
	copy(out, t.allowed[from])
	return out
}
