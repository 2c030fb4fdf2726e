package agent

import "testing"

func TestDefaultTransitions(t *testing.T) {
	tr := DefaultTransitions()

	tests := []struct {
		from State
		to   State
		want bool
	}{
		{StateIdle, StatePlanning, true},
		{StateIdle, StateMoving, false},
		{StatePlanning, StateMoving, true},
		{StatePlanning, StateWaiting, true},
		{StateMoving, StateIdle, true},
		{StateMoving, StatePlanning, false},
		{StateWaiting, StatePlanning, true},
		{StateWaiting, StateIdle, true},
		{StateWaiting, StateMoving, false},
		{StateDone, StatePlanning, false},
		{StateDone, StateIdle, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tr.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}

	// done is reachable from every non-terminal state.
	for _, s := range AllStates() {
		if s == StateDone {
			continue
		}
		if !tr.CanTransition(s, StateDone) {
			t.Errorf("CanTransition(%s, done) = false, want true", s)
		}
	}
}
