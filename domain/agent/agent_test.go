package agent

import (
	"testing"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

func TestNew(t *testing.T) {
	start := grid.Coord{X: 2, Y: 3}
	a := New(1, start)

	if a.Index != 1 {
		t.Errorf("Index = %d, want 1", a.Index)
	}
	if a.Position != start {
		t.Errorf("Position = %s, want %s", a.Position, start)
	}
	if len(a.History) != 1 || a.History[0] != start {
		t.Errorf("History = %v, want [%s]", a.History, start)
	}
	if a.State != StateIdle {
		t.Errorf("State = %s, want idle", a.State)
	}
	if a.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", a.Moves())
	}
}

func TestAgent_MoveTo(t *testing.T) {
	a := New(0, grid.Coord{X: 0, Y: 0})
	stops := []grid.Coord{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}}

	for _, c := range stops {
		a.MoveTo(c)
	}

	if a.Position != stops[len(stops)-1] {
		t.Errorf("Position = %s, want %s", a.Position, stops[len(stops)-1])
	}
	if a.Moves() != len(stops) {
		t.Errorf("Moves() = %d, want %d", a.Moves(), len(stops))
	}
	// History keeps the start followed by every destination, in order.
	if len(a.History) != len(stops)+1 {
		t.Fatalf("len(History) = %d, want %d", len(a.History), len(stops)+1)
	}
	for i, c := range stops {
		if a.History[i+1] != c {
			t.Errorf("History[%d] = %s, want %s", i+1, a.History[i+1], c)
		}
	}
}
