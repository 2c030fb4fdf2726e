package grid

import "testing"

func TestCellState_Traversable(t *testing.T) {
	tests := []struct {
		state CellState
		want  bool
	}{
		{Unvisited, true},
		{Visited, true},
		{Obstacle, false},
		{AgentPresent, true},
		{RetracedPath, true},
		{DynamicObstacle, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.Traversable(); got != tt.want {
				t.Errorf("CellState(%s).Traversable() = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestCellState_OccupancyTerrainSplit(t *testing.T) {
	for _, s := range []CellState{Unvisited, Visited, Obstacle, AgentPresent, RetracedPath, DynamicObstacle} {
		if s.IsTerrain() == s.IsOccupancy() {
			t.Errorf("CellState(%s): IsTerrain() and IsOccupancy() must be exclusive", s)
		}
	}
}

func TestCellState_String(t *testing.T) {
	if got := CellState(99).String(); got != "unknown" {
		t.Errorf("CellState(99).String() = %q, want \"unknown\"", got)
	}
	if got := DynamicObstacle.String(); got != "dynamic_obstacle" {
		t.Errorf("DynamicObstacle.String() = %q", got)
	}
}
