package planner

import (
	"testing"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// markAllVisitedExcept marks every free cell visited except the given ones.
func markAllVisitedExcept(t *testing.T, g *grid.Grid, except ...grid.Coord) {
	t.Helper()
	keep := make(map[grid.Coord]struct{}, len(except))
	for _, c := range except {
		keep[c] = struct{}{}
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := grid.Coord{X: x, Y: y}
			if _, ok := keep[c]; ok {
				continue
			}
			g.MarkVisited(c)
		}
	}
}

func TestFrontierExplorer_ReachesSingleUnvisitedCell(t *testing.T) {
	g := mustGrid(t, 5, 5)
	target := grid.Coord{X: 2, Y: 2}
	markAllVisitedExcept(t, g, target)
	explorer := NewFrontierExplorer(g)

	path := explorer.FindPath(grid.Coord{X: 0, Y: 0})
	if path == nil {
		t.Fatal("FindPath returned nil")
	}
	if last := path[len(path)-1]; last != target {
		t.Errorf("path ends at %s, want %s", last, target)
	}
	if path[0] == (grid.Coord{X: 0, Y: 0}) {
		t.Error("path must exclude the start cell")
	}
	assertAdjacentFrom(t, grid.Coord{X: 0, Y: 0}, path)
}

func TestFrontierExplorer_FirstStepIsAdjacentUnvisited(t *testing.T) {
	// On a fresh grid every neighbor is unvisited, so the very first
	// expansion (direction order: down) terminates the search.
	g := mustGrid(t, 4, 4)
	g.MarkVisited(grid.Coord{X: 0, Y: 0})
	explorer := NewFrontierExplorer(g)

	path := explorer.FindPath(grid.Coord{X: 0, Y: 0})
	if len(path) != 1 {
		t.Fatalf("len(path) = %d, want 1", len(path))
	}
	if path[0] != (grid.Coord{X: 0, Y: 1}) {
		t.Errorf("path[0] = %s, want (0,1) (down expands first)", path[0])
	}
}

func TestFrontierExplorer_NoReachableCell(t *testing.T) {
	// The unvisited cell is sealed behind obstacles.
	g := mustGrid(t, 5, 5)
	wall := []grid.Coord{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 3}}
	if err := g.PlaceStaticObstacles(wall); err != nil {
		t.Fatal(err)
	}
	markAllVisitedExcept(t, g, grid.Coord{X: 4, Y: 4})
	explorer := NewFrontierExplorer(g)

	if path := explorer.FindPath(grid.Coord{X: 0, Y: 0}); path != nil {
		t.Errorf("FindPath = %v, want nil for a sealed cell", path)
	}
}

func TestFrontierExplorer_SkipsDynamicObstacles(t *testing.T) {
	// 1-wide corridor: the dynamic obstacle cuts off the only route.
	g := mustGrid(t, 4, 1)
	g.MarkVisited(grid.Coord{X: 0, Y: 0})
	g.MarkVisited(grid.Coord{X: 1, Y: 0})
	if err := g.PlaceDynamicObstacle(grid.Coord{X: 2, Y: 0}); err != nil {
		t.Fatal(err)
	}
	explorer := NewFrontierExplorer(g)

	if path := explorer.FindPath(grid.Coord{X: 0, Y: 0}); path != nil {
		t.Errorf("FindPath = %v, want nil past a dynamic obstacle", path)
	}

	g.RemoveDynamicObstacle(grid.Coord{X: 2, Y: 0})
	path := explorer.FindPath(grid.Coord{X: 0, Y: 0})
	if path == nil {
		t.Fatal("FindPath returned nil after obstacle removal")
	}
	if last := path[len(path)-1]; last != (grid.Coord{X: 2, Y: 0}) {
		t.Errorf("path ends at %s, want (2,0)", last)
	}
}

func TestFrontierExplorer_Deterministic(t *testing.T) {
	g := mustGrid(t, 6, 6)
	if err := g.PlaceStaticObstacles([]grid.Coord{{X: 2, Y: 2}, {X: 2, Y: 3}}); err != nil {
		t.Fatal(err)
	}
	for _, c := range []grid.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}} {
		g.MarkVisited(c)
	}
	explorer := NewFrontierExplorer(g)

	first := explorer.FindPath(grid.Coord{X: 0, Y: 0})
	if first == nil {
		t.Fatal("FindPath returned nil")
	}
	for i := 0; i < 5; i++ {
		again := explorer.FindPath(grid.Coord{X: 0, Y: 0})
		if len(again) != len(first) {
			t.Fatalf("call %d: len = %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("call %d: path[%d] = %s, want %s", i, j, again[j], first[j])
			}
		}
	}
}

func TestFrontierExplorer_PathTraversesOnlyTraversableCells(t *testing.T) {
	g := mustGrid(t, 6, 6)
	obstacles := []grid.Coord{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 4, Y: 4}}
	if err := g.PlaceStaticObstacles(obstacles); err != nil {
		t.Fatal(err)
	}
	markAllVisitedExcept(t, g, grid.Coord{X: 5, Y: 5}, grid.Coord{X: 0, Y: 5})
	explorer := NewFrontierExplorer(g)

	path := explorer.FindPath(grid.Coord{X: 2, Y: 2})
	if path == nil {
		t.Fatal("FindPath returned nil")
	}
	for _, c := range path {
		if g.At(c) == grid.Obstacle || g.At(c) == grid.DynamicObstacle {
			t.Errorf("path enters blocked cell %s", c)
		}
	}
	if last := path[len(path)-1]; !g.IsUnvisited(last) {
		t.Errorf("path ends at %s, which is not unvisited", last)
	}
}
