package obstacle

import (
	"math/rand"
	"testing"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

func mustGrid(t *testing.T, width, height int) *grid.Grid {
	t.Helper()
	g, err := grid.New(width, height)
	if err != nil {
		t.Fatalf("grid.New(%d, %d): %v", width, height, err)
	}
	return g
}

func TestPlace(t *testing.T) {
	g := mustGrid(t, 5, 5)
	s := NewStepper(g, rand.New(rand.NewSource(1)))

	if err := s.Place(3); err != nil {
		t.Fatalf("Place(3): %v", err)
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
	seen := make(map[grid.Coord]struct{})
	for _, c := range s.Positions() {
		if g.At(c) != grid.DynamicObstacle {
			t.Errorf("At(%s) = %s, want dynamic_obstacle", c, g.At(c))
		}
		if _, dup := seen[c]; dup {
			t.Errorf("duplicate obstacle at %s", c)
		}
		seen[c] = struct{}{}
	}
}

func TestPlace_TooMany(t *testing.T) {
	g := mustGrid(t, 2, 2)
	s := NewStepper(g, rand.New(rand.NewSource(1)))
	if err := s.Place(5); err == nil {
		t.Error("Place(5) on a 2x2 grid: want error")
	}
}

func TestStep_NeverEntersStaticObstacle(t *testing.T) {
	g := mustGrid(t, 6, 6)
	obstacles := []grid.Coord{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 4, Y: 4}}
	if err := g.PlaceStaticObstacles(obstacles); err != nil {
		t.Fatal(err)
	}
	s := NewStepper(g, rand.New(rand.NewSource(7)))
	if err := s.Place(4); err != nil {
		t.Fatal(err)
	}

	static := make(map[grid.Coord]struct{}, len(obstacles))
	for _, c := range obstacles {
		static[c] = struct{}{}
	}

	for tick := 0; tick < 200; tick++ {
		s.Step()
		for _, c := range s.Positions() {
			if _, bad := static[c]; bad {
				t.Fatalf("tick %d: dynamic obstacle on static obstacle %s", tick, c)
			}
			if g.At(c) != grid.DynamicObstacle {
				t.Fatalf("tick %d: At(%s) = %s, want dynamic_obstacle", tick, c, g.At(c))
			}
		}
	}
}

func TestStep_RestoresVacatedCell(t *testing.T) {
	g := mustGrid(t, 3, 1)
	visited := grid.Coord{X: 1, Y: 0}
	g.MarkVisited(visited)
	if err := g.PlaceDynamicObstacle(visited); err != nil {
		t.Fatal(err)
	}
	s := NewStepper(g, rand.New(rand.NewSource(3)))
	s.obstacles = []grid.Coord{visited}

	s.Step()

	pos := s.Positions()[0]
	if pos == visited {
		// Both neighbors free: the walk always finds a candidate here.
		t.Fatalf("obstacle did not move from %s", visited)
	}
	if g.At(visited) != grid.Visited {
		t.Errorf("vacated cell At(%s) = %s, want visited", visited, g.At(visited))
	}
	if g.At(pos) != grid.DynamicObstacle {
		t.Errorf("new cell At(%s) = %s, want dynamic_obstacle", pos, g.At(pos))
	}
}

func TestStep_BoxedInStaysPut(t *testing.T) {
	// Obstacle at the center of a 3x3 grid, walled on all four sides.
	g := mustGrid(t, 3, 3)
	walls := []grid.Coord{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}
	if err := g.PlaceStaticObstacles(walls); err != nil {
		t.Fatal(err)
	}
	center := grid.Coord{X: 1, Y: 1}
	if err := g.PlaceDynamicObstacle(center); err != nil {
		t.Fatal(err)
	}
	s := NewStepper(g, rand.New(rand.NewSource(11)))
	s.obstacles = []grid.Coord{center}

	for i := 0; i < 10; i++ {
		s.Step()
		if pos := s.Positions()[0]; pos != center {
			t.Fatalf("boxed-in obstacle moved to %s", pos)
		}
		if g.At(center) != grid.DynamicObstacle {
			t.Fatalf("At(center) = %s, want dynamic_obstacle", g.At(center))
		}
	}
}

func TestStep_AvoidsAgents(t *testing.T) {
	// 1-wide corridor: obstacle between two agents can never move.
	g := mustGrid(t, 3, 1)
	if err := g.PlaceAgent(grid.Coord{X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceAgent(grid.Coord{X: 2, Y: 0}); err != nil {
		t.Fatal(err)
	}
	middle := grid.Coord{X: 1, Y: 0}
	if err := g.PlaceDynamicObstacle(middle); err != nil {
		t.Fatal(err)
	}
	s := NewStepper(g, rand.New(rand.NewSource(5)))
	s.obstacles = []grid.Coord{middle}

	for i := 0; i < 10; i++ {
		s.Step()
		if pos := s.Positions()[0]; pos != middle {
			t.Fatalf("obstacle moved onto an agent cell: %s", pos)
		}
	}
}

func TestStep_SeededDeterminism(t *testing.T) {
	walk := func(seed int64) []grid.Coord {
		g := mustGrid(t, 8, 8)
		s := NewStepper(g, rand.New(rand.NewSource(seed)))
		if err := s.Place(3); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 50; i++ {
			s.Step()
		}
		return s.Positions()
	}

	first := walk(42)
	second := walk(42)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position[%d]: %s vs %s under identical seeds", i, first[i], second[i])
		}
	}
}
