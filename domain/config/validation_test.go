package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/explore-go/domain/grid"
)

func TestValidate_Default(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate() on default scenario: %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantSub string
	}{
		{
			name:    "zero width",
			mutate:  func(s *Scenario) { s.Grid.Width = 0 },
			wantSub: "dimensions",
		},
		{
			name:    "negative height",
			mutate:  func(s *Scenario) { s.Grid.Height = -3 },
			wantSub: "dimensions",
		},
		{
			name: "obstacle out of bounds",
			mutate: func(s *Scenario) {
				s.StaticObstacles = []grid.Coord{{X: 10, Y: 0}}
			},
			wantSub: "out of bounds",
		},
		{
			name: "start out of bounds",
			mutate: func(s *Scenario) {
				s.Agents.Starts = []grid.Coord{{X: -1, Y: 0}}
			},
			wantSub: "out of bounds",
		},
		{
			name: "duplicate starts",
			mutate: func(s *Scenario) {
				s.Agents.Starts = []grid.Coord{{X: 1, Y: 1}, {X: 1, Y: 1}}
			},
			wantSub: "used twice",
		},
		{
			name: "start on obstacle",
			mutate: func(s *Scenario) {
				s.StaticObstacles = []grid.Coord{{X: 2, Y: 2}}
				s.Agents.Starts = []grid.Coord{{X: 2, Y: 2}}
			},
			wantSub: "collides",
		},
		{
			name: "count mismatch",
			mutate: func(s *Scenario) {
				s.Agents.Count = 3
				s.Agents.Starts = []grid.Coord{{X: 0, Y: 0}}
			},
			wantSub: "does not match",
		},
		{
			name:    "negative dynamic count",
			mutate:  func(s *Scenario) { s.DynamicObstacles.Count = -1 },
			wantSub: "negative",
		},
		{
			name:    "too many dynamic obstacles",
			mutate:  func(s *Scenario) { s.DynamicObstacles.Count = 1000 },
			wantSub: "exceed",
		},
		{
			name:    "unknown backend",
			mutate:  func(s *Scenario) { s.Storage.Backend = "etcd" },
			wantSub: "storage backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("errors.Is(err, ErrValidation) = false, err = %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	s := Default()
	s.DynamicObstacles.Count = -1
	s.MaxTicks = -1

	err := s.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(*ValidationError) failed, err = %v", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("len(Problems) = %d, want 2: %v", len(verr.Problems), verr.Problems)
	}
}

func TestResolvedStarts(t *testing.T) {
	s := Default()
	s.Grid = GridConfig{Width: 6, Height: 4}
	s.Agents.Count = 3

	got := s.ResolvedStarts()
	want := []grid.Coord{{X: 0, Y: 0}, {X: 0, Y: 3}, {X: 5, Y: 0}}
	if len(got) != len(want) {
		t.Fatalf("ResolvedStarts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("start %d = %v, want %v", i, got[i], want[i])
		}
	}

	s.Agents.Starts = []grid.Coord{{X: 2, Y: 2}}
	got = s.ResolvedStarts()
	if len(got) != 1 || got[0] != (grid.Coord{X: 2, Y: 2}) {
		t.Errorf("explicit starts not honored: %v", got)
	}
}

func TestDefaultStarts_Clamped(t *testing.T) {
	if got := DefaultStarts(5, 5, 9); len(got) != 4 {
		t.Errorf("DefaultStarts clamp: got %d starts, want 4", len(got))
	}
	if got := DefaultStarts(5, 5, 0); len(got) != 0 {
		t.Errorf("DefaultStarts zero: got %d starts, want 0", len(got))
	}
}
