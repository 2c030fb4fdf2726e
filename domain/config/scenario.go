// Package config provides the scenario configuration model.
package config

import (
	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// Scenario describes one exploration setup: the grid, its obstacles, the
// agents, and the knobs of the surrounding tooling. Every planning-relevant
// parameter is explicit; the timing section is owned by the caller's loop,
// never by the engine.
type Scenario struct {
	// Name identifies the scenario in logs and run records.
	Name string `yaml:"name" json:"name"`

	// Grid holds the fixed grid dimensions.
	Grid GridConfig `yaml:"grid" json:"grid"`

	// StaticObstacles lists the fixed obstacle coordinates.
	StaticObstacles []grid.Coord `yaml:"static_obstacles" json:"static_obstacles"`

	// Agents configures agent count and start positions.
	Agents AgentsConfig `yaml:"agents" json:"agents"`

	// DynamicObstacles configures the mobile obstacles.
	DynamicObstacles DynamicConfig `yaml:"dynamic_obstacles" json:"dynamic_obstacles"`

	// Timing configures the tick loop pacing (caller-owned).
	Timing TimingConfig `yaml:"timing" json:"timing"`

	// MaxTicks aborts a session that has not terminated after this many
	// ticks. Zero means no limit.
	MaxTicks int `yaml:"max_ticks" json:"max_ticks"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Storage configures run persistence.
	Storage StorageConfig `yaml:"storage" json:"storage"`
}

// GridConfig holds the grid dimensions.
type GridConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// AgentsConfig configures the exploring agents. When Starts is empty, Count
// agents are placed at the grid corners.
type AgentsConfig struct {
	Count  int          `yaml:"count" json:"count"`
	Starts []grid.Coord `yaml:"starts" json:"starts"`
}

// DynamicConfig configures the mobile obstacles.
type DynamicConfig struct {
	Count int   `yaml:"count" json:"count"`
	Seed  int64 `yaml:"seed" json:"seed"`
}

// TimingConfig paces the tick loop. The engine itself is delay-free.
type TimingConfig struct {
	TickDelay Duration `yaml:"tick_delay" json:"tick_delay"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// StorageConfig selects a run-store backend.
type StorageConfig struct {
	// Backend is one of "", "memory", "sqlite", "badger".
	Backend string `yaml:"backend" json:"backend"`

	// DSN is the SQLite data source name.
	DSN string `yaml:"dsn" json:"dsn"`

	// Dir is the badger data directory.
	Dir string `yaml:"dir" json:"dir"`

	// Snapshots enables per-tick snapshot recording (badger backend).
	Snapshots bool `yaml:"snapshots" json:"snapshots"`
}

// Default returns a scenario with sensible defaults: a 10x10 grid, one
// agent at the origin, five dynamic obstacles, no pacing.
func Default() *Scenario {
	return &Scenario{
		Name: "default",
		Grid: GridConfig{Width: 10, Height: 10},
		Agents: AgentsConfig{
			Count: 1,
		},
		DynamicObstacles: DynamicConfig{Count: 5},
		Logging:          LoggingConfig{Level: "info", Format: "console"},
	}
}

// DefaultStarts returns up to four corner start positions for the given
// grid, in the conventional order: top-left, bottom-left, top-right,
// bottom-right.
func DefaultStarts(width, height, count int) []grid.Coord {
	corners := []grid.Coord{
		{X: 0, Y: 0},
		{X: 0, Y: height - 1},
		{X: width - 1, Y: 0},
		{X: width - 1, Y: height - 1},
	}
	if count > len(corners) {
		count = len(corners)
	}
	if count < 0 {
		count = 0
	}
	return corners[:count]
}
