package cli

import (
	"strings"

	"github.com/felixgeelhaar/explore-go/application"
	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// cellRunes maps cell states to their terminal glyphs.
var cellRunes = map[grid.CellState]rune{
	grid.Unvisited:       '.',
	grid.Visited:         'o',
	grid.Obstacle:        '#',
	grid.AgentPresent:    'A',
	grid.RetracedPath:    '*',
	grid.DynamicObstacle: 'x',
}

// renderGrid draws a session snapshot as an ASCII grid, one row per line.
func renderGrid(view application.GridView) string {
	var b strings.Builder
	b.Grow((view.Width + 1) * view.Height)
	for y := 0; y < view.Height; y++ {
		for x := 0; x < view.Width; x++ {
			r, ok := cellRunes[view.Cells[y][x]]
			if !ok {
				r = '?'
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
