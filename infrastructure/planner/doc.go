// Package planner provides the two path planners of the exploration engine.
//
//   - FrontierExplorer: greedy best-first search to the nearest unexplored
//     cell, biased toward cells with many unexplored neighbors.
//   - ShortestPathFinder: A* to an explicit target, used as the fallback when
//     a single unvisited cell remains or a direct route is requested.
//
// Both planners are read-only against the grid and deterministic for a fixed
// grid state. A nil path is a value, not an error: it means no route exists
// under the current obstacle placement, and the caller decides what that
// implies.
package planner
