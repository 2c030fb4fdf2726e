package planner

import "github.com/felixgeelhaar/explore-go/domain/grid"

// frontierItem is a partial path on the frontier queue. Cell is the last
// coordinate of Path, or the search start while Path is empty.
type frontierItem struct {
	Cell         grid.Coord
	Path         []grid.Coord
	Priority     int
	IndexInQueue int
}

type frontierQueue []*frontierItem

func (q frontierQueue) Len() int           { return len(q) }
func (q frontierQueue) Less(i, j int) bool { return q[i].Priority < q[j].Priority }
func (q frontierQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].IndexInQueue = i
	q[j].IndexInQueue = j
}

func (q *frontierQueue) Push(x any) {
	*q = append(*q, x.(*frontierItem))
}

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// astarItem is an open-set entry. Entries are re-pushed on relaxation, so a
// node may appear more than once; the closed set discards stale pops.
type astarItem struct {
	Cell         grid.Coord
	GScore       int
	FCost        int
	IndexInQueue int
}

type astarQueue []*astarItem

func (q astarQueue) Len() int           { return len(q) }
func (q astarQueue) Less(i, j int) bool { return q[i].FCost < q[j].FCost }
func (q astarQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].IndexInQueue = i
	q[j].IndexInQueue = j
}

func (q *astarQueue) Push(x any) {
	*q = append(*q, x.(*astarItem))
}

func (q *astarQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
