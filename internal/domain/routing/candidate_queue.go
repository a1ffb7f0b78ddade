package routing

import "github.com/andrescamacho/starlane/internal/domain/galaxy"

// candidate is a route into system that has not been finalized yet
type candidate struct {
	system *galaxy.System
	edge   RouteEdge
	seq    int
}

// candidateQueue implements heap.Interface, best edge first.
// A system may appear several times; superseded entries are skipped when popped.
type candidateQueue []*candidate

func (q candidateQueue) Len() int { return len(q) }

func (q candidateQueue) Less(i, j int) bool {
	a, b := q[i].edge, q[j].edge
	if a.Less(b) {
		return true
	}
	if b.Less(a) {
		return false
	}
	return q[i].seq < q[j].seq
}

func (q candidateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *candidateQueue) Push(x interface{}) {
	*q = append(*q, x.(*candidate))
}

func (q *candidateQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
