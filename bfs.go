package main

import (
	"math"
)

// ringQueue is a circular FIFO of records. When unbounded it doubles its
// backing array instead of overwriting the head.
type ringQueue struct {
	items   []*Record
	head    int
	size    int
	bounded bool
}

func newRingQueue(capacity int) *ringQueue {
	q := &ringQueue{bounded: capacity > 0}
	if capacity <= 0 {
		capacity = DefaultFrontierCapacity
	}
	q.items = make([]*Record, capacity)
	return q
}

func (q *ringQueue) push(rec *Record) error {
	if q.size == len(q.items) {
		if q.bounded {
			return &OverflowError{Capacity: len(q.items)}
		}
		grown := make([]*Record, 2*len(q.items))
		for i := 0; i < q.size; i++ {
			grown[i] = q.items[(q.head+i)%len(q.items)]
		}
		q.items = grown
		q.head = 0
	}
	q.items[(q.head+q.size)%len(q.items)] = rec
	q.size++
	return nil
}

func (q *ringQueue) pop() *Record {
	if q.size == 0 {
		return nil
	}
	rec := q.items[q.head]
	q.items[q.head] = nil
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return rec
}

func (q *ringQueue) len() int { return q.size }

// BreadthFirst resets l and runs an unweighted level-order traversal from
// source over the grid's adjacency. Each reached record's Cost becomes its hop
// count. It returns the number of cells dequeued.
func BreadthFirst(l *Ledger, source, destination Cell, opts ...Option) (int, error) {
	o := newOptions(opts)
	g := l.grid

	if err := g.Validate(source); err != nil {
		return 0, err
	}
	if err := g.Validate(destination); err != nil {
		return 0, err
	}

	l.Reset(source, destination)
	if !g.Passable(source) {
		return 0, nil
	}

	queue := newRingQueue(o.QueueCapacity)
	start := l.Record(source)
	start.Visited = true
	start.Cost = 0
	if err := queue.push(start); err != nil {
		return 0, err
	}

	dequeued := 0
	for queue.len() > 0 {
		current := queue.pop()
		mask := g.Adjacency(current.Cell)
		for d := East; d <= NorthEast; d++ {
			if !mask.Has(d) {
				continue
			}
			next := l.Record(current.Cell.Step(d))
			if next.Visited {
				continue
			}
			next.From = current
			next.Visited = true
			next.Cost = current.Cost + 1
			if err := queue.push(next); err != nil {
				return dequeued, err
			}
		}
		dequeued++
	}

	return dequeued, nil
}

// HopCount reads the breadth-first distance of c back from a ledger filled by
// BreadthFirst. The second result is false when c was never reached.
func HopCount(l *Ledger, c Cell) (int, bool) {
	rec := l.Record(c)
	if math.IsInf(rec.Cost, 1) {
		return 0, false
	}
	if rec.From == nil && !(c == l.source && l.grid.Passable(c)) {
		return 0, false
	}
	return int(rec.Cost), true
}

// Verification is the outcome of cross-checking a best-first path against
// breadth-first hop counts. Step counts are -1 when that side found no path.
type Verification struct {
	BestFirstSteps    int  `json:"bestFirstSteps"`
	BreadthFirstSteps int  `json:"breadthFirstSteps"`
	Passed            bool `json:"passed"`
}

// Verify runs a breadth-first traversal on a ledger of its own and compares
// the hop count of destination with path. A nil path means the best-first
// search reported the destination unreachable. Disagreement returns the
// Verification together with a *VerificationError.
func Verify(g *Grid, source, destination Cell, path *Path, opts ...Option) (Verification, error) {
	v := Verification{BestFirstSteps: -1, BreadthFirstSteps: -1}
	if path != nil {
		v.BestFirstSteps = path.Steps
	}

	l := NewLedger(g)
	if _, err := BreadthFirst(l, source, destination, opts...); err != nil {
		return v, err
	}
	if hops, ok := HopCount(l, destination); ok {
		v.BreadthFirstSteps = hops
	}

	v.Passed = v.BestFirstSteps == v.BreadthFirstSteps
	if !v.Passed {
		return v, &VerificationError{
			Source:       source,
			Destination:  destination,
			BestFirst:    v.BestFirstSteps,
			BreadthFirst: v.BreadthFirstSteps,
		}
	}
	return v, nil
}
