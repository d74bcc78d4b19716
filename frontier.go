package main

import (
	"container/heap"
)

// DefaultFrontierCapacity is the pending-candidate bound of the classic
// fixed-array open list. The planner only applies it when asked to.
const DefaultFrontierCapacity = 100

// recordQueue implements heap.Interface over ledger records
type recordQueue []*Record

func (q recordQueue) Len() int { return len(q) }

// Less orders by score, then by heuristic (closer to the goal first), then by
// row and column so equal scores pop in the same order on every run.
func (q recordQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.Heuristic != b.Heuristic {
		return a.Heuristic < b.Heuristic
	}
	if a.Cell.Row != b.Cell.Row {
		return a.Cell.Row < b.Cell.Row
	}
	return a.Cell.Col < b.Cell.Col
}

// Swap keeps each record's index pointing at its slot so Decrease can
// heap.Fix it in place.
func (q recordQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}

func (q *recordQueue) Push(x interface{}) {
	rec := x.(*Record)
	rec.index = len(*q)
	*q = append(*q, rec)
}

// Pop hands back the last slot; an index of -1 marks the record as no longer
// queued for Contains.
func (q *recordQueue) Pop() interface{} {
	last := len(*q) - 1
	rec := (*q)[last]
	(*q)[last] = nil
	*q = (*q)[:last]
	rec.index = -1
	return rec
}

// Frontier is the open list of a best-first search. It holds non-owning
// pointers into a Ledger.
type Frontier struct {
	queue    recordQueue
	capacity int
}

// NewFrontier returns an empty frontier. A positive capacity bounds the number
// of pending records; zero lets it grow.
func NewFrontier(capacity int) *Frontier {
	f := &Frontier{capacity: capacity}
	heap.Init(&f.queue)
	return f
}

// Insert stores cost and score on rec and queues it. A full bounded frontier
// returns an *OverflowError and leaves rec untouched.
func (f *Frontier) Insert(rec *Record, cost float64) error {
	if f.capacity > 0 && f.queue.Len() >= f.capacity {
		return &OverflowError{Capacity: f.capacity}
	}
	rec.Cost = cost
	rec.Score = cost + float64(rec.Heuristic)
	heap.Push(&f.queue, rec)
	return nil
}

// Decrease lowers the cost of a record that is still queued
func (f *Frontier) Decrease(rec *Record, cost float64) {
	if rec.index < 0 || cost >= rec.Cost {
		return
	}
	rec.Cost = cost
	rec.Score = cost + float64(rec.Heuristic)
	heap.Fix(&f.queue, rec.index)
}

// ExtractMin removes and returns the lowest-score record, or nil when empty
func (f *Frontier) ExtractMin() *Record {
	if f.queue.Len() == 0 {
		return nil
	}
	return heap.Pop(&f.queue).(*Record)
}

// Contains reports whether rec is currently queued
func (f *Frontier) Contains(rec *Record) bool { return rec.index >= 0 }

func (f *Frontier) Len() int { return f.queue.Len() }
