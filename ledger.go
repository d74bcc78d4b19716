package main

import "math"

// Record is the per-cell bookkeeping of one query
type Record struct {
	Cell      Cell
	Visited   bool
	From      *Record // predecessor, nil at the source and for unreached cells
	Cost      float64 // path cost from the source (hop count after a breadth-first run)
	Heuristic int     // Manhattan distance to the destination
	Score     float64 // Cost + Heuristic

	index int // position in the frontier heap, -1 when not queued
}

// Ledger holds one Record per grid cell. A Ledger belongs to a single query;
// the Grid it was made from may be shared.
type Ledger struct {
	grid        *Grid
	records     []Record
	source      Cell
	destination Cell
}

// NewLedger allocates a ledger sized to g. Call Reset before searching.
func NewLedger(g *Grid) *Ledger {
	l := &Ledger{
		grid:    g,
		records: make([]Record, g.height*g.width),
	}
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			l.records[r*g.width+c].Cell = Cell{Row: r, Col: c}
		}
	}
	return l
}

// Reset prepares every record for a query towards destination. Obstacles are
// pre-marked visited so no search ever expands into them, and the
// destination's cost is set to +Inf until something reaches it.
func (l *Ledger) Reset(source, destination Cell) {
	l.source = source
	l.destination = destination

	for i := range l.records {
		rec := &l.records[i]
		h := rec.Cell.Manhattan(destination)
		rec.Visited = !l.grid.terrain[i].Passable()
		rec.From = nil
		rec.Cost = 0
		rec.Heuristic = h
		rec.Score = float64(h)
		rec.index = -1
	}

	l.Record(destination).Cost = math.Inf(1)
}

// Record returns the record of an in-bounds cell
func (l *Ledger) Record(c Cell) *Record {
	return &l.records[l.grid.index(c)]
}

func (l *Ledger) Grid() *Grid       { return l.grid }
func (l *Ledger) Source() Cell      { return l.source }
func (l *Ledger) Destination() Cell { return l.destination }
