package main

import (
	"fmt"
	"math"
)

// Outcome is the terminal state of a best-first search
type Outcome int

const (
	Exhausted Outcome = iota // frontier emptied without reaching the destination
	Found
)

func (o Outcome) String() string {
	if o == Found {
		return "found"
	}
	return "exhausted"
}

// EventKind labels a search event
type EventKind int

const (
	EventExpanded EventKind = iota
	EventDiscovered
	EventImproved
	EventFound
	EventExhausted
)

var eventKindNames = [...]string{"expanded", "discovered", "improved", "found", "exhausted"}

func (k EventKind) String() string { return eventKindNames[k] }

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(text []byte) error {
	for i, name := range eventKindNames {
		if name == string(text) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event describes one step of a search, for tracing
type Event struct {
	Kind  EventKind `json:"kind"`
	Cell  Cell      `json:"cell"`
	From  *Cell     `json:"from,omitempty"`
	Cost  float64   `json:"cost"` // -1 for a cell never reached
	Score float64   `json:"score"`
}

// Options defines parameters for searches and verification
type Options struct {
	FrontierCapacity int
	QueueCapacity    int
	Reopen           bool
	Verify           bool
	Observer         func(Event)
}

// Option is a function that modifies Options
type Option func(*Options)

// WithFrontierCapacity bounds the best-first frontier; zero means unbounded
func WithFrontierCapacity(n int) Option {
	return func(o *Options) { o.FrontierCapacity = n }
}

// WithQueueCapacity bounds the breadth-first queue; zero means unbounded
func WithQueueCapacity(n int) Option {
	return func(o *Options) { o.QueueCapacity = n }
}

// WithReopening lets the search lower the cost of a discovered cell that is
// still in the frontier when a cheaper route to it shows up. Without it the
// first discovery of a cell is final.
func WithReopening() Option {
	return func(o *Options) { o.Reopen = true }
}

// WithoutVerification skips the breadth-first cross-check in Planner.Route
func WithoutVerification() Option {
	return func(o *Options) { o.Verify = false }
}

// WithObserver receives every search event
func WithObserver(fn func(Event)) Option {
	return func(o *Options) { o.Observer = fn }
}

func newOptions(opts []Option) Options {
	o := Options{Verify: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *Options) emit(kind EventKind, rec *Record) {
	if o.Observer == nil {
		return
	}
	ev := Event{Kind: kind, Cell: rec.Cell, Cost: rec.Cost, Score: rec.Score}
	if math.IsInf(ev.Cost, 1) {
		ev.Cost = -1
	}
	if rec.From != nil {
		from := rec.From.Cell
		ev.From = &from
	}
	o.Observer(ev)
}

// SearchResult summarizes a finished best-first search
type SearchResult struct {
	Outcome    Outcome
	Expanded   int
	Discovered int
}

// Search runs the best-first search from source to destination, writing into
// l. The ledger is reset first. Moves cost 1 orthogonally and √2 diagonally
// and the heuristic is the Manhattan distance. An unreachable destination is
// reported as Exhausted, not as an error; errors are reserved for bad
// coordinates and frontier overflow.
func Search(l *Ledger, source, destination Cell, opts ...Option) (SearchResult, error) {
	o := newOptions(opts)
	g := l.grid
	result := SearchResult{Outcome: Exhausted}

	if err := g.Validate(source); err != nil {
		return result, err
	}
	if err := g.Validate(destination); err != nil {
		return result, err
	}

	l.Reset(source, destination)
	if !g.Passable(source) {
		return result, nil
	}

	frontier := NewFrontier(o.FrontierCapacity)
	start := l.Record(source)
	start.Visited = true
	if err := frontier.Insert(start, 0); err != nil {
		return result, err
	}

	for frontier.Len() > 0 {
		current := frontier.ExtractMin()
		result.Expanded++
		o.emit(EventExpanded, current)

		// only the destination has a zero heuristic
		if current.Heuristic == 0 {
			result.Outcome = Found
			o.emit(EventFound, current)
			return result, nil
		}

		mask := g.Adjacency(current.Cell)
		for d := East; d <= NorthEast; d++ {
			if !mask.Has(d) {
				continue
			}

			next := l.Record(current.Cell.Step(d))
			cost := current.Cost + d.StepCost()

			if !next.Visited {
				next.Visited = true
				next.From = current
				if err := frontier.Insert(next, cost); err != nil {
					return result, fmt.Errorf("discovering (%d, %d): %w", next.Cell.Row, next.Cell.Col, err)
				}
				result.Discovered++
				o.emit(EventDiscovered, next)
			} else if o.Reopen && frontier.Contains(next) && cost < next.Cost {
				next.From = current
				frontier.Decrease(next, cost)
				o.emit(EventImproved, next)
			}
		}
	}

	o.emit(EventExhausted, l.Record(destination))
	return result, nil
}
