package main

import (
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Planner answers route queries against one immutable grid. Every call to
// Route works on its own ledger, so a Planner may serve concurrent queries.
type Planner struct {
	grid *Grid
	opts []Option
}

// Result is the answer to one route query
type Result struct {
	ID           string        `json:"id"`
	Source       Cell          `json:"source"`
	Destination  Cell          `json:"destination"`
	Found        bool          `json:"found"`
	Path         *Path         `json:"path,omitempty"`
	Expanded     int           `json:"expanded"`
	Verification *Verification `json:"verification,omitempty"`
}

// NewPlanner creates a planner over g. The options apply to every query.
func NewPlanner(g *Grid, opts ...Option) *Planner {
	return &Planner{grid: g, opts: opts}
}

func (p *Planner) Grid() *Grid { return p.grid }

// Route finds a path from source to destination and, unless disabled, checks
// its step count against a breadth-first traversal. An unreachable
// destination is a Result with Found false. When the check fails the full
// Result is returned along with an error matching ErrInconsistentVerification.
func (p *Planner) Route(source, destination Cell, extra ...Option) (Result, error) {
	opts := append(append([]Option{}, p.opts...), extra...)
	o := newOptions(opts)

	result := Result{
		ID:          uuid.NewString(),
		Source:      source,
		Destination: destination,
	}
	logger := log.WithFields(log.Fields{
		"query":       result.ID,
		"source":      source,
		"destination": destination,
	})

	if err := p.grid.Validate(source); err != nil {
		return result, err
	}
	if err := p.grid.Validate(destination); err != nil {
		return result, err
	}

	ledger := NewLedger(p.grid)
	search, err := Search(ledger, source, destination, opts...)
	result.Expanded = search.Expanded
	if err != nil {
		logger.Errorf("search failed: %v", err)
		return result, err
	}

	path, err := ExtractPath(ledger, search.Outcome)
	switch {
	case err == nil:
		result.Found = true
		result.Path = &path
	case errors.Is(err, ErrUnreachable):
	default:
		return result, err
	}

	if o.Verify {
		v, err := Verify(p.grid, source, destination, result.Path, opts...)
		result.Verification = &v
		if err != nil {
			logger.Warnf("verification failed: %v", err)
			return result, err
		}
	}

	if result.Found {
		logger.WithFields(log.Fields{
			"steps":    path.Steps,
			"cost":     path.Cost,
			"expanded": search.Expanded,
		}).Debug("route found")
	} else {
		logger.WithField("expanded", search.Expanded).Debug("destination unreachable")
	}

	return result, nil
}
