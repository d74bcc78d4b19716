package main

import (
	"errors"
	"fmt"
)

// Sentinel errors for the planner
var (
	ErrOutOfBounds              = errors.New("cell out of bounds")
	ErrUnreachable              = errors.New("destination unreachable")
	ErrFrontierOverflow         = errors.New("frontier capacity exceeded")
	ErrInconsistentVerification = errors.New("breadth-first verification disagrees with best-first search")
	ErrInvalidGrid              = errors.New("invalid grid")
)

// OutOfBoundsError reports a coordinate outside the grid
type OutOfBoundsError struct {
	Cell          Cell
	Height, Width int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) outside %dx%d grid", e.Cell.Row, e.Cell.Col, e.Height, e.Width)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// OverflowError reports that a bounded frontier or queue was full
type OverflowError struct {
	Capacity int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("frontier capacity %d exceeded", e.Capacity)
}

func (e *OverflowError) Is(target error) bool {
	return target == ErrFrontierOverflow
}

// VerificationError carries both step counts when the cross-check fails.
// A count of -1 means that side found no path.
type VerificationError struct {
	Source       Cell
	Destination  Cell
	BestFirst    int
	BreadthFirst int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed for (%d, %d) -> (%d, %d): best-first %d steps, breadth-first %d steps",
		e.Source.Row, e.Source.Col, e.Destination.Row, e.Destination.Col, e.BestFirst, e.BreadthFirst)
}

func (e *VerificationError) Is(target error) bool {
	return target == ErrInconsistentVerification
}

// MapError represents a malformed map document
type MapError struct {
	Line   int
	Reason string
}

func (e *MapError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid grid at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid grid: %s", e.Reason)
}

func (e *MapError) Is(target error) bool {
	return target == ErrInvalidGrid
}
