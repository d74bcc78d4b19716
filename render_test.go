package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMap(t *testing.T) {
	g := gridFromRows(t, "01", "00")
	assert.Equal(t, "□▓\n□□\n", RenderMap(g, false))
	assert.Contains(t, RenderMap(g, true), "▓")
}

func TestRenderRoute(t *testing.T) {
	g := gridFromRows(t, "000", "000", "000")
	result, err := NewPlanner(g).Route(Cell{0, 0}, Cell{2, 2})
	require.NoError(t, err)

	assert.Equal(t, "☆□□\n□▽□\n□□◎\n", RenderRoute(g, result, false))
	// the grid itself is untouched
	assert.Equal(t, "□□□\n□□□\n□□□\n", RenderMap(g, false))
}

func TestRenderRouteUnreachable(t *testing.T) {
	g := gridFromRows(t, "010", "110", "000")
	result, err := NewPlanner(g).Route(Cell{0, 0}, Cell{2, 2})
	require.NoError(t, err)
	assert.Equal(t, "☆▓□\n▓▓□\n□□◎\n", RenderRoute(g, result, false))
}

func TestTerrainGlyph(t *testing.T) {
	assert.Equal(t, "□", Passable.Glyph())
	assert.Equal(t, "▓", Obstacle.Glyph())
	assert.Equal(t, "▽", PathMarker.Glyph())
	assert.Equal(t, "☆", SourceMarker.Glyph())
	assert.Equal(t, "◎", DestinationMarker.Glyph())
	assert.Equal(t, "?", Terrain(42).Glyph())
}

func TestRenderTables(t *testing.T) {
	g := gridFromRows(t, "00", "00")
	assert.Equal(t, "07 1c \nc1 70 \n", RenderAdjacency(g))

	l := NewLedger(g)
	l.Reset(Cell{0, 0}, Cell{0, 0})
	assert.Equal(t, "00 01 \n01 02 \n", RenderHeuristic(l))

	corridor := gridFromRows(t, "010")
	l = NewLedger(corridor)
	_, err := BreadthFirst(l, Cell{0, 0}, Cell{0, 0})
	require.NoError(t, err)
	assert.Equal(t, " 0 ▓  -- \n", RenderDepth(l))
}

func TestFormatPath(t *testing.T) {
	path := Path{Cells: []Cell{{0, 0}, {1, 1}, {2, 2}}, Steps: 2}
	assert.Equal(t, "(0, 0) →\n(1, 1) →\n(2, 2)\n", FormatPath(path))
	assert.Equal(t, "(3, 4)\n", FormatPath(Path{Cells: []Cell{{3, 4}}}))
}

func TestSummary(t *testing.T) {
	path := &Path{Cells: []Cell{{0, 0}, {1, 1}, {2, 2}}, Steps: 2, Cost: 2.8284271247461903}

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name: "verified",
			result: Result{Source: Cell{0, 0}, Destination: Cell{2, 2}, Found: true, Path: path,
				Verification: &Verification{BestFirstSteps: 2, BreadthFirstSteps: 2, Passed: true}},
			want: "(0, 0) -> (2, 2): reachable, steps = 2, cost = 2.83, verification passed",
		},
		{
			name:   "unchecked",
			result: Result{Source: Cell{0, 0}, Destination: Cell{2, 2}, Found: true, Path: path},
			want:   "(0, 0) -> (2, 2): reachable, steps = 2, cost = 2.83, verification skipped",
		},
		{
			name: "unreachable",
			result: Result{Source: Cell{0, 0}, Destination: Cell{4, 1},
				Verification: &Verification{BestFirstSteps: -1, BreadthFirstSteps: -1, Passed: true}},
			want: "(0, 0) -> (4, 1): unreachable, verification passed",
		},
		{
			name: "disagreement",
			result: Result{Source: Cell{0, 0}, Destination: Cell{2, 2}, Found: true, Path: path,
				Verification: &Verification{BestFirstSteps: 2, BreadthFirstSteps: 1}},
			want: "(0, 0) -> (2, 2): reachable, steps = 2, cost = 2.83, verification failed (breadth-first steps = 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.result))
		})
	}
}
