package main

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func search(t *testing.T, g *Grid, src, dst Cell, opts ...Option) (*Ledger, SearchResult) {
	t.Helper()
	l := NewLedger(g)
	res, err := Search(l, src, dst, opts...)
	require.NoError(t, err)
	return l, res
}

func TestSearchScenarios(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		src, dst Cell
		want     []Cell // nil when unreachable
		cost     float64
	}{
		{
			name: "open grid takes the diagonal",
			rows: []string{"000", "000", "000"},
			src:  Cell{0, 0}, dst: Cell{2, 2},
			want: []Cell{{0, 0}, {1, 1}, {2, 2}},
			cost: 2 * math.Sqrt2,
		},
		{
			name: "source equals destination",
			rows: []string{"000", "000", "000"},
			src:  Cell{1, 1}, dst: Cell{1, 1},
			want: []Cell{{1, 1}},
		},
		{
			name: "walled off corner",
			rows: []string{"010", "110", "000"},
			src:  Cell{0, 0}, dst: Cell{2, 2},
		},
		{
			name: "enclosed destination",
			rows: []string{"00000", "01110", "01010", "01110", "00000"},
			src:  Cell{0, 0}, dst: Cell{2, 2},
		},
		{
			name: "diagonal gap between walls is closed",
			rows: []string{"01", "10"},
			src:  Cell{0, 0}, dst: Cell{1, 1},
		},
		{
			name: "obstacle source",
			rows: []string{"100", "000"},
			src:  Cell{0, 0}, dst: Cell{1, 2},
		},
		{
			name: "serpentine corridor",
			rows: []string{"0000", "1110", "0000", "0111", "0000"},
			src:  Cell{0, 0}, dst: Cell{4, 3},
			want: []Cell{
				{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 3}, {2, 3}, {2, 2},
				{2, 1}, {2, 0}, {3, 0}, {4, 0}, {4, 1}, {4, 2}, {4, 3},
			},
			cost: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFromRows(t, tt.rows...)
			l, res := search(t, g, tt.src, tt.dst)

			path, err := ExtractPath(l, res.Outcome)
			if tt.want == nil {
				assert.Equal(t, Exhausted, res.Outcome)
				assert.ErrorIs(t, err, ErrUnreachable)
				return
			}

			require.Equal(t, Found, res.Outcome)
			require.NoError(t, err)
			assert.Equal(t, tt.want, path.Cells)
			assert.Equal(t, len(tt.want)-1, path.Steps)
			assert.InDelta(t, tt.cost, path.Cost, 1e-9)
		})
	}
}

func TestSearchExpansionCount(t *testing.T) {
	g := gridFromRows(t, "000", "000", "000")
	_, res := search(t, g, Cell{0, 0}, Cell{2, 2})
	assert.Equal(t, 3, res.Expanded)
	assert.Equal(t, 8, res.Discovered)
}

func TestSearchOutOfBounds(t *testing.T) {
	g := gridFromRows(t, "000", "000")
	l := NewLedger(g)

	_, err := Search(l, Cell{-1, 0}, Cell{1, 1})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = Search(l, Cell{0, 0}, Cell{2, 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSearchFrontierOverflow(t *testing.T) {
	g := gridFromRows(t, "000", "000", "000")
	l := NewLedger(g)

	_, err := Search(l, Cell{0, 0}, Cell{2, 2}, WithFrontierCapacity(1))
	require.ErrorIs(t, err, ErrFrontierOverflow)

	// a roomier bound behaves like the unbounded search
	_, res := search(t, g, Cell{0, 0}, Cell{2, 2}, WithFrontierCapacity(DefaultFrontierCapacity))
	assert.Equal(t, Found, res.Outcome)
}

func TestSearchIsRepeatable(t *testing.T) {
	g, err := BuildGrid(DefaultTerrain())
	require.NoError(t, err)
	l := NewLedger(g)

	var first Path
	for i := 0; i < 3; i++ {
		res, err := Search(l, Cell{0, 0}, Cell{14, 19})
		require.NoError(t, err)
		path, err := ExtractPath(l, res.Outcome)
		require.NoError(t, err)
		if i == 0 {
			first = path
			continue
		}
		assert.Equal(t, first, path)
	}
}

func TestSearchFirstVisitIsFinal(t *testing.T) {
	// the detour east of the pillar is found first and never revised
	g := gridFromRows(t, "000", "010", "000", "000")

	l, res := search(t, g, Cell{0, 0}, Cell{3, 2})
	path, err := ExtractPath(l, res.Outcome)
	require.NoError(t, err)
	assert.Equal(t, 5, path.Steps)

	hops := NewLedger(g)
	_, err = BreadthFirst(hops, Cell{0, 0}, Cell{3, 2})
	require.NoError(t, err)
	n, ok := HopCount(hops, Cell{3, 2})
	require.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestSearchWithReopening(t *testing.T) {
	g := gridFromRows(t, "000", "000", "000")
	l, res := search(t, g, Cell{0, 0}, Cell{2, 2}, WithReopening())
	path, err := ExtractPath(l, res.Outcome)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 0}, {1, 1}, {2, 2}}, path.Cells)
}

func TestSearchEvents(t *testing.T) {
	g := gridFromRows(t, "000", "000", "000")

	var events []Event
	_, res := search(t, g, Cell{0, 0}, Cell{2, 2}, WithObserver(func(ev Event) {
		events = append(events, ev)
	}))
	require.Equal(t, Found, res.Outcome)
	require.NotEmpty(t, events)

	first := events[0]
	assert.Equal(t, EventExpanded, first.Kind)
	assert.Equal(t, Cell{0, 0}, first.Cell)
	assert.Nil(t, first.From)

	last := events[len(events)-1]
	assert.Equal(t, EventFound, last.Kind)
	assert.Equal(t, Cell{2, 2}, last.Cell)
	require.NotNil(t, last.From)
	assert.Equal(t, Cell{1, 1}, *last.From)

	expanded := 0
	for _, ev := range events {
		if ev.Kind == EventExpanded {
			expanded++
		}
	}
	assert.Equal(t, res.Expanded, expanded)
}

func TestSearchExhaustedEventEncodes(t *testing.T) {
	g := gridFromRows(t, "010", "110", "000")

	var last Event
	_, res := search(t, g, Cell{0, 0}, Cell{2, 2}, WithObserver(func(ev Event) { last = ev }))
	require.Equal(t, Exhausted, res.Outcome)
	assert.Equal(t, EventExhausted, last.Kind)
	assert.Equal(t, -1.0, last.Cost)

	data, err := json.Marshal(last)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"exhausted"`)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, last, decoded)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "exhausted", Exhausted.String())
}
