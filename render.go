package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs are indexed by Terrain
var glyphs = [...]string{"□", "▓", "▽", "☆", "◎"}

var (
	passableStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")) // Gray
	obstacleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")) // Red
	pathStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	destinationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)

	terrainStyles = [...]lipgloss.Style{passableStyle, obstacleStyle, pathStyle, sourceStyle, destinationStyle}
)

// Glyph returns the display character of t
func (t Terrain) Glyph() string {
	if int(t) < len(glyphs) {
		return glyphs[t]
	}
	return "?"
}

// DisplayTerrain overlays a route on the grid's terrain: path cells become
// PathMarker, then the endpoints get their own markers. The grid is not
// modified.
func DisplayTerrain(g *Grid, source, destination *Cell, path *Path) [][]Terrain {
	display := g.Rows()
	if path != nil {
		for _, c := range path.Cells {
			display[c.Row][c.Col] = PathMarker
		}
	}
	if source != nil && g.InBounds(*source) {
		display[source.Row][source.Col] = SourceMarker
	}
	if destination != nil && g.InBounds(*destination) {
		display[destination.Row][destination.Col] = DestinationMarker
	}
	return display
}

// RenderTerrain draws one glyph per cell, optionally coloured
func RenderTerrain(display [][]Terrain, styled bool) string {
	var sb strings.Builder
	for _, row := range display {
		for _, t := range row {
			glyph := t.Glyph()
			if styled && int(t) < len(terrainStyles) {
				glyph = terrainStyles[t].Render(glyph)
			}
			sb.WriteString(glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderMap draws the bare grid
func RenderMap(g *Grid, styled bool) string {
	return RenderTerrain(g.Rows(), styled)
}

// RenderRoute draws the grid with the result's endpoints and path
func RenderRoute(g *Grid, result Result, styled bool) string {
	return RenderTerrain(DisplayTerrain(g, &result.Source, &result.Destination, result.Path), styled)
}

// RenderDepth prints breadth-first hop counts from a ledger filled by
// BreadthFirst. Obstacles show their glyph and unreached cells "--".
func RenderDepth(l *Ledger) string {
	g := l.Grid()
	var sb strings.Builder
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			cell := Cell{Row: r, Col: c}
			if !g.Passable(cell) {
				sb.WriteString(Obstacle.Glyph())
				sb.WriteString("  ")
				continue
			}
			if hops, ok := HopCount(l, cell); ok {
				fmt.Fprintf(&sb, "%2d ", hops)
			} else {
				sb.WriteString("-- ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderAdjacency prints every cell's adjacency mask in hex
func RenderAdjacency(g *Grid) string {
	var sb strings.Builder
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			fmt.Fprintf(&sb, "%02x ", uint8(g.Adjacency(Cell{Row: r, Col: c})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderHeuristic prints the Manhattan estimate held by each record
func RenderHeuristic(l *Ledger) string {
	g := l.Grid()
	var sb strings.Builder
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			fmt.Fprintf(&sb, "%02d ", l.Record(Cell{Row: r, Col: c}).Heuristic)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatPath lists the path one cell per line, arrows between cells
func FormatPath(path Path) string {
	var sb strings.Builder
	for i, c := range path.Cells {
		fmt.Fprintf(&sb, "(%d, %d)", c.Row, c.Col)
		if i < len(path.Cells)-1 {
			sb.WriteString(" →")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary is the one-line human readable verdict of a query
func Summary(result Result) string {
	src, dst := result.Source, result.Destination
	var sb strings.Builder
	if result.Found {
		fmt.Fprintf(&sb, "(%d, %d) -> (%d, %d): reachable, steps = %d, cost = %.2f",
			src.Row, src.Col, dst.Row, dst.Col, result.Path.Steps, result.Path.Cost)
	} else {
		fmt.Fprintf(&sb, "(%d, %d) -> (%d, %d): unreachable", src.Row, src.Col, dst.Row, dst.Col)
	}

	switch {
	case result.Verification == nil:
		sb.WriteString(", verification skipped")
	case result.Verification.Passed:
		sb.WriteString(", verification passed")
	default:
		fmt.Fprintf(&sb, ", verification failed (breadth-first steps = %d)", result.Verification.BreadthFirstSteps)
	}
	return sb.String()
}
