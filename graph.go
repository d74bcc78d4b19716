package main

import "math"

// Terrain classifies a grid cell. Only Obstacle blocks movement; the marker
// values exist for rendering.
type Terrain uint8

const (
	Passable Terrain = iota
	Obstacle
	PathMarker
	SourceMarker
	DestinationMarker
)

// Passable reports whether a unit may stand on the cell
func (t Terrain) Passable() bool { return t != Obstacle }

// Cell is a grid coordinate
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction indexes the eight compass moves, clockwise from East.
type Direction uint8

const (
	East Direction = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

var directionOffsets = [8]Cell{
	{0, 1},   // East
	{1, 1},   // SouthEast
	{1, 0},   // South
	{1, -1},  // SouthWest
	{0, -1},  // West
	{-1, -1}, // NorthWest
	{-1, 0},  // North
	{-1, 1},  // NorthEast
}

func (d Direction) Diagonal() bool      { return d%2 == 1 }
func (d Direction) Opposite() Direction { return (d + 4) % 8 }

// StepCost is the Euclidean length of a single move in direction d
func (d Direction) StepCost() float64 {
	if d.Diagonal() {
		return math.Sqrt2
	}
	return 1
}

// Step returns the neighbour of c in direction d (possibly out of bounds)
func (c Cell) Step(d Direction) Cell {
	off := directionOffsets[d]
	return Cell{Row: c.Row + off.Row, Col: c.Col + off.Col}
}

// Manhattan returns |dr| + |dc|
func (c Cell) Manhattan(other Cell) int {
	return abs(c.Row-other.Row) + abs(c.Col-other.Col)
}

// AdjacencyMask has bit d set when the move in direction d is allowed
type AdjacencyMask uint8

func (m AdjacencyMask) Has(d Direction) bool { return m&(1<<d) != 0 }

// Grid is the static obstacle map with its precomputed adjacency. It is never
// mutated after BuildGrid, so any number of queries may read it at once.
type Grid struct {
	height, width int
	terrain       []Terrain
	masks         []AdjacencyMask
}

// BuildGrid copies a rectangular terrain matrix and computes every cell's
// adjacency mask. Diagonal moves require both flanking orthogonal cells to be
// passable so a path never cuts through a wall corner.
func BuildGrid(terrain [][]Terrain) (*Grid, error) {
	if len(terrain) == 0 || len(terrain[0]) == 0 {
		return nil, &MapError{Reason: "grid has no cells"}
	}

	g := &Grid{
		height: len(terrain),
		width:  len(terrain[0]),
	}
	g.terrain = make([]Terrain, g.height*g.width)
	g.masks = make([]AdjacencyMask, g.height*g.width)

	for r, row := range terrain {
		if len(row) != g.width {
			return nil, &MapError{Line: r + 1, Reason: "rows have different lengths"}
		}
		copy(g.terrain[r*g.width:], row)
	}

	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			cell := Cell{Row: r, Col: c}
			if !g.Passable(cell) {
				continue
			}
			var mask AdjacencyMask
			for d := East; d <= NorthEast; d++ {
				if g.canMove(cell, d) {
					mask |= 1 << d
				}
			}
			g.masks[g.index(cell)] = mask
		}
	}

	return g, nil
}

func (g *Grid) canMove(from Cell, d Direction) bool {
	to := from.Step(d)
	if !g.Passable(to) {
		return false
	}
	if !d.Diagonal() {
		return true
	}
	// flanking cells share the row of one end and the column of the other
	return g.Passable(Cell{Row: from.Row, Col: to.Col}) && g.Passable(Cell{Row: to.Row, Col: from.Col})
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

func (g *Grid) index(c Cell) int { return c.Row*g.width + c.Col }

// InBounds reports whether c lies inside the grid
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < g.height && c.Col < g.width
}

// Validate returns an *OutOfBoundsError for coordinates outside the grid
func (g *Grid) Validate(c Cell) error {
	if !g.InBounds(c) {
		return &OutOfBoundsError{Cell: c, Height: g.height, Width: g.width}
	}
	return nil
}

// Passable is false for obstacles and for anything out of bounds
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.terrain[g.index(c)].Passable()
}

// Terrain returns the raw terrain of an in-bounds cell
func (g *Grid) Terrain(c Cell) Terrain {
	return g.terrain[g.index(c)]
}

// Adjacency returns the mask of allowed moves out of c (zero for obstacles)
func (g *Grid) Adjacency(c Cell) AdjacencyMask {
	if !g.InBounds(c) {
		return 0
	}
	return g.masks[g.index(c)]
}

// Neighbors lists the cells reachable from c in one move, in direction order
func (g *Grid) Neighbors(c Cell) []Cell {
	mask := g.Adjacency(c)
	neighbors := make([]Cell, 0, 8)
	for d := East; d <= NorthEast; d++ {
		if mask.Has(d) {
			neighbors = append(neighbors, c.Step(d))
		}
	}
	return neighbors
}

// ObstacleCount returns the number of impassable cells
func (g *Grid) ObstacleCount() int {
	n := 0
	for _, t := range g.terrain {
		if !t.Passable() {
			n++
		}
	}
	return n
}

// Rows returns a copy of the terrain matrix
func (g *Grid) Rows() [][]Terrain {
	rows := make([][]Terrain, g.height)
	for r := range rows {
		rows[r] = make([]Terrain, g.width)
		copy(rows[r], g.terrain[r*g.width:(r+1)*g.width])
	}
	return rows
}

// Edge is one undirected adjacency between two cells
type Edge struct {
	From Cell    `json:"from"`
	To   Cell    `json:"to"`
	Cost float64 `json:"cost"`
}

// Edges returns each adjacency once, for visualization. Only the four
// "forward" directions are read since the masks are symmetric.
func (g *Grid) Edges() []Edge {
	edges := make([]Edge, 0)
	forward := [4]Direction{East, SouthEast, South, SouthWest}

	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			cell := Cell{Row: r, Col: c}
			mask := g.masks[g.index(cell)]
			for _, d := range forward {
				if mask.Has(d) {
					edges = append(edges, Edge{From: cell, To: cell.Step(d), Cost: d.StepCost()})
				}
			}
		}
	}

	return edges
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
