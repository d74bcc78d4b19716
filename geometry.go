package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// CellCenter returns the grid-space point sampled for c. Cell (r, c) covers
// [c, c+1) x [r, r+1). A centre lying on a polygon edge counts as inside.
func CellCenter(c Cell) orb.Point {
	return orb.Point{float64(c.Col) + 0.5, float64(c.Row) + 0.5}
}

// RasterizeZones marks as Obstacle every cell whose centre lies inside one of
// the zones and returns how many cells changed.
func RasterizeZones(terrain [][]Terrain, zones []orb.Polygon) int {
	zones = RemoveContainedZones(zones)
	index := NewSpatialIndex(zones)
	if index.Len() == 0 {
		return 0
	}

	blocked := 0
	for r := range terrain {
		for c := range terrain[r] {
			if terrain[r][c] == Obstacle {
				continue
			}
			center := CellCenter(Cell{Row: r, Col: c})
			candidates := index.QueryRegion(center[0], center[1], center[0], center[1])
			for _, zone := range candidates {
				if planar.PolygonContains(zone, center) {
					terrain[r][c] = Obstacle
					blocked++
					break
				}
			}
		}
	}

	return blocked
}
