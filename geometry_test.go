package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}
}

func openTerrain(height, width int) [][]Terrain {
	terrain := make([][]Terrain, height)
	for r := range terrain {
		terrain[r] = make([]Terrain, width)
	}
	return terrain
}

func TestCellCenter(t *testing.T) {
	assert.Equal(t, orb.Point{0.5, 0.5}, CellCenter(Cell{0, 0}))
	assert.Equal(t, orb.Point{4.5, 2.5}, CellCenter(Cell{Row: 2, Col: 4}))
}

func TestRasterizeZones(t *testing.T) {
	terrain := openTerrain(5, 5)
	terrain[0][0] = Obstacle

	blocked := RasterizeZones(terrain, []orb.Polygon{square(1, 1, 3, 3)})
	assert.Equal(t, 4, blocked)

	g, err := BuildGrid(terrain)
	require.NoError(t, err)
	assert.Equal(t, []string{"10000", "01100", "01100", "00000", "00000"}, FormatRows(g))
}

func TestRasterizeZonesTriangle(t *testing.T) {
	terrain := openTerrain(4, 4)
	// hypotenuse x = y/2 passes between cell centres
	tri := orb.Polygon{orb.Ring{{0, 0}, {0, 4}, {2, 4}, {0, 0}}}

	assert.Equal(t, 4, RasterizeZones(terrain, []orb.Polygon{tri}))
	g, err := BuildGrid(terrain)
	require.NoError(t, err)
	assert.Equal(t, []string{"0000", "1000", "1000", "1100"}, FormatRows(g))
}

func TestRasterizeZonesEdgeThroughCentre(t *testing.T) {
	tests := []struct {
		name string
		zone orb.Polygon
	}{
		{"right edge", square(0, 0, 0.5, 1)},
		{"left edge", square(0.5, 0, 1, 1)},
		{"top edge", square(0, 0, 1, 0.5)},
		{"bottom edge", square(0, 0.5, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terrain := openTerrain(1, 1)
			assert.Equal(t, 1, RasterizeZones(terrain, []orb.Polygon{tt.zone}))
			assert.Equal(t, Obstacle, terrain[0][0])
		})
	}
}

func TestRasterizeZonesNoZones(t *testing.T) {
	terrain := openTerrain(2, 2)
	assert.Equal(t, 0, RasterizeZones(terrain, nil))
	assert.Equal(t, openTerrain(2, 2), terrain)
}

func TestRemoveContainedZones(t *testing.T) {
	outer := square(0, 0, 10, 10)
	inner := square(2, 2, 4, 4)
	apart := square(20, 20, 25, 25)

	kept := RemoveContainedZones([]orb.Polygon{inner, outer, apart})
	assert.Equal(t, []orb.Polygon{outer, apart}, kept)

	// duplicates collapse to one copy
	kept = RemoveContainedZones([]orb.Polygon{outer, outer})
	assert.Len(t, kept, 1)

	// overlapping zones are both kept
	kept = RemoveContainedZones([]orb.Polygon{square(0, 0, 4, 4), square(2, 2, 6, 6)})
	assert.Len(t, kept, 2)
}

func TestRasterizeNestedZones(t *testing.T) {
	terrain := openTerrain(4, 4)
	blocked := RasterizeZones(terrain, []orb.Polygon{square(1, 1, 2, 2), square(0, 0, 4, 4)})
	assert.Equal(t, 16, blocked)
}

func TestParseObstacleZones(t *testing.T) {
	data := `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "MultiPolygon", "coordinates": [
      [[[2, 2], [3, 2], [3, 3], [2, 2]]],
      [[[5, 5], [6, 5], [6, 6], [5, 5]]]
    ]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [7, 7]}}
  ]
}`
	zones, err := ParseObstacleZones([]byte(data))
	require.NoError(t, err)
	require.Len(t, zones, 3)
	assert.Equal(t, orb.Point{5, 5}, zones[2][0][0])

	_, err = ParseObstacleZones([]byte(`{"type": "FeatureCollection", "features": [`))
	assert.Error(t, err)
}

func TestSpatialIndex(t *testing.T) {
	near := square(0, 0, 2, 2)
	far := square(10, 10, 12, 12)
	wall := orb.Polygon{orb.Ring{{4, 5}, {8, 5}, {4, 5}}} // zero height
	index := NewSpatialIndex([]orb.Polygon{near, far, wall, {}})

	assert.Equal(t, 3, index.Len())
	assert.Equal(t, []orb.Polygon{near}, index.QueryRegion(1, 1, 1.5, 1.5))
	assert.Len(t, index.QueryRegion(0, 0, 12, 12), 3)
	assert.Equal(t, []orb.Polygon{wall}, index.QueryRegion(5, 4, 6, 6))
	assert.Empty(t, index.QueryRegion(20, 20, 21, 21))

	// boxes that only touch still match
	assert.Equal(t, []orb.Polygon{near}, index.QueryRegion(2, 1, 2, 1))
	assert.Equal(t, []orb.Polygon{near}, index.QueryRegion(1, 2, 3, 3))
}
