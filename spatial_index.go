package main

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// ZoneEntry wraps an obstacle polygon for R-tree storage
type ZoneEntry struct {
	Zone orb.Polygon
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (z *ZoneEntry) Bounds() rtreego.Rect {
	return z.BBox
}

// SpatialIndex answers "which obstacle zones may cover this region" queries
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex indexes zones by bounding box. Empty polygons are dropped.
func NewSpatialIndex(zones []orb.Polygon) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, zone := range zones {
		if len(zone) == 0 || len(zone[0]) == 0 {
			continue
		}
		bbox, err := boundToRect(zone.Bound())
		if err == nil {
			tree.Insert(&ZoneEntry{Zone: zone, BBox: bbox})
		}
	}

	return &SpatialIndex{tree: tree}
}

// Len returns the number of indexed zones
func (si *SpatialIndex) Len() int {
	return si.tree.Size()
}

// QueryRegion returns zones whose bounding box intersects or touches the given
// box. A point query (minX == maxX, minY == maxY) finds zones whose edge passes
// through the point.
func (si *SpatialIndex) QueryRegion(minX, minY, maxX, maxY float64) []orb.Polygon {
	// rtreego skips boxes that only share a side, so grow the query by
	// minExtent on every side.
	bbox, err := boundToRect(orb.Bound{
		Min: orb.Point{minX - minExtent, minY - minExtent},
		Max: orb.Point{maxX + minExtent, maxY + minExtent},
	})
	if err != nil {
		return []orb.Polygon{}
	}

	results := si.tree.SearchIntersect(bbox)
	zones := make([]orb.Polygon, 0, len(results))

	for _, item := range results {
		entry := item.(*ZoneEntry)
		zones = append(zones, entry.Zone)
	}

	return zones
}

// minExtent keeps degenerate boxes (a horizontal wall, a single point) valid
// for rtreego, which rejects zero-length sides.
const minExtent = 1e-9

func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{math.Max(b.Max[0]-b.Min[0], minExtent), math.Max(b.Max[1]-b.Min[1], minExtent)},
	)
}
