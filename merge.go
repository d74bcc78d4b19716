package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RemoveContainedZones drops polygons that lie entirely inside another one.
// Rasterizing them would change nothing, and duplicates collapse to a single
// copy.
func RemoveContainedZones(zones []orb.Polygon) []orb.Polygon {
	if len(zones) <= 1 {
		return zones
	}

	result := make([]orb.Polygon, 0, len(zones))
	contained := make([]bool, len(zones))

	for i := 0; i < len(zones); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(zones); j++ {
			if i == j || contained[j] {
				continue
			}

			if isZoneContainedIn(zones[i], zones[j]) {
				contained[i] = true
				break
			}

			if isZoneContainedIn(zones[j], zones[i]) {
				contained[j] = true
			}
		}
	}

	for i := 0; i < len(zones); i++ {
		if !contained[i] {
			result = append(result, zones[i])
		}
	}

	return result
}

// isZoneContainedIn checks whether every vertex of a's outer ring is inside b
func isZoneContainedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 || len(a[0]) == 0 || len(b[0]) == 0 {
		return false
	}

	ab, bb := a.Bound(), b.Bound()
	if !bb.Contains(ab.Min) || !bb.Contains(ab.Max) {
		return false
	}

	for _, vertex := range a[0] {
		if !planar.PolygonContains(b, vertex) {
			return false
		}
	}

	return true
}
