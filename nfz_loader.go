package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"
)

// LoadObstacleZones reads obstacle polygons from a GeoJSON feature collection.
// Coordinates are in grid space: x is the column, y is the row.
func LoadObstacleZones(path string) ([]orb.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read obstacles: %w", err)
	}

	zones, err := ParseObstacleZones(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	log.Printf("   ✅ Loaded %d obstacle polygons from %s", len(zones), filepath.Base(path))
	return zones, nil
}

// ParseObstacleZones extracts every Polygon, MultiPolygon and bbox geometry
// from a feature collection. Other geometry types are skipped.
func ParseObstacleZones(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var zones []orb.Polygon
	for i, feature := range fc.Features {
		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			zones = append(zones, geom)
		case orb.MultiPolygon:
			zones = append(zones, geom...)
		case orb.Bound:
			zones = append(zones, geom.ToPolygon())
		default:
			log.Warnf("⚠️  Skipping feature %d: unsupported geometry %T", i, feature.Geometry)
		}
	}

	return zones, nil
}
