package geodata

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoPolygons is returned when a GeoJSON document holds no polygon geometry
var ErrNoPolygons = errors.New("no polygon geometry found")

// LoadGeoJSONFile reads polygons from a GeoJSON file
func LoadGeoJSONFile(path string) ([]orb.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	polygons, err := ParseGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return polygons, nil
}

// ParseGeoJSON extracts Polygon and MultiPolygon geometries from a
// FeatureCollection, a single Feature or a bare Geometry. Other geometry
// types are skipped.
func ParseGeoJSON(data []byte) ([]orb.Polygon, error) {
	var geometries []orb.Geometry

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && fc.Type == "FeatureCollection" {
		for _, f := range fc.Features {
			geometries = append(geometries, f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(data); err == nil && f.Type == "Feature" {
		geometries = append(geometries, f.Geometry)
	} else {
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("not a GeoJSON feature collection, feature or geometry: %w", err)
		}
		geometries = append(geometries, g.Geometry())
	}

	polygons := collectPolygons(geometries)
	if len(polygons) == 0 {
		return nil, ErrNoPolygons
	}
	return polygons, nil
}

func collectPolygons(geometries []orb.Geometry) []orb.Polygon {
	var polygons []orb.Polygon
	for _, g := range geometries {
		switch geom := g.(type) {
		case orb.Polygon:
			polygons = append(polygons, geom)
		case orb.MultiPolygon:
			polygons = append(polygons, geom...)
		case orb.Collection:
			polygons = append(polygons, collectPolygons(geom)...)
		}
	}
	return polygons
}
