// Package geodata loads the land and water polygon datasets and renders
// routes as GeoJSON.
package geodata

import (
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/paulmach/orb"
)

// FromOrbPolygon converts an orb polygon ([lng, lat] points) to a model polygon
func FromOrbPolygon(p orb.Polygon) models.Polygon {
	rings := make([][]models.Coordinate, 0, len(p))
	for _, ring := range p {
		coords := make([]models.Coordinate, len(ring))
		for i, pt := range ring {
			coords[i] = models.Coordinate{Lat: pt.Lat(), Lng: pt.Lon()}
		}
		rings = append(rings, coords)
	}
	return models.Polygon{Rings: rings}
}

// FromOrbPolygons converts a slice of orb polygons
func FromOrbPolygons(polygons []orb.Polygon) []models.Polygon {
	out := make([]models.Polygon, len(polygons))
	for i, p := range polygons {
		out[i] = FromOrbPolygon(p)
	}
	return out
}

// ToOrbPoint converts a coordinate to an orb point
func ToOrbPoint(c models.Coordinate) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}
