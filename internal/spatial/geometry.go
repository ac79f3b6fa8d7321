package spatial

import (
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/paulmach/orb"
)

// PointInRing checks if a point is inside a ring using ray casting.
// The ring may or may not repeat its first vertex at the end.
func PointInRing(point models.Coordinate, ring []models.Coordinate) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1

	for i := 0; i < len(ring); i++ {
		if ((ring[i].Lat > point.Lat) != (ring[j].Lat > point.Lat)) &&
			(point.Lng < (ring[j].Lng-ring[i].Lng)*(point.Lat-ring[i].Lat)/(ring[j].Lat-ring[i].Lat)+ring[i].Lng) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// PointInPolygon applies the even-odd rule over every ring, so holes exclude
func PointInPolygon(point models.Coordinate, polygon models.Polygon) bool {
	inside := false
	for _, ring := range polygon.Rings {
		if PointInRing(point, ring) {
			inside = !inside
		}
	}
	return inside
}

// BoundingBox calculates the bounding box of a polygon's outer ring
func BoundingBox(polygon models.Polygon) orb.Bound {
	if len(polygon.Rings) == 0 || len(polygon.Rings[0]) == 0 {
		return orb.Bound{}
	}

	outer := polygon.Rings[0]
	first := toOrbPoint(outer[0])
	bound := orb.Bound{Min: first, Max: first}
	for _, c := range outer[1:] {
		bound = bound.Extend(toOrbPoint(c))
	}
	return bound
}

func toOrbPoint(c models.Coordinate) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}
