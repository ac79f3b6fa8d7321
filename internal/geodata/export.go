package geodata

import (
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteFeatureCollection renders waypoints as Point features and segments as
// LineString features tagged with the type of their destination waypoint
func RouteFeatureCollection(waypoints []models.Waypoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, wp := range waypoints {
		f := geojson.NewFeature(ToOrbPoint(wp.Coordinate))
		f.Properties["kind"] = "waypoint"
		f.Properties["index"] = i
		f.Properties["type"] = string(wp.Type)
		f.Properties["distance_km"] = wp.DistanceKm
		fc.Append(f)
	}

	for i := 1; i < len(waypoints); i++ {
		from, to := waypoints[i-1], waypoints[i]
		line := orb.LineString{ToOrbPoint(from.Coordinate), ToOrbPoint(to.Coordinate)}

		f := geojson.NewFeature(line)
		f.Properties["kind"] = "segment"
		f.Properties["from"] = i - 1
		f.Properties["to"] = i
		f.Properties["type"] = string(to.Type)
		f.Properties["distance_km"] = to.DistanceKm
		f.Properties["bearing_deg"] = spatial.Bearing(from.Coordinate, to.Coordinate)
		fc.Append(f)
	}

	return fc
}
