package spatial

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/paulmach/orb"
)

// Region answers point containment against a polygon dataset
type Region interface {
	Contains(c models.Coordinate) bool
}

// Backend selects the containment implementation
type Backend string

// Backend constants
const (
	BackendPlanar Backend = "planar" // ray casting in lat/lng space
	BackendS2     Backend = "s2"     // spherical loops
)

// ParseBackend parses a backend name. An empty string selects planar.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendPlanar:
		return BackendPlanar, nil
	case BackendS2:
		return BackendS2, nil
	}
	return "", fmt.Errorf("unknown containment backend %q (want planar or s2)", s)
}

// NewRegion builds a region over polygons with the given backend
func NewRegion(backend Backend, polygons []models.Polygon) (Region, error) {
	switch backend {
	case BackendPlanar, "":
		return NewPolygonSet(polygons), nil
	case BackendS2:
		return NewLoopSet(polygons), nil
	}
	return nil, fmt.Errorf("unknown containment backend %q", backend)
}

// PolygonSet is a planar region with a bounding-box prefilter per polygon
type PolygonSet struct {
	polygons []boundedPolygon
}

type boundedPolygon struct {
	bound   orb.Bound
	polygon models.Polygon
}

// NewPolygonSet creates a planar region. Polygons without an outer ring are skipped.
func NewPolygonSet(polygons []models.Polygon) *PolygonSet {
	set := &PolygonSet{polygons: make([]boundedPolygon, 0, len(polygons))}
	for _, p := range polygons {
		if len(p.Rings) == 0 || len(p.Rings[0]) < 3 {
			continue
		}
		set.polygons = append(set.polygons, boundedPolygon{bound: BoundingBox(p), polygon: p})
	}
	return set
}

// Contains reports whether any polygon contains c
func (s *PolygonSet) Contains(c models.Coordinate) bool {
	pt := toOrbPoint(c)
	for _, p := range s.polygons {
		if !p.bound.Contains(pt) {
			continue
		}
		if PointInPolygon(c, p.polygon) {
			return true
		}
	}
	return false
}

// Len returns the number of usable polygons
func (s *PolygonSet) Len() int {
	return len(s.polygons)
}

// LoopSet is a spherical region backed by S2 loops
type LoopSet struct {
	polygons [][]*s2.Loop
}

// NewLoopSet creates an S2 region. Rings with fewer than three distinct
// vertices are skipped; a polygon whose outer ring is skipped is dropped.
func NewLoopSet(polygons []models.Polygon) *LoopSet {
	set := &LoopSet{polygons: make([][]*s2.Loop, 0, len(polygons))}
	for _, p := range polygons {
		var loops []*s2.Loop
		for i, ring := range p.Rings {
			loop := ringToLoop(ring)
			if loop == nil {
				if i == 0 {
					break
				}
				continue
			}
			loops = append(loops, loop)
		}
		if len(loops) > 0 {
			set.polygons = append(set.polygons, loops)
		}
	}
	return set
}

// Contains reports whether any polygon contains c. Within a polygon the
// point must lie in an odd number of loops, so holes exclude.
func (s *LoopSet) Contains(c models.Coordinate) bool {
	pt := s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lng))
	for _, loops := range s.polygons {
		inside := false
		for _, loop := range loops {
			if loop.ContainsPoint(pt) {
				inside = !inside
			}
		}
		if inside {
			return true
		}
	}
	return false
}

// Len returns the number of usable polygons
func (s *LoopSet) Len() int {
	return len(s.polygons)
}

// ringToLoop drops the closing vertex and consecutive duplicates. A
// counter-clockwise ring encloses its left side as given, so rings larger
// than a hemisphere keep their interior; a clockwise ring is inverted.
func ringToLoop(ring []models.Coordinate) *s2.Loop {
	points := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lng))
		if n := len(points); n > 0 && points[n-1].ApproxEqual(p) {
			continue
		}
		points = append(points, p)
	}
	if n := len(points); n > 1 && points[0].ApproxEqual(points[n-1]) {
		points = points[:n-1]
	}
	if len(points) < 3 {
		return nil
	}

	loop := s2.LoopFromPoints(points)
	if clockwise(ring) {
		loop.Invert()
	}
	return loop
}

// clockwise reports whether ring winds clockwise on a lng/lat map, with
// longitudes unwrapped across the antimeridian. A ring that circles a pole
// has no planar winding and reports false.
func clockwise(ring []models.Coordinate) bool {
	var area, sweep float64
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		dLng := b.Lng - a.Lng
		if dLng > 180 {
			dLng -= 360
		} else if dLng < -180 {
			dLng += 360
		}
		sweep += dLng
		area += dLng * (a.Lat + b.Lat)
	}
	if math.Abs(sweep) > 180 {
		return false
	}
	return area > 0
}
