// Package route holds the ordered waypoint sequence of a route being built
// and keeps its derived distances consistent under every edit.
package route

import (
	"errors"
	"fmt"

	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
)

// ErrIndexOutOfRange is returned when an edit references a waypoint that does not exist
var ErrIndexOutOfRange = errors.New("waypoint index out of range")

// ClassifyFunc tags the segment a->b
type ClassifyFunc func(a, b models.Coordinate) models.SegmentType

// Route is an ordered sequence of waypoints with its aggregates.
// It is not safe for concurrent use.
type Route struct {
	waypoints []models.Waypoint
	totals    models.Aggregates
}

// New creates an empty route
func New() *Route {
	return &Route{}
}

// Len returns the number of waypoints
func (r *Route) Len() int {
	return len(r.waypoints)
}

// Waypoints returns a copy of the waypoint sequence
func (r *Route) Waypoints() []models.Waypoint {
	out := make([]models.Waypoint, len(r.waypoints))
	copy(out, r.waypoints)
	return out
}

// Aggregates returns the current aggregates
func (r *Route) Aggregates() models.Aggregates {
	return r.totals
}

// Last returns the last waypoint, if any
func (r *Route) Last() (models.Waypoint, bool) {
	if len(r.waypoints) == 0 {
		return models.Waypoint{}, false
	}
	return r.waypoints[len(r.waypoints)-1], true
}

// At returns the waypoint at index
func (r *Route) At(index int) (models.Waypoint, error) {
	if err := r.checkIndex(index); err != nil {
		return models.Waypoint{}, err
	}
	return r.waypoints[index], nil
}

// State derives the session state from the sequence
func (r *Route) State() models.SessionState {
	last, ok := r.Last()
	switch {
	case !ok:
		return models.StateEmpty
	case last.Type == models.SegmentStop:
		return models.StateStopped
	default:
		return models.StateBuilding
	}
}

// Append adds a waypoint at c tagged t and updates the aggregates
// incrementally. The first waypoint is always tagged start.
func (r *Route) Append(c models.Coordinate, t models.SegmentType) models.Waypoint {
	if len(r.waypoints) == 0 {
		wp := models.Waypoint{Coordinate: c, Type: models.SegmentStart}
		r.waypoints = append(r.waypoints, wp)
		return wp
	}

	if t == models.SegmentStart {
		t = models.SegmentUnknown
	}

	prev := r.waypoints[len(r.waypoints)-1]
	wp := models.Waypoint{
		Coordinate: c,
		Type:       t,
		DistanceKm: segmentDistance(prev.Coordinate, c, t),
	}
	r.waypoints = append(r.waypoints, wp)
	accumulate(&r.totals, wp)
	return wp
}

// ReplaceAt replaces the waypoint at index with one at c tagged t, keeping
// its position, and recomputes everything. Index 0 stays start.
func (r *Route) ReplaceAt(index int, c models.Coordinate, t models.SegmentType, classify ClassifyFunc) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}

	r.waypoints[index] = models.Waypoint{Coordinate: c, Type: t}
	r.Recompute(classify)
	return nil
}

// Move relocates the waypoint at index, keeping its tag, and recomputes
// everything. With a classify func every segment is reclassified.
func (r *Route) Move(index int, c models.Coordinate, classify ClassifyFunc) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}

	r.waypoints[index].Coordinate = c
	r.Recompute(classify)
	return nil
}

// Recompute rebuilds every recorded distance and all aggregates from the
// sequence. When classify is non-nil, every segment that is not start or
// stop is reclassified first. The result matches what appending the same
// sequence one waypoint at a time would produce.
func (r *Route) Recompute(classify ClassifyFunc) {
	var totals models.Aggregates

	for i := range r.waypoints {
		wp := &r.waypoints[i]
		if i == 0 {
			wp.Type = models.SegmentStart
			wp.DistanceKm = 0
			continue
		}

		prev := r.waypoints[i-1].Coordinate
		if wp.Type == models.SegmentStart {
			// Only the origin may be tagged start
			wp.Type = models.SegmentUnknown
		}
		if classify != nil && wp.Type.Reclassifiable() {
			wp.Type = classify(prev, wp.Coordinate)
		}
		wp.DistanceKm = segmentDistance(prev, wp.Coordinate, wp.Type)
		accumulate(&totals, *wp)
	}

	r.totals = totals
}

// Undo removes the last waypoint and subtracts its recorded distance.
// With one waypoint or none it clears the route.
func (r *Route) Undo() {
	if len(r.waypoints) <= 1 {
		r.Clear()
		return
	}

	last := r.waypoints[len(r.waypoints)-1]
	r.waypoints = r.waypoints[:len(r.waypoints)-1]

	if len(r.waypoints) == 1 {
		// A lone start point has no distance; avoid carrying rounding residue
		r.totals = models.Aggregates{}
		return
	}

	r.totals.RouteTotal -= last.DistanceKm
	switch last.Type {
	case models.SegmentSwim:
		r.totals.SwimTotal -= last.DistanceKm
	case models.SegmentRun:
		r.totals.RunTotal -= last.DistanceKm
	}

	// Re-derive from the new tail rather than zeroing
	r.totals.LastSegment = r.waypoints[len(r.waypoints)-1].DistanceKm
	r.totals.LegTotal = r.legTotal()
}

// Clear removes every waypoint and zeroes all aggregates
func (r *Route) Clear() {
	r.waypoints = nil
	r.totals = models.Aggregates{}
}

// legTotal sums recorded distances after the most recent stop
func (r *Route) legTotal() float64 {
	start := 0
	for i := len(r.waypoints) - 1; i >= 0; i-- {
		if r.waypoints[i].Type == models.SegmentStop {
			start = i + 1
			break
		}
	}

	var total float64
	for _, wp := range r.waypoints[start:] {
		total += wp.DistanceKm
	}
	return total
}

func (r *Route) checkIndex(index int) error {
	if index < 0 || index >= len(r.waypoints) {
		return fmt.Errorf("%w: %d (route has %d waypoints)", ErrIndexOutOfRange, index, len(r.waypoints))
	}
	return nil
}

// segmentDistance is the recorded length of the segment ending in a waypoint of type t
func segmentDistance(from, to models.Coordinate, t models.SegmentType) float64 {
	if !t.Measured() {
		return 0
	}
	return spatial.HaversineKm(from, to)
}

// accumulate folds one appended waypoint into the totals
func accumulate(totals *models.Aggregates, wp models.Waypoint) {
	if wp.Type == models.SegmentStop {
		totals.LastSegment = 0
		totals.LegTotal = 0
		return
	}

	totals.RouteTotal += wp.DistanceKm
	totals.LegTotal += wp.DistanceKm
	totals.LastSegment = wp.DistanceKm

	switch wp.Type {
	case models.SegmentSwim:
		totals.SwimTotal += wp.DistanceKm
	case models.SegmentRun:
		totals.RunTotal += wp.DistanceKm
	}
}
