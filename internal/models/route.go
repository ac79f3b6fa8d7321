package models

// Waypoint represents a route vertex. Type and DistanceKm describe the
// segment ending at this waypoint.
type Waypoint struct {
	Coordinate
	Type       SegmentType `json:"type"`
	DistanceKm float64     `json:"distance_km"` // recorded length of the incoming segment
}

// Aggregates holds the derived route distances in kilometers
type Aggregates struct {
	SwimTotal   float64 `json:"swim_total_km"`
	RunTotal    float64 `json:"run_total_km"`
	RouteTotal  float64 `json:"route_total_km"`  // every segment since the last clear
	LastSegment float64 `json:"last_segment_km"` // most recently added or affected segment
	LegTotal    float64 `json:"leg_total_km"`    // segments since the last stop
}

// SessionState is the state of a route-building session
type SessionState string

// SessionState constants
const (
	StateEmpty    SessionState = "empty"
	StateBuilding SessionState = "building"
	StateStopped  SessionState = "stopped"
)

// Snapshot is the output state emitted after every session event
type Snapshot struct {
	Waypoints      []Waypoint         `json:"waypoints"`
	Aggregates     Aggregates         `json:"aggregates"`
	State          SessionState       `json:"state"`
	Mode           Mode               `json:"mode"`
	Classification ClassificationMode `json:"classification"`
	EditingIndex   *int               `json:"editing_index,omitempty"`
}
