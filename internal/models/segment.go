package models

import (
	"errors"
	"fmt"
	"strings"
)

// SegmentType describes the activity of the segment ending at a waypoint
type SegmentType string

// SegmentType constants
const (
	SegmentStart   SegmentType = "start"   // route origin, no incoming edge
	SegmentSwim    SegmentType = "swim"    // both endpoints on water
	SegmentRun     SegmentType = "run"     // both endpoints on land
	SegmentStop    SegmentType = "stop"    // explicit terminator, not accumulated
	SegmentUnknown SegmentType = "unknown" // endpoints straddle or miss the datasets
)

// Measured reports whether segments of this type carry a distance.
// Start has no incoming edge and Stop is a break in the route.
func (t SegmentType) Measured() bool {
	return t != SegmentStart && t != SegmentStop
}

// Reclassifiable reports whether automatic classification may overwrite the tag
func (t SegmentType) Reclassifiable() bool {
	return t != SegmentStart && t != SegmentStop
}

var (
	// ErrInvalidMode is returned for an unknown route-building mode
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidClassification is returned for an unknown classification setting
	ErrInvalidClassification = errors.New("invalid classification")
)

// Mode is the user-selected route-building mode
type Mode string

// Mode constants. ModeNone means nothing has been selected yet.
const (
	ModeNone Mode = ""
	ModeSwim Mode = "swim"
	ModeRun  Mode = "run"
	ModeStop Mode = "stop"
)

// ParseMode parses a mode name, case-insensitively
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSwim:
		return ModeSwim, nil
	case ModeRun:
		return ModeRun, nil
	case ModeStop:
		return ModeStop, nil
	}
	return ModeNone, fmt.Errorf("%w: %q (want swim, run or stop)", ErrInvalidMode, s)
}

// SegmentType maps the mode to the tag it puts on new segments
func (m Mode) SegmentType() SegmentType {
	switch m {
	case ModeSwim:
		return SegmentSwim
	case ModeRun:
		return SegmentRun
	case ModeStop:
		return SegmentStop
	}
	return SegmentUnknown
}

// ClassificationMode selects how segments are tagged
type ClassificationMode string

// ClassificationMode constants
const (
	ClassificationManual    ClassificationMode = "manual"    // tag from the selected mode
	ClassificationAutomatic ClassificationMode = "automatic" // tag from land/water containment
)

// ParseClassification parses a classification setting. An empty string yields def.
func ParseClassification(s string, def ClassificationMode) (ClassificationMode, error) {
	switch ClassificationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case ClassificationManual:
		return ClassificationManual, nil
	case ClassificationAutomatic:
		return ClassificationAutomatic, nil
	}
	return "", fmt.Errorf("%w: %q (want manual or automatic)", ErrInvalidClassification, s)
}
