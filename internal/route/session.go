package route

import (
	"errors"
	"fmt"

	"github.com/jengzang/swimrun-backend-go/internal/models"
)

// SegmentClassifier tags a segment from its endpoints
type SegmentClassifier interface {
	ClassifySegment(a, b models.Coordinate) models.SegmentType
}

// SessionConfig configures a route-building session
type SessionConfig struct {
	Classification models.ClassificationMode
}

const noEdit = -1

// Session is the route-building context: the route, the selected mode and
// the armed editing index. Events are expected one at a time.
type Session struct {
	cfg        SessionConfig
	classifier SegmentClassifier
	route      *Route
	mode       models.Mode
	editing    int
}

// NewSession creates an empty session. Automatic classification needs a classifier.
func NewSession(cfg SessionConfig, classifier SegmentClassifier) (*Session, error) {
	switch cfg.Classification {
	case models.ClassificationManual:
	case models.ClassificationAutomatic:
		if classifier == nil {
			return nil, errors.New("automatic classification requires a segment classifier")
		}
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidClassification, cfg.Classification)
	}

	return &Session{
		cfg:        cfg,
		classifier: classifier,
		route:      New(),
		editing:    noEdit,
	}, nil
}

// PointClicked handles a map click. With an armed editing index the
// waypoint there is replaced, otherwise a waypoint is appended. In manual
// classification with no mode selected the click is ignored.
func (s *Session) PointClicked(c models.Coordinate) (models.Snapshot, error) {
	if err := c.Validate(); err != nil {
		return s.Snapshot(), err
	}

	if s.editing != noEdit {
		index := s.editing
		s.editing = noEdit
		return s.replace(index, c)
	}

	t, ok := s.appendType(c)
	if !ok {
		return s.Snapshot(), nil
	}
	s.route.Append(c, t)
	return s.Snapshot(), nil
}

// PointClickedAt replaces the waypoint at index with one at c
func (s *Session) PointClickedAt(index int, c models.Coordinate) (models.Snapshot, error) {
	if err := c.Validate(); err != nil {
		return s.Snapshot(), err
	}
	s.editing = noEdit
	return s.replace(index, c)
}

// MarkerClicked arms the editing index so the next map click replaces that waypoint
func (s *Session) MarkerClicked(index int) (models.Snapshot, error) {
	if err := s.route.checkIndex(index); err != nil {
		return s.Snapshot(), err
	}
	s.editing = index
	return s.Snapshot(), nil
}

// MarkerDragged moves the waypoint at index to c and recomputes the route
func (s *Session) MarkerDragged(index int, c models.Coordinate) (models.Snapshot, error) {
	if err := c.Validate(); err != nil {
		return s.Snapshot(), err
	}
	if err := s.route.Move(index, c, s.classifyFunc()); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// UndoRequested removes the last waypoint
func (s *Session) UndoRequested() models.Snapshot {
	s.editing = noEdit
	s.route.Undo()
	return s.Snapshot()
}

// ClearRequested empties the route
func (s *Session) ClearRequested() models.Snapshot {
	s.editing = noEdit
	s.route.Clear()
	return s.Snapshot()
}

// ModeChanged selects the mode used to tag new segments
func (s *Session) ModeChanged(m models.Mode) (models.Snapshot, error) {
	switch m {
	case models.ModeSwim, models.ModeRun, models.ModeStop:
		s.mode = m
		return s.Snapshot(), nil
	}
	return s.Snapshot(), fmt.Errorf("%w: %q", models.ErrInvalidMode, m)
}

// Snapshot returns the current output state
func (s *Session) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		Waypoints:      s.route.Waypoints(),
		Aggregates:     s.route.Aggregates(),
		State:          s.route.State(),
		Mode:           s.mode,
		Classification: s.cfg.Classification,
	}
	if s.editing != noEdit {
		index := s.editing
		snap.EditingIndex = &index
	}
	return snap
}

// Config returns the session configuration
func (s *Session) Config() SessionConfig {
	return s.cfg
}

func (s *Session) replace(index int, c models.Coordinate) (models.Snapshot, error) {
	current, err := s.route.At(index)
	if err != nil {
		return s.Snapshot(), err
	}

	t := current.Type
	switch {
	case s.mode == models.ModeStop:
		t = models.SegmentStop
	case s.cfg.Classification == models.ClassificationManual && s.mode != models.ModeNone:
		t = s.mode.SegmentType()
	case s.cfg.Classification == models.ClassificationAutomatic && t == models.SegmentStop:
		// A stop edited outside stop mode becomes a classified segment again
		t = models.SegmentUnknown
	}

	if err := s.route.ReplaceAt(index, c, t, s.classifyFunc()); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// appendType picks the tag for a new waypoint at c
func (s *Session) appendType(c models.Coordinate) (models.SegmentType, bool) {
	if s.mode == models.ModeStop {
		return models.SegmentStop, true
	}

	last, ok := s.route.Last()
	if !ok {
		if s.cfg.Classification == models.ClassificationManual && s.mode == models.ModeNone {
			return "", false
		}
		return models.SegmentStart, true
	}

	if s.cfg.Classification == models.ClassificationAutomatic {
		return s.classifier.ClassifySegment(last.Coordinate, c), true
	}
	if s.mode == models.ModeNone {
		return "", false
	}
	return s.mode.SegmentType(), true
}

func (s *Session) classifyFunc() ClassifyFunc {
	if s.cfg.Classification != models.ClassificationAutomatic {
		return nil
	}
	return s.classifier.ClassifySegment
}
