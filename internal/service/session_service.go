package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/swimrun-backend-go/internal/geodata"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/route"
	"github.com/paulmach/orb/geojson"
)

// ErrSessionNotFound is returned for an unknown or expired session ID
var ErrSessionNotFound = errors.New("session not found")

// SessionServiceConfig configures the session registry
type SessionServiceConfig struct {
	DefaultClassification models.ClassificationMode
	IdleTTL               time.Duration // zero disables eviction
}

// CreatedSession is returned when a session is created
type CreatedSession struct {
	ID       string          `json:"id"`
	Token    string          `json:"token"`
	Snapshot models.Snapshot `json:"snapshot"`
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *route.Session
	lastUsed atomic.Int64 // unix nanoseconds
}

// SessionService keeps route-building sessions in memory and serialises the
// events of each session
type SessionService struct {
	cfg        SessionServiceConfig
	classifier route.SegmentClassifier
	tokens     *TokenIssuer

	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once
}

// NewSessionService creates a session service and starts idle eviction
func NewSessionService(cfg SessionServiceConfig, classifier route.SegmentClassifier, tokens *TokenIssuer) *SessionService {
	if cfg.DefaultClassification == "" {
		cfg.DefaultClassification = models.ClassificationAutomatic
	}

	s := &SessionService{
		cfg:        cfg,
		classifier: classifier,
		tokens:     tokens,
		sessions:   make(map[string]*sessionEntry),
		now:        time.Now,
		done:       make(chan struct{}),
	}

	if cfg.IdleTTL > 0 {
		go s.cleanup()
	}

	return s
}

// Create starts a new session. An empty classification uses the default.
func (s *SessionService) Create(classification models.ClassificationMode) (*CreatedSession, error) {
	if classification == "" {
		classification = s.cfg.DefaultClassification
	}

	session, err := route.NewSession(route.SessionConfig{Classification: classification}, s.classifier)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	token, err := s.tokens.Issue(id)
	if err != nil {
		return nil, err
	}

	entry := &sessionEntry{session: session}
	entry.lastUsed.Store(s.now().UnixNano())

	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()

	log.Printf("[SessionService] Created session %s (%s)", id, classification)
	return &CreatedSession{ID: id, Token: token, Snapshot: session.Snapshot()}, nil
}

// Authorize checks that token was issued for session id
func (s *SessionService) Authorize(id, token string) error {
	sessionID, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}
	if sessionID != id {
		return fmt.Errorf("%w: token belongs to another session", ErrInvalidToken)
	}
	return nil
}

// Delete drops a session
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	log.Printf("[SessionService] Deleted session %s", id)
	return nil
}

// Snapshot returns the current state of a session
func (s *SessionService) Snapshot(id string) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.Snapshot(), nil
	})
}

// PointClicked appends a waypoint, or replaces the armed one
func (s *SessionService) PointClicked(id string, c models.Coordinate) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.PointClicked(c)
	})
}

// PointClickedAt replaces the waypoint at index
func (s *SessionService) PointClickedAt(id string, index int, c models.Coordinate) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.PointClickedAt(index, c)
	})
}

// MarkerClicked arms the editing index
func (s *SessionService) MarkerClicked(id string, index int) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.MarkerClicked(index)
	})
}

// MarkerDragged moves a waypoint
func (s *SessionService) MarkerDragged(id string, index int, c models.Coordinate) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.MarkerDragged(index, c)
	})
}

// Undo removes the last waypoint
func (s *SessionService) Undo(id string) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.UndoRequested(), nil
	})
}

// Clear empties the route
func (s *SessionService) Clear(id string) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.ClearRequested(), nil
	})
}

// ModeChanged selects the tagging mode
func (s *SessionService) ModeChanged(id string, m models.Mode) (models.Snapshot, error) {
	return s.with(id, func(session *route.Session) (models.Snapshot, error) {
		return session.ModeChanged(m)
	})
}

// ExportGeoJSON renders the session's route as a GeoJSON feature collection
func (s *SessionService) ExportGeoJSON(id string) (*geojson.FeatureCollection, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return geodata.RouteFeatureCollection(snap.Waypoints), nil
}

// Count returns the number of live sessions
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops idle eviction
func (s *SessionService) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// with runs fn on a session while holding that session's lock
func (s *SessionService) with(id string, fn func(*route.Session) (models.Snapshot, error)) (models.Snapshot, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return models.Snapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.lastUsed.Store(s.now().UnixNano())
	return fn(entry.session)
}

// cleanup evicts idle sessions periodically
func (s *SessionService) cleanup() {
	interval := s.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.done:
			return
		}
	}
}

// evictIdle removes sessions unused for longer than the idle TTL
func (s *SessionService) evictIdle() int {
	cutoff := s.now().Add(-s.cfg.IdleTTL).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		if entry.lastUsed.Load() < cutoff {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		log.Printf("[SessionService] Evicted %d idle sessions, %d remaining", evicted, len(s.sessions))
	}
	return evicted
}
