package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/service"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func square(minLat, minLng, maxLat, maxLng float64) models.Polygon {
	return models.Polygon{Rings: [][]models.Coordinate{{
		{Lat: minLat, Lng: minLng},
		{Lat: minLat, Lng: maxLng},
		{Lat: maxLat, Lng: maxLng},
		{Lat: maxLat, Lng: minLng},
		{Lat: minLat, Lng: minLng},
	}}}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	water := spatial.NewPolygonSet([]models.Polygon{square(-1, -1, 1, 1)})
	land := spatial.NewPolygonSet([]models.Polygon{square(1, 1, 3, 3)})
	classifier := spatial.NewClassifier(land, water)

	sessions := service.NewSessionService(service.SessionServiceConfig{}, classifier, service.NewTokenIssuer("secret", time.Hour))
	t.Cleanup(sessions.Close)

	router := SetupRouter(Dependencies{
		Sessions: sessions,
		Classify: service.NewClassifyService(classifier, map[models.Layer]int{models.LayerLand: 1, models.LayerWater: 1}),
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) snapshot(w *httptest.ResponseRecorder) models.Snapshot {
	s.t.Helper()
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	var snap models.Snapshot
	require.NoError(s.t, json.Unmarshal(env.Data, &snap))
	return snap
}

func (s *testServer) create(classification string) service.CreatedSession {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/sessions", "", map[string]string{"classification": classification})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	var created service.CreatedSession
	require.NoError(s.t, json.Unmarshal(env.Data, &created))
	return created
}

func point(lat, lng float64) map[string]float64 {
	return map[string]float64{"lat": lat, "lng": lng}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"land":1`)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	created := s.create("automatic")
	base := "/api/v1/sessions/" + created.ID
	tok := created.Token

	snap := s.snapshot(s.do(http.MethodPost, base+"/points", tok, point(0, 0)))
	assert.Equal(t, models.StateBuilding, snap.State)
	snap = s.snapshot(s.do(http.MethodPost, base+"/points", tok, point(0, 0.01)))
	assert.Equal(t, models.SegmentSwim, snap.Waypoints[1].Type)
	assert.InDelta(t, 1.11, snap.Aggregates.SwimTotal, 0.01)

	// drag the second point onto land: the segment straddles and becomes unknown
	snap = s.snapshot(s.do(http.MethodPatch, base+"/points/1", tok, point(2, 2)))
	assert.Equal(t, models.SegmentUnknown, snap.Waypoints[1].Type)
	assert.Equal(t, 0.0, snap.Aggregates.SwimTotal)
	assert.Greater(t, snap.Aggregates.RouteTotal, 0.0)

	snap = s.snapshot(s.do(http.MethodPost, base+"/points/1/select", tok, nil))
	require.NotNil(t, snap.EditingIndex)
	assert.Equal(t, 1, *snap.EditingIndex)

	// the armed click replaces index 1
	snap = s.snapshot(s.do(http.MethodPost, base+"/points", tok, point(0, 0.02)))
	assert.Nil(t, snap.EditingIndex)
	require.Len(t, snap.Waypoints, 2)
	assert.Equal(t, models.SegmentSwim, snap.Waypoints[1].Type)

	snap = s.snapshot(s.do(http.MethodPut, base+"/mode", tok, map[string]string{"mode": "stop"}))
	assert.Equal(t, models.ModeStop, snap.Mode)
	snap = s.snapshot(s.do(http.MethodPost, base+"/points", tok, point(0, 0.03)))
	assert.Equal(t, models.StateStopped, snap.State)
	assert.Equal(t, 0.0, snap.Aggregates.LegTotal)

	snap = s.snapshot(s.do(http.MethodPut, base+"/points/1", tok, point(0, 0.01)))
	assert.Equal(t, models.SegmentStop, snap.Waypoints[1].Type)

	snap = s.snapshot(s.do(http.MethodPost, base+"/undo", tok, nil))
	assert.Len(t, snap.Waypoints, 2)

	snap = s.snapshot(s.do(http.MethodGet, base, tok, nil))
	assert.Len(t, snap.Waypoints, 2)

	snap = s.snapshot(s.do(http.MethodDelete, base+"/points", tok, nil))
	assert.Equal(t, models.StateEmpty, snap.State)
	assert.Equal(t, models.Aggregates{}, snap.Aggregates)

	w := s.do(http.MethodDelete, base, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, base, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionErrors(t *testing.T) {
	s := newTestServer(t)
	created := s.create("manual")
	other := s.create("")
	base := "/api/v1/sessions/" + created.ID
	tok := created.Token

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"missing token", http.MethodGet, base, "", nil, http.StatusUnauthorized},
		{"token for other session", http.MethodGet, base, other.Token, nil, http.StatusUnauthorized},
		{"bad coordinate", http.MethodPost, base + "/points", tok, point(95, 0), http.StatusBadRequest},
		{"missing lng", http.MethodPost, base + "/points", tok, map[string]float64{"lat": 1}, http.StatusBadRequest},
		{"bad mode", http.MethodPut, base + "/mode", tok, map[string]string{"mode": "fly"}, http.StatusBadRequest},
		{"bad index", http.MethodPut, base + "/points/x", tok, point(0, 0), http.StatusBadRequest},
		{"index out of range", http.MethodPatch, base + "/points/3", tok, point(0, 0), http.StatusUnprocessableEntity},
		{"select out of range", http.MethodPost, base + "/points/0/select", tok, nil, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w := s.do(http.MethodPost, "/api/v1/sessions", "", map[string]string{"classification": "fuzzy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManualModeIgnoresClicksWithoutMode(t *testing.T) {
	s := newTestServer(t)
	created := s.create("manual")
	base := "/api/v1/sessions/" + created.ID

	snap := s.snapshot(s.do(http.MethodPost, base+"/points", created.Token, point(0, 0)))
	assert.Empty(t, snap.Waypoints)
	assert.Equal(t, models.StateEmpty, snap.State)
}

func TestExportGeoJSON(t *testing.T) {
	s := newTestServer(t)
	created := s.create("automatic")
	base := "/api/v1/sessions/" + created.ID

	for _, p := range [][2]float64{{0, 0}, {0, 0.01}} {
		s.snapshot(s.do(http.MethodPost, base+"/points", created.Token, point(p[0], p[1])))
	}

	w := s.do(http.MethodGet, base+"/geojson", created.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3)
}

func TestClassifyEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/classify/point?lat=0&lng=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"water":true`)
	assert.Contains(t, w.Body.String(), `"land":false`)

	w = s.do(http.MethodGet, "/api/v1/classify/segment?from_lat=1.5&from_lng=1.5&to_lat=2&to_lng=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"run"`)

	w = s.do(http.MethodGet, "/api/v1/classify/point?lat=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/classify/point?lat=0&lng=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
