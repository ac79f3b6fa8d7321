package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthorizer struct {
	tokens map[string]string
}

func (f fakeAuthorizer) Authorize(sessionID, token string) error {
	if f.tokens[sessionID] != token {
		return errors.New("token mismatch")
	}
	return nil
}

func TestBearerFromHeader(t *testing.T) {
	assert.Equal(t, "abc", bearerFromHeader("Bearer abc"))
	assert.Equal(t, "abc", bearerFromHeader("bearer abc"))
	assert.Empty(t, bearerFromHeader("Basic abc"))
	assert.Empty(t, bearerFromHeader("Bearer"))
	assert.Empty(t, bearerFromHeader(""))
}

func TestSessionAuth(t *testing.T) {
	r := gin.New()
	r.GET("/sessions/:id", SessionAuth(fakeAuthorizer{tokens: map[string]string{"s1": "t1"}}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid", "/sessions/s1", "Bearer t1", http.StatusNoContent},
		{"missing header", "/sessions/s1", "", http.StatusUnauthorized},
		{"wrong token", "/sessions/s1", "Bearer t2", http.StatusUnauthorized},
		{"other session", "/sessions/s2", "Bearer t1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	base := time.Now()
	rl.now = func() time.Time { return base }
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	rl.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.True(t, rl.Allow("1.2.3.4"))

	rl.prune()
	rl.mu.Lock()
	_, kept := rl.requests["5.6.7.8"]
	rl.mu.Unlock()
	assert.False(t, kept)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.Use(Logger(), RateLimit(rl))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}

func TestRateLimiter_ZeroWindow(t *testing.T) {
	rl := NewRateLimiter(10, 0)
	defer rl.Stop()
	// the cleanup goroutine must start its ticker without panicking
	time.Sleep(10 * time.Millisecond)

	// nothing stays inside an empty window
	for i := 0; i < 20; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
}
