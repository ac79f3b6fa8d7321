package config

import (
	"testing"
	"time"

	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DB_PATH", "LAND_GEOJSON", "WATER_GEOJSON", "CLASSIFICATION",
	"CONTAINMENT_BACKEND", "JWT_SECRET", "TOKEN_TTL", "SESSION_TTL",
	"RATE_LIMIT", "RATE_WINDOW", "GIN_MODE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, models.ClassificationAutomatic, cfg.Classification)
	assert.Equal(t, spatial.BackendPlanar, cfg.Backend)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 600, cfg.RateLimit)
	assert.Empty(t, cfg.LandGeoJSON)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9090")
	t.Setenv("CLASSIFICATION", "manual")
	t.Setenv("CONTAINMENT_BACKEND", "s2")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("WATER_GEOJSON", "water.geojson")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, models.ClassificationManual, cfg.Classification)
	assert.Equal(t, spatial.BackendS2, cfg.Backend)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, "water.geojson", cfg.WaterGeoJSON)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"CLASSIFICATION":      "fuzzy",
		"CONTAINMENT_BACKEND": "h3",
		"SESSION_TTL":         "soon",
		"RATE_LIMIT":          "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RateWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_WINDOW", "0s")
	_, err := Load()
	assert.Error(t, err, "zero window with the default limit")

	t.Setenv("RATE_LIMIT", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, time.Duration(0), cfg.RateWindow)
}
