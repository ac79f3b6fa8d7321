package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port         string
	DBPath       string
	LandGeoJSON  string // 陆地多边形文件，为空时从数据库加载
	WaterGeoJSON string // 水域多边形文件，为空时从数据库加载

	Classification models.ClassificationMode
	Backend        spatial.Backend

	JWTSecret  string
	TokenTTL   time.Duration
	SessionTTL time.Duration

	RateLimit  int // 0 disables rate limiting
	RateWindow time.Duration

	GinMode string
}

// Load 加载配置
func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] Failed to read .env: %v", err)
	}

	classification, err := models.ParseClassification(os.Getenv("CLASSIFICATION"), models.ClassificationAutomatic)
	if err != nil {
		return nil, err
	}

	backend, err := spatial.ParseBackend(os.Getenv("CONTAINMENT_BACKEND"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           getEnv("PORT", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/geodata/geodata.db"),
		LandGeoJSON:    os.Getenv("LAND_GEOJSON"),
		WaterGeoJSON:   os.Getenv("WATER_GEOJSON"),
		Classification: classification,
		Backend:        backend,
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GinMode:        getEnv("GIN_MODE", "release"),
	}

	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = getDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 600); err != nil {
		return nil, err
	}
	if cfg.RateLimit > 0 && cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("invalid RATE_WINDOW %q: must be positive when RATE_LIMIT is set", os.Getenv("RATE_WINDOW"))
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q: want a non-negative duration such as 30m", key, v)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: want a non-negative integer", key, v)
	}
	return n, nil
}
