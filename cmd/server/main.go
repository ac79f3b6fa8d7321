package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/internal/api"
	"github.com/jengzang/swimrun-backend-go/internal/config"
	"github.com/jengzang/swimrun-backend-go/internal/database"
	"github.com/jengzang/swimrun-backend-go/internal/geodata"
	"github.com/jengzang/swimrun-backend-go/internal/middleware"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/repository"
	"github.com/jengzang/swimrun-backend-go/internal/service"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// 加载陆地和水域多边形
	ctx := context.Background()
	repo := repository.NewPolygonRepository(db)
	land, err := geodata.LoadLayer(ctx, models.LayerLand, cfg.LandGeoJSON, repo)
	if err != nil {
		log.Fatal("Failed to load land polygons:", err)
	}
	water, err := geodata.LoadLayer(ctx, models.LayerWater, cfg.WaterGeoJSON, repo)
	if err != nil {
		log.Fatal("Failed to load water polygons:", err)
	}

	landRegion, err := spatial.NewRegion(cfg.Backend, land)
	if err != nil {
		log.Fatal("Failed to build land region:", err)
	}
	waterRegion, err := spatial.NewRegion(cfg.Backend, water)
	if err != nil {
		log.Fatal("Failed to build water region:", err)
	}
	classifier := spatial.NewClassifier(landRegion, waterRegion)

	sessions := service.NewSessionService(service.SessionServiceConfig{
		DefaultClassification: cfg.Classification,
		IdleTTL:               cfg.SessionTTL,
	}, classifier, service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))
	defer sessions.Close()

	deps := api.Dependencies{
		Sessions: sessions,
		Classify: service.NewClassifyService(classifier, map[models.Layer]int{
			models.LayerLand:  len(land),
			models.LayerWater: len(water),
		}),
	}
	if cfg.RateLimit > 0 {
		deps.Limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		defer deps.Limiter.Stop()
	}

	// 初始化路由
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: api.SetupRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s (%s classification, %s backend)", cfg.Port, cfg.Classification, cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-signals:
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server exited with error: %v", err)
			return
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
