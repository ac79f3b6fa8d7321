package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/internal/handler"
	"github.com/jengzang/swimrun-backend-go/internal/middleware"
	"github.com/jengzang/swimrun-backend-go/internal/service"
)

// Dependencies are the services the router serves
type Dependencies struct {
	Sessions *service.SessionService
	Classify *service.ClassifyService
	Limiter  *middleware.RateLimiter // nil disables rate limiting
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Swim/run route API is running",
			"sessions": deps.Sessions.Count(),
			"polygons": deps.Classify.PolygonCounts(),
		})
	})

	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	classifyHandler := handler.NewClassifyHandler(deps.Classify)

	// API 路由组
	api := r.Group("/api/v1")
	{
		api.POST("/sessions", sessionHandler.CreateSession)

		// 会话接口，需要会话令牌
		session := api.Group("/sessions/:id", middleware.SessionAuth(deps.Sessions))
		{
			session.GET("", sessionHandler.GetSession)
			session.DELETE("", sessionHandler.DeleteSession)
			session.POST("/points", sessionHandler.AddPoint)
			session.DELETE("/points", sessionHandler.ClearPoints)
			session.PUT("/points/:index", sessionHandler.ReplacePoint)
			session.PATCH("/points/:index", sessionHandler.MovePoint)
			session.POST("/points/:index/select", sessionHandler.SelectPoint)
			session.POST("/undo", sessionHandler.Undo)
			session.PUT("/mode", sessionHandler.SetMode)
			session.GET("/geojson", sessionHandler.ExportGeoJSON)
		}

		// 陆地/水域分类接口
		classify := api.Group("/classify")
		{
			classify.GET("/point", classifyHandler.ClassifyPoint)
			classify.GET("/segment", classifyHandler.ClassifySegment)
		}
	}

	return r
}
