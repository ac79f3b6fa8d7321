package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		// Matched route template, "-" when nothing matched
		route := c.FullPath()
		if route == "" {
			route = "-"
		}

		log.Printf("[HTTP] %s %s (%s) %d %v %s %s",
			c.Request.Method,
			path,
			route,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			c.Errors.String(),
		)
	}
}
