package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/pkg/response"
)

// SessionAuthorizer checks that a token grants access to a session
type SessionAuthorizer interface {
	Authorize(sessionID, token string) error
}

// SessionAuth requires a bearer token issued for the session in the :id path parameter
func SessionAuth(auth SessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Missing bearer token", nil)
			c.Abort()
			return
		}

		if err := auth.Authorize(c.Param("id"), token); err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid session token", err)
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
