package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/route"
	"github.com/jengzang/swimrun-backend-go/internal/service"
	"github.com/jengzang/swimrun-backend-go/pkg/response"
)

var errInvalidIndex = errors.New("waypoint index must be a non-negative integer")

// statusFor maps service and engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, route.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidCoordinate),
		errors.Is(err, models.ErrInvalidMode),
		errors.Is(err, models.ErrInvalidClassification):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err with the status it maps to
func writeError(c *gin.Context, message string, err error) {
	response.Error(c, statusFor(err), message, err)
}

// indexParam parses the :index path parameter
func indexParam(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, errInvalidIndex
	}
	return index, nil
}
