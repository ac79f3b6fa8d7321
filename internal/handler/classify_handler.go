package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/service"
	"github.com/jengzang/swimrun-backend-go/pkg/response"
)

// ClassifyHandler handles land/water classification queries
type ClassifyHandler struct {
	service *service.ClassifyService
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(service *service.ClassifyService) *ClassifyHandler {
	return &ClassifyHandler{service: service}
}

// ClassifyPoint handles GET /api/v1/classify/point
func (h *ClassifyHandler) ClassifyPoint(c *gin.Context) {
	point, err := queryCoordinate(c, "lat", "lng")
	if err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.service.ClassifyPoint(point)
	if err != nil {
		writeError(c, "Failed to classify point", err)
		return
	}
	response.Success(c, result)
}

// ClassifySegment handles GET /api/v1/classify/segment
func (h *ClassifyHandler) ClassifySegment(c *gin.Context) {
	from, err := queryCoordinate(c, "from_lat", "from_lng")
	if err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	to, err := queryCoordinate(c, "to_lat", "to_lng")
	if err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.service.ClassifySegment(from, to)
	if err != nil {
		writeError(c, "Failed to classify segment", err)
		return
	}
	response.Success(c, result)
}

// queryCoordinate reads a coordinate from two required query parameters
func queryCoordinate(c *gin.Context, latKey, lngKey string) (models.Coordinate, error) {
	lat, err := queryFloat(c, latKey)
	if err != nil {
		return models.Coordinate{}, err
	}
	lng, err := queryFloat(c, lngKey)
	if err != nil {
		return models.Coordinate{}, err
	}
	return models.Coordinate{Lat: lat, Lng: lng}, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %q: %w", key, err)
	}
	return v, nil
}
