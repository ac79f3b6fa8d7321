package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/service"
	"github.com/jengzang/swimrun-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for route-building sessions
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// CreateSessionRequest is the body of POST /sessions
type CreateSessionRequest struct {
	Classification string `json:"classification"`
}

// CoordinateRequest carries a clicked or dragged map position
type CoordinateRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// Coordinate returns the requested coordinate
func (r CoordinateRequest) Coordinate() models.Coordinate {
	return models.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

// ModeRequest is the body of PUT /sessions/:id/mode
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	// An empty body selects the default classification
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body", err)
			return
		}
	}

	classification, err := models.ParseClassification(req.Classification, "")
	if err != nil {
		writeError(c, "Invalid classification", err)
		return
	}

	created, err := h.service.Create(classification)
	if err != nil {
		writeError(c, "Failed to create session", err)
		return
	}

	response.Created(c, created)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Param("id"))
	if err != nil {
		writeError(c, "Failed to get session", err)
		return
	}
	response.Success(c, snap)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		writeError(c, "Failed to delete session", err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

// AddPoint handles POST /api/v1/sessions/:id/points
func (h *SessionHandler) AddPoint(c *gin.Context) {
	var req CoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid coordinate", err)
		return
	}

	snap, err := h.service.PointClicked(c.Param("id"), req.Coordinate())
	if err != nil {
		writeError(c, "Failed to add point", err)
		return
	}
	response.Success(c, snap)
}

// ReplacePoint handles PUT /api/v1/sessions/:id/points/:index
func (h *SessionHandler) ReplacePoint(c *gin.Context) {
	index, err := indexParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid waypoint index", err)
		return
	}

	var req CoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid coordinate", err)
		return
	}

	snap, err := h.service.PointClickedAt(c.Param("id"), index, req.Coordinate())
	if err != nil {
		writeError(c, "Failed to replace point", err)
		return
	}
	response.Success(c, snap)
}

// SelectPoint handles POST /api/v1/sessions/:id/points/:index/select
func (h *SessionHandler) SelectPoint(c *gin.Context) {
	index, err := indexParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid waypoint index", err)
		return
	}

	snap, err := h.service.MarkerClicked(c.Param("id"), index)
	if err != nil {
		writeError(c, "Failed to select point", err)
		return
	}
	response.Success(c, snap)
}

// MovePoint handles PATCH /api/v1/sessions/:id/points/:index
func (h *SessionHandler) MovePoint(c *gin.Context) {
	index, err := indexParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid waypoint index", err)
		return
	}

	var req CoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid coordinate", err)
		return
	}

	snap, err := h.service.MarkerDragged(c.Param("id"), index, req.Coordinate())
	if err != nil {
		writeError(c, "Failed to move point", err)
		return
	}
	response.Success(c, snap)
}

// Undo handles POST /api/v1/sessions/:id/undo
func (h *SessionHandler) Undo(c *gin.Context) {
	snap, err := h.service.Undo(c.Param("id"))
	if err != nil {
		writeError(c, "Failed to undo", err)
		return
	}
	response.Success(c, snap)
}

// ClearPoints handles DELETE /api/v1/sessions/:id/points
func (h *SessionHandler) ClearPoints(c *gin.Context) {
	snap, err := h.service.Clear(c.Param("id"))
	if err != nil {
		writeError(c, "Failed to clear route", err)
		return
	}
	response.Success(c, snap)
}

// SetMode handles PUT /api/v1/sessions/:id/mode
func (h *SessionHandler) SetMode(c *gin.Context) {
	var req ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		writeError(c, "Invalid mode", err)
		return
	}

	snap, err := h.service.ModeChanged(c.Param("id"), mode)
	if err != nil {
		writeError(c, "Failed to change mode", err)
		return
	}
	response.Success(c, snap)
}

// ExportGeoJSON handles GET /api/v1/sessions/:id/geojson
func (h *SessionHandler) ExportGeoJSON(c *gin.Context) {
	fc, err := h.service.ExportGeoJSON(c.Param("id"))
	if err != nil {
		writeError(c, "Failed to export route", err)
		return
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to encode route", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}
