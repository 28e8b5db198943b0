package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/service"
	"github.com/medtransit/transport-backend-go/pkg/response"
)

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	trips, total, err := h.service.GetTrips(filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}

	response.Success(c, gin.H{
		"trips":     trips,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// GetTrip handles GET /api/v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	trip, err := h.service.GetTrip(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, trip)
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.CreateTrip(&trip); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, trip)
}

// UpdateTrip handles PUT /api/v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	trip.ID = id
	if err := h.service.UpdateTrip(&trip); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, trip)
}

// UpdateTripStatus handles PATCH /api/v1/trips/:id/status
func (h *TripHandler) UpdateTripStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "status is required")
		return
	}
	trip, err := h.service.UpdateStatus(id, body.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTrip(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
