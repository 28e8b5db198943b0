package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/service"
	"github.com/medtransit/transport-backend-go/pkg/response"
)

// AvailabilityHandler handles HTTP requests for driver availability
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// FindAvailable handles GET /api/v1/availability/available
func (h *AvailabilityHandler) FindAvailable(c *gin.Context) {
	var q models.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	drivers, err := h.service.FindAvailable(q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if drivers == nil {
		drivers = []models.AvailableDriver{}
	}
	response.Success(c, drivers)
}

// GetSlots handles GET /api/v1/availability/slots
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	weekdays, blocks := h.service.SlotCatalog()
	response.Success(c, gin.H{
		"weekdays": weekdays,
		"blocks":   blocks,
	})
}

// GetDriverPatterns handles GET /api/v1/availability/drivers/:id/patterns
func (h *AvailabilityHandler) GetDriverPatterns(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	patterns, err := h.service.GetPatternsByDriver(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if patterns == nil {
		patterns = []models.AvailabilityPattern{}
	}
	response.Success(c, patterns)
}

// CreateDriverPatterns handles POST /api/v1/availability/drivers/:id/patterns.
// The body carries one or more weekly slots for the driver.
func (h *AvailabilityHandler) CreateDriverPatterns(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body struct {
		Patterns []models.AvailabilityPattern `json:"patterns" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	for i := range body.Patterns {
		body.Patterns[i].DriverID = id
	}
	if err := h.service.CreatePatterns(body.Patterns); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, body.Patterns)
}

// DeleteDriverPatterns handles DELETE /api/v1/availability/drivers/:id/patterns
func (h *AvailabilityHandler) DeleteDriverPatterns(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	n, err := h.service.DeletePatternsByDriver(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": n})
}

// DeletePattern handles DELETE /api/v1/availability/patterns/:id
func (h *AvailabilityHandler) DeletePattern(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePattern(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// GetDriverBookings handles GET /api/v1/availability/drivers/:id/bookings
func (h *AvailabilityHandler) GetDriverBookings(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	bookings, err := h.service.GetBookingsByDriver(id, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.AvailabilityBooking{}
	}
	response.Success(c, bookings)
}

// GetBookingsByDate handles GET /api/v1/availability/bookings?date=
func (h *AvailabilityHandler) GetBookingsByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date is required")
		return
	}
	bookings, err := h.service.GetBookingsByDate(date)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.AvailabilityBooking{}
	}
	response.Success(c, bookings)
}

// CreateBooking handles POST /api/v1/availability/bookings
func (h *AvailabilityHandler) CreateBooking(c *gin.Context) {
	var booking models.AvailabilityBooking
	if err := c.ShouldBindJSON(&booking); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.CreateBooking(&booking); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, booking)
}

// DeleteBooking handles DELETE /api/v1/availability/bookings/:id
func (h *AvailabilityHandler) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// DeleteBookingsForTrip handles DELETE /api/v1/availability/bookings/trip/:tripId
func (h *AvailabilityHandler) DeleteBookingsForTrip(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("tripId"), 10, 64)
	if err != nil || tripID <= 0 {
		response.BadRequest(c, "invalid trip id")
		return
	}
	n, derr := h.service.DeleteBookingsForTrip(tripID)
	if derr != nil {
		response.FromError(c, derr)
		return
	}
	response.Success(c, gin.H{"deleted": n})
}
