package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/service"
	"github.com/medtransit/transport-backend-go/pkg/response"
)

// RecurringTripHandler handles HTTP requests for trip templates
type RecurringTripHandler struct {
	service *service.RecurringTripService
}

// NewRecurringTripHandler creates a new recurring trip handler
func NewRecurringTripHandler(service *service.RecurringTripService) *RecurringTripHandler {
	return &RecurringTripHandler{service: service}
}

// GetRecurringTrips handles GET /api/v1/recurring-trips. With ?patient_id
// only that patient's active templates are returned.
func (h *RecurringTripHandler) GetRecurringTrips(c *gin.Context) {
	var (
		templates []models.RecurringTrip
		err       error
	)
	if p := c.Query("patient_id"); p != "" {
		patientID, perr := strconv.ParseInt(p, 10, 64)
		if perr != nil || patientID <= 0 {
			response.BadRequest(c, "invalid patient_id")
			return
		}
		templates, err = h.service.GetRecurringTripsByPatient(patientID)
	} else {
		templates, err = h.service.GetRecurringTrips()
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	if templates == nil {
		templates = []models.RecurringTrip{}
	}
	response.Success(c, templates)
}

// GetRecurringTrip handles GET /api/v1/recurring-trips/:id
func (h *RecurringTripHandler) GetRecurringTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rt, err := h.service.GetRecurringTripByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rt)
}

// CreateRecurringTrip handles POST /api/v1/recurring-trips
func (h *RecurringTripHandler) CreateRecurringTrip(c *gin.Context) {
	var rt models.RecurringTrip
	if err := c.ShouldBindJSON(&rt); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rt.IsActive = true
	if err := h.service.CreateRecurringTrip(&rt); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, rt)
}

// UpdateRecurringTrip handles PUT /api/v1/recurring-trips/:id
func (h *RecurringTripHandler) UpdateRecurringTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var rt models.RecurringTrip
	if err := c.ShouldBindJSON(&rt); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rt.ID = id
	if err := h.service.UpdateRecurringTrip(&rt); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rt)
}

// DeactivateRecurringTrip handles PATCH /api/v1/recurring-trips/:id/deactivate
func (h *RecurringTripHandler) DeactivateRecurringTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateRecurringTrip(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deactivated": id})
}

// DeleteRecurringTrip handles DELETE /api/v1/recurring-trips/:id.
// Generated trips survive with their template reference cleared.
func (h *RecurringTripHandler) DeleteRecurringTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRecurringTrip(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// GetInstances handles GET /api/v1/recurring-trips/:id/trips
func (h *RecurringTripHandler) GetInstances(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	trips, err := h.service.GetInstances(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	response.Success(c, trips)
}

// GenerateInstances handles POST /api/v1/recurring-trips/:id/generate.
// The optional generate_until date bounds the expansion; without it the
// configured horizon applies. The call is idempotent.
func (h *RecurringTripHandler) GenerateInstances(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body struct {
		GenerateUntil string `json:"generate_until"`
	}
	// an empty body is fine
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	created, err := h.service.GenerateInstances(id, body.GenerateUntil)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, gin.H{"generated": created})
}
