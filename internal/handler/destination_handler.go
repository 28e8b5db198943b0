package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/service"
	"github.com/medtransit/transport-backend-go/pkg/response"
)

// DestinationHandler handles HTTP requests for destinations
type DestinationHandler struct {
	service *service.DestinationService
}

// NewDestinationHandler creates a new destination handler
func NewDestinationHandler(service *service.DestinationService) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// GetDestinations handles GET /api/v1/destinations. Inactive entries are
// hidden unless ?include_inactive=true.
func (h *DestinationHandler) GetDestinations(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true"
	destinations, err := h.service.GetDestinations(activeOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if destinations == nil {
		destinations = []models.Destination{}
	}
	response.Success(c, destinations)
}

// GetDestination handles GET /api/v1/destinations/:id
func (h *DestinationHandler) GetDestination(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	destination, err := h.service.GetDestination(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, destination)
}

// CreateDestination handles POST /api/v1/destinations
func (h *DestinationHandler) CreateDestination(c *gin.Context) {
	var destination models.Destination
	if err := c.ShouldBindJSON(&destination); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.CreateDestination(&destination); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, destination)
}

// UpdateDestination handles PUT /api/v1/destinations/:id
func (h *DestinationHandler) UpdateDestination(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var destination models.Destination
	if err := c.ShouldBindJSON(&destination); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	destination.ID = id
	if err := h.service.UpdateDestination(&destination); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, destination)
}

// DeleteDestination handles DELETE /api/v1/destinations/:id
func (h *DestinationHandler) DeleteDestination(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDestination(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
