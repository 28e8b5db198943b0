package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/service"
	"github.com/medtransit/transport-backend-go/pkg/response"
)

// DriverHandler handles HTTP requests for drivers
type DriverHandler struct {
	service *service.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(service *service.DriverService) *DriverHandler {
	return &DriverHandler{service: service}
}

// GetDrivers handles GET /api/v1/drivers. With ?available=true only
// drivers whose coarse availability flag is set are returned.
func (h *DriverHandler) GetDrivers(c *gin.Context) {
	availableOnly := c.Query("available") == "true"
	drivers, err := h.service.GetDrivers(availableOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	response.Success(c, drivers)
}

// GetDriver handles GET /api/v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	driver, err := h.service.GetDriver(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, driver)
}

// CreateDriver handles POST /api/v1/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.CreateDriver(&driver); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, driver)
}

// UpdateDriver handles PUT /api/v1/drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	driver.ID = id
	if err := h.service.UpdateDriver(&driver); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, driver)
}

// DeleteDriver handles DELETE /api/v1/drivers/:id
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDriver(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
