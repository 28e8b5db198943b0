package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/service"
	"github.com/medtransit/transport-backend-go/pkg/response"
)

// PatientHandler handles HTTP requests for patients
type PatientHandler struct {
	service *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service *service.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// GetPatients handles GET /api/v1/patients
func (h *PatientHandler) GetPatients(c *gin.Context) {
	patients, err := h.service.GetPatients()
	if err != nil {
		response.FromError(c, err)
		return
	}
	if patients == nil {
		patients = []models.Patient{}
	}
	response.Success(c, patients)
}

// GetPatient handles GET /api/v1/patients/:id
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	patient, err := h.service.GetPatient(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, patient)
}

// CreatePatient handles POST /api/v1/patients
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.CreatePatient(&patient); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, patient)
}

// UpdatePatient handles PUT /api/v1/patients/:id
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	patient.ID = id
	if err := h.service.UpdatePatient(&patient); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, patient)
}

// DeletePatient handles DELETE /api/v1/patients/:id
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePatient(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
