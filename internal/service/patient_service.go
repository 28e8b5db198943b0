package service

import (
	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/internal/schedule"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// PatientService handles business logic for patients
type PatientService struct {
	repo *repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(repo *repository.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// GetPatients retrieves all patients
func (s *PatientService) GetPatients() ([]models.Patient, error) {
	return s.repo.GetPatients()
}

// GetPatient retrieves a single patient by ID
func (s *PatientService) GetPatient(id int64) (*models.Patient, error) {
	p, err := s.repo.GetPatientByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("patient", id)
	}
	return p, nil
}

// CreatePatient validates and stores a new patient
func (s *PatientService) CreatePatient(p *models.Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.repo.CreatePatient(p)
}

// UpdatePatient updates an existing patient
func (s *PatientService) UpdatePatient(p *models.Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	ok, err := s.repo.UpdatePatient(p)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("patient", p.ID)
	}
	return nil
}

// DeletePatient removes a patient
func (s *PatientService) DeletePatient(id int64) error {
	ok, err := s.repo.DeletePatient(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("patient", id)
	}
	return nil
}

func validatePatient(p *models.Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return apperr.Validationf("first_name and last_name are required")
	}
	if p.DateOfBirth != "" {
		if _, err := schedule.ParseDate(p.DateOfBirth); err != nil {
			return apperr.Validationf("invalid date_of_birth %q", p.DateOfBirth)
		}
	}
	return nil
}
