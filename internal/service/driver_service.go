package service

import (
	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// DriverService handles business logic for drivers
type DriverService struct {
	repo *repository.DriverRepository
}

// NewDriverService creates a new driver service
func NewDriverService(repo *repository.DriverRepository) *DriverService {
	return &DriverService{repo: repo}
}

// GetDrivers retrieves all drivers, or only those with the coarse
// availability flag set when availableOnly is true
func (s *DriverService) GetDrivers(availableOnly bool) ([]models.Driver, error) {
	if availableOnly {
		return s.repo.GetAvailableDrivers()
	}
	return s.repo.GetDrivers()
}

// GetDriver retrieves a single driver by ID
func (s *DriverService) GetDriver(id int64) (*models.Driver, error) {
	d, err := s.repo.GetDriverByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("driver", id)
	}
	return d, nil
}

// CreateDriver validates and stores a new driver
func (s *DriverService) CreateDriver(d *models.Driver) error {
	if err := validateDriver(d); err != nil {
		return err
	}
	return s.repo.CreateDriver(d)
}

// UpdateDriver updates an existing driver
func (s *DriverService) UpdateDriver(d *models.Driver) error {
	if err := validateDriver(d); err != nil {
		return err
	}
	ok, err := s.repo.UpdateDriver(d)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("driver", d.ID)
	}
	return nil
}

// DeleteDriver removes a driver along with their availability patterns
// and bookings
func (s *DriverService) DeleteDriver(id int64) error {
	ok, err := s.repo.DeleteDriver(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("driver", id)
	}
	return nil
}

func validateDriver(d *models.Driver) error {
	if d.FirstName == "" || d.LastName == "" {
		return apperr.Validationf("first_name and last_name are required")
	}
	if d.Phone == "" {
		return apperr.Validationf("phone is required")
	}
	if d.LicenseNumber == "" {
		return apperr.Validationf("license_number is required")
	}
	return nil
}
