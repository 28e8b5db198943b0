package service

import (
	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// DestinationService handles business logic for destinations
type DestinationService struct {
	repo *repository.DestinationRepository
}

// NewDestinationService creates a new destination service
func NewDestinationService(repo *repository.DestinationRepository) *DestinationService {
	return &DestinationService{repo: repo}
}

// GetDestinations retrieves destinations, optionally only active ones
func (s *DestinationService) GetDestinations(activeOnly bool) ([]models.Destination, error) {
	return s.repo.GetDestinations(activeOnly)
}

// GetDestination retrieves a single destination by ID
func (s *DestinationService) GetDestination(id int64) (*models.Destination, error) {
	d, err := s.repo.GetDestinationByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("destination", id)
	}
	return d, nil
}

// CreateDestination validates and stores a new destination
func (s *DestinationService) CreateDestination(d *models.Destination) error {
	if err := validateDestination(d); err != nil {
		return err
	}
	return s.repo.CreateDestination(d)
}

// UpdateDestination updates an existing destination
func (s *DestinationService) UpdateDestination(d *models.Destination) error {
	if err := validateDestination(d); err != nil {
		return err
	}
	ok, err := s.repo.UpdateDestination(d)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("destination", d.ID)
	}
	return nil
}

// DeleteDestination removes a destination
func (s *DestinationService) DeleteDestination(id int64) error {
	ok, err := s.repo.DeleteDestination(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("destination", id)
	}
	return nil
}

func validateDestination(d *models.Destination) error {
	if d.Name == "" {
		return apperr.Validationf("name is required")
	}
	if !models.ValidDestinationType(d.Type) {
		return apperr.Validationf("unknown destination type %q", d.Type)
	}
	return nil
}
