package service

import (
	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/internal/schedule"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// TripService handles business logic for individual trips, including the
// status lifecycle and the release of driver slots when a trip no longer
// needs them.
type TripService struct {
	repo         *repository.TripRepository
	availability *repository.AvailabilityRepository
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository, availability *repository.AvailabilityRepository) *TripService {
	return &TripService{repo: repo, availability: availability}
}

// GetTrips retrieves trips matching the filter, with the total count
func (s *TripService) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	return s.repo.GetTrips(filter)
}

// GetTrip retrieves a single trip by ID
func (s *TripService) GetTrip(id int64) (*models.Trip, error) {
	t, err := s.repo.GetTripByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("trip", id)
	}
	return t, nil
}

// CreateTrip validates and stores a new trip
func (s *TripService) CreateTrip(t *models.Trip) error {
	if err := validateTrip(t); err != nil {
		return err
	}
	if t.Status == "" {
		t.Status = models.StatusScheduled
	}
	return s.repo.CreateTrip(t)
}

// UpdateTrip updates a trip. Reassigning the trip away from a driver or
// cancelling it through the update releases the slots booked for it, so
// the driver becomes free again.
func (s *TripService) UpdateTrip(t *models.Trip) error {
	if err := validateTrip(t); err != nil {
		return err
	}
	existing, err := s.repo.GetTripByID(t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("trip", t.ID)
	}
	if t.Status != existing.Status && !models.CanTransition(existing.Status, t.Status) {
		return apperr.Validationf("cannot change trip status from %s to %s", existing.Status, t.Status)
	}

	reassigned := (existing.DriverID != 0 && t.DriverID != existing.DriverID) ||
		(existing.ReturnDriverID != 0 && t.ReturnDriverID != existing.ReturnDriverID)
	cancelling := t.Status == models.StatusCancelled && existing.Status != models.StatusCancelled

	ok, err := s.repo.UpdateTrip(t)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("trip", t.ID)
	}
	if reassigned || cancelling {
		if _, err := s.availability.DeleteBookingsByTrip(t.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus moves a trip along its lifecycle. Only forward transitions
// are allowed; cancelling releases any driver slots held for the trip.
func (s *TripService) UpdateStatus(id int64, status string) (*models.Trip, error) {
	t, err := s.repo.GetTripByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("trip", id)
	}
	if !models.CanTransition(t.Status, status) {
		return nil, apperr.Validationf("cannot change trip status from %s to %s", t.Status, status)
	}
	if _, err := s.repo.UpdateTripStatus(id, status); err != nil {
		return nil, err
	}
	if status == models.StatusCancelled {
		if _, err := s.availability.DeleteBookingsByTrip(id); err != nil {
			return nil, err
		}
	}
	t.Status = status
	return t, nil
}

// DeleteTrip removes a trip and releases its driver slots
func (s *TripService) DeleteTrip(id int64) error {
	// bookings cascade on delete, but release explicitly so a failed
	// delete never leaves slots orphaned half-way
	if _, err := s.availability.DeleteBookingsByTrip(id); err != nil {
		return err
	}
	ok, err := s.repo.DeleteTrip(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("trip", id)
	}
	return nil
}

func validateTrip(t *models.Trip) error {
	if t.PatientID <= 0 {
		return apperr.Validationf("patient_id is required")
	}
	if t.PickupTime == "" {
		return apperr.Validationf("pickup_time is required")
	}
	if _, err := schedule.ParseTimestamp(t.PickupTime); err != nil {
		return apperr.Validationf("invalid pickup_time %q", t.PickupTime)
	}
	if t.Pickup.IsZero() {
		return apperr.Validationf("pickup location is required")
	}
	if t.Appointment.IsZero() {
		return apperr.Validationf("appointment location is required")
	}
	if t.Status != "" && !models.ValidStatus(t.Status) {
		return apperr.Validationf("unknown trip status %q", t.Status)
	}
	return nil
}
