package service

import (
	"time"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/internal/schedule"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// RecurringTripService handles business logic for trip templates,
// including their expansion into concrete trip instances.
type RecurringTripService struct {
	repo        *repository.RecurringTripRepository
	trips       *repository.TripRepository
	horizonDays int
}

// NewRecurringTripService creates a new recurring trip service.
// horizonDays bounds expansion when the caller gives no explicit date.
func NewRecurringTripService(repo *repository.RecurringTripRepository, trips *repository.TripRepository, horizonDays int) *RecurringTripService {
	if horizonDays <= 0 {
		horizonDays = 90
	}
	return &RecurringTripService{repo: repo, trips: trips, horizonDays: horizonDays}
}

// GetRecurringTrips retrieves all templates
func (s *RecurringTripService) GetRecurringTrips() ([]models.RecurringTrip, error) {
	return s.repo.GetRecurringTrips()
}

// GetRecurringTripsByPatient retrieves a patient's active templates
func (s *RecurringTripService) GetRecurringTripsByPatient(patientID int64) ([]models.RecurringTrip, error) {
	return s.repo.GetRecurringTripsByPatient(patientID)
}

// GetRecurringTripByID retrieves a single template
func (s *RecurringTripService) GetRecurringTripByID(id int64) (*models.RecurringTrip, error) {
	rt, err := s.repo.GetRecurringTripByID(id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, apperr.NotFound("recurring trip", id)
	}
	return rt, nil
}

// CreateRecurringTrip validates and stores a new template
func (s *RecurringTripService) CreateRecurringTrip(rt *models.RecurringTrip) error {
	if err := s.validateTemplate(rt); err != nil {
		return err
	}
	return s.repo.CreateRecurringTrip(rt)
}

// UpdateRecurringTrip validates and stores changes to a template
func (s *RecurringTripService) UpdateRecurringTrip(rt *models.RecurringTrip) error {
	if err := s.validateTemplate(rt); err != nil {
		return err
	}
	ok, err := s.repo.UpdateRecurringTrip(rt)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("recurring trip", rt.ID)
	}
	return nil
}

// DeactivateRecurringTrip soft-deletes a template
func (s *RecurringTripService) DeactivateRecurringTrip(id int64) error {
	ok, err := s.repo.DeactivateRecurringTrip(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("recurring trip", id)
	}
	return nil
}

// DeleteRecurringTrip removes a template
func (s *RecurringTripService) DeleteRecurringTrip(id int64) error {
	ok, err := s.repo.DeleteRecurringTrip(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("recurring trip", id)
	}
	return nil
}

// GetInstances retrieves all trips generated from a template
func (s *RecurringTripService) GetInstances(id int64) ([]models.Trip, error) {
	rt, err := s.repo.GetRecurringTripByID(id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, apperr.NotFound("recurring trip", id)
	}
	return s.trips.GetTripsByRecurringTrip(id)
}

// GenerateInstances expands a template into trip instances up to the given
// date (or the configured horizon when empty) and returns how many were
// created. Re-running with the same arguments creates nothing new: dates
// that already carry an instance are skipped but still consume the
// occurrence budget, and the insert itself re-checks inside one
// transaction.
func (s *RecurringTripService) GenerateInstances(id int64, generateUntil string) (int, error) {
	rt, err := s.repo.GetRecurringTripByID(id)
	if err != nil {
		return 0, err
	}
	if rt == nil {
		return 0, apperr.NotFound("recurring trip", id)
	}
	if !rt.IsActive {
		return 0, apperr.Validationf("recurring trip %d is inactive", id)
	}

	rule, err := templateRule(rt)
	if err != nil {
		return 0, err
	}
	if err := rule.Validate(); err != nil {
		return 0, err
	}

	horizon := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, s.horizonDays)
	if generateUntil != "" {
		horizon, err = schedule.ParseDate(generateUntil)
		if err != nil {
			return 0, apperr.Validationf("invalid generate_until date %q", generateUntil)
		}
	}

	existing, err := s.trips.InstanceDates(id)
	if err != nil {
		return 0, err
	}

	dates := rule.DatesUntil(horizon, func(d time.Time) bool {
		return existing[d.Format(schedule.DateLayout)]
	})

	drafts, err := buildDrafts(rt, dates)
	if err != nil {
		return 0, err
	}
	if len(drafts) == 0 {
		return 0, nil
	}
	return s.trips.InsertInstances(id, drafts)
}

// templateRule extracts the date-generating rule from a template
func templateRule(rt *models.RecurringTrip) (schedule.Rule, error) {
	start, err := schedule.ParseDate(rt.StartDate)
	if err != nil {
		return schedule.Rule{}, apperr.Validationf("invalid start_date %q", rt.StartDate)
	}
	rule := schedule.Rule{
		Cadence:     schedule.Cadence(rt.RecurrencePattern),
		Weekdays:    rt.Weekdays,
		Start:       start,
		Occurrences: rt.Occurrences,
	}
	if rt.EndDate != "" {
		end, err := schedule.ParseDate(rt.EndDate)
		if err != nil {
			return schedule.Rule{}, apperr.Validationf("invalid end_date %q", rt.EndDate)
		}
		rule.End = end
	}
	return rule, nil
}

// buildDrafts materializes trip drafts for the given occurrence dates,
// copying leg locations from the template and resolving absolute times.
// Dropoff time stays unset; it is recorded at completion, not generated.
func buildDrafts(rt *models.RecurringTrip, dates []time.Time) ([]models.Trip, error) {
	pickupTOD, err := schedule.ParseTimeOfDay(rt.PickupTimeOfDay)
	if err != nil {
		return nil, apperr.Validationf("invalid pickup_time_of_day %q", rt.PickupTimeOfDay)
	}

	drafts := make([]models.Trip, 0, len(dates))
	for _, d := range dates {
		pickup := schedule.Combine(d, pickupTOD)
		t := models.Trip{
			PatientID:       rt.PatientID,
			RecurringTripID: rt.ID,
			Pickup:          rt.Pickup,
			PickupTime:      pickup.Format(schedule.TimestampLayout),
			Appointment:     rt.Appointment,
			Dropoff:         rt.Dropoff,
			Status:          models.StatusScheduled,
			Notes:           rt.Notes,
		}
		if !rt.Appointment.IsZero() {
			appt := pickup.Add(time.Duration(rt.AppointmentOffsetMin) * time.Minute)
			t.AppointmentTime = appt.Format(schedule.TimestampLayout)
		}
		if rt.HasReturn {
			ret := pickup.Add(time.Duration(rt.ReturnOffsetMin) * time.Minute)
			t.ReturnPickupTime = ret.Format(schedule.TimestampLayout)
			t.ReturnPickup = rt.ReturnPickup
		}
		drafts = append(drafts, t)
	}
	return drafts, nil
}

// validateTemplate checks a template before it is stored
func (s *RecurringTripService) validateTemplate(rt *models.RecurringTrip) error {
	if rt.PatientID <= 0 {
		return apperr.Validationf("patient_id is required")
	}
	rule, err := templateRule(rt)
	if err != nil {
		return err
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	if _, err := schedule.ParseTimeOfDay(rt.PickupTimeOfDay); err != nil {
		return apperr.Validationf("invalid pickup_time_of_day %q", rt.PickupTimeOfDay)
	}
	if rt.Pickup.IsZero() {
		return apperr.Validationf("pickup requires a destination_id or address")
	}
	if rt.Appointment.IsZero() {
		return apperr.Validationf("appointment requires a destination_id or address")
	}
	if rt.AppointmentOffsetMin < 0 || rt.ReturnOffsetMin < 0 {
		return apperr.Validationf("time offsets must not be negative")
	}
	if rt.HasReturn && rt.ReturnOffsetMin == 0 {
		return apperr.Validationf("return_offset_min is required when has_return is set")
	}
	return nil
}
