package service

import (
	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/internal/schedule"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// AvailabilityService handles business logic for driver availability:
// weekly patterns, dated bookings, and the combined free-driver query.
type AvailabilityService struct {
	repo *repository.AvailabilityRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(repo *repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// FindAvailable returns the drivers free for the requested window: the
// window must be fully contained in one of the driver's patterns for that
// weekday and no booking on the date may overlap it. Weekend dates yield
// an empty result by business rule, regardless of patterns.
func (s *AvailabilityService) FindAvailable(q models.AvailabilityQuery) ([]models.AvailableDriver, error) {
	if q.Date == "" || q.StartTime == "" || q.EndTime == "" {
		return nil, apperr.Validationf("date, startTime and endTime are required")
	}
	d, err := schedule.ParseDate(q.Date)
	if err != nil {
		return nil, apperr.Validationf("invalid date %q", q.Date)
	}
	start, err := schedule.NormalizeTimeOfDay(q.StartTime)
	if err != nil {
		return nil, apperr.Validationf("invalid startTime %q", q.StartTime)
	}
	end, err := schedule.NormalizeTimeOfDay(q.EndTime)
	if err != nil {
		return nil, apperr.Validationf("invalid endTime %q", q.EndTime)
	}
	if start >= end {
		return nil, apperr.Validationf("startTime must precede endTime")
	}

	weekday := schedule.WeekdayNumber(d)
	if !schedule.IsWorkday(weekday) {
		return []models.AvailableDriver{}, nil
	}
	return s.repo.FindAvailableDrivers(weekday, q.Date, start, end)
}

// CreateBooking reserves a slot for a trip. The interval must be covered
// by one of the driver's patterns for that weekday; otherwise the booking
// fails with NoMatchingPatternError and nothing is persisted.
func (s *AvailabilityService) CreateBooking(b *models.AvailabilityBooking) error {
	if b.DriverID <= 0 || b.TripID <= 0 {
		return apperr.Validationf("driver_id and trip_id are required")
	}
	d, err := schedule.ParseDate(b.Date)
	if err != nil {
		return apperr.Validationf("invalid date %q", b.Date)
	}
	b.StartTime, err = schedule.NormalizeTimeOfDay(b.StartTime)
	if err != nil {
		return apperr.Validationf("invalid start_time %q", b.StartTime)
	}
	b.EndTime, err = schedule.NormalizeTimeOfDay(b.EndTime)
	if err != nil {
		return apperr.Validationf("invalid end_time %q", b.EndTime)
	}
	if !schedule.ValidWindow(b.StartTime, b.EndTime) {
		return apperr.Validationf("start_time must precede end_time")
	}

	weekday := schedule.WeekdayNumber(d)
	pattern, err := s.repo.FindCoveringPattern(b.DriverID, weekday, b.StartTime, b.EndTime)
	if err != nil {
		return err
	}
	if pattern == nil {
		return &apperr.NoMatchingPatternError{DriverID: b.DriverID, Date: b.Date}
	}
	return s.repo.CreateBooking(b)
}

// DeleteBooking removes a single booking by id
func (s *AvailabilityService) DeleteBooking(id int64) error {
	ok, err := s.repo.DeleteBooking(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("booking", id)
	}
	return nil
}

// DeleteBookingsForTrip releases every slot held for a trip. Idempotent:
// releasing a trip with no bookings removes zero rows and succeeds.
func (s *AvailabilityService) DeleteBookingsForTrip(tripID int64) (int64, error) {
	return s.repo.DeleteBookingsByTrip(tripID)
}

// GetBookingsByDriver retrieves a driver's bookings
func (s *AvailabilityService) GetBookingsByDriver(driverID int64, filter models.BookingFilter) ([]models.AvailabilityBooking, error) {
	return s.repo.GetBookingsByDriver(driverID, filter)
}

// GetBookingsByDate retrieves all bookings on a date
func (s *AvailabilityService) GetBookingsByDate(date string) ([]models.AvailabilityBooking, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, apperr.Validationf("invalid date %q", date)
	}
	return s.repo.GetBookingsByDate(date)
}

// GetPatternsByDriver retrieves a driver's weekly patterns
func (s *AvailabilityService) GetPatternsByDriver(driverID int64) ([]models.AvailabilityPattern, error) {
	return s.repo.GetPatternsByDriver(driverID)
}

// CreatePatterns validates and stores one or more weekly patterns. The
// batch is all-or-nothing: a conflict on any slot persists none of them.
func (s *AvailabilityService) CreatePatterns(patterns []models.AvailabilityPattern) error {
	for i := range patterns {
		p := &patterns[i]
		if p.DriverID <= 0 {
			return apperr.Validationf("driver_id is required")
		}
		if p.Weekday < 1 || p.Weekday > 7 {
			return apperr.Validationf("weekday %d out of range 1-7", p.Weekday)
		}
		var err error
		p.StartTime, err = schedule.NormalizeTimeOfDay(p.StartTime)
		if err != nil {
			return apperr.Validationf("invalid start_time %q", p.StartTime)
		}
		p.EndTime, err = schedule.NormalizeTimeOfDay(p.EndTime)
		if err != nil {
			return apperr.Validationf("invalid end_time %q", p.EndTime)
		}
		if !schedule.ValidWindow(p.StartTime, p.EndTime) {
			return apperr.Validationf("start_time must precede end_time")
		}
	}
	return s.repo.CreatePatterns(patterns)
}

// DeletePattern removes a single pattern by id
func (s *AvailabilityService) DeletePattern(id int64) error {
	ok, err := s.repo.DeletePattern(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("availability pattern", id)
	}
	return nil
}

// DeletePatternsByDriver removes all patterns of a driver
func (s *AvailabilityService) DeletePatternsByDriver(driverID int64) (int64, error) {
	return s.repo.DeletePatternsByDriver(driverID)
}

// SlotCatalog returns the fixed weekday/time-block vocabulary the UI
// offers. Patterns of arbitrary start and end remain legal.
func (s *AvailabilityService) SlotCatalog() ([]int, []models.SlotBlock) {
	return models.SlotWeekdays, models.SlotCatalog
}
