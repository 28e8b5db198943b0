package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

func newAvailabilityService(t *testing.T) (*AvailabilityService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAvailabilityService(repository.NewAvailabilityRepository(db)), db
}

func mondayPattern(t *testing.T, svc *AvailabilityService, driverID int64, start, end string) {
	t.Helper()
	err := svc.CreatePatterns([]models.AvailabilityPattern{
		{DriverID: driverID, Weekday: 1, StartTime: start, EndTime: end},
	})
	if err != nil {
		t.Fatalf("create pattern: %v", err)
	}
}

func TestFindAvailableContainment(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "10:00:00")

	// 2024-01-01 is a Monday
	inside, err := svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-01", StartTime: "08:00:00", EndTime: "09:00:00",
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(inside) != 1 || inside[0].DriverID != driverID {
		t.Fatalf("got %+v, want driver %d", inside, driverID)
	}
	if inside[0].PatternStart != "08:00:00" || inside[0].PatternEnd != "10:00:00" {
		t.Fatalf("pattern window not echoed: %+v", inside[0])
	}

	// window extends past the pattern end
	outside, err := svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-01", StartTime: "08:00:00", EndTime: "10:30:00",
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(outside) != 0 {
		t.Fatalf("got %d drivers for uncovered window, want 0", len(outside))
	}
}

func TestFindAvailableWeekendIsEmpty(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	// a Saturday pattern can exist, but weekend queries short-circuit
	err := svc.CreatePatterns([]models.AvailabilityPattern{
		{DriverID: driverID, Weekday: 6, StartTime: "08:00:00", EndTime: "18:00:00"},
	})
	if err != nil {
		t.Fatalf("create pattern: %v", err)
	}

	// 2024-01-06 is a Saturday
	drivers, err := svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-06", StartTime: "08:00:00", EndTime: "09:00:00",
	})
	if err != nil {
		t.Fatalf("weekend query errored: %v", err)
	}
	if len(drivers) != 0 {
		t.Fatalf("got %d drivers on a Saturday, want 0", len(drivers))
	}
}

func TestBookingExcludesDriverUntilReleased(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	otherID := seedDriver(t, db, "Lea", "Winter")
	mondayPattern(t, svc, driverID, "08:00:00", "12:00:00")
	mondayPattern(t, svc, otherID, "08:00:00", "12:00:00")

	patientID := seedPatient(t, db)
	tripID := seedTrip(t, db, patientID)

	err := svc.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: tripID,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// overlapping window: only the unbooked driver remains
	free, err := svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-01", StartTime: "09:00:00", EndTime: "11:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(free) != 1 || free[0].DriverID != otherID {
		t.Fatalf("got %+v, want only driver %d", free, otherID)
	}

	// disjoint window: both are free again
	free, err = svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-01", StartTime: "10:30:00", EndTime: "11:30:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(free) != 2 {
		t.Fatalf("got %d drivers for disjoint window, want 2", len(free))
	}

	// releasing the trip's bookings restores the driver
	n, err := svc.DeleteBookingsForTrip(tripID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("released %d bookings, want 1", n)
	}
	free, err = svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-01", StartTime: "09:00:00", EndTime: "11:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(free) != 2 {
		t.Fatalf("got %d drivers after release, want 2", len(free))
	}

	// release is idempotent
	if n, err = svc.DeleteBookingsForTrip(tripID); err != nil || n != 0 {
		t.Fatalf("second release: n=%d err=%v", n, err)
	}
}

func TestBookingWithoutCoveringPattern(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "10:00:00")

	patientID := seedPatient(t, db)
	tripID := seedTrip(t, db, patientID)

	err := svc.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "09:00:00", EndTime: "11:00:00", TripID: tripID,
	})
	var np *apperr.NoMatchingPatternError
	if !errors.As(err, &np) {
		t.Fatalf("expected NoMatchingPatternError, got %v", err)
	}
	if np.DriverID != driverID || np.Date != "2024-01-01" {
		t.Fatalf("error carries wrong context: %+v", np)
	}

	// nothing was persisted
	bookings, err := svc.GetBookingsByDriver(driverID, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 0 {
		t.Fatalf("found %d bookings after failed create, want 0", len(bookings))
	}
}

func TestDuplicateBookingConflicts(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "12:00:00")

	patientID := seedPatient(t, db)
	tripID := seedTrip(t, db, patientID)

	booking := models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: tripID,
	}
	if err := svc.CreateBooking(&booking); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	dup := booking
	dup.ID = 0
	err := svc.CreateBooking(&dup)
	var ce *apperr.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestDuplicatePatternConflicts(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "10:00:00")

	err := svc.CreatePatterns([]models.AvailabilityPattern{
		{DriverID: driverID, Weekday: 1, StartTime: "08:00:00", EndTime: "11:00:00"},
	})
	var ce *apperr.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestPatternBatchIsAllOrNothing(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "10:00:00")

	// second slot duplicates the existing one, so the first must not land
	err := svc.CreatePatterns([]models.AvailabilityPattern{
		{DriverID: driverID, Weekday: 2, StartTime: "08:00:00", EndTime: "10:00:00"},
		{DriverID: driverID, Weekday: 1, StartTime: "08:00:00", EndTime: "11:00:00"},
	})
	var ce *apperr.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	patterns, err := svc.GetPatternsByDriver(driverID)
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns after failed batch, want only the original", len(patterns))
	}
	if patterns[0].Weekday != 1 || patterns[0].EndTime != "10:00:00" {
		t.Fatalf("surviving pattern changed: %+v", patterns[0])
	}
}

func TestBookingUnknownTripIsNotFound(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "12:00:00")

	err := svc.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: 9999,
	})
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	bookings, err := svc.GetBookingsByDriver(driverID, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 0 {
		t.Fatalf("found %d bookings after failed create, want 0", len(bookings))
	}
}

func TestCreatePatternsValidation(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")

	tests := []models.AvailabilityPattern{
		{DriverID: driverID, Weekday: 0, StartTime: "08:00:00", EndTime: "10:00:00"},
		{DriverID: driverID, Weekday: 8, StartTime: "08:00:00", EndTime: "10:00:00"},
		{DriverID: driverID, Weekday: 1, StartTime: "10:00:00", EndTime: "08:00:00"},
		{DriverID: driverID, Weekday: 1, StartTime: "not-a-time", EndTime: "10:00:00"},
		{Weekday: 1, StartTime: "08:00:00", EndTime: "10:00:00"},
	}
	for i, p := range tests {
		err := svc.CreatePatterns([]models.AvailabilityPattern{p})
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestFindAvailableNormalizesShortTimes(t *testing.T) {
	svc, db := newAvailabilityService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, svc, driverID, "08:00:00", "10:00:00")

	drivers, err := svc.FindAvailable(models.AvailabilityQuery{
		Date: "2024-01-01", StartTime: "08:00", EndTime: "09:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(drivers) != 1 {
		t.Fatalf("HH:MM query found %d drivers, want 1", len(drivers))
	}
}
