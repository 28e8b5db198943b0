package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

func newTripService(t *testing.T) (*TripService, *AvailabilityService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	availRepo := repository.NewAvailabilityRepository(db)
	return NewTripService(repository.NewTripRepository(db), availRepo),
		NewAvailabilityService(availRepo), db
}

func TestTripStatusLifecycle(t *testing.T) {
	svc, _, db := newTripService(t)
	tripID := seedTrip(t, db, seedPatient(t, db))

	trip, err := svc.UpdateStatus(tripID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("scheduled -> in_progress: %v", err)
	}
	if trip.Status != models.StatusInProgress {
		t.Fatalf("status %q", trip.Status)
	}

	if _, err = svc.UpdateStatus(tripID, models.StatusCompleted); err != nil {
		t.Fatalf("in_progress -> completed: %v", err)
	}

	// completed is terminal
	_, err = svc.UpdateStatus(tripID, models.StatusInProgress)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error leaving completed, got %v", err)
	}

	got, err := svc.GetTrip(tripID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusCompleted {
		t.Fatalf("rejected transition changed status to %q", got.Status)
	}
}

func TestCancelReleasesBookings(t *testing.T) {
	svc, avail, db := newTripService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, avail, driverID, "08:00:00", "12:00:00")
	tripID := seedTrip(t, db, seedPatient(t, db))

	err := avail.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: tripID,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if _, err := svc.UpdateStatus(tripID, models.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	bookings, err := avail.GetBookingsByDriver(driverID, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 0 {
		t.Fatalf("%d bookings survive cancellation, want 0", len(bookings))
	}
}

func TestCancelViaUpdateReleasesBookings(t *testing.T) {
	svc, avail, db := newTripService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, avail, driverID, "08:00:00", "12:00:00")
	tripID := seedTrip(t, db, seedPatient(t, db))

	err := avail.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: tripID,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	trip, err := svc.GetTrip(tripID)
	if err != nil {
		t.Fatal(err)
	}
	trip.Status = models.StatusCancelled
	if err := svc.UpdateTrip(trip); err != nil {
		t.Fatalf("cancel via update: %v", err)
	}

	bookings, err := avail.GetBookingsByDriver(driverID, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 0 {
		t.Fatalf("%d bookings survive cancellation via update, want 0", len(bookings))
	}
}

func TestDeleteTripReleasesBookings(t *testing.T) {
	svc, avail, db := newTripService(t)
	driverID := seedDriver(t, db, "Jonas", "Brandt")
	mondayPattern(t, avail, driverID, "08:00:00", "12:00:00")
	tripID := seedTrip(t, db, seedPatient(t, db))

	err := avail.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverID, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: tripID,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := svc.DeleteTrip(tripID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetTrip(tripID); err == nil {
		t.Fatal("trip still readable after delete")
	}

	bookings, err := avail.GetBookingsByDriver(driverID, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 0 {
		t.Fatalf("%d bookings survive trip delete, want 0", len(bookings))
	}
}

func TestReassignReleasesBookings(t *testing.T) {
	svc, avail, db := newTripService(t)
	patientID := seedPatient(t, db)
	driverA := seedDriver(t, db, "Jonas", "Brandt")
	driverB := seedDriver(t, db, "Lea", "Winter")
	mondayPattern(t, avail, driverA, "08:00:00", "12:00:00")

	trip := &models.Trip{
		PatientID:   patientID,
		DriverID:    driverA,
		Pickup:      models.Addressed("Hauptstr. 1"),
		PickupTime:  "2024-01-01 08:00:00",
		Appointment: models.Addressed("Klinikum Nord"),
	}
	if err := svc.CreateTrip(trip); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := avail.CreateBooking(&models.AvailabilityBooking{
		DriverID: driverA, Date: "2024-01-01",
		StartTime: "08:00:00", EndTime: "10:00:00", TripID: trip.ID,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	updated := *trip
	updated.DriverID = driverB
	if err := svc.UpdateTrip(&updated); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	bookings, err := avail.GetBookingsByDriver(driverA, models.BookingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 0 {
		t.Fatalf("%d bookings survive reassignment, want 0", len(bookings))
	}
}

func TestCreateTripValidation(t *testing.T) {
	svc, _, db := newTripService(t)
	patientID := seedPatient(t, db)

	tests := []struct {
		name string
		trip models.Trip
	}{
		{"missing patient", models.Trip{
			Pickup: models.Addressed("a"), PickupTime: "2024-01-01 08:00:00",
			Appointment: models.Addressed("b"),
		}},
		{"missing pickup time", models.Trip{
			PatientID: patientID,
			Pickup:    models.Addressed("a"), Appointment: models.Addressed("b"),
		}},
		{"malformed pickup time", models.Trip{
			PatientID: patientID, PickupTime: "tomorrow at eight",
			Pickup: models.Addressed("a"), Appointment: models.Addressed("b"),
		}},
		{"missing pickup leg", models.Trip{
			PatientID: patientID, PickupTime: "2024-01-01 08:00:00",
			Appointment: models.Addressed("b"),
		}},
		{"unknown status", models.Trip{
			PatientID: patientID, PickupTime: "2024-01-01 08:00:00",
			Pickup: models.Addressed("a"), Appointment: models.Addressed("b"),
			Status: "done",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateTrip(&tt.trip)
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
