package service

import (
	"errors"
	"testing"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

func newRecurringService(t *testing.T) (*RecurringTripService, *TripService, int64) {
	t.Helper()
	db := newTestDB(t)
	patientID := seedPatient(t, db)
	tripRepo := repository.NewTripRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	svc := NewRecurringTripService(repository.NewRecurringTripRepository(db), tripRepo, 90)
	return svc, NewTripService(tripRepo, availRepo), patientID
}

func weeklyTemplate(patientID int64) *models.RecurringTrip {
	return &models.RecurringTrip{
		PatientID:            patientID,
		RecurrencePattern:    models.RecurrenceWeekly,
		Weekdays:             []int{1, 3}, // Mon, Wed
		StartDate:            "2024-01-01",
		Occurrences:          4,
		Pickup:               models.Addressed("Hauptstr. 1"),
		PickupTimeOfDay:      "08:00:00",
		AppointmentOffsetMin: 30,
		IsActive:             true,
	}
}

func TestGenerateInstances(t *testing.T) {
	svc, _, patientID := newRecurringService(t)

	rt := weeklyTemplate(patientID)
	rt.Appointment = models.Addressed("Dialysezentrum Mitte")
	if err := svc.CreateRecurringTrip(rt); err != nil {
		t.Fatalf("create template: %v", err)
	}

	created, err := svc.GenerateInstances(rt.ID, "2024-03-01")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if created != 4 {
		t.Fatalf("created %d instances, want 4", created)
	}

	instances, err := svc.GetInstances(rt.ID)
	if err != nil {
		t.Fatalf("get instances: %v", err)
	}
	wantPickups := []string{
		"2024-01-01 08:00:00",
		"2024-01-03 08:00:00",
		"2024-01-08 08:00:00",
		"2024-01-10 08:00:00",
	}
	if len(instances) != len(wantPickups) {
		t.Fatalf("got %d instances, want %d", len(instances), len(wantPickups))
	}
	for i, trip := range instances {
		if trip.PickupTime != wantPickups[i] {
			t.Errorf("instance %d pickup %q, want %q", i, trip.PickupTime, wantPickups[i])
		}
		if trip.AppointmentTime != wantPickups[i][:11]+"08:30:00" {
			t.Errorf("instance %d appointment %q, want 08:30:00 on same date", i, trip.AppointmentTime)
		}
		if trip.Status != models.StatusScheduled {
			t.Errorf("instance %d status %q", i, trip.Status)
		}
		if trip.RecurringTripID != rt.ID {
			t.Errorf("instance %d template ref %d", i, trip.RecurringTripID)
		}
	}

	// second run is a no-op
	created, err = svc.GenerateInstances(rt.ID, "2024-03-01")
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if created != 0 {
		t.Fatalf("regeneration created %d instances, want 0", created)
	}
}

func TestGenerateSkipsExistingButCountsThem(t *testing.T) {
	svc, _, patientID := newRecurringService(t)

	rt := weeklyTemplate(patientID)
	rt.Appointment = models.Addressed("Praxis Dr. Kern")
	if err := svc.CreateRecurringTrip(rt); err != nil {
		t.Fatalf("create template: %v", err)
	}

	// first expansion bounded so only two of four occurrences materialize
	created, err := svc.GenerateInstances(rt.ID, "2024-01-03")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if created != 2 {
		t.Fatalf("created %d, want 2", created)
	}

	// widening the horizon fills in the remaining budget only
	created, err = svc.GenerateInstances(rt.ID, "2024-06-01")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if created != 2 {
		t.Fatalf("created %d, want 2", created)
	}

	instances, err := svc.GetInstances(rt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 4 {
		t.Fatalf("got %d instances, want 4", len(instances))
	}
}

func TestGenerateWithReturnLeg(t *testing.T) {
	svc, _, patientID := newRecurringService(t)

	rt := weeklyTemplate(patientID)
	rt.Weekdays = []int{2}
	rt.Occurrences = 1
	rt.Appointment = models.Addressed("Klinikum Nord")
	rt.HasReturn = true
	rt.ReturnOffsetMin = 240
	rt.ReturnPickup = models.Addressed("Klinikum Nord, Haupteingang")
	if err := svc.CreateRecurringTrip(rt); err != nil {
		t.Fatalf("create template: %v", err)
	}

	if _, err := svc.GenerateInstances(rt.ID, "2024-02-01"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	instances, err := svc.GetInstances(rt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 1 {
		t.Fatalf("got %d instances", len(instances))
	}
	if instances[0].ReturnPickupTime != "2024-01-02 12:00:00" {
		t.Fatalf("return pickup %q, want 2024-01-02 12:00:00", instances[0].ReturnPickupTime)
	}
}

func TestGenerateInactiveTemplate(t *testing.T) {
	svc, _, patientID := newRecurringService(t)

	rt := weeklyTemplate(patientID)
	rt.Appointment = models.Addressed("Praxis Dr. Kern")
	if err := svc.CreateRecurringTrip(rt); err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := svc.DeactivateRecurringTrip(rt.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := svc.GenerateInstances(rt.ID, "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateUnknownTemplate(t *testing.T) {
	svc, _, _ := newRecurringService(t)
	_, err := svc.GenerateInstances(9999, "")
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateTemplateRejectsBothBounds(t *testing.T) {
	svc, _, patientID := newRecurringService(t)

	rt := weeklyTemplate(patientID)
	rt.Appointment = models.Addressed("Praxis Dr. Kern")
	rt.EndDate = "2024-06-01"
	// occurrences already set; both bounds is invalid
	err := svc.CreateRecurringTrip(rt)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteTemplateKeepsInstances(t *testing.T) {
	svc, trips, patientID := newRecurringService(t)

	rt := weeklyTemplate(patientID)
	rt.Appointment = models.Addressed("Praxis Dr. Kern")
	if err := svc.CreateRecurringTrip(rt); err != nil {
		t.Fatalf("create template: %v", err)
	}
	if _, err := svc.GenerateInstances(rt.ID, "2024-03-01"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := svc.DeleteRecurringTrip(rt.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}

	got, _, err := trips.GetTrips(models.TripFilter{PatientID: patientID})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("instances after template delete: %d, want 4", len(got))
	}
	for _, trip := range got {
		if trip.RecurringTripID != 0 {
			t.Fatalf("instance %d still references deleted template", trip.ID)
		}
	}
}
