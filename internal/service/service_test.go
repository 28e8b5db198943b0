package service

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/internal/repository"
)

// newTestDB opens a fresh file-backed database with the full schema
// applied. File-backed rather than :memory: so every connection in the
// pool sees the same database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func seedPatient(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	svc := NewPatientService(repository.NewPatientRepository(db))
	p := &models.Patient{FirstName: "Maria", LastName: "Weber"}
	if err := svc.CreatePatient(p); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return p.ID
}

func seedDriver(t *testing.T, db *sql.DB, firstName, lastName string) int64 {
	t.Helper()
	svc := NewDriverService(repository.NewDriverRepository(db))
	d := &models.Driver{
		FirstName:     firstName,
		LastName:      lastName,
		Phone:         "0170-1234567",
		LicenseNumber: "B-" + lastName,
		IsAvailable:   true,
	}
	if err := svc.CreateDriver(d); err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return d.ID
}

func seedTrip(t *testing.T, db *sql.DB, patientID int64) int64 {
	t.Helper()
	svc := NewTripService(repository.NewTripRepository(db), repository.NewAvailabilityRepository(db))
	trip := &models.Trip{
		PatientID:   patientID,
		Pickup:      models.Addressed("Hauptstr. 1"),
		PickupTime:  "2024-01-01 08:00:00",
		Appointment: models.Addressed("Klinikum Nord"),
	}
	if err := svc.CreateTrip(trip); err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return trip.ID
}
