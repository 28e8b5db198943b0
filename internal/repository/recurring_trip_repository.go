package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/medtransit/transport-backend-go/internal/models"
)

// RecurringTripRepository handles database operations for trip templates
type RecurringTripRepository struct {
	db *sql.DB
}

// NewRecurringTripRepository creates a new recurring trip repository
func NewRecurringTripRepository(db *sql.DB) *RecurringTripRepository {
	return &RecurringTripRepository{db: db}
}

const recurringColumns = `rt.id, rt.patient_id, rt.recurrence_pattern, rt.weekdays_json,
	rt.start_date, COALESCE(rt.end_date,''), COALESCE(rt.occurrences,0),
	rt.pickup_destination_id, rt.pickup_address, rt.pickup_time_of_day,
	rt.appointment_destination_id, rt.appointment_address, rt.appointment_offset_min,
	rt.dropoff_destination_id, rt.dropoff_address,
	rt.has_return, rt.return_offset_min,
	rt.return_pickup_destination_id, rt.return_pickup_address,
	COALESCE(rt.notes,''), rt.is_active, rt.created_at, rt.updated_at,
	COALESCE(p.first_name || ' ' || p.last_name, '')`

const recurringJoins = ` FROM recurring_trips rt
	LEFT JOIN patients p ON rt.patient_id = p.id`

func scanRecurringTrip(row interface{ Scan(...interface{}) error }) (*models.RecurringTrip, error) {
	var (
		rt                               models.RecurringTrip
		weekdaysJSON                     string
		pickupID, apptID, dropID, retID  sql.NullInt64
		pickupAddr, apptAddr, dropAddr, retAddr sql.NullString
	)
	err := row.Scan(
		&rt.ID, &rt.PatientID, &rt.RecurrencePattern, &weekdaysJSON,
		&rt.StartDate, &rt.EndDate, &rt.Occurrences,
		&pickupID, &pickupAddr, &rt.PickupTimeOfDay,
		&apptID, &apptAddr, &rt.AppointmentOffsetMin,
		&dropID, &dropAddr,
		&rt.HasReturn, &rt.ReturnOffsetMin,
		&retID, &retAddr,
		&rt.Notes, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt,
		&rt.PatientName,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(weekdaysJSON), &rt.Weekdays); err != nil {
		return nil, fmt.Errorf("failed to decode weekdays for template %d: %w", rt.ID, err)
	}
	rt.Pickup = models.LegFromRow(pickupID, pickupAddr)
	rt.Appointment = models.LegFromRow(apptID, apptAddr)
	rt.Dropoff = models.LegFromRow(dropID, dropAddr)
	rt.ReturnPickup = models.LegFromRow(retID, retAddr)
	return &rt, nil
}

// GetRecurringTrips retrieves all templates, newest first
func (r *RecurringTripRepository) GetRecurringTrips() ([]models.RecurringTrip, error) {
	return r.queryRecurringTrips(
		"SELECT " + recurringColumns + recurringJoins + " ORDER BY rt.created_at DESC")
}

// GetRecurringTripsByPatient retrieves a patient's active templates
func (r *RecurringTripRepository) GetRecurringTripsByPatient(patientID int64) ([]models.RecurringTrip, error) {
	return r.queryRecurringTrips(
		"SELECT "+recurringColumns+recurringJoins+
			" WHERE rt.patient_id = ? AND rt.is_active = 1 ORDER BY rt.start_date DESC",
		patientID,
	)
}

func (r *RecurringTripRepository) queryRecurringTrips(query string, args ...interface{}) ([]models.RecurringTrip, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring trips: %w", err)
	}
	defer rows.Close()

	var templates []models.RecurringTrip
	for rows.Next() {
		rt, err := scanRecurringTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring trip: %w", err)
		}
		templates = append(templates, *rt)
	}
	return templates, rows.Err()
}

// GetRecurringTripByID retrieves a single template by ID
func (r *RecurringTripRepository) GetRecurringTripByID(id int64) (*models.RecurringTrip, error) {
	row := r.db.QueryRow("SELECT "+recurringColumns+recurringJoins+" WHERE rt.id = ?", id)
	rt, err := scanRecurringTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring trip: %w", err)
	}
	return rt, nil
}

// CreateRecurringTrip inserts a new template and sets its ID
func (r *RecurringTripRepository) CreateRecurringTrip(rt *models.RecurringTrip) error {
	weekdaysJSON, err := json.Marshal(rt.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to encode weekdays: %w", err)
	}
	pickupID, pickupAddr := rt.Pickup.Row()
	apptID, apptAddr := rt.Appointment.Row()
	dropID, dropAddr := rt.Dropoff.Row()
	retID, retAddr := rt.ReturnPickup.Row()

	res, err := r.db.Exec(
		`INSERT INTO recurring_trips (patient_id, recurrence_pattern, weekdays_json,
			start_date, end_date, occurrences,
			pickup_destination_id, pickup_address, pickup_time_of_day,
			appointment_destination_id, appointment_address, appointment_offset_min,
			dropoff_destination_id, dropoff_address,
			has_return, return_offset_min, return_pickup_destination_id, return_pickup_address,
			notes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.PatientID, rt.RecurrencePattern, string(weekdaysJSON),
		rt.StartDate, nullIfEmpty(rt.EndDate), nullIfZero(int64(rt.Occurrences)),
		pickupID, pickupAddr, rt.PickupTimeOfDay,
		apptID, apptAddr, rt.AppointmentOffsetMin,
		dropID, dropAddr,
		rt.HasReturn, rt.ReturnOffsetMin, retID, retAddr,
		nullIfEmpty(rt.Notes), rt.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create recurring trip: %w", err)
	}
	rt.ID, err = res.LastInsertId()
	return err
}

// UpdateRecurringTrip updates an existing template; returns false if not found
func (r *RecurringTripRepository) UpdateRecurringTrip(rt *models.RecurringTrip) (bool, error) {
	weekdaysJSON, err := json.Marshal(rt.Weekdays)
	if err != nil {
		return false, fmt.Errorf("failed to encode weekdays: %w", err)
	}
	pickupID, pickupAddr := rt.Pickup.Row()
	apptID, apptAddr := rt.Appointment.Row()
	dropID, dropAddr := rt.Dropoff.Row()
	retID, retAddr := rt.ReturnPickup.Row()

	res, err := r.db.Exec(
		`UPDATE recurring_trips SET patient_id = ?, recurrence_pattern = ?, weekdays_json = ?,
			start_date = ?, end_date = ?, occurrences = ?,
			pickup_destination_id = ?, pickup_address = ?, pickup_time_of_day = ?,
			appointment_destination_id = ?, appointment_address = ?, appointment_offset_min = ?,
			dropoff_destination_id = ?, dropoff_address = ?,
			has_return = ?, return_offset_min = ?,
			return_pickup_destination_id = ?, return_pickup_address = ?,
			notes = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rt.PatientID, rt.RecurrencePattern, string(weekdaysJSON),
		rt.StartDate, nullIfEmpty(rt.EndDate), nullIfZero(int64(rt.Occurrences)),
		pickupID, pickupAddr, rt.PickupTimeOfDay,
		apptID, apptAddr, rt.AppointmentOffsetMin,
		dropID, dropAddr,
		rt.HasReturn, rt.ReturnOffsetMin, retID, retAddr,
		nullIfEmpty(rt.Notes), rt.IsActive, rt.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update recurring trip: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeactivateRecurringTrip soft-deletes a template so it is no longer
// expanded; returns false if not found
func (r *RecurringTripRepository) DeactivateRecurringTrip(id int64) (bool, error) {
	res, err := r.db.Exec(
		"UPDATE recurring_trips SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate recurring trip: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteRecurringTrip removes a template. Generated trips survive with
// their back-reference cleared. Returns false if not found.
func (r *RecurringTripRepository) DeleteRecurringTrip(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM recurring_trips WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete recurring trip: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
