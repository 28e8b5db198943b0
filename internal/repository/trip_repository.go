package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/medtransit/transport-backend-go/internal/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `t.id, t.patient_id,
	COALESCE(t.driver_id,0), COALESCE(t.return_driver_id,0), COALESCE(t.recurring_trip_id,0),
	t.pickup_destination_id, t.pickup_address, t.pickup_time,
	t.appointment_destination_id, t.appointment_address, COALESCE(t.appointment_time,''),
	t.dropoff_destination_id, t.dropoff_address, COALESCE(t.dropoff_time,''),
	t.return_pickup_destination_id, t.return_pickup_address, COALESCE(t.return_pickup_time,''),
	COALESCE(t.distance_km,0), t.status, COALESCE(t.notes,''),
	t.created_at, t.updated_at,
	COALESCE(p.first_name || ' ' || p.last_name, ''),
	COALESCE(d.first_name || ' ' || d.last_name, '')`

const tripJoins = ` FROM trips t
	LEFT JOIN patients p ON t.patient_id = p.id
	LEFT JOIN drivers d ON t.driver_id = d.id`

func scanTrip(row interface{ Scan(...interface{}) error }) (*models.Trip, error) {
	var (
		t                              models.Trip
		pickupID, apptID, dropID, retID sql.NullInt64
		pickupAddr, apptAddr, dropAddr, retAddr sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.PatientID,
		&t.DriverID, &t.ReturnDriverID, &t.RecurringTripID,
		&pickupID, &pickupAddr, &t.PickupTime,
		&apptID, &apptAddr, &t.AppointmentTime,
		&dropID, &dropAddr, &t.DropoffTime,
		&retID, &retAddr, &t.ReturnPickupTime,
		&t.DistanceKm, &t.Status, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
		&t.PatientName, &t.DriverName,
	)
	if err != nil {
		return nil, err
	}
	t.Pickup = models.LegFromRow(pickupID, pickupAddr)
	t.Appointment = models.LegFromRow(apptID, apptAddr)
	t.Dropoff = models.LegFromRow(dropID, dropAddr)
	t.ReturnPickup = models.LegFromRow(retID, retAddr)
	return &t, nil
}

// GetTrips retrieves trips with filtering and pagination
func (r *TripRepository) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, "t.status = ?")
		args = append(args, filter.Status)
	}
	if filter.PatientID > 0 {
		conditions = append(conditions, "t.patient_id = ?")
		args = append(args, filter.PatientID)
	}
	if filter.DriverID > 0 {
		conditions = append(conditions, "t.driver_id = ?")
		args = append(args, filter.DriverID)
	}
	if filter.RecurringTripID > 0 {
		conditions = append(conditions, "t.recurring_trip_id = ?")
		args = append(args, filter.RecurringTripID)
	}
	if filter.From != "" {
		conditions = append(conditions, "substr(t.pickup_time, 1, 10) >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "substr(t.pickup_time, 1, 10) <= ?")
		args = append(args, filter.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM trips t"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + tripColumns + tripJoins + where +
		" ORDER BY t.pickup_time DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	return trips, total, rows.Err()
}

// GetTripByID retrieves a single trip by ID
func (r *TripRepository) GetTripByID(id int64) (*models.Trip, error) {
	row := r.db.QueryRow("SELECT "+tripColumns+tripJoins+" WHERE t.id = ?", id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return t, nil
}

// GetTripsByRecurringTrip retrieves all instances generated from a template,
// ordered by pickup time
func (r *TripRepository) GetTripsByRecurringTrip(recurringTripID int64) ([]models.Trip, error) {
	rows, err := r.db.Query(
		"SELECT "+tripColumns+tripJoins+" WHERE t.recurring_trip_id = ? ORDER BY t.pickup_time ASC",
		recurringTripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip instances: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// InstanceDates returns the set of pickup dates (YYYY-MM-DD) on which a
// trip instance already exists for the template
func (r *TripRepository) InstanceDates(recurringTripID int64) (map[string]bool, error) {
	rows, err := r.db.Query(
		"SELECT substr(pickup_time, 1, 10) FROM trips WHERE recurring_trip_id = ?",
		recurringTripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query instance dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan instance date: %w", err)
		}
		dates[d] = true
	}
	return dates, rows.Err()
}

const tripInsert = `INSERT INTO trips (patient_id, driver_id, return_driver_id, recurring_trip_id,
	pickup_destination_id, pickup_address, pickup_time,
	appointment_destination_id, appointment_address, appointment_time,
	dropoff_destination_id, dropoff_address, dropoff_time,
	return_pickup_destination_id, return_pickup_address, return_pickup_time,
	distance_km, status, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func tripInsertArgs(t *models.Trip) []interface{} {
	pickupID, pickupAddr := t.Pickup.Row()
	apptID, apptAddr := t.Appointment.Row()
	dropID, dropAddr := t.Dropoff.Row()
	retID, retAddr := t.ReturnPickup.Row()
	return []interface{}{
		t.PatientID, nullIfZero(t.DriverID), nullIfZero(t.ReturnDriverID), nullIfZero(t.RecurringTripID),
		pickupID, pickupAddr, t.PickupTime,
		apptID, apptAddr, nullIfEmpty(t.AppointmentTime),
		dropID, dropAddr, nullIfEmpty(t.DropoffTime),
		retID, retAddr, nullIfEmpty(t.ReturnPickupTime),
		nullIfZeroF(t.DistanceKm), t.Status, nullIfEmpty(t.Notes),
	}
}

// CreateTrip inserts a new trip and sets its ID
func (r *TripRepository) CreateTrip(t *models.Trip) error {
	res, err := r.db.Exec(tripInsert, tripInsertArgs(t)...)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	t.ID, err = res.LastInsertId()
	return err
}

// InsertInstances inserts generated trip drafts for a template in a single
// transaction, re-checking per-date existence inside it so a concurrent
// expansion of the same template cannot double-materialize a date.
// All drafts are inserted or none are. Returns the number created.
func (r *TripRepository) InsertInstances(recurringTripID int64, drafts []models.Trip) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	rows, err := tx.Query(
		"SELECT substr(pickup_time, 1, 10) FROM trips WHERE recurring_trip_id = ?",
		recurringTripID,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to query instance dates: %w", err)
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			tx.Rollback()
			return 0, fmt.Errorf("failed to scan instance date: %w", err)
		}
		existing[d] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return 0, err
	}
	rows.Close()

	created := 0
	for i := range drafts {
		d := &drafts[i]
		if len(d.PickupTime) >= 10 && existing[d.PickupTime[:10]] {
			continue
		}
		if _, err := tx.Exec(tripInsert, tripInsertArgs(d)...); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert trip instance: %w", err)
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit trip instances: %w", err)
	}
	return created, nil
}

// UpdateTrip updates an existing trip; returns false if not found
func (r *TripRepository) UpdateTrip(t *models.Trip) (bool, error) {
	pickupID, pickupAddr := t.Pickup.Row()
	apptID, apptAddr := t.Appointment.Row()
	dropID, dropAddr := t.Dropoff.Row()
	retID, retAddr := t.ReturnPickup.Row()

	res, err := r.db.Exec(
		`UPDATE trips SET patient_id = ?, driver_id = ?, return_driver_id = ?,
			pickup_destination_id = ?, pickup_address = ?, pickup_time = ?,
			appointment_destination_id = ?, appointment_address = ?, appointment_time = ?,
			dropoff_destination_id = ?, dropoff_address = ?, dropoff_time = ?,
			return_pickup_destination_id = ?, return_pickup_address = ?, return_pickup_time = ?,
			distance_km = ?, status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		t.PatientID, nullIfZero(t.DriverID), nullIfZero(t.ReturnDriverID),
		pickupID, pickupAddr, t.PickupTime,
		apptID, apptAddr, nullIfEmpty(t.AppointmentTime),
		dropID, dropAddr, nullIfEmpty(t.DropoffTime),
		retID, retAddr, nullIfEmpty(t.ReturnPickupTime),
		nullIfZeroF(t.DistanceKm), t.Status, nullIfEmpty(t.Notes),
		t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update trip: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateTripStatus sets the status of a trip; returns false if not found
func (r *TripRepository) UpdateTripStatus(id int64, status string) (bool, error) {
	res, err := r.db.Exec(
		"UPDATE trips SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update trip status: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteTrip removes a trip; its bookings cascade with it.
// Returns false if not found.
func (r *TripRepository) DeleteTrip(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func nullIfZero(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

func nullIfZeroF(v float64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
