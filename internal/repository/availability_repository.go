package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/medtransit/transport-backend-go/internal/models"
	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// AvailabilityRepository handles database operations for driver
// availability patterns and bookings
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// ==================== Patterns ====================

// GetPatternsByDriver retrieves a driver's weekly patterns ordered by
// weekday and start time
func (r *AvailabilityRepository) GetPatternsByDriver(driverID int64) ([]models.AvailabilityPattern, error) {
	rows, err := r.db.Query(
		`SELECT id, driver_id, weekday, start_time, end_time, created_at
		 FROM driver_availability_patterns
		 WHERE driver_id = ? ORDER BY weekday, start_time`,
		driverID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	var patterns []models.AvailabilityPattern
	for rows.Next() {
		var p models.AvailabilityPattern
		if err := rows.Scan(&p.ID, &p.DriverID, &p.Weekday, &p.StartTime, &p.EndTime, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// CreatePatterns inserts weekly patterns in one transaction and sets
// their IDs. All rows are inserted or none are; a duplicate
// (driver, weekday, start_time) triple is a conflict and rolls the whole
// batch back.
func (r *AvailabilityRepository) CreatePatterns(patterns []models.AvailabilityPattern) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	for i := range patterns {
		p := &patterns[i]
		res, err := tx.Exec(
			`INSERT INTO driver_availability_patterns (driver_id, weekday, start_time, end_time)
			 VALUES (?, ?, ?, ?)`,
			p.DriverID, p.Weekday, p.StartTime, p.EndTime,
		)
		if isUniqueViolation(err) {
			tx.Rollback()
			return apperr.Conflictf("pattern already exists for driver %d on weekday %d at %s",
				p.DriverID, p.Weekday, p.StartTime)
		}
		if isForeignKeyViolation(err) {
			tx.Rollback()
			return apperr.NotFound("driver", p.DriverID)
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create pattern: %w", err)
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit patterns: %w", err)
	}
	return nil
}

// DeletePattern removes a pattern by id; returns false if not found
func (r *AvailabilityRepository) DeletePattern(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM driver_availability_patterns WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete pattern: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeletePatternsByDriver removes all patterns of a driver and returns the
// number removed
func (r *AvailabilityRepository) DeletePatternsByDriver(driverID int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM driver_availability_patterns WHERE driver_id = ?", driverID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete patterns: %w", err)
	}
	return res.RowsAffected()
}

// FindCoveringPattern returns a pattern of the driver for the weekday that
// fully contains [startTime, endTime], or nil if none exists
func (r *AvailabilityRepository) FindCoveringPattern(driverID int64, weekday int, startTime, endTime string) (*models.AvailabilityPattern, error) {
	row := r.db.QueryRow(
		`SELECT id, driver_id, weekday, start_time, end_time, created_at
		 FROM driver_availability_patterns
		 WHERE driver_id = ? AND weekday = ? AND start_time <= ? AND end_time >= ?
		 ORDER BY start_time LIMIT 1`,
		driverID, weekday, startTime, endTime,
	)
	var p models.AvailabilityPattern
	err := row.Scan(&p.ID, &p.DriverID, &p.Weekday, &p.StartTime, &p.EndTime, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find covering pattern: %w", err)
	}
	return &p, nil
}

// ==================== Bookings ====================

const bookingColumns = `id, driver_id, date, start_time, end_time, trip_id, created_at`

// GetBookingsByDriver retrieves a driver's bookings, optionally bounded to
// a date range
func (r *AvailabilityRepository) GetBookingsByDriver(driverID int64, filter models.BookingFilter) ([]models.AvailabilityBooking, error) {
	query := "SELECT " + bookingColumns + " FROM driver_availability_bookings WHERE driver_id = ?"
	args := []interface{}{driverID}
	if filter.StartDate != "" && filter.EndDate != "" {
		query += " AND date >= ? AND date <= ?"
		args = append(args, filter.StartDate, filter.EndDate)
	}
	query += " ORDER BY date, start_time"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.AvailabilityBooking
	for rows.Next() {
		var b models.AvailabilityBooking
		if err := rows.Scan(&b.ID, &b.DriverID, &b.Date, &b.StartTime, &b.EndTime, &b.TripID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetBookingsByDate retrieves all drivers' bookings on a date, with driver
// names for listing
func (r *AvailabilityRepository) GetBookingsByDate(date string) ([]models.AvailabilityBooking, error) {
	rows, err := r.db.Query(
		`SELECT b.id, b.driver_id, b.date, b.start_time, b.end_time, b.trip_id, b.created_at,
			d.first_name, d.last_name
		 FROM driver_availability_bookings b
		 JOIN drivers d ON b.driver_id = d.id
		 WHERE b.date = ?
		 ORDER BY d.last_name, d.first_name, b.start_time`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for date: %w", err)
	}
	defer rows.Close()

	var bookings []models.AvailabilityBooking
	for rows.Next() {
		var b models.AvailabilityBooking
		if err := rows.Scan(&b.ID, &b.DriverID, &b.Date, &b.StartTime, &b.EndTime, &b.TripID,
			&b.CreatedAt, &b.FirstName, &b.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CreateBooking inserts a booking and sets its ID. An identical
// (driver, date, start, end) interval is a conflict; overlapping but
// distinct intervals are not caught here and must be excluded by an
// availability check beforehand.
func (r *AvailabilityRepository) CreateBooking(b *models.AvailabilityBooking) error {
	res, err := r.db.Exec(
		`INSERT INTO driver_availability_bookings (driver_id, date, start_time, end_time, trip_id)
		 VALUES (?, ?, ?, ?, ?)`,
		b.DriverID, b.Date, b.StartTime, b.EndTime, b.TripID,
	)
	if isUniqueViolation(err) {
		return apperr.Conflictf("time slot %s-%s on %s already booked for driver %d",
			b.StartTime, b.EndTime, b.Date, b.DriverID)
	}
	// the caller has already resolved a covering pattern, which implies
	// the driver row exists, so a foreign key failure means the trip
	if isForeignKeyViolation(err) {
		return apperr.NotFound("trip", b.TripID)
	}
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	b.ID, err = res.LastInsertId()
	return err
}

// DeleteBooking removes a booking by id; returns false if not found
func (r *AvailabilityRepository) DeleteBooking(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM driver_availability_bookings WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteBookingsByTrip removes every booking tied to a trip (primary and
// return driver alike) and returns the number removed. Zero is not an
// error; release is idempotent.
func (r *AvailabilityRepository) DeleteBookingsByTrip(tripID int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM driver_availability_bookings WHERE trip_id = ?", tripID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings for trip: %w", err)
	}
	return res.RowsAffected()
}

// ==================== Combined query ====================

// FindAvailableDrivers returns drivers whose weekly pattern for the
// weekday fully contains [startTime, endTime] and who hold no conflicting
// booking on the date. Bound semantics are inclusive on both checks.
func (r *AvailabilityRepository) FindAvailableDrivers(weekday int, date, startTime, endTime string) ([]models.AvailableDriver, error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT
			p.driver_id, p.weekday, p.start_time, p.end_time,
			d.first_name, d.last_name,
			COALESCE(d.vehicle_type,''), COALESCE(d.vehicle_registration,'')
		 FROM driver_availability_patterns p
		 JOIN drivers d ON p.driver_id = d.id
		 WHERE p.weekday = ?
			AND p.start_time <= ?
			AND p.end_time >= ?
			AND d.is_available = 1
			AND NOT EXISTS (
				SELECT 1 FROM driver_availability_bookings b
				WHERE b.driver_id = p.driver_id
					AND b.date = ?
					AND b.start_time <= ?
					AND b.end_time >= ?
			)
		 ORDER BY d.last_name, d.first_name`,
		weekday, startTime, endTime, date, endTime, startTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query available drivers: %w", err)
	}
	defer rows.Close()

	var drivers []models.AvailableDriver
	for rows.Next() {
		var a models.AvailableDriver
		if err := rows.Scan(&a.DriverID, &a.Weekday, &a.PatternStart, &a.PatternEnd,
			&a.FirstName, &a.LastName, &a.VehicleType, &a.VehicleRegistration); err != nil {
			return nil, fmt.Errorf("failed to scan available driver: %w", err)
		}
		drivers = append(drivers, a)
	}
	return drivers, rows.Err()
}
