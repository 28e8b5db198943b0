package repository

import (
	"database/sql"
	"fmt"

	"github.com/medtransit/transport-backend-go/internal/models"
)

// DriverRepository handles database operations for drivers
type DriverRepository struct {
	db *sql.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = `id, first_name, last_name, phone, COALESCE(email,''),
	license_number, COALESCE(vehicle_type,''), COALESCE(vehicle_registration,''),
	is_available, created_at, updated_at`

func scanDriver(row interface{ Scan(...interface{}) error }) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Phone, &d.Email,
		&d.LicenseNumber, &d.VehicleType, &d.VehicleRegistration,
		&d.IsAvailable, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDrivers retrieves all drivers, newest first
func (r *DriverRepository) GetDrivers() ([]models.Driver, error) {
	return r.queryDrivers("SELECT " + driverColumns + " FROM drivers ORDER BY created_at DESC")
}

// GetAvailableDrivers retrieves drivers with the coarse availability flag set.
// This is the global toggle, not the time-based pattern check.
func (r *DriverRepository) GetAvailableDrivers() ([]models.Driver, error) {
	return r.queryDrivers("SELECT " + driverColumns + " FROM drivers WHERE is_available = 1 ORDER BY last_name")
}

func (r *DriverRepository) queryDrivers(query string, args ...interface{}) ([]models.Driver, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, *d)
	}
	return drivers, rows.Err()
}

// GetDriverByID retrieves a single driver by ID
func (r *DriverRepository) GetDriverByID(id int64) (*models.Driver, error) {
	row := r.db.QueryRow("SELECT "+driverColumns+" FROM drivers WHERE id = ?", id)
	d, err := scanDriver(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return d, nil
}

// CreateDriver inserts a new driver and sets its ID
func (r *DriverRepository) CreateDriver(d *models.Driver) error {
	res, err := r.db.Exec(
		`INSERT INTO drivers (first_name, last_name, phone, email, license_number,
			vehicle_type, vehicle_registration, is_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.FirstName, d.LastName, d.Phone, nullIfEmpty(d.Email), d.LicenseNumber,
		nullIfEmpty(d.VehicleType), nullIfEmpty(d.VehicleRegistration), d.IsAvailable,
	)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	d.ID, err = res.LastInsertId()
	return err
}

// UpdateDriver updates an existing driver; returns false if not found
func (r *DriverRepository) UpdateDriver(d *models.Driver) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE drivers SET first_name = ?, last_name = ?, phone = ?, email = ?,
			license_number = ?, vehicle_type = ?, vehicle_registration = ?,
			is_available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		d.FirstName, d.LastName, d.Phone, nullIfEmpty(d.Email),
		d.LicenseNumber, nullIfEmpty(d.VehicleType), nullIfEmpty(d.VehicleRegistration),
		d.IsAvailable, d.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update driver: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteDriver removes a driver; availability patterns and bookings
// cascade with it. Returns false if not found.
func (r *DriverRepository) DeleteDriver(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM drivers WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete driver: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
