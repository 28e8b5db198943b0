package repository

import (
	"database/sql"
	"fmt"

	"github.com/medtransit/transport-backend-go/internal/models"
)

// DestinationRepository handles database operations for destinations
type DestinationRepository struct {
	db *sql.DB
}

// NewDestinationRepository creates a new destination repository
func NewDestinationRepository(db *sql.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

const destinationColumns = `id, name, type,
	COALESCE(street,''), COALESCE(house_number,''), COALESCE(postal_code,''), COALESCE(city,''),
	COALESCE(address,''), COALESCE(phone,''), COALESCE(email,''),
	COALESCE(contact_person,''), COALESCE(notes,''),
	is_active, created_at, updated_at`

func scanDestination(row interface{ Scan(...interface{}) error }) (*models.Destination, error) {
	var d models.Destination
	err := row.Scan(
		&d.ID, &d.Name, &d.Type,
		&d.Street, &d.HouseNumber, &d.PostalCode, &d.City,
		&d.Address, &d.Phone, &d.Email,
		&d.ContactPerson, &d.Notes,
		&d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDestinations retrieves destinations, optionally only active ones
func (r *DestinationRepository) GetDestinations(activeOnly bool) ([]models.Destination, error) {
	query := "SELECT " + destinationColumns + " FROM destinations"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

// GetDestinationByID retrieves a single destination by ID
func (r *DestinationRepository) GetDestinationByID(id int64) (*models.Destination, error) {
	row := r.db.QueryRow("SELECT "+destinationColumns+" FROM destinations WHERE id = ?", id)
	d, err := scanDestination(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}
	return d, nil
}

// CreateDestination inserts a new destination and sets its ID
func (r *DestinationRepository) CreateDestination(d *models.Destination) error {
	res, err := r.db.Exec(
		`INSERT INTO destinations (name, type, street, house_number, postal_code, city,
			address, phone, email, contact_person, notes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Type, nullIfEmpty(d.Street), nullIfEmpty(d.HouseNumber),
		nullIfEmpty(d.PostalCode), nullIfEmpty(d.City), nullIfEmpty(d.Address),
		nullIfEmpty(d.Phone), nullIfEmpty(d.Email), nullIfEmpty(d.ContactPerson),
		nullIfEmpty(d.Notes), d.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	d.ID, err = res.LastInsertId()
	return err
}

// UpdateDestination updates an existing destination; returns false if not found
func (r *DestinationRepository) UpdateDestination(d *models.Destination) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE destinations SET name = ?, type = ?, street = ?, house_number = ?,
			postal_code = ?, city = ?, address = ?, phone = ?, email = ?,
			contact_person = ?, notes = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		d.Name, d.Type, nullIfEmpty(d.Street), nullIfEmpty(d.HouseNumber),
		nullIfEmpty(d.PostalCode), nullIfEmpty(d.City), nullIfEmpty(d.Address),
		nullIfEmpty(d.Phone), nullIfEmpty(d.Email), nullIfEmpty(d.ContactPerson),
		nullIfEmpty(d.Notes), d.IsActive, d.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update destination: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteDestination removes a destination; returns false if not found
func (r *DestinationRepository) DeleteDestination(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM destinations WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete destination: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
