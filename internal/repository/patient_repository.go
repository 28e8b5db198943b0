package repository

import (
	"database/sql"
	"fmt"

	"github.com/medtransit/transport-backend-go/internal/models"
)

// PatientRepository handles database operations for patients
type PatientRepository struct {
	db *sql.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

const patientColumns = `id, first_name, last_name,
	COALESCE(date_of_birth,''), COALESCE(phone,''), COALESCE(email,''),
	COALESCE(street,''), COALESCE(house_number,''), COALESCE(postal_code,''), COALESCE(city,''),
	COALESCE(address,''), COALESCE(medical_notes,''),
	COALESCE(emergency_contact_name,''), COALESCE(emergency_contact_phone,''),
	created_at, updated_at`

func scanPatient(row interface{ Scan(...interface{}) error }) (*models.Patient, error) {
	var p models.Patient
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName,
		&p.DateOfBirth, &p.Phone, &p.Email,
		&p.Street, &p.HouseNumber, &p.PostalCode, &p.City,
		&p.Address, &p.MedicalNotes,
		&p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPatients retrieves all patients, newest first
func (r *PatientRepository) GetPatients() ([]models.Patient, error) {
	rows, err := r.db.Query("SELECT " + patientColumns + " FROM patients ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

// GetPatientByID retrieves a single patient by ID
func (r *PatientRepository) GetPatientByID(id int64) (*models.Patient, error) {
	row := r.db.QueryRow("SELECT "+patientColumns+" FROM patients WHERE id = ?", id)
	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

// CreatePatient inserts a new patient and sets its ID
func (r *PatientRepository) CreatePatient(p *models.Patient) error {
	res, err := r.db.Exec(
		`INSERT INTO patients (first_name, last_name, date_of_birth, phone, email,
			street, house_number, postal_code, city, address,
			medical_notes, emergency_contact_name, emergency_contact_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.FirstName, p.LastName, nullIfEmpty(p.DateOfBirth), nullIfEmpty(p.Phone), nullIfEmpty(p.Email),
		nullIfEmpty(p.Street), nullIfEmpty(p.HouseNumber), nullIfEmpty(p.PostalCode), nullIfEmpty(p.City), nullIfEmpty(p.Address),
		nullIfEmpty(p.MedicalNotes), nullIfEmpty(p.EmergencyContactName), nullIfEmpty(p.EmergencyContactPhone),
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdatePatient updates an existing patient; returns false if not found
func (r *PatientRepository) UpdatePatient(p *models.Patient) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE patients SET first_name = ?, last_name = ?, date_of_birth = ?, phone = ?, email = ?,
			street = ?, house_number = ?, postal_code = ?, city = ?, address = ?,
			medical_notes = ?, emergency_contact_name = ?, emergency_contact_phone = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.FirstName, p.LastName, nullIfEmpty(p.DateOfBirth), nullIfEmpty(p.Phone), nullIfEmpty(p.Email),
		nullIfEmpty(p.Street), nullIfEmpty(p.HouseNumber), nullIfEmpty(p.PostalCode), nullIfEmpty(p.City), nullIfEmpty(p.Address),
		nullIfEmpty(p.MedicalNotes), nullIfEmpty(p.EmergencyContactName), nullIfEmpty(p.EmergencyContactPhone),
		p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update patient: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeletePatient removes a patient; returns false if not found
func (r *PatientRepository) DeletePatient(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// nullIfEmpty maps "" to NULL so optional columns stay genuinely unset
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
