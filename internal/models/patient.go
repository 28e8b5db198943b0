package models

import "time"

// Patient represents a transported patient
type Patient struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`

	DateOfBirth string `json:"date_of_birth,omitempty" db:"date_of_birth"` // YYYY-MM-DD
	Phone       string `json:"phone,omitempty" db:"phone"`
	Email       string `json:"email,omitempty" db:"email"`

	// Structured address; Address is the legacy free-text fallback
	Street      string `json:"street,omitempty" db:"street"`
	HouseNumber string `json:"house_number,omitempty" db:"house_number"`
	PostalCode  string `json:"postal_code,omitempty" db:"postal_code"`
	City        string `json:"city,omitempty" db:"city"`
	Address     string `json:"address,omitempty" db:"address"`

	MedicalNotes          string `json:"medical_notes,omitempty" db:"medical_notes"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
