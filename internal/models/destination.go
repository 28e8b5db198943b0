package models

import "time"

// Destination type constants
const (
	DestinationHospital = "hospital"
	DestinationClinic   = "clinic"
	DestinationPractice = "practice"
	DestinationRehab    = "rehab"
	DestinationPharmacy = "pharmacy"
	DestinationOther    = "other"
)

// ValidDestinationType reports whether t is a known destination type.
func ValidDestinationType(t string) bool {
	switch t {
	case DestinationHospital, DestinationClinic, DestinationPractice,
		DestinationRehab, DestinationPharmacy, DestinationOther:
		return true
	}
	return false
}

// Destination represents a named place trips go to or from
type Destination struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`

	// Structured address; Address is the legacy free-text fallback
	Street      string `json:"street,omitempty" db:"street"`
	HouseNumber string `json:"house_number,omitempty" db:"house_number"`
	PostalCode  string `json:"postal_code,omitempty" db:"postal_code"`
	City        string `json:"city,omitempty" db:"city"`
	Address     string `json:"address,omitempty" db:"address"`

	Phone         string `json:"phone,omitempty" db:"phone"`
	Email         string `json:"email,omitempty" db:"email"`
	ContactPerson string `json:"contact_person,omitempty" db:"contact_person"`
	Notes         string `json:"notes,omitempty" db:"notes"`

	IsActive bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
