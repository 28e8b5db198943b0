package models

import "time"

// Driver represents a transport driver.
// IsAvailable is a coarse global toggle, independent of the time-based
// availability patterns and bookings.
type Driver struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Phone     string `json:"phone" db:"phone"`
	Email     string `json:"email,omitempty" db:"email"`

	LicenseNumber       string `json:"license_number" db:"license_number"`
	VehicleType         string `json:"vehicle_type,omitempty" db:"vehicle_type"`
	VehicleRegistration string `json:"vehicle_registration,omitempty" db:"vehicle_registration"`

	IsAvailable bool `json:"is_available" db:"is_available"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
