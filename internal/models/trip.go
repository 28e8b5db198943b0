package models

import "time"

// Trip status constants
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is a known trip status.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a trip may move from one status to another.
// The forward order is scheduled -> in_progress -> completed; cancelled is
// reachable from any non-terminal state. Completed and cancelled are final.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusScheduled:
		return to == StatusInProgress || to == StatusCompleted || to == StatusCancelled
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// Trip represents a concrete, dated transport — standalone or generated
// from a recurring template (RecurringTripID back-reference).
type Trip struct {
	ID        int64 `json:"id" db:"id"`
	PatientID int64 `json:"patient_id" db:"patient_id"`

	// 0 means unassigned / not generated from a template
	DriverID        int64 `json:"driver_id,omitempty" db:"driver_id"`
	ReturnDriverID  int64 `json:"return_driver_id,omitempty" db:"return_driver_id"`
	RecurringTripID int64 `json:"recurring_trip_id,omitempty" db:"recurring_trip_id"`

	Pickup     LegLocation `json:"pickup"`
	PickupTime string      `json:"pickup_time" db:"pickup_time"` // YYYY-MM-DD HH:MM:SS

	Appointment     LegLocation `json:"appointment,omitempty"`
	AppointmentTime string      `json:"appointment_time,omitempty" db:"appointment_time"`

	Dropoff     LegLocation `json:"dropoff,omitempty"`
	DropoffTime string      `json:"dropoff_time,omitempty" db:"dropoff_time"`

	ReturnPickup     LegLocation `json:"return_pickup,omitempty"`
	ReturnPickupTime string      `json:"return_pickup_time,omitempty" db:"return_pickup_time"`

	DistanceKm float64 `json:"distance_km,omitempty" db:"distance_km"`
	Status     string  `json:"status" db:"status"`
	Notes      string  `json:"notes,omitempty" db:"notes"`

	// Denormalized for list views, not stored
	PatientName string `json:"patient_name,omitempty" db:"-"`
	DriverName  string `json:"driver_name,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
