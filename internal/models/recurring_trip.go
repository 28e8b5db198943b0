package models

import "time"

// Recurrence cadence constants
const (
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
	RecurrenceMonthly  = "monthly"
)

// RecurringTrip is a trip template expanded into dated Trip instances.
// Exactly one of EndDate or Occurrences bounds the series. Weekdays uses
// 1=Monday..7=Sunday and is ignored for the monthly cadence, which repeats
// on StartDate's day-of-month instead.
type RecurringTrip struct {
	ID        int64 `json:"id" db:"id"`
	PatientID int64 `json:"patient_id" db:"patient_id"`

	RecurrencePattern string `json:"recurrence_pattern" db:"recurrence_pattern"`
	Weekdays          []int  `json:"weekdays" db:"weekdays_json"`
	StartDate         string `json:"start_date" db:"start_date"`             // YYYY-MM-DD
	EndDate           string `json:"end_date,omitempty" db:"end_date"`       // inclusive bound, "" if unset
	Occurrences       int    `json:"occurrences,omitempty" db:"occurrences"` // 0 if unset

	Pickup          LegLocation `json:"pickup"`
	PickupTimeOfDay string      `json:"pickup_time_of_day" db:"pickup_time_of_day"` // HH:MM:SS

	Appointment          LegLocation `json:"appointment"`
	AppointmentOffsetMin int         `json:"appointment_offset_min,omitempty" db:"appointment_offset_min"`

	Dropoff LegLocation `json:"dropoff,omitempty"`

	HasReturn       bool        `json:"has_return" db:"has_return"`
	ReturnOffsetMin int         `json:"return_offset_min,omitempty" db:"return_offset_min"`
	ReturnPickup    LegLocation `json:"return_pickup,omitempty"`

	Notes    string `json:"notes,omitempty" db:"notes"`
	IsActive bool   `json:"is_active" db:"is_active"`

	PatientName string `json:"patient_name,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
