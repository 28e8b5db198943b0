package models

import "time"

// AvailabilityPattern is a driver's recurring weekly free window,
// effective indefinitely. Weekday uses 1=Monday..7=Sunday. A driver
// cannot have two patterns on the same weekday with the same start time.
type AvailabilityPattern struct {
	ID        int64     `json:"id" db:"id"`
	DriverID  int64     `json:"driver_id" db:"driver_id"`
	Weekday   int       `json:"weekday" db:"weekday"`
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM:SS
	EndTime   string    `json:"end_time" db:"end_time"`     // HH:MM:SS
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AvailabilityBooking occupies part of a driver's availability on a
// concrete date, tied to a trip. Deleted when the trip is deleted,
// cancelled or reassigned.
type AvailabilityBooking struct {
	ID        int64  `json:"id" db:"id"`
	DriverID  int64  `json:"driver_id" db:"driver_id"`
	Date      string `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime string `json:"start_time" db:"start_time"` // HH:MM:SS
	EndTime   string `json:"end_time" db:"end_time"`     // HH:MM:SS
	TripID    int64  `json:"trip_id" db:"trip_id"`

	// Denormalized for per-date listings, not stored
	FirstName string `json:"first_name,omitempty" db:"-"`
	LastName  string `json:"last_name,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AvailableDriver is a query result: a free driver plus the pattern
// window that matched, echoed back so the caller can book immediately.
type AvailableDriver struct {
	DriverID            int64  `json:"driver_id"`
	Weekday             int    `json:"weekday"`
	PatternStart        string `json:"start_time"`
	PatternEnd          string `json:"end_time"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	VehicleType         string `json:"vehicle_type,omitempty"`
	VehicleRegistration string `json:"vehicle_registration,omitempty"`
}

// SlotBlock is one entry of the fixed scheduling catalog shown in the UI.
// Patterns of arbitrary start/end remain legal; this is a convenience
// vocabulary, not a constraint.
type SlotBlock struct {
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SlotCatalog is the fixed Monday-Friday catalog of five 2-hour blocks.
var SlotCatalog = []SlotBlock{
	{Label: "08-10", StartTime: "08:00:00", EndTime: "10:00:00"},
	{Label: "10-12", StartTime: "10:00:00", EndTime: "12:00:00"},
	{Label: "12-14", StartTime: "12:00:00", EndTime: "14:00:00"},
	{Label: "14-16", StartTime: "14:00:00", EndTime: "16:00:00"},
	{Label: "16-18", StartTime: "16:00:00", EndTime: "18:00:00"},
}

// SlotWeekdays lists the weekday numbers the catalog covers.
var SlotWeekdays = []int{1, 2, 3, 4, 5}
