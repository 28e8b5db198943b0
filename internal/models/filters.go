package models

// TripFilter represents filter parameters for querying trips
type TripFilter struct {
	Status          string `form:"status"`
	PatientID       int64  `form:"patientId"`
	DriverID        int64  `form:"driverId"`
	RecurringTripID int64  `form:"recurringTripId"`
	From            string `form:"from"` // pickup date lower bound, YYYY-MM-DD
	To              string `form:"to"`   // pickup date upper bound, YYYY-MM-DD
	Page            int    `form:"page"`
	PageSize        int    `form:"pageSize"`
}

// BookingFilter represents filter parameters for querying bookings
type BookingFilter struct {
	StartDate string `form:"startDate"` // YYYY-MM-DD
	EndDate   string `form:"endDate"`   // YYYY-MM-DD
}

// AvailabilityQuery carries the parameters of an available-drivers lookup
type AvailabilityQuery struct {
	Date      string `form:"date"`      // YYYY-MM-DD
	StartTime string `form:"startTime"` // HH:MM:SS
	EndTime   string `form:"endTime"`   // HH:MM:SS
}
