package schedule

import (
	"fmt"
	"time"
)

// Canonical layouts. Dates and times of day are stored as TEXT, so
// lexicographic comparison on HH:MM:SS strings is chronological.
const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"
	TimestampLayout = "2006-01-02 15:04:05"
)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseTimeOfDay parses HH:MM:SS (or HH:MM) into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ParseTimestamp parses a full "YYYY-MM-DD HH:MM:SS" timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}

// NormalizeTimeOfDay re-renders a valid HH:MM:SS or HH:MM string in the
// canonical HH:MM:SS form.
func NormalizeTimeOfDay(s string) (string, error) {
	d, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return time.Time{}.Add(d).Format(TimeOfDayLayout), nil
}

// Combine anchors a time of day on a concrete date.
func Combine(date time.Time, timeOfDay time.Duration) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(timeOfDay)
}

// WeekdayNumber maps a date to the 1=Monday..7=Sunday convention.
func WeekdayNumber(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsWorkday reports whether a weekday number falls on Monday-Friday.
func IsWorkday(weekday int) bool {
	return weekday >= 1 && weekday <= 5
}

// startOfWeek returns the Monday of the week containing t, at midnight UTC.
func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -(WeekdayNumber(t) - 1))
}

// clampDayOfMonth returns day bounded to the length of the month
// containing t.
func clampDayOfMonth(t time.Time, day int) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	last := firstOfNext.AddDate(0, 0, -1).Day()
	if day > last {
		return last
	}
	return day
}
