package apperr

import "fmt"

// ValidationError indicates a malformed or incomplete request. The caller
// must fix the input; retrying the same request will not succeed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a reference to a nonexistent resource.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// NotFound builds a NotFoundError for the given resource and id.
func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indicates a uniqueness violation (duplicate pattern or
// booking row). Surfaced as a 409-style outcome, never retried.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NoMatchingPatternError indicates an attempted booking outside any
// covering availability pattern for that driver and weekday.
type NoMatchingPatternError struct {
	DriverID int64
	Date     string
}

func (e *NoMatchingPatternError) Error() string {
	return fmt.Sprintf("driver %d has no availability pattern covering %s", e.DriverID, e.Date)
}
