package models

import "errors"

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidRoster = errors.New("invalid roster")
	ErrUnknownVenue  = errors.New("unknown venue code")
)

// ValidationError reports malformed request input. It is raised before any
// part of the prediction pipeline runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
