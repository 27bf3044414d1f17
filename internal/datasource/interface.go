package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// DataSource fetches the raw race page for a query.
type DataSource interface {
	// FetchRacePage performs a single GET for the race and returns its markup.
	FetchRacePage(ctx context.Context, query models.RaceQuery) ([]byte, error)

	// Name returns the name of the data source
	Name() string
}

// Error codes carried by FetchError
const (
	ErrCodeNetworkError = "network_error"
	ErrCodeTimeout      = "timeout"
	ErrCodeHTTPStatus   = "http_status"
	ErrCodeReadError    = "read_error"
	ErrCodeInvalidURL   = "invalid_url"
)

// ErrFetch is matched by every FetchError via errors.Is.
var ErrFetch = errors.New("race page fetch failed")

// FetchError reports a failed page fetch. Fetches are never retried; the
// caller decides whether to fall back to synthetic data.
type FetchError struct {
	Source     string // Data source name
	Code       string // One of the ErrCode constants
	Message    string
	StatusCode int   // Upstream status for ErrCodeHTTPStatus
	Err        error // Underlying error
}

func (e *FetchError) Error() string {
	msg := e.Source + ": " + e.Code + ": " + e.Message
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) true for any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// NewFetchError creates a new fetch error
func NewFetchError(source, code, message string, err error) *FetchError {
	return &FetchError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FetchErrorCode extracts the code from a FetchError, or returns "" for other errors.
func FetchErrorCode(err error) string {
	var ferr *FetchError
	if errors.As(err, &ferr) {
		return ferr.Code
	}
	return ""
}
