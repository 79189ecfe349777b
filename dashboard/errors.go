package dashboard

import (
	"fmt"

	apperrors "github.com/jrsteele09/bbdap-client/internal/errors"
)

var (
	ErrFetch        = apperrors.ErrFetch
	ErrUnauthorized = apperrors.ErrUnauthorized
)

// FetchError describes any failure loading dashboard data: a non-200 status, an undecodable body
// or a transport failure. StatusCode is zero when no response was received.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches ErrFetch for every FetchError and ErrUnauthorized for 401 responses
func (e *FetchError) Is(target error) bool {
	switch target {
	case apperrors.ErrFetch:
		return true
	case apperrors.ErrUnauthorized:
		return e.StatusCode == 401
	}
	return false
}
