package authclient

import (
	"fmt"

	apperrors "github.com/jrsteele09/bbdap-client/internal/errors"
)

// AuthError reports credentials rejected by the server, carrying the server supplied message.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login rejected (%d): %s", e.StatusCode, e.Message)
}

// ServerMessage is the human readable reason the server gave
func (e *AuthError) ServerMessage() string {
	return e.Message
}

// Is lets callers match any AuthError with errors.Is(err, ErrInvalidCredentials)
func (e *AuthError) Is(target error) bool {
	return target == apperrors.ErrInvalidCredentials
}

var (
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrConnection         = apperrors.ErrConnection
	ErrInvalidToken       = apperrors.ErrInvalidToken
)
