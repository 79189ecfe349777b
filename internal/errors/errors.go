package errors

import (
	"errors"
	"fmt"
)

// Common error types for the dashboard client and its demo backend
var (
	// Transport errors
	ErrConnection = errors.New("cannot connect to server")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors
	ErrTokenMissing = errors.New("token missing")
	ErrInvalidToken = errors.New("invalid token")

	// Dashboard errors
	ErrFetch        = errors.New("dashboard fetch failed")
	ErrUnauthorized = errors.New("request unauthorized")

	// Session errors
	ErrNoSession = errors.New("no stored session")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
