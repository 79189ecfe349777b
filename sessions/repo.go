package sessions

import "context"

// TokenStore defines durable storage for the single bearer token that represents a session.
// A stored token is treated as valid until Clear is called; no expiry is tracked.
type TokenStore interface {
	// Get returns the stored token, or "" when no session is stored
	Get(ctx context.Context) (string, error)

	// Set replaces the stored token
	Set(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
