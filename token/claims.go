// Package token reads the claims of a stored bearer token for display.
//
// The client never validates tokens cryptographically: a stored token is the session. The
// claims are only shown to the user (who is signed in, when the server said it expires).
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/bbdap-client/internal/errors"
)

// Claims are the displayable parts of a bearer token
type Claims struct {
	Subject   string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the token claims an expiry before now. Tokens without an
// expiry never report expired.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Inspect parses rawToken as a JWT without verifying its signature. Opaque tokens return
// ErrInvalidToken; callers treat that as "nothing to show", not as a broken session.
func Inspect(rawToken string) (*Claims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, apperrors.ErrTokenMissing
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "parse token: %v", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	c := &Claims{}
	if user, ok := claims["user"].(string); ok {
		c.Subject = user
	} else if sub, err := claims.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		c.IssuedAt = &t
	}
	return c, nil
}
