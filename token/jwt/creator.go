package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator issues the bearer tokens handed out by POST /login
type Creator struct {
	signer Signer
	expiry time.Duration
}

// NewCreator creates a new JWT creator issuing tokens valid for expiry
func NewCreator(signer Signer, expiry time.Duration) (*Creator, error) {
	if signer == nil {
		return nil, errors.New("[NewCreator] signer is required")
	}
	if expiry <= 0 {
		return nil, errors.New("[NewCreator] expiry must be positive")
	}
	return &Creator{signer: signer, expiry: expiry}, nil
}

// CreateAccessToken creates a token identifying username
func (c *Creator) CreateAccessToken(username string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"user": username,                 // Who logged in
		"iat":  now.Unix(),               // Issued At
		"exp":  now.Add(c.expiry).Unix(), // Expiry
		"jti":  uuid.New().String(),      // Unique token ID
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}
