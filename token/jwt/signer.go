package jwt

import (
	"errors"
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Signer is an interface for signing and verifying JWT tokens
type Signer interface {
	// Sign creates a signed JWT token from claims
	Sign(claims jwtlib.MapClaims) (string, error)

	// GetVerificationKey returns the key used to verify token, rejecting unexpected algorithms
	GetVerificationKey(token *jwtlib.Token) (any, error)

	// GetSigningMethod returns the JWT signing method used
	GetSigningMethod() jwtlib.SigningMethod
}

// HMACSigner implements Signer with a shared secret and HS256
type HMACSigner struct {
	secret []byte
}

var _ Signer = (*HMACSigner)(nil)

func NewHMACSigner(secret string) (*HMACSigner, error) {
	if secret == "" {
		return nil, errors.New("[NewHMACSigner] secret is required")
	}
	return &HMACSigner{secret: []byte(secret)}, nil
}

func (h *HMACSigner) Sign(claims jwtlib.MapClaims) (string, error) {
	token := jwtlib.NewWithClaims(h.GetSigningMethod(), claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with shared secret: %w", err)
	}
	return signed, nil
}

func (h *HMACSigner) GetVerificationKey(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwtlib.SigningMethod {
	return jwtlib.SigningMethodHS256
}
