package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenIntrospection is what the backend learns from a verified bearer token.
// When Active is false the other fields may not be populated.
type TokenIntrospection struct {
	Active    bool
	User      string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JTI       string
}

// Inspector verifies bearer tokens issued by Creator
type Inspector struct {
	signer Signer
}

func NewInspector(signer Signer) *Inspector {
	return &Inspector{signer: signer}
}

// Introspect verifies the signature and expiry of rawToken
func (i *Inspector) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, nil
	}

	token, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return &TokenIntrospection{Active: false}, err
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return &TokenIntrospection{Active: false}, errors.New("error extracting claims from token")
	}

	user, _ := claims["user"].(string)
	jti, _ := claims["jti"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	return &TokenIntrospection{
		Active:    true,
		User:      user,
		ExpiresAt: time.Unix(int64(exp), 0),
		IssuedAt:  time.Unix(int64(iat), 0),
		JTI:       jti,
	}, nil
}
