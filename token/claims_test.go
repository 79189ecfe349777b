package token_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/bbdap-client/internal/errors"
	"github.com/jrsteele09/bbdap-client/token"
	tokenjwt "github.com/jrsteele09/bbdap-client/token/jwt"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	t.Run("issued token", func(t *testing.T) {
		issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		tokenjwt.NowTimeFunc = func() time.Time { return issuedAt }
		t.Cleanup(func() { tokenjwt.NowTimeFunc = time.Now })

		signer, err := tokenjwt.NewHMACSigner("secret")
		require.NoError(t, err)
		creator, err := tokenjwt.NewCreator(signer, 2*time.Hour)
		require.NoError(t, err)
		raw, err := creator.CreateAccessToken("owner")
		require.NoError(t, err)

		claims, err := token.Inspect(raw)
		require.NoError(t, err)
		require.Equal(t, "owner", claims.Subject)
		require.NotNil(t, claims.ExpiresAt)
		require.True(t, claims.ExpiresAt.Equal(issuedAt.Add(2*time.Hour)))
		require.True(t, claims.IssuedAt.Equal(issuedAt))
		require.False(t, claims.Expired(issuedAt.Add(time.Hour)))
		require.True(t, claims.Expired(issuedAt.Add(3*time.Hour)))
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := token.Inspect("abc")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := token.Inspect("  ")
		require.ErrorIs(t, err, apperrors.ErrTokenMissing)
	})

	t.Run("no expiry never expires", func(t *testing.T) {
		c := &token.Claims{Subject: "x"}
		require.False(t, c.Expired(time.Now()))
	})
}
