package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	tokenjwt "github.com/jrsteele09/bbdap-client/token/jwt"
	"github.com/stretchr/testify/require"
)

func newCreatorAndInspector(t *testing.T, secret string) (*tokenjwt.Creator, *tokenjwt.Inspector) {
	t.Helper()
	signer, err := tokenjwt.NewHMACSigner(secret)
	require.NoError(t, err)
	creator, err := tokenjwt.NewCreator(signer, 2*time.Hour)
	require.NoError(t, err)
	return creator, tokenjwt.NewInspector(signer)
}

func TestInspector_Introspect(t *testing.T) {
	now := time.Now()
	tokenjwt.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { tokenjwt.NowTimeFunc = time.Now })

	creator, inspector := newCreatorAndInspector(t, "secret")
	raw, err := creator.CreateAccessToken("owner")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		ti, err := inspector.Introspect(raw)
		require.NoError(t, err)
		require.True(t, ti.Active)
		require.Equal(t, "owner", ti.User)
		require.NotEmpty(t, ti.JTI)
		require.Equal(t, now.Add(2*time.Hour).Unix(), ti.ExpiresAt.Unix())
	})

	t.Run("empty token", func(t *testing.T) {
		ti, err := inspector.Introspect("")
		require.NoError(t, err)
		require.False(t, ti.Active)
	})

	t.Run("expired token", func(t *testing.T) {
		tokenjwt.NowTimeFunc = func() time.Time { return now.Add(3 * time.Hour) }
		defer func() { tokenjwt.NowTimeFunc = func() time.Time { return now } }()

		ti, err := inspector.Introspect(raw)
		require.Error(t, err)
		require.False(t, ti.Active)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, other := newCreatorAndInspector(t, "other-secret")
		ti, err := other.Introspect(raw)
		require.Error(t, err)
		require.False(t, ti.Active)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
			"user": "owner",
			"exp":  now.Add(time.Hour).Unix(),
		}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		ti, err := inspector.Introspect(unsigned)
		require.Error(t, err)
		require.False(t, ti.Active)
	})
}

func TestNewCreator_Validation(t *testing.T) {
	_, err := tokenjwt.NewHMACSigner("")
	require.Error(t, err)

	signer, err := tokenjwt.NewHMACSigner("secret")
	require.NoError(t, err)
	_, err = tokenjwt.NewCreator(signer, 0)
	require.Error(t, err)
	_, err = tokenjwt.NewCreator(nil, time.Hour)
	require.Error(t, err)
}
