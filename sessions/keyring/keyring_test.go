package keyring_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/bbdap-client/sessions/keyring"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestTokenStore_Lifecycle(t *testing.T) {
	gokeyring.MockInit()
	ctx := context.Background()
	store := keyring.NewWithEntry("bbdap-test", "session-token")

	token, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, store.Set(ctx, "abc"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	// Clearing twice is a no-op
	require.NoError(t, store.Clear(ctx))
}
