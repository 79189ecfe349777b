package sessions_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/bbdap-client/sessions"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store, err := sessions.NewFileTokenStore(path)
	require.NoError(t, err)

	t.Run("absent before first set", func(t *testing.T) {
		token, err := store.Get(ctx)
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("set survives a new store instance", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "abc"))

		reopened, err := sessions.NewFileTokenStore(path)
		require.NoError(t, err)
		token, err := reopened.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "abc", token)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("set replaces", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "def"))
		token, err := store.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "def", token)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))
		token, err := store.Get(ctx)
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := store.Get(ctx)
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, store.Set(cancelled, "x"), context.Canceled)
	})
}

func TestNewFileTokenStore_RequiresPath(t *testing.T) {
	_, err := sessions.NewFileTokenStore("")
	require.Error(t, err)
}
