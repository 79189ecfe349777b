package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/bbdap-client/internal/config"
	"github.com/jrsteele09/bbdap-client/server"
	"github.com/jrsteele09/bbdap-client/server/salesrepo"
	"github.com/jrsteele09/bbdap-client/sessions"
	"github.com/stretchr/testify/require"
)

type cliFixture struct {
	tokenFile string
	serverURL string
}

func setupCLI(t *testing.T) *cliFixture {
	t.Helper()

	t.Setenv("ENV", "TEST")
	t.Setenv("BBDAP_OWNER_USERNAME", "owner")
	t.Setenv("BBDAP_OWNER_PASSWORD", "1234")
	t.Setenv("BBDAP_JWT_SECRET", "cli-secret")

	repo := salesrepo.NewInMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.AddOrder(ctx, salesrepo.Order{OrderDate: "2024-01-01", TotalAmount: 10}))
	require.NoError(t, repo.AddOrder(ctx, salesrepo.Order{OrderDate: "2024-01-02", TotalAmount: 20}))

	s, err := server.New(config.New(), repo)
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	f := &cliFixture{
		tokenFile: filepath.Join(t.TempDir(), "session.json"),
		serverURL: srv.URL,
	}
	t.Setenv("BBDAP_TOKEN_STORE", "file")
	t.Setenv("BBDAP_TOKEN_FILE", f.tokenFile)
	t.Setenv("BBDAP_SERVER_URL", f.serverURL)
	return f
}

func (f *cliFixture) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (f *cliFixture) storedToken(t *testing.T) string {
	t.Helper()
	store, err := sessions.NewFileTokenStore(f.tokenFile)
	require.NoError(t, err)
	token, err := store.Get(context.Background())
	require.NoError(t, err)
	return token
}

func TestCLI_OpenLogsInThenShowsDashboard(t *testing.T) {
	f := setupCLI(t)

	stdout, stderr, err := f.run(t, "owner\n1234\n")
	require.NoError(t, err, stderr)
	require.Contains(t, stdout, "BB-BDAP Login")
	require.Contains(t, stdout, "Total Sales: 30")
	require.Contains(t, stdout, "Total Orders: 2")
	require.Contains(t, stdout, "Avg Order: 15")
	require.NotEmpty(t, f.storedToken(t))

	// Second run goes straight to the dashboard
	stdout, _, err = f.run(t, "")
	require.NoError(t, err)
	require.NotContains(t, stdout, "Login")
	require.Contains(t, stdout, "Total Sales: 30")
}

func TestCLI_RejectedLogin(t *testing.T) {
	f := setupCLI(t)

	_, stderr, err := f.run(t, "owner\nwrong\n", "login")
	require.Error(t, err)
	require.Contains(t, stderr, "Login Failed: Invalid credentials")
	require.Empty(t, f.storedToken(t))
}

func TestCLI_Unreachable(t *testing.T) {
	setupCLI(t)

	_, stderr, err := (&cliFixture{}).run(t, "owner\n1234\n", "-server", "http://127.0.0.1:1", "login")
	require.Error(t, err)
	require.Contains(t, stderr, "Error: Cannot connect to server")
}

func TestCLI_LogoutIsIdempotent(t *testing.T) {
	f := setupCLI(t)

	_, _, err := f.run(t, "owner\n1234\n", "login")
	require.NoError(t, err)
	require.NotEmpty(t, f.storedToken(t))

	stdout, _, err := f.run(t, "", "status")
	require.NoError(t, err)
	require.Contains(t, stdout, "Session: authenticated")
	require.Contains(t, stdout, "User: owner")

	for i := 0; i < 2; i++ {
		stdout, _, err = f.run(t, "", "logout")
		require.NoError(t, err)
		require.Contains(t, stdout, "Logged out")
		require.Empty(t, f.storedToken(t))
	}

	_, stderr, err := f.run(t, "", "dashboard")
	require.ErrorIs(t, err, errNotLoggedIn)
	require.Contains(t, stderr, "Not logged in")
}

func TestCLI_RejectedStoredTokenEndsSession(t *testing.T) {
	f := setupCLI(t)

	store, err := sessions.NewFileTokenStore(f.tokenFile)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "stale-token"))

	_, stderr, err := f.run(t, "", "dashboard")
	require.Error(t, err)
	require.Contains(t, stderr, "Session Expired")
	require.Empty(t, f.storedToken(t))
}

func TestCLI_CorruptTokenFileIsRecoverable(t *testing.T) {
	f := setupCLI(t)
	corrupt := func() {
		require.NoError(t, os.WriteFile(f.tokenFile, []byte("{not json"), 0o600))
	}

	corrupt()
	stdout, stderr, err := f.run(t, "", "status")
	require.NoError(t, err)
	require.Contains(t, stdout, "Session: unauthenticated")
	require.Contains(t, stderr, "Could not access stored session")

	stdout, _, err = f.run(t, "", "logout")
	require.NoError(t, err)
	require.Contains(t, stdout, "Logged out")
	_, err = os.Stat(f.tokenFile)
	require.True(t, os.IsNotExist(err))

	corrupt()
	_, _, err = f.run(t, "owner\n1234\n", "login")
	require.NoError(t, err)
	require.NotEmpty(t, f.storedToken(t))
}

func TestCLI_StockAndForecast(t *testing.T) {
	f := setupCLI(t)
	_, _, err := f.run(t, "owner\n1234\n", "login")
	require.NoError(t, err)

	stdout, _, err := f.run(t, "", "forecast")
	require.NoError(t, err)
	require.Contains(t, stdout, "Forecast next day:")

	stdout, _, err = f.run(t, "", "stock")
	require.NoError(t, err)
	require.Contains(t, stdout, "No stock alerts")
}
