package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	serverURLEnvVar   = "BBDAP_SERVER_URL"
	tokenStoreEnvVar  = "BBDAP_TOKEN_STORE"
	tokenFileEnvVar   = "BBDAP_TOKEN_FILE"
	httpTimeoutEnvVar = "BBDAP_HTTP_TIMEOUT"
)

// Token store backends
const (
	TokenStoreFile    = "file"
	TokenStoreKeyring = "keyring"
)

type ClientConfig interface {
	GetServerURL() string
	GetTokenStore() string
	GetTokenFile() string
	GetHTTPTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetServerURL returns the dashboard API base address without a trailing slash
func (Client) GetServerURL() string {
	return strings.TrimRight(GetEnv(serverURLEnvVar, "http://localhost:5000"), "/")
}

func (Client) GetTokenStore() string {
	return strings.ToLower(GetEnv(tokenStoreEnvVar, TokenStoreFile))
}

func (Client) GetTokenFile() string {
	if path := GetEnv(tokenFileEnvVar, ""); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "bbdap", "session.json")
}

// GetHTTPTimeout is zero unless configured, leaving the transport default in place.
func (Client) GetHTTPTimeout() time.Duration {
	return GetEnvDuration(httpTimeoutEnvVar, 0)
}
