package config

import "time"

const (
	dbPathEnvVar        = "BBDAP_DB_PATH"
	jwtSecretEnvVar     = "BBDAP_JWT_SECRET"
	ownerUsernameEnvVar = "BBDAP_OWNER_USERNAME"
	ownerPasswordEnvVar = "BBDAP_OWNER_PASSWORD"
	tokenExpiryEnvVar   = "BBDAP_TOKEN_EXPIRY"
	lowStockEnvVar      = "BBDAP_LOW_STOCK_THRESHOLD"
)

type ServerConfig interface {
	GetDBPath() string
	GetJWTSecret() string
	GetOwnerUsername() string
	GetOwnerPassword() string
	GetTokenExpiry() time.Duration
	GetLowStockThreshold() int
	GetForecastWindow() time.Duration
}

type Server struct{}

var _ ServerConfig = Server{}

func (Server) GetDBPath() string {
	return GetEnv(dbPathEnvVar, "./data/bbdap.db")
}

func (Server) GetJWTSecret() string {
	return GetEnv(jwtSecretEnvVar, "BBBDAP_SECRET_KEY")
}

func (Server) GetOwnerUsername() string {
	return GetEnv(ownerUsernameEnvVar, "owner")
}

func (Server) GetOwnerPassword() string {
	return GetEnv(ownerPasswordEnvVar, "1234")
}

func (Server) GetTokenExpiry() time.Duration {
	return GetEnvDuration(tokenExpiryEnvVar, 2*time.Hour)
}

func (Server) GetLowStockThreshold() int {
	return GetEnvInt(lowStockEnvVar, 20)
}

func (Server) GetForecastWindow() time.Duration {
	return 7 * 24 * time.Hour
}
