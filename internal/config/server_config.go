// Package config assembles the server configuration from environment
// variables, with development-friendly defaults.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iqlusioninc/crates-sub000/internal/util"
)

// EchoServer configures the HTTP listener and enabled middleware.
type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
}

// LoggerServer configures zerolog.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogResponseBody    bool
	LogResponseHeader  bool
	PrettyPrintConsole bool
}

// Database configures the PostgreSQL connection.
type Database struct {
	Host             string
	Port             int
	Username         string
	Password         string
	Database         string
	AdditionalParams map[string]string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ConnectionString generates a connection string to be passed to
// sql.Open or equivalents, assuming Postgres syntax.
func (c Database) ConnectionString() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s", c.Host, c.Port, c.Username, c.Password, c.Database))

	if len(c.AdditionalParams) > 0 {
		params := make([]string, 0, len(c.AdditionalParams))
		for param := range c.AdditionalParams {
			params = append(params, param)
		}
		sort.Strings(params)
		for _, param := range params {
			fmt.Fprintf(&b, " %s=%s", param, c.AdditionalParams[param])
		}
	}

	return b.String()
}

// Redis configures the derived-key cache.
type Redis struct {
	Enabled  bool
	Endpoint string
	Password string
	DB       int
	KeyTTL   time.Duration
}

// Wallet configures the derivation service itself.
type Wallet struct {
	// Network selects the serialization prefixes (mainnet or testnet).
	Network string
	// SeedVaultPath is the directory root seeds are persisted under.
	SeedVaultPath string
	// SeedEncryptionKey is the hex-encoded 32-byte AES key sealing
	// seeds at rest.
	SeedEncryptionKey string
}

// Management configures the private management endpoints.
type Management struct {
	Secret                  string
	ReadinessTimeout        time.Duration
	LivenessTimeout         time.Duration
	ProbeWriteablePathsAbs  []string
	ProbeWriteableTouchfile string
}

// Server is the root configuration passed through the dependency graph.
type Server struct {
	Echo     EchoServer
	Logger   LoggerServer
	Database Database
	Redis    Redis
	Wallet   Wallet
	Mgmt     Management
}

// DefaultServiceConfigFromEnv returns the server config as parsed from
// the environment.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Database: util.GetEnv("PGDATABASE", "hdwallet"),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			AdditionalParams: map[string]string{
				"sslmode": util.GetEnv("PGSSLMODE", "disable"),
			},
			MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Second * time.Duration(util.GetEnvAsInt("DB_CONN_MAX_LIFETIME_SEC", 300)),
		},
		Redis: Redis{
			Enabled:  util.GetEnvAsBool("SERVER_REDIS_ENABLED", false),
			Endpoint: util.GetEnv("SERVER_REDIS_ENDPOINT", "redis:6379"),
			Password: util.GetEnv("SERVER_REDIS_PASSWORD", ""),
			DB:       util.GetEnvAsInt("SERVER_REDIS_DB", 0),
			KeyTTL:   time.Second * time.Duration(util.GetEnvAsInt("SERVER_REDIS_KEY_TTL_SEC", 3600)),
		},
		Wallet: Wallet{
			Network:           util.GetEnv("SERVER_WALLET_NETWORK", "mainnet"),
			SeedVaultPath:     util.GetEnv("SERVER_WALLET_SEED_VAULT_PATH", "/data/seed-vault"),
			SeedEncryptionKey: util.GetEnv("SERVER_WALLET_SEED_ENCRYPTION_KEY", ""),
		},
		Mgmt: Management{
			Secret:                  util.GetEnv("SERVER_MANAGEMENT_SECRET", "mgmt-secret"),
			ReadinessTimeout:        time.Second * time.Duration(util.GetEnvAsInt("SERVER_MANAGEMENT_READINESS_TIMEOUT_SEC", 4)),
			LivenessTimeout:         time.Second * time.Duration(util.GetEnvAsInt("SERVER_MANAGEMENT_LIVENESS_TIMEOUT_SEC", 9)),
			ProbeWriteablePathsAbs:  util.GetEnvAsStringArr("SERVER_MANAGEMENT_PROBE_WRITEABLE_PATHS_ABS", []string{"/tmp"}),
			ProbeWriteableTouchfile: util.GetEnv("SERVER_MANAGEMENT_PROBE_WRITEABLE_TOUCHFILE", ".writeable"),
		},
	}
}
