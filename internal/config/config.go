package config

import (
	"time"
)

// Supported values for [App.Environment]. The development environment is the
// only one in which the OTP-disclosure test route exists and the fallback
// token sign key is tolerated.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Documented fallback defaults. They keep a fresh checkout runnable, but
// DefaultTokenSignKey MUST be overridden in any real deployment; validation
// refuses to start a non-development process with it.
const (
	DefaultTokenSignKey   = "fallback_secret"
	DefaultTokenIssuer    = "go-note-keeper"
	DefaultTokenDuration  = 168 * time.Hour // 7 days, matches the browser client's session expectations
	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultFrontendOrigin = "http://localhost:3000"
	DefaultMailTimeout    = 15 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// go-note-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the deployment
	// environment and session token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout, and CORS settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Email holds SMTP settings for the OTP dispatcher.
	Email Email `envPrefix:"EMAIL_"`

	// Google holds settings for verifying Google federated-login tokens.
	Google Google `envPrefix:"GOOGLE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the
// deployment mode and session token lifecycle.
type App struct {
	// Environment selects the deployment mode: "production" (default) or
	// "development". Only the development environment registers the
	// /api/auth/test-otp route that discloses raw OTP codes.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// TokenSignKey is the secret key used to sign and verify JWT session
	// tokens. Must be kept confidential and overridden outside development.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// It is validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance (e.g. "168h", "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// IsDevelopment reports whether the process runs in the explicitly requested
// development environment.
func (a App) IsDevelopment() bool {
	return a.Environment == EnvDevelopment
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQL database backend.
type DB struct {
	// DSN is the Data Source Name used to open the database connection.
	// A "postgres://..." DSN selects the pgx driver; any other value is
	// treated as a SQLite file path (development backend).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// FrontendOrigin is the browser-client origin allowed by CORS.
	// Env: SERVER_FRONTEND_URL
	FrontendOrigin string `env:"FRONTEND_URL"`
}

// Email holds SMTP transport settings for the OTP dispatcher.
type Email struct {
	// Host is the SMTP server hostname.
	// Env: EMAIL_HOST
	Host string `env:"HOST"`

	// Port is the SMTP server port (587 for STARTTLS, 465 for implicit TLS).
	// Env: EMAIL_PORT
	Port int `env:"PORT"`

	// Username authenticates against the SMTP server.
	// Env: EMAIL_USER
	Username string `env:"USER"`

	// Password authenticates against the SMTP server.
	// Env: EMAIL_PASS
	Password string `env:"PASS"`

	// From is the sender address of OTP messages. Defaults to Username.
	// Env: EMAIL_FROM
	From string `env:"FROM"`

	// Secure selects implicit TLS (true, port 465 style) instead of
	// opportunistic STARTTLS.
	// Env: EMAIL_SECURE
	Secure bool `env:"SECURE"`

	// Timeout bounds a single OTP dispatch, including connection setup.
	// A dispatch exceeding it is treated as a delivery failure.
	// Env: EMAIL_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Google holds settings for validating Google federated-login ID tokens.
type Google struct {
	// ClientID is the OAuth client ID used as the expected token audience.
	// Env: GOOGLE_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Documented defaults are applied to any field left unset, then the final
// config is validated.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
