package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Fallback defaults for the CLI client. They target a server started with the
// server-side defaults on the same machine.
const (
	DefaultClientBaseURL = "http://localhost:8080"
	DefaultClientTimeout = 15 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the HTTP endpoint address of the note-keeper server.
	// Env: CLIENT_ADDRESS
	BaseURL string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound client requests.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration for the CLI client.
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter `envPrefix:"CLIENT_"`
}

// GetClientConfig loads the client configuration from environment variables
// and applies the documented defaults to any field left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing client env config: %w", err)
	}

	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = DefaultClientBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultClientTimeout
	}

	return cfg, nil
}
