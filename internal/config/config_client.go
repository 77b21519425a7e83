package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

// Client defaults.
const (
	DefaultClientServerURL      = "http://localhost:8080"
	DefaultClientRequestTimeout = 10 * time.Second
	defaultSessionFileName      = "session.json"
	defaultSessionDirName       = ".rent-pe-easy"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the rent-pe-easy API.
	// Env: RENT_CLIENT_SERVER_URL
	HTTPAddress string `env:"SERVER_URL"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: RENT_CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains the API address and timeout.
	Adapter ClientAdapter
	// SessionFile is where the token pair is persisted between invocations.
	// Env: RENT_CLIENT_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// GetClientConfig reads RENT_CLIENT_* variables (after loading an optional
// .env file), fills the remaining fields with defaults and validates the
// result.
func GetClientConfig() (*ClientConfig, error) {
	b := newConfigBuilder().withDotEnv()
	if b.err != nil {
		return nil, fmt.Errorf("error loading client dotenv: %w", b.err)
	}

	cfg := &ClientConfig{}
	if err := parseEnvWithPrefix(cfg, clientEnvPrefix); err != nil {
		return nil, err
	}

	if err := mergo.Merge(cfg, defaultClientConfig()); err != nil {
		return nil, fmt.Errorf("error applying default client configs: %w", err)
	}

	return cfg, cfg.validate()
}

func defaultClientConfig() *ClientConfig {
	sessionFile := defaultSessionFileName
	if home, err := os.UserHomeDir(); err == nil {
		sessionFile = filepath.Join(home, defaultSessionDirName, defaultSessionFileName)
	}

	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    DefaultClientServerURL,
			RequestTimeout: DefaultClientRequestTimeout,
		},
		SessionFile: sessionFile,
	}
}
