// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"os"
	"time"
)

// Transport values accepted in MCP_TRANSPORT.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const defaultBaseURL = "https://freedcamp.com/api/v1"

// ErrMissingAPIKey is returned when FREEDCAMP_API_KEY is not set. It is the
// only configuration problem that is fatal to the process.
var ErrMissingAPIKey = errors.New("FREEDCAMP_API_KEY environment variable must be set")

// Config holds the immutable process configuration. The credential pair is
// read once at startup and never changes for the process lifetime.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string

	Transport   string
	HTTPPort    string
	HTTPTimeout time.Duration
}

// Load builds a Config from the environment. The API secret is optional:
// without it requests are sent unsigned, which Freedcamp accepts for
// key-only accounts. An unparsable HTTP_TIMEOUT falls back to the default;
// the caller may inspect the returned warning.
func Load() (*Config, string, error) {
	cfg := &Config{
		APIKey:      os.Getenv("FREEDCAMP_API_KEY"),
		APISecret:   os.Getenv("FREEDCAMP_API_SECRET"),
		BaseURL:     getEnv("FREEDCAMP_BASE_URL", defaultBaseURL),
		Transport:   getEnv("MCP_TRANSPORT", TransportStdio),
		HTTPPort:    getEnv("MCP_HTTP_PORT", "8000"),
		HTTPTimeout: 30 * time.Second,
	}

	if cfg.APIKey == "" {
		return nil, "", ErrMissingAPIKey
	}

	var warning string
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			warning = "invalid HTTP_TIMEOUT, using default"
		} else {
			cfg.HTTPTimeout = timeout
		}
	}

	return cfg, warning, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
