// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

// Config holds everything the binaries need to talk to Honeybadger and
// to serve the tool catalog.
type Config struct {
	// APIToken authenticates every request to the Data API. Required.
	APIToken string
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// Timeout bounds a single API round trip.
	Timeout time.Duration
	// RateLimit caps outbound requests per second. Zero means unpaced.
	RateLimit float64

	// Transport selects how the MCP server is exposed: "stdio" or "http".
	Transport string
	// HTTPAddr is the listen address for the http transport.
	HTTPAddr string
	// HTTPToken, when set, requires a bearer token on the http transport.
	HTTPToken string
	// MetricsAddr is the internal listen address for Prometheus metrics.
	MetricsAddr string

	// ServiceName is reported to the telemetry backends.
	ServiceName string
	// OTLPEndpoint is the OTLP/HTTP collector address. Empty disables tracing.
	OTLPEndpoint   string
	TracingEnabled bool
	MetricsEnabled bool
}

// Load reads the environment and returns a validated Config.
// HONEYBADGER_API_TOKEN must be set; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		APIToken:       os.Getenv("HONEYBADGER_API_TOKEN"),
		BaseURL:        EnvOr("HONEYBADGER_BASE_URL", honeybadger.DefaultBaseURL),
		Transport:      EnvOr("MCP_TRANSPORT", "stdio"),
		HTTPAddr:       EnvOr("MCP_HTTP_ADDR", ":8080"),
		HTTPToken:      os.Getenv("MCP_HTTP_TOKEN"),
		MetricsAddr:    EnvOr("METRICS_ADDR", "127.0.0.1:9090"),
		ServiceName:    EnvOr("OTEL_SERVICE_NAME", "honeybadger-mcp"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TracingEnabled: EnvOr("OTEL_TRACING_ENABLED", "true") == "true",
		MetricsEnabled: EnvOr("OTEL_METRICS_ENABLED", "true") == "true",
	}

	if cfg.APIToken == "" {
		return nil, &honeybadger.ConfigError{Reason: "HONEYBADGER_API_TOKEN is required"}
	}

	timeoutSec, err := envInt("HONEYBADGER_TIMEOUT_SEC", 30)
	if err != nil {
		return nil, err
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("HONEYBADGER_TIMEOUT_SEC must be positive, got %d", timeoutSec)
	}
	cfg.Timeout = time.Duration(timeoutSec) * time.Second

	cfg.RateLimit, err = envFloat("HONEYBADGER_RATE_LIMIT", 0)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("HONEYBADGER_RATE_LIMIT must not be negative, got %g", cfg.RateLimit)
	}

	if cfg.Transport != "stdio" && cfg.Transport != "http" {
		return nil, fmt.Errorf("MCP_TRANSPORT must be \"stdio\" or \"http\", got %q", cfg.Transport)
	}

	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or def when unset.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}
