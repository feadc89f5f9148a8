package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HONEYBADGER_API_TOKEN", "tok-123")
	t.Setenv("HONEYBADGER_BASE_URL", "")
	t.Setenv("HONEYBADGER_TIMEOUT_SEC", "")
	t.Setenv("HONEYBADGER_RATE_LIMIT", "")
	t.Setenv("MCP_TRANSPORT", "")
	t.Setenv("MCP_HTTP_ADDR", "")
	t.Setenv("METRICS_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIToken != "tok-123" {
		t.Errorf("APIToken = %q, want tok-123", cfg.APIToken)
	}
	if cfg.BaseURL != honeybadger.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, honeybadger.DefaultBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %g, want 0", cfg.RateLimit)
	}
	if cfg.Transport != "stdio" {
		t.Errorf("Transport = %q, want stdio", cfg.Transport)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != "127.0.0.1:9090" {
		t.Errorf("MetricsAddr = %q, want 127.0.0.1:9090", cfg.MetricsAddr)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("HONEYBADGER_API_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without HONEYBADGER_API_TOKEN")
	}
	var cfgErr *honeybadger.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected *honeybadger.ConfigError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "HONEYBADGER_API_TOKEN") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HONEYBADGER_API_TOKEN", "tok-123")
	t.Setenv("HONEYBADGER_BASE_URL", "http://localhost:9999/v2")
	t.Setenv("HONEYBADGER_TIMEOUT_SEC", "5")
	t.Setenv("HONEYBADGER_RATE_LIMIT", "2.5")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_HTTP_ADDR", ":9000")
	t.Setenv("MCP_HTTP_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9999/v2" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %g, want 2.5", cfg.RateLimit)
	}
	if cfg.Transport != "http" {
		t.Errorf("Transport = %q, want http", cfg.Transport)
	}
	if cfg.HTTPToken != "secret" {
		t.Errorf("HTTPToken = %q, want secret", cfg.HTTPToken)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"timeout not a number", "HONEYBADGER_TIMEOUT_SEC", "soon"},
		{"timeout zero", "HONEYBADGER_TIMEOUT_SEC", "0"},
		{"timeout negative", "HONEYBADGER_TIMEOUT_SEC", "-3"},
		{"rate not a number", "HONEYBADGER_RATE_LIMIT", "fast"},
		{"rate negative", "HONEYBADGER_RATE_LIMIT", "-1"},
		{"unknown transport", "MCP_TRANSPORT", "grpc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HONEYBADGER_API_TOKEN", "tok-123")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}
