// Package honeybadger is a typed client for the Honeybadger Data API (v2).
//
// The client holds the credential and base URL once and funnels every
// operation through Do, which returns the API's JSON payload verbatim.
// Response bodies are never reshaped locally, so callers always see
// exactly what the service reported.
package honeybadger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production Data API root.
	DefaultBaseURL = "https://app.honeybadger.io/v2"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "honeybadger-mcp"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20

	instrumentationName = "github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

// Config carries the settings needed to construct a Client.
type Config struct {
	// Token is the personal auth token used for every request. Required.
	Token string
	// BaseURL overrides DefaultBaseURL, e.g. for a test server.
	BaseURL string
	// Timeout bounds a full request round trip. Defaults to 30s.
	Timeout time.Duration
	// RequestsPerSecond paces outbound requests. Zero means unpaced.
	RequestsPerSecond float64
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Logger receives per-request debug records. Defaults to slog.Default.
	Logger *slog.Logger
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client issues authenticated requests against the Honeybadger Data API.
// All methods are safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger

	tracer  trace.Tracer
	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

// New validates cfg and returns a ready Client.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, &ConfigError{Reason: "api token is required (set HONEYBADGER_API_TOKEN)"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	meter := otel.Meter(instrumentationName)
	calls, err := meter.Int64Counter("honeybadger.client.requests",
		metric.WithDescription("Completed Honeybadger API requests by method and status."))
	if err != nil {
		return nil, fmt.Errorf("init request counter: %w", err)
	}
	latency, err := meter.Float64Histogram("honeybadger.client.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Honeybadger API round trip duration."))
	if err != nil {
		return nil, fmt.Errorf("init request histogram: %w", err)
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    limiter,
		log:        log,
		tracer:     otel.Tracer(instrumentationName),
		calls:      calls,
		latency:    latency,
	}, nil
}

// BaseURL reports the API root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends one request and returns the response payload verbatim.
//
// path is relative to the base URL, query and body may be nil. A 204 or
// empty 2xx body is normalized to {"status":"success"} so callers always
// receive a JSON document. Non-2xx statuses become *APIError, network
// failures *TransportError, and unparseable 2xx bodies *DecodeError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: "rate limit", Err: err}
		}
	}

	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	ctx, span := c.tracer.Start(ctx, "honeybadger.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// The Data API authenticates with the token as the basic auth username
	// and an empty password.
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.token+":")))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.record(ctx, method, 0, elapsed)
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		c.record(ctx, method, resp.StatusCode, elapsed)
		return nil, &TransportError{Op: "read response", Err: err}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.record(ctx, method, resp.StatusCode, elapsed)
	c.log.Debug("honeybadger request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, fmt.Sprintf("status %d", resp.StatusCode))
		c.log.Warn("honeybadger API error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, &APIError{Status: resp.StatusCode, Body: raw}
	}

	// DELETE and a few write endpoints answer 204 or an empty body.
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage(`{"status":"success"}`), nil
	}

	var out json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{Body: raw, Err: err}
	}
	return out, nil
}

func (c *Client) record(ctx context.Context, method string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.Int("http.response.status_code", status),
	)
	c.calls.Add(ctx, 1, attrs)
	c.latency.Record(ctx, elapsed.Seconds(), attrs)
}
