package honeybadger

import (
	"fmt"
	"net/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// ConfigError: the client was constructed with unusable settings
// ──────────────────────────────────────────────────────────────────────────────

type ConfigError struct {
	Reason string `json:"reason"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("honeybadger: %s", e.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// TransportError: the request never produced an HTTP response
// ──────────────────────────────────────────────────────────────────────────────

type TransportError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("honeybadger: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ──────────────────────────────────────────────────────────────────────────────
// APIError: the service answered with a non-2xx status
// ──────────────────────────────────────────────────────────────────────────────

type APIError struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("honeybadger: API error: status=%d body=%s", e.Status, e.Body)
}

// Hint returns operator guidance for statuses that almost always mean a
// misconfigured credential, or "" when there is nothing useful to add.
func (e *APIError) Hint() string {
	switch e.Status {
	case http.StatusUnauthorized:
		return "check that HONEYBADGER_API_TOKEN is set to a valid personal auth token"
	case http.StatusForbidden:
		return "the Data API requires the personal auth token from your Honeybadger user settings, not a project API key"
	}
	return ""
}

// ──────────────────────────────────────────────────────────────────────────────
// DecodeError: a 2xx response that did not contain valid JSON
// ──────────────────────────────────────────────────────────────────────────────

type DecodeError struct {
	Body []byte `json:"body"`
	Err  error  `json:"-"`
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("honeybadger: invalid JSON in response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
