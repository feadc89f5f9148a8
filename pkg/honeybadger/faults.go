package honeybadger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// FaultListOptions narrow and order a fault listing. Zero values are
// omitted so the API applies its own defaults.
type FaultListOptions struct {
	// Query is a Honeybadger search string, e.g. "-is:resolved class:ValueError".
	Query string
	// Limit caps the number of results, at most 25 per page.
	Limit int
	// Order is "recent" (newest first) or "frequent" (highest count first).
	Order string
}

// NoticeListOptions narrow a notice listing. Timestamps are unix seconds.
type NoticeListOptions struct {
	CreatedAfter  int64
	CreatedBefore int64
	Limit         int
}

// FaultParams are the writable fault attributes. Nil fields are not sent,
// which keeps a false distinct from an omitted value.
type FaultParams struct {
	Resolved   *bool
	Ignored    *bool
	AssigneeID *int
}

func (p FaultParams) body() map[string]any {
	fields := map[string]any{}
	if p.Resolved != nil {
		fields["resolved"] = *p.Resolved
	}
	if p.Ignored != nil {
		fields["ignored"] = *p.Ignored
	}
	if p.AssigneeID != nil {
		fields["assignee_id"] = *p.AssigneeID
	}
	return map[string]any{"fault": fields}
}

// ListFaults returns the faults of a project, filtered and ordered per opts.
func (c *Client) ListFaults(ctx context.Context, projectID int, opts FaultListOptions) (json.RawMessage, error) {
	query := url.Values{}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("projects/%d/faults", projectID), query, nil)
}

// GetFault returns one fault with its full detail.
func (c *Client) GetFault(ctx context.Context, projectID, faultID int) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("projects/%d/faults/%d", projectID, faultID), nil, nil)
}

// FaultSummary returns aggregate fault counts for a project, optionally
// restricted by a search string.
func (c *Client) FaultSummary(ctx context.Context, projectID int, q string) (json.RawMessage, error) {
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("projects/%d/faults/summary", projectID), query, nil)
}

// UpdateFault changes the attributes set in params, e.g. resolving or
// assigning a fault.
func (c *Client) UpdateFault(ctx context.Context, projectID, faultID int, params FaultParams) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("projects/%d/faults/%d", projectID, faultID), nil, params.body())
}

// DeleteFault removes a fault and its notices permanently.
func (c *Client) DeleteFault(ctx context.Context, projectID, faultID int) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("projects/%d/faults/%d", projectID, faultID), nil, nil)
}

// FaultOccurrences returns occurrence counts for one fault bucketed by
// period ("hour", "day", "week" or "month").
func (c *Client) FaultOccurrences(ctx context.Context, projectID, faultID int, period string) (json.RawMessage, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("projects/%d/faults/%d/occurrences", projectID, faultID), query, nil)
}

// FaultNotices returns individual error events for a fault, newest first.
func (c *Client) FaultNotices(ctx context.Context, projectID, faultID int, opts NoticeListOptions) (json.RawMessage, error) {
	query := url.Values{}
	if opts.CreatedAfter > 0 {
		query.Set("created_after", strconv.FormatInt(opts.CreatedAfter, 10))
	}
	if opts.CreatedBefore > 0 {
		query.Set("created_before", strconv.FormatInt(opts.CreatedBefore, 10))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("projects/%d/faults/%d/notices", projectID, faultID), query, nil)
}

// PauseFault mutes notifications for a fault, either for a time window
// ("hour", "day" or "week") or until count more occurrences arrive.
// window wins when both are given; one of the two is required.
func (c *Client) PauseFault(ctx context.Context, projectID, faultID int, window string, count int) (json.RawMessage, error) {
	body := map[string]any{}
	switch {
	case window != "":
		body["time"] = window
	case count > 0:
		body["count"] = count
	default:
		return nil, fmt.Errorf("honeybadger: either a time window or a count is required to pause notifications")
	}
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("projects/%d/faults/%d/pause", projectID, faultID), nil, body)
}

// UnpauseFault resumes notifications for a fault.
func (c *Client) UnpauseFault(ctx context.Context, projectID, faultID int) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("projects/%d/faults/%d/unpause", projectID, faultID), nil, nil)
}

// ResolveFaults marks every fault matching q as resolved, or all faults
// of the project when q is empty.
func (c *Client) ResolveFaults(ctx context.Context, projectID int, q string) (json.RawMessage, error) {
	query := url.Values{}
	if q != "" {
		query.Set("q", q)
	}
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("projects/%d/faults/resolve", projectID), query, nil)
}
