package honeybadger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ProjectParams are the writable project settings. Nil fields are left
// untouched by the API, so updates only send what the caller set.
type ProjectParams struct {
	Name                  *string
	ResolveErrorsOnDeploy *bool
	DisablePublicLinks    *bool
	Language              *string
	UserURL               *string
	SourceURL             *string
	PurgeDays             *int
	UserSearchField       *string
}

func (p ProjectParams) body() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.ResolveErrorsOnDeploy != nil {
		fields["resolve_errors_on_deploy"] = *p.ResolveErrorsOnDeploy
	}
	if p.DisablePublicLinks != nil {
		fields["disable_public_links"] = *p.DisablePublicLinks
	}
	if p.Language != nil {
		fields["language"] = *p.Language
	}
	if p.UserURL != nil {
		fields["user_url"] = *p.UserURL
	}
	if p.SourceURL != nil {
		fields["source_url"] = *p.SourceURL
	}
	if p.PurgeDays != nil {
		fields["purge_days"] = *p.PurgeDays
	}
	if p.UserSearchField != nil {
		fields["user_search_field"] = *p.UserSearchField
	}
	return map[string]any{"project": fields}
}

// ListProjects returns all projects visible to the token, optionally
// restricted to one account.
func (c *Client) ListProjects(ctx context.Context, accountID int) (json.RawMessage, error) {
	query := url.Values{}
	if accountID > 0 {
		query.Set("account_id", strconv.Itoa(accountID))
	}
	return c.Do(ctx, http.MethodGet, "projects", query, nil)
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID int) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("projects/%d", projectID), nil, nil)
}

// CreateProject creates a project. params.Name is required; the account
// is selected with the account_id query parameter, not the body.
func (c *Client) CreateProject(ctx context.Context, accountID int, params ProjectParams) (json.RawMessage, error) {
	if params.Name == nil || *params.Name == "" {
		return nil, fmt.Errorf("honeybadger: project name is required")
	}
	query := url.Values{}
	if accountID > 0 {
		query.Set("account_id", strconv.Itoa(accountID))
	}
	return c.Do(ctx, http.MethodPost, "projects", query, params.body())
}

// UpdateProject changes the settings set in params on an existing project.
func (c *Client) UpdateProject(ctx context.Context, projectID int, params ProjectParams) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("projects/%d", projectID), nil, params.body())
}

// DeleteProject removes a project permanently.
func (c *Client) DeleteProject(ctx context.Context, projectID int) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("projects/%d", projectID), nil, nil)
}

// ProjectOccurrences returns occurrence counts bucketed by period.
// A projectID of zero reports across all projects. period is one of
// "hour", "day", "week" or "month"; environment optionally filters.
func (c *Client) ProjectOccurrences(ctx context.Context, projectID int, period, environment string) (json.RawMessage, error) {
	path := "projects/occurrences"
	if projectID > 0 {
		path = fmt.Sprintf("projects/%d/occurrences", projectID)
	}
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	if environment != "" {
		query.Set("environment", environment)
	}
	return c.Do(ctx, http.MethodGet, path, query, nil)
}
