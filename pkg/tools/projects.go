package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

// projectSettings mirrors the writable project fields as tool arguments.
// Pointers keep "not provided" distinct from zero values.
type projectSettings struct {
	ResolveErrorsOnDeploy *bool   `json:"resolve_errors_on_deploy"`
	DisablePublicLinks    *bool   `json:"disable_public_links"`
	Language              *string `json:"language"`
	UserURL               *string `json:"user_url"`
	SourceURL             *string `json:"source_url"`
	PurgeDays             *int    `json:"purge_days"`
	UserSearchField       *string `json:"user_search_field"`
}

func (s projectSettings) params() honeybadger.ProjectParams {
	return honeybadger.ProjectParams{
		ResolveErrorsOnDeploy: s.ResolveErrorsOnDeploy,
		DisablePublicLinks:    s.DisablePublicLinks,
		Language:              s.Language,
		UserURL:               s.UserURL,
		SourceURL:             s.SourceURL,
		PurgeDays:             s.PurgeDays,
		UserSearchField:       s.UserSearchField,
	}
}

// projectSettingsOptions declares the shared schema for the writable fields.
func projectSettingsOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithBoolean("resolve_errors_on_deploy",
			mcp.Description("Whether to resolve errors automatically on deploy.")),
		mcp.WithBoolean("disable_public_links",
			mcp.Description("Whether to disable public error links.")),
		mcp.WithString("language",
			mcp.Description("Programming language of the project."),
			mcp.Enum("js", "elixir", "golang", "java", "node", "php", "python", "ruby", "other")),
		mcp.WithString("user_url",
			mcp.Description("URL format for linking to users, e.g. https://example.com/users/[user_id].")),
		mcp.WithString("source_url",
			mcp.Description("URL format for linking to source code.")),
		mcp.WithNumber("purge_days",
			mcp.Description("Number of days to retain error data.")),
		mcp.WithString("user_search_field",
			mcp.Description("Notice field used for user search, e.g. context.user_email.")),
	}
}

func (c *Catalog) getProjects() Definition {
	tool := mcp.NewTool("get_projects",
		mcp.WithDescription("Get a list of all projects in your Honeybadger account."),
		mcp.WithNumber("account_id",
			mcp.Description("Account ID to filter projects by.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_projects", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		return c.client.ListProjects(ctx, req.GetInt("account_id", 0))
	})}
}

func (c *Catalog) getProject() Definition {
	tool := mcp.NewTool("get_project",
		mcp.WithDescription("Get details for a single project, including environments, users and fault counts."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_project", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, err := req.RequireInt("project_id")
		if err != nil {
			return nil, err
		}
		return c.client.GetProject(ctx, projectID)
	})}
}

func (c *Catalog) createProject() Definition {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Create a new project in your Honeybadger account."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the new project.")),
		mcp.WithNumber("account_id",
			mcp.Description("Account ID to create the project in.")),
	}
	opts = append(opts, projectSettingsOptions()...)
	tool := mcp.NewTool("create_project", opts...)

	return Definition{Tool: tool, Handler: c.handle("create_project", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return nil, err
		}
		var settings projectSettings
		if err := req.BindArguments(&settings); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		params := settings.params()
		params.Name = &name
		return c.client.CreateProject(ctx, req.GetInt("account_id", 0), params)
	})}
}

func (c *Catalog) updateProject() Definition {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Update settings of an existing project. Only the provided fields are changed."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project to update.")),
		mcp.WithString("name",
			mcp.Description("New name for the project.")),
		mcp.WithIdempotentHintAnnotation(true),
	}
	opts = append(opts, projectSettingsOptions()...)
	tool := mcp.NewTool("update_project", opts...)

	return Definition{Tool: tool, Handler: c.handle("update_project", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, err := req.RequireInt("project_id")
		if err != nil {
			return nil, err
		}
		var settings projectSettings
		if err := req.BindArguments(&settings); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		params := settings.params()
		if name := req.GetString("name", ""); name != "" {
			params.Name = &name
		}
		return c.client.UpdateProject(ctx, projectID, params)
	})}
}

func (c *Catalog) deleteProject() Definition {
	tool := mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project and all of its data permanently."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project to delete.")),
		mcp.WithDestructiveHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("delete_project", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, err := req.RequireInt("project_id")
		if err != nil {
			return nil, err
		}
		return c.client.DeleteProject(ctx, projectID)
	})}
}

func (c *Catalog) getProjectOccurrences() Definition {
	tool := mcp.NewTool("get_project_occurrences",
		mcp.WithDescription("Get error occurrence counts over time, for one project or across all projects."),
		mcp.WithNumber("project_id",
			mcp.Description("Project ID. Omit to aggregate across all projects.")),
		mcp.WithString("period",
			mcp.Description("Bucket size for the time series."),
			mcp.Enum("hour", "day", "week", "month"),
			mcp.DefaultString("hour")),
		mcp.WithString("environment",
			mcp.Description("Environment to filter by, e.g. production.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_project_occurrences", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		return c.client.ProjectOccurrences(ctx,
			req.GetInt("project_id", 0),
			req.GetString("period", "hour"),
			req.GetString("environment", ""),
		)
	})}
}
