package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

// requireFaultRef reads the project_id/fault_id pair every fault tool needs.
func requireFaultRef(req mcp.CallToolRequest) (projectID, faultID int, err error) {
	projectID, err = req.RequireInt("project_id")
	if err != nil {
		return 0, 0, err
	}
	faultID, err = req.RequireInt("fault_id")
	if err != nil {
		return 0, 0, err
	}
	return projectID, faultID, nil
}

func (c *Catalog) getFaults() Definition {
	tool := mcp.NewTool("get_faults",
		mcp.WithDescription("Get a list of faults (grouped errors) for a project."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithString("query",
			mcp.Description("Search query, e.g. \"environment:production -is:resolved\".")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results, at most 25."),
			mcp.DefaultNumber(25)),
		mcp.WithString("order",
			mcp.Description("Sort order: newest first or most occurrences first."),
			mcp.Enum("recent", "frequent"),
			mcp.DefaultString("recent")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_faults", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, err := req.RequireInt("project_id")
		if err != nil {
			return nil, err
		}
		opts := honeybadger.FaultListOptions{
			Query: req.GetString("query", ""),
			Limit: req.GetInt("limit", 25),
			Order: req.GetString("order", "recent"),
		}
		return c.client.ListFaults(ctx, projectID, opts)
	})}
}

func (c *Catalog) getFaultDetails() Definition {
	tool := mcp.NewTool("get_fault_details",
		mcp.WithDescription("Get detailed information about a specific fault."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_fault_details", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		return c.client.GetFault(ctx, projectID, faultID)
	})}
}

func (c *Catalog) getFaultSummary() Definition {
	tool := mcp.NewTool("get_fault_summary",
		mcp.WithDescription("Get aggregate fault counts for a project, by environment and status."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithString("query",
			mcp.Description("Search query to restrict the summary.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_fault_summary", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, err := req.RequireInt("project_id")
		if err != nil {
			return nil, err
		}
		return c.client.FaultSummary(ctx, projectID, req.GetString("query", ""))
	})}
}

func (c *Catalog) updateFault() Definition {
	tool := mcp.NewTool("update_fault",
		mcp.WithDescription("Update a fault's status: resolve, ignore or assign it. Only the provided fields are changed."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault.")),
		mcp.WithBoolean("resolved",
			mcp.Description("true marks the fault resolved, false reopens it.")),
		mcp.WithBoolean("ignored",
			mcp.Description("true mutes the fault, false unmutes it.")),
		mcp.WithNumber("assignee_id",
			mcp.Description("User ID to assign the fault to.")),
		mcp.WithIdempotentHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("update_fault", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		var params struct {
			Resolved   *bool `json:"resolved"`
			Ignored    *bool `json:"ignored"`
			AssigneeID *int  `json:"assignee_id"`
		}
		if err := req.BindArguments(&params); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return c.client.UpdateFault(ctx, projectID, faultID, honeybadger.FaultParams{
			Resolved:   params.Resolved,
			Ignored:    params.Ignored,
			AssigneeID: params.AssigneeID,
		})
	})}
}

func (c *Catalog) deleteFault() Definition {
	tool := mcp.NewTool("delete_fault",
		mcp.WithDescription("Delete a fault and all of its notices permanently."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault to delete.")),
		mcp.WithDestructiveHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("delete_fault", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		return c.client.DeleteFault(ctx, projectID, faultID)
	})}
}

func (c *Catalog) getFaultOccurrences() Definition {
	tool := mcp.NewTool("get_fault_occurrences",
		mcp.WithDescription("Get occurrence counts for one fault over time."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault.")),
		mcp.WithString("period",
			mcp.Description("Bucket size for the time series."),
			mcp.Enum("hour", "day", "week", "month"),
			mcp.DefaultString("day")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_fault_occurrences", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		return c.client.FaultOccurrences(ctx, projectID, faultID, req.GetString("period", "day"))
	})}
}

func (c *Catalog) getFaultNotices() Definition {
	tool := mcp.NewTool("get_fault_notices",
		mcp.WithDescription("Get individual error events (notices) for a fault, newest first."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault.")),
		mcp.WithNumber("created_after",
			mcp.Description("Unix timestamp in seconds; only notices created after this time.")),
		mcp.WithNumber("created_before",
			mcp.Description("Unix timestamp in seconds; only notices created before this time.")),
		mcp.WithNumber("limit",
			mcp.Description("Number of results, max and default are 25."),
			mcp.DefaultNumber(25)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("get_fault_notices", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		opts := honeybadger.NoticeListOptions{
			CreatedAfter:  int64(req.GetInt("created_after", 0)),
			CreatedBefore: int64(req.GetInt("created_before", 0)),
			Limit:         req.GetInt("limit", 25),
		}
		return c.client.FaultNotices(ctx, projectID, faultID, opts)
	})}
}

func (c *Catalog) pauseFaultNotifications() Definition {
	tool := mcp.NewTool("pause_fault_notifications",
		mcp.WithDescription("Pause notifications for a fault, either for a time window or for a number of occurrences."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault.")),
		mcp.WithString("time",
			mcp.Description("Time window to pause for. Takes precedence over count."),
			mcp.Enum("hour", "day", "week")),
		mcp.WithNumber("count",
			mcp.Description("Number of occurrences to pause for (10, 100 or 1000).")),
	)
	return Definition{Tool: tool, Handler: c.handle("pause_fault_notifications", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		return c.client.PauseFault(ctx, projectID, faultID,
			req.GetString("time", ""),
			req.GetInt("count", 0),
		)
	})}
}

func (c *Catalog) unpauseFaultNotifications() Definition {
	tool := mcp.NewTool("unpause_fault_notifications",
		mcp.WithDescription("Resume notifications for a fault."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithNumber("fault_id",
			mcp.Required(),
			mcp.Description("The ID of the fault.")),
		mcp.WithIdempotentHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("unpause_fault_notifications", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, faultID, err := requireFaultRef(req)
		if err != nil {
			return nil, err
		}
		return c.client.UnpauseFault(ctx, projectID, faultID)
	})}
}

func (c *Catalog) bulkResolveFaults() Definition {
	tool := mcp.NewTool("bulk_resolve_faults",
		mcp.WithDescription("Mark all faults of a project as resolved, optionally restricted by a search query."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project.")),
		mcp.WithString("query",
			mcp.Description("Search query to filter which faults to resolve.")),
		mcp.WithIdempotentHintAnnotation(true),
	)
	return Definition{Tool: tool, Handler: c.handle("bulk_resolve_faults", func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error) {
		projectID, err := req.RequireInt("project_id")
		if err != nil {
			return nil, err
		}
		return c.client.ResolveFaults(ctx, projectID, req.GetString("query", ""))
	})}
}
