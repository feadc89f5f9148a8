// Package tools exposes the Honeybadger Data API as MCP tool operations.
//
// Every tool resolves to exactly one API call and returns the service's
// JSON payload as its text content. Failures are reported in-band as
// error results so the calling agent can read and react to them.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

// Definition pairs a tool with its handler.
type Definition struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// Catalog builds the tool definitions backed by one API client.
type Catalog struct {
	client *honeybadger.Client
	log    *slog.Logger
}

// NewCatalog returns a Catalog that issues requests through client.
func NewCatalog(client *honeybadger.Client, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{client: client, log: log}
}

// Definitions lists every tool the server offers, in registration order.
func (c *Catalog) Definitions() []Definition {
	return []Definition{
		c.getProjects(),
		c.getProject(),
		c.createProject(),
		c.updateProject(),
		c.deleteProject(),
		c.getProjectOccurrences(),
		c.getFaults(),
		c.getFaultDetails(),
		c.getFaultSummary(),
		c.updateFault(),
		c.deleteFault(),
		c.getFaultOccurrences(),
		c.getFaultNotices(),
		c.pauseFaultNotifications(),
		c.unpauseFaultNotifications(),
		c.bulkResolveFaults(),
	}
}

// Register adds all tools and the config resource to srv.
func (c *Catalog) Register(srv *server.MCPServer) {
	for _, def := range c.Definitions() {
		srv.AddTool(def.Tool, def.Handler)
	}
	resource, handler := c.configResource()
	srv.AddResource(resource, handler)
}

// toolFunc is the inner shape of a handler: arguments in, API payload out.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (json.RawMessage, error)

// handle wraps fn with invocation logging and in-band error reporting.
func (c *Catalog) handle(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invocationID := uuid.NewString()
		start := time.Now()

		payload, err := fn(ctx, req)
		if err != nil {
			c.log.Warn("tool call failed",
				slog.String("tool", name),
				slog.String("invocation_id", invocationID),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("error", err.Error()),
			)
			return mcp.NewToolResultError(renderError(err)), nil
		}

		c.log.Info("tool call completed",
			slog.String("tool", name),
			slog.String("invocation_id", invocationID),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// renderError formats err for the calling agent, appending the credential
// hint when the API rejected the token.
func renderError(err error) string {
	var apiErr *honeybadger.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Error()
		if hint := apiErr.Hint(); hint != "" {
			msg += "\nhint: " + hint
		}
		return msg
	}
	return err.Error()
}
