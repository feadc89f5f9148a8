package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const configResourceURI = "honeybadger://config"

// configResource reports the active API configuration. The token itself is
// redacted; only its presence and the base URL are visible.
func (c *Catalog) configResource() (mcp.Resource, server.ResourceHandlerFunc) {
	resource := mcp.NewResource(configResourceURI, "Honeybadger configuration",
		mcp.WithResourceDescription("The API configuration in use. The token value is never exposed."),
		mcp.WithMIMEType("application/json"),
	)
	handler := func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := json.Marshal(map[string]string{
			"api_token": "[REDACTED]",
			"base_url":  c.client.BaseURL(),
		})
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      configResourceURI,
				MIMEType: "application/json",
				Text:     string(payload),
			},
		}, nil
	}
	return resource, handler
}
