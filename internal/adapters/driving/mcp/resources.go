package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ghs resources.
	uriScheme = "ghs://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Previously submitted code search queries, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Active search settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleHistoryResource returns the stored search history.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	searches := []string{}
	if s.ports.History != nil {
		stored, err := s.ports.History.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if stored != nil {
			searches = stored
		}
	}
	return jsonResource(req.Params.URI, searches)
}

// handleSettingsResource returns the settings that shape search output.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type settingsInfo struct {
		APIURL       string `json:"api_url"`
		PerPage      int    `json:"per_page"`
		CacheEnabled bool   `json:"cache_enabled"`
		TabWidth     int    `json:"tab_width"`
	}

	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings := s.ports.Settings.Get()
	return jsonResource(req.Params.URI, settingsInfo{
		APIURL:       settings.GitHub.APIURL,
		PerPage:      settings.GitHub.PerPage,
		CacheEnabled: settings.Cache.Enabled,
		TabWidth:     settings.UI.TabWidth,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
