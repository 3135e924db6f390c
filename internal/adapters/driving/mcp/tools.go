package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/highlight"
	"github.com/custodia-labs/ghs/internal/logger"
)

// SearchInput is the input schema for the code_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"GitHub code search query, e.g. 'repo:owner/name func main'"`
	Page  int    `json:"page,omitempty" jsonschema:"1-based result page (default 1)"`
}

// SearchOutput is the output schema for the code_search tool.
type SearchOutput struct {
	Results    []ResultOutput     `json:"results"`
	Count      int                `json:"count"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	LastPage   int                `json:"last_page,omitempty"`
	HasNext    bool               `json:"has_next"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// ResultOutput is one file hit.
type ResultOutput struct {
	Repository string          `json:"repository"`
	Path       string          `json:"path"`
	URL        string          `json:"url"`
	Fragments  []FragmentOutput `json:"fragments"`
}

// FragmentOutput is one text match rendered as lines of segments.
type FragmentOutput struct {
	Text  string       `json:"text"`
	Lines []LineOutput `json:"lines"`
}

// LineOutput is one display line of a fragment.
type LineOutput struct {
	Start    int             `json:"start"`
	Segments []SegmentOutput `json:"segments"`
}

// SegmentOutput is a run of text that is matched or not.
type SegmentOutput struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "code_search",
		Description: "Search code on GitHub and return matching fragments with highlighted segments",
	}, s.handleSearch)
}

// handleSearch handles the code_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query := domain.NewQuery(input.Query)
	if input.Page > 1 {
		query = query.WithPage(input.Page)
	}

	page, err := s.ports.Search.Search(ctx, query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("code search: %w", err)
	}
	logger.Debug("mcp: %q page %d returned %d items", query.Text, query.Page, len(page.Results.Items))

	return nil, s.toOutput(page, max(input.Page, 1)), nil
}

func (s *Server) toOutput(page *domain.SearchPage, current int) SearchOutput {
	opts := highlight.Options{}
	if s.ports.Settings != nil {
		opts.TabWidth = s.ports.Settings.Get().UI.TabWidth
	}

	out := SearchOutput{
		Results:    make([]ResultOutput, 0, len(page.Results.Items)),
		Count:      page.Results.Count(),
		TotalCount: page.Results.TotalCount,
		Page:       current,
		HasNext:    page.Pagination.HasNext(),
		Pagination: page.Pagination,
	}
	if last, ok := page.Pagination.LastPage(); ok {
		out.LastPage = last
	}

	for i := range page.Results.Items {
		item := &page.Results.Items[i]
		result := ResultOutput{
			Repository: item.Repository.FullName,
			Path:       item.Path,
			URL:        item.HTMLURL,
			Fragments:  make([]FragmentOutput, 0, len(item.TextMatches)),
		}
		for _, tm := range item.TextMatches {
			result.Fragments = append(result.Fragments, fragmentOutput(tm, opts))
		}
		out.Results = append(out.Results, result)
	}
	return out
}

func fragmentOutput(tm domain.TextMatch, opts highlight.Options) FragmentOutput {
	lines := highlight.Fragment(tm, opts)
	out := FragmentOutput{
		Text:  tm.Fragment,
		Lines: make([]LineOutput, len(lines)),
	}
	for i, line := range lines {
		segs := make([]SegmentOutput, len(line.Spans))
		for j, span := range line.Spans {
			segs[j] = SegmentOutput{Text: span.Text, Match: span.Match}
		}
		out.Lines[i] = LineOutput{Start: line.Start, Segments: segs}
	}
	return out
}
