// ABOUTME: MCP resources exposing memos as readable markdown.
// ABOUTME: Allows AI agents to access memo content via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/memopad/internal/markup"
)

const memoURIPrefix = "memopad://memo/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: memoURIPrefix + "{id}",
			Name:        "Memo",
			Description: "Access individual memos by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	raw, ok := strings.CutPrefix(req.Params.URI, memoURIPrefix)
	if !ok {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	m, err := s.nb.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n", m.Title)
	if tags := m.EffectiveTags(); len(tags) > 0 {
		content += fmt.Sprintf("**Tags:** %s\n\n", strings.Join(tags, ", "))
	}
	content += markup.ToMarkdown(m.Content)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}
