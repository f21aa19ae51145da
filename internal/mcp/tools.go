// ABOUTME: MCP tools for memo and tag operations.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/notebook"
)

func (s *Server) registerTools() {
	// list_memos
	s.server.AddTool(&mcp.Tool{
		Name:        "list_memos",
		Description: "List memos grouped by tag, optionally filtered by text and tag",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Case-insensitive text to find in title or body"},
				"tag": {"type": "string", "description": "Only show this tag's group"}
			}
		}`),
	}, s.handleListMemos)

	// get_memo
	s.server.AddTool(&mcp.Tool{
		Name:        "get_memo",
		Description: "Get a memo by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Memo ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetMemo)

	// create_memo
	s.server.AddTool(&mcp.Tool{
		Name:        "create_memo",
		Description: "Create a memo. Needs a title or non-empty content.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Memo title"},
				"content": {"type": "string", "description": "Memo body as HTML markup, or markdown when markdown is true"},
				"markdown": {"type": "boolean", "description": "Treat content as markdown", "default": false},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags"}
			}
		}`),
	}, s.handleCreateMemo)

	// update_memo
	s.server.AddTool(&mcp.Tool{
		Name:        "update_memo",
		Description: "Update a memo's title, content or tags. Omitted fields are kept.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Memo ID"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"},
				"markdown": {"type": "boolean", "description": "Treat content as markdown", "default": false},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tags"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateMemo)

	// delete_memo
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_memo",
		Description: "Delete a memo",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Memo ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteMemo)

	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List the known tag names offered when writing memos",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	// add_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "add_tag",
		Description: "Add a name to the known tag list",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Tag name"}
			},
			"required": ["name"]
		}`),
	}, s.handleAddTag)

	// remove_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "remove_tag",
		Description: "Remove a name from the known tag list. Memos keep their tags.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Tag name"}
			},
			"required": ["name"]
		}`),
	}, s.handleRemoveTag)
}

type memoParams struct {
	ID       int64     `json:"id"`
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Markdown bool      `json:"markdown"`
	Tags     *[]string `json:"tags"`
}

// content returns the body as markup, converting markdown when asked.
func (p memoParams) content() (string, error) {
	if p.Content == nil {
		return "", nil
	}
	if p.Markdown {
		return markup.FromMarkdown(*p.Content)
	}
	return *p.Content, nil
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// Tool handlers.
func (s *Server) handleListMemos(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
		Tag   string `json:"tag"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	v, err := s.nb.View(ctx, params.Query, params.Tag)
	if err != nil {
		return errorResult("failed to list memos: %v", err), nil
	}

	type group struct {
		Tag   string `json:"tag"`
		Memos any    `json:"memos"`
	}
	out := struct {
		Groups      []group  `json:"groups"`
		Suggestions []string `json:"suggestions,omitempty"`
		Total       int      `json:"total"`
	}{Groups: []group{}, Suggestions: v.Suggestions, Total: v.Total}
	for _, key := range v.Keys {
		out.Groups = append(out.Groups, group{Tag: key, Memos: v.Groups[key]})
	}
	return jsonResult(out), nil
}

func (s *Server) handleGetMemo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params memoParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	m, err := s.nb.Get(ctx, params.ID)
	if err != nil {
		return errorResult("failed to get memo: %v", err), nil
	}
	return jsonResult(m), nil
}

func (s *Server) handleCreateMemo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params memoParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	content, err := params.content()
	if err != nil {
		return errorResult("invalid markdown: %v", err), nil
	}

	d := notebook.Draft{Content: content}
	if params.Title != nil {
		d.Title = *params.Title
	}
	if params.Tags != nil {
		d.Tags = *params.Tags
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.nb.Create(ctx, d)
	if errors.Is(err, notebook.ErrEmptyMemo) {
		return errorResult("%v", err), nil
	}
	if err != nil {
		return errorResult("failed to create memo: %v", err), nil
	}
	return textResult(fmt.Sprintf("Created memo %d", m.ID)), nil
}

func (s *Server) handleUpdateMemo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params memoParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.nb.Get(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find memo: %v", err), nil
	}

	d := notebook.Draft{
		Title:   existing.Title,
		Content: existing.Content,
		Tags:    existing.EffectiveTags(),
	}
	if params.Title != nil {
		d.Title = *params.Title
	}
	if params.Content != nil {
		if d.Content, err = params.content(); err != nil {
			return errorResult("invalid markdown: %v", err), nil
		}
	}
	if params.Tags != nil {
		d.Tags = *params.Tags
	}

	m, err := s.nb.Update(ctx, params.ID, d)
	if err != nil {
		return errorResult("failed to update memo: %v", err), nil
	}
	return textResult(fmt.Sprintf("Updated memo %d", m.ID)), nil
}

func (s *Server) handleDeleteMemo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params memoParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nb.Delete(ctx, params.ID); err != nil {
		return errorResult("failed to delete memo: %v", err), nil
	}
	return textResult("Deleted memo " + strconv.FormatInt(params.ID, 10)), nil
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.nb.Tags(ctx)
	if err != nil {
		return errorResult("failed to list tags: %v", err), nil
	}
	return jsonResult(tags), nil
}

func (s *Server) handleAddTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.nb.AddTag(ctx, params.Name)
	if err != nil {
		return errorResult("failed to add tag: %v", err), nil
	}
	if !added {
		return textResult(fmt.Sprintf("Tag %q already exists", params.Name)), nil
	}
	return textResult(fmt.Sprintf("Added tag %q", params.Name)), nil
}

func (s *Server) handleRemoveTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nb.RemoveTag(ctx, params.Name); err != nil {
		return errorResult("failed to remove tag: %v", err), nil
	}
	return textResult(fmt.Sprintf("Removed tag %q", params.Name)), nil
}
