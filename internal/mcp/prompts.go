// ABOUTME: MCP prompts for common memo workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-memos",
		Description: "Get suggestions for tagging and grouping memos",
	}, s.getOrganizeMemosPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-memo",
		Description: "Generate a summary of an existing memo",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "memo_id",
				Description: "ID of the memo to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeMemoPrompt)
}

func (s *Server) getOrganizeMemosPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tags, err := s.nb.Tags(ctx)
	if err != nil {
		return nil, err
	}

	template := fmt.Sprintf(`Help me organize my memos by:

1. Use the list_memos tool to see all memos grouped by tag
2. Look at the "no tag" group and suggest tags for those memos
3. Identify tags that overlap and could be merged
4. Use update_memo to apply the tags I agree with

My current tag list is: %v
Use add_tag for any new tag you propose so it is offered next time.`, tags)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) getSummarizeMemoPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	memoID, ok := req.Params.Arguments["memo_id"]
	if !ok || memoID == "" {
		return nil, fmt.Errorf("memo_id argument is required")
	}

	template := fmt.Sprintf(`Please summarize the memo with ID: %s

1. Use the get_memo tool to retrieve the memo
2. Read the plainText field
3. Write a two or three sentence summary with any action items
4. Suggest tags if the memo has none`, memoID)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}, nil
}
