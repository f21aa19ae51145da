// ABOUTME: MCP server for memopad integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for memo management.

package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/notebook"
)

// Notebook is the memo collection exposed to agents.
type Notebook interface {
	Create(ctx context.Context, d notebook.Draft) (*models.Memo, error)
	Update(ctx context.Context, id int64, d notebook.Draft) (*models.Memo, error)
	Get(ctx context.Context, id int64) (*models.Memo, error)
	Delete(ctx context.Context, id int64) error
	View(ctx context.Context, term, tag string) (*notebook.View, error)
	Tags(ctx context.Context) ([]string, error)
	AddTag(ctx context.Context, name string) (bool, error)
	RemoveTag(ctx context.Context, name string) error
}

type Server struct {
	server *mcp.Server
	nb     Notebook

	// mu serializes mutations; the SDK may dispatch requests concurrently.
	mu sync.Mutex
}

func NewServer(nb Notebook, version string) *Server {
	s := &Server{nb: nb}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "memopad",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
