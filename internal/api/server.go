// ABOUTME: Local HTTP surface for memopad built on fiber.
// ABOUTME: Wires middleware, the error mapping and the notebook and identity services.

package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/harper/memopad/internal/auth"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/notebook"
)

// Notebook is the memo collection the server exposes.
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

type FiberServer struct {
	*fiber.App

	nb       Notebook
	identity auth.Provider
	logger   *log.Logger

	// secret signs bearer tokens; nil leaves memo routes open.
	secret   []byte
	tokenTTL time.Duration

	// mu serializes notebook mutations so read-modify-write cycles never interleave.
	mu sync.Mutex
}

// Option configures a FiberServer.
type Option func(*FiberServer)

// WithSecret requires bearer tokens signed with secret on memo and tag routes.
func WithSecret(secret string) Option {
	return func(s *FiberServer) {
		if secret != "" {
			s.secret = []byte(secret)
		}
	}
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *log.Logger) Option {
	return func(s *FiberServer) {
		s.logger = l
	}
}

// New creates a server with routes registered. identity may be nil, in which
// case the auth routes report the provider as unavailable.
func New(nb Notebook, identity auth.Provider, opts ...Option) *FiberServer {
	s := &FiberServer{
		nb:       nb,
		identity: identity,
		logger:   log.Default(),
		tokenTTL: 72 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.App = fiber.New(fiber.Config{
		ServerHeader: "memopad",
		AppName:      "memopad",
		ErrorHandler: s.errorHandler,
	})
	s.App.Use(recover.New())
	s.App.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://127.0.0.1:3000",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	s.App.Use(logger.New())

	s.RegisterFiberRoutes()
	return s
}

// errorHandler maps domain errors onto status codes with a JSON body.
func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, notebook.ErrEmptyMemo), errors.Is(err, notebook.ErrEmptyTag):
		code = fiber.StatusBadRequest
	case errors.Is(err, notebook.ErrMemoNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, auth.ErrNoProvider):
		code = fiber.StatusNotImplemented
	}
	if code == fiber.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// ListenContext serves on addr until ctx is canceled.
func (s *FiberServer) ListenContext(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- s.App.Listen(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return s.App.Shutdown()
	}
}
