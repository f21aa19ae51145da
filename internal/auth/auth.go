// ABOUTME: Identity collaborator: sign-up, password login, SSO login and logout.
// ABOUTME: Composes identity providers and persists the current session as a blob.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harper/memopad/internal/blob"
)

// SessionKey is the blob key holding the current session.
const SessionKey = "session"

// DefaultName is the profile name used when sign-up gives none.
const DefaultName = "New user"

var (
	// ErrNotLoggedIn is returned when no session is stored.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoProvider is returned when the requested login method is not configured.
	ErrNoProvider = errors.New("identity provider not configured")
)

// Identity is what a provider knows about an authenticated user.
type Identity struct {
	UID          string
	Email        string
	Name         string
	IDToken      string
	RefreshToken string
}

// PasswordProvider authenticates with email and password.
type PasswordProvider interface {
	SignUp(ctx context.Context, email, password, name string) (*Identity, error)
	Login(ctx context.Context, email, password string) (*Identity, error)
}

// SSOProvider authenticates with a third-party account.
type SSOProvider interface {
	Login(ctx context.Context) (*Identity, error)
}

// Provider is the identity surface used by the CLI and HTTP server.
type Provider interface {
	SignUp(ctx context.Context, email, password, name string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	LoginWithSSO(ctx context.Context) (*Session, error)
	Logout(ctx context.Context) error
}

// Session is the persisted login state.
type Session struct {
	ID           string    `json:"id"`
	Method       string    `json:"method"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	IDToken      string    `json:"idToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Login methods recorded on a Session.
const (
	MethodPassword = "password"
	MethodSSO      = "sso"
)

// Service implements Provider over a password provider, an SSO provider and
// a blob store for the session. Either provider may be nil.
type Service struct {
	password PasswordProvider
	sso      SSOProvider
	blobs    blob.Store
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPassword sets the email/password provider.
func WithPassword(p PasswordProvider) Option {
	return func(s *Service) {
		s.password = p
	}
}

// WithSSO sets the single-sign-on provider.
func WithSSO(p SSOProvider) Option {
	return func(s *Service) {
		s.sso = p
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service storing its session in blobs.
func NewService(blobs blob.Store, opts ...Option) *Service {
	s := &Service{blobs: blobs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp registers a new account and starts a session. Provider errors are
// returned unmodified.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	if s.password == nil {
		return nil, ErrNoProvider
	}
	id, err := s.password.SignUp(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, MethodPassword, id)
}

// Login authenticates with email and password and starts a session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if s.password == nil {
		return nil, ErrNoProvider
	}
	id, err := s.password.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, MethodPassword, id)
}

// LoginWithSSO authenticates with the SSO provider and starts a session.
func (s *Service) LoginWithSSO(ctx context.Context) (*Session, error) {
	if s.sso == nil {
		return nil, ErrNoProvider
	}
	id, err := s.sso.Login(ctx)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, MethodSSO, id)
}

// Logout clears the stored session. Logging out with no session is not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.blobs.Set(ctx, SessionKey, []byte("null")); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the stored session or ErrNotLoggedIn.
func (s *Service) Current(ctx context.Context) (*Session, error) {
	data, err := s.blobs.Get(ctx, SessionKey)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess *Session
	if err := json.Unmarshal(data, &sess); err != nil || sess == nil {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

func (s *Service) start(ctx context.Context, method string, id *Identity) (*Session, error) {
	sess := &Session{
		ID:           uuid.New().String(),
		Method:       method,
		UserID:       id.UID,
		Email:        id.Email,
		Name:         id.Name,
		IDToken:      id.IDToken,
		RefreshToken: id.RefreshToken,
		CreatedAt:    s.now().UTC(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.blobs.Set(ctx, SessionKey, data); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}
