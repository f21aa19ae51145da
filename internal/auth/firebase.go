// ABOUTME: Email/password identity via the Firebase Identity Toolkit REST API.
// ABOUTME: Sign-up also writes a users/{uid} profile document through Firestore REST.

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultAuthURL is the Identity Toolkit endpoint.
	DefaultAuthURL = "https://identitytoolkit.googleapis.com"

	// DefaultFirestoreURL is the Firestore REST endpoint.
	DefaultFirestoreURL = "https://firestore.googleapis.com"
)

// FirebaseError is an error reported by a Firebase REST endpoint.
type FirebaseError struct {
	Status  int
	Message string
}

func (e *FirebaseError) Error() string {
	return fmt.Sprintf("firebase: %s (status %d)", e.Message, e.Status)
}

// Firebase is a PasswordProvider backed by Firebase Authentication.
type Firebase struct {
	apiKey       string
	projectID    string
	authURL      string
	firestoreURL string
	httpClient   *http.Client
	now          func() time.Time
}

// FirebaseOption configures a Firebase provider.
type FirebaseOption func(*Firebase)

// WithEndpoints overrides the Identity Toolkit and Firestore base URLs.
func WithEndpoints(authURL, firestoreURL string) FirebaseOption {
	return func(f *Firebase) {
		f.authURL = authURL
		f.firestoreURL = firestoreURL
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) FirebaseOption {
	return func(f *Firebase) {
		f.httpClient = c
	}
}

// NewFirebase creates a Firebase provider for the given web API key and project.
func NewFirebase(apiKey, projectID string, opts ...FirebaseOption) *Firebase {
	f := &Firebase{
		apiKey:       apiKey,
		projectID:    projectID,
		authURL:      DefaultAuthURL,
		firestoreURL: DefaultFirestoreURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type credentials struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignUp creates an account and its profile document.
func (f *Firebase) SignUp(ctx context.Context, email, password, name string) (*Identity, error) {
	tok, err := f.accounts(ctx, "signUp", email, password)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultName
	}
	id := &Identity{
		UID:          tok.LocalID,
		Email:        tok.Email,
		Name:         name,
		IDToken:      tok.IDToken,
		RefreshToken: tok.RefreshToken,
	}
	if err := f.writeProfile(ctx, id); err != nil {
		return nil, err
	}
	return id, nil
}

// Login signs in with email and password.
func (f *Firebase) Login(ctx context.Context, email, password string) (*Identity, error) {
	tok, err := f.accounts(ctx, "signInWithPassword", email, password)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:          tok.LocalID,
		Email:        tok.Email,
		Name:         tok.DisplayName,
		IDToken:      tok.IDToken,
		RefreshToken: tok.RefreshToken,
	}, nil
}

func (f *Firebase) accounts(ctx context.Context, method, email, password string) (*tokenResponse, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/v1/accounts:%s?key=%s", f.authURL, method, url.QueryEscape(f.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var tok tokenResponse
	if err := f.do(req, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

type firestoreValue struct {
	StringValue    string `json:"stringValue,omitempty"`
	TimestampValue string `json:"timestampValue,omitempty"`
}

// writeProfile stores users/{uid} with id, email, name and createdAt.
func (f *Firebase) writeProfile(ctx context.Context, id *Identity) error {
	doc := map[string]map[string]firestoreValue{
		"fields": {
			"id":        {StringValue: id.UID},
			"email":     {StringValue: id.Email},
			"name":      {StringValue: id.Name},
			"createdAt": {TimestampValue: f.now().UTC().Format(time.RFC3339Nano)},
		},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents/users/%s",
		f.firestoreURL, url.PathEscape(f.projectID), url.PathEscape(id.UID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+id.IDToken)

	return f.do(req, nil)
}

func (f *Firebase) do(req *http.Request, out any) error {
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		var e struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &e) == nil && e.Error.Message != "" {
			msg = e.Error.Message
		}
		return &FirebaseError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
