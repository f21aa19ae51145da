// ABOUTME: Tests for the Firebase REST provider.
// ABOUTME: Serves Identity Toolkit and Firestore responses from an httptest server.

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firebaseStub struct {
	profiles map[string]map[string]map[string]string
	authz    string
}

func (s *firebaseStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		assert.True(t, c.ReturnSecureToken)
		if c.Email == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(tokenResponse{LocalID: "uid-42", Email: c.Email, IDToken: "id-tok", RefreshToken: "ref-tok"})
	})
	mux.HandleFunc("POST /v1/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Password != "right" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(tokenResponse{LocalID: "uid-42", Email: c.Email, DisplayName: "Ada", IDToken: "id-tok"})
	})
	mux.HandleFunc("PATCH /v1/projects/demo/databases/(default)/documents/users/{uid}", func(w http.ResponseWriter, r *http.Request) {
		s.authz = r.Header.Get("Authorization")
		var doc map[string]map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		s.profiles[r.PathValue("uid")] = doc["fields"]
		_, _ = w.Write([]byte(`{}`))
	})
	return mux
}

func newStubbedFirebase(t *testing.T) (*Firebase, *firebaseStub) {
	t.Helper()
	stub := &firebaseStub{profiles: map[string]map[string]map[string]string{}}
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)

	f := NewFirebase("test-key", "demo", WithEndpoints(srv.URL, srv.URL), WithHTTPClient(srv.Client()))
	f.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f, stub
}

func TestFirebaseSignUpWritesProfile(t *testing.T) {
	f, stub := newStubbedFirebase(t)

	id, err := f.SignUp(context.Background(), "ada@example.com", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "uid-42", id.UID)
	assert.Equal(t, DefaultName, id.Name)
	assert.Equal(t, "ref-tok", id.RefreshToken)

	profile := stub.profiles["uid-42"]
	require.NotNil(t, profile)
	assert.Equal(t, "uid-42", profile["id"]["stringValue"])
	assert.Equal(t, "ada@example.com", profile["email"]["stringValue"])
	assert.Equal(t, DefaultName, profile["name"]["stringValue"])
	assert.Equal(t, "2026-03-01T09:00:00Z", profile["createdAt"]["timestampValue"])
	assert.Equal(t, "Bearer id-tok", stub.authz)
}

func TestFirebaseSignUpError(t *testing.T) {
	f, stub := newStubbedFirebase(t)

	_, err := f.SignUp(context.Background(), "taken@example.com", "pw", "Ada")
	var fbErr *FirebaseError
	require.ErrorAs(t, err, &fbErr)
	assert.Equal(t, http.StatusBadRequest, fbErr.Status)
	assert.Equal(t, "EMAIL_EXISTS", fbErr.Message)
	assert.Empty(t, stub.profiles)
}

func TestFirebaseLogin(t *testing.T) {
	f, _ := newStubbedFirebase(t)

	id, err := f.Login(context.Background(), "ada@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "Ada", id.Name)
	assert.Equal(t, "id-tok", id.IDToken)

	_, err = f.Login(context.Background(), "ada@example.com", "wrong")
	assert.EqualError(t, err, "firebase: INVALID_LOGIN_CREDENTIALS (status 400)")
}
