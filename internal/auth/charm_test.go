// ABOUTME: Tests for the charm SSO provider.
// ABOUTME: Replaces the bio lookup so no charm server is needed.

package auth

import (
	"context"
	"errors"
	"testing"

	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharmLogin(t *testing.T) {
	c := NewCharm("")
	c.bio = func() (*charmproto.User, error) {
		return &charmproto.User{CharmID: "abc-123", Name: "harper", Email: "h@example.com"}, nil
	}

	id, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "abc-123", Name: "harper", Email: "h@example.com"}, id)
}

func TestCharmLoginError(t *testing.T) {
	want := errors.New("missing ssh keys")
	c := NewCharm("")
	c.bio = func() (*charmproto.User, error) { return nil, want }

	_, err := c.Login(context.Background())
	assert.Equal(t, want, err)
}

func TestCharmLoginCanceled(t *testing.T) {
	c := NewCharm("")
	c.bio = func() (*charmproto.User, error) {
		t.Fatal("bio should not be called")
		return nil, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Login(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
