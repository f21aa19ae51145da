// ABOUTME: Single-sign-on identity using the Charm account bound to this machine's SSH key.
// ABOUTME: The charm user id and name become the session identity.

package auth

import (
	"context"
	"os"

	"github.com/charmbracelet/charm/client"
	charmproto "github.com/charmbracelet/charm/proto"
)

// Charm is an SSOProvider backed by a charm server.
type Charm struct {
	host string
	bio  func() (*charmproto.User, error)
}

// NewCharm creates a Charm provider. An empty host uses the charm default.
func NewCharm(host string) *Charm {
	c := &Charm{host: host}
	c.bio = c.fetchBio
	return c
}

// Login links with the charm server and returns the account identity.
func (c *Charm) Login(ctx context.Context) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := c.bio()
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:   u.CharmID,
		Email: u.Email,
		Name:  u.Name,
	}, nil
}

func (c *Charm) fetchBio() (*charmproto.User, error) {
	if c.host != "" {
		if err := os.Setenv("CHARM_HOST", c.host); err != nil {
			return nil, err
		}
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}
