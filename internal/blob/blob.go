// ABOUTME: Named-blob key-value surface the memo store persists through.
// ABOUTME: Defines the Store interface and the backend registry.

package blob

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("blob not found")

// Store reads and writes whole named blobs.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the blob stored under key in a single write.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendBadger   = "badger"
	BackendCharm    = "charm"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options carries what the individual backends need to open.
type Options struct {
	Backend string
	// Path is the sqlite file or badger directory.
	Path string
	// PostgresURL is the connection string for the postgres backend.
	PostgresURL string
	// CharmDB names the charm kv database.
	CharmDB string
	// CharmHost overrides the charm server for the charm backend.
	CharmHost string
	AutoSync  bool
}

// Open returns the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendSQLite, "":
		s, err = asStore(OpenSQLite(opts.Path))
	case BackendBadger:
		s, err = asStore(OpenBadger(opts.Path))
	case BackendCharm:
		s, err = asStore(OpenCharm(opts.CharmDB, opts.CharmHost, opts.AutoSync))
	case BackendPostgres:
		s, err = asStore(OpenPostgres(ctx, opts.PostgresURL))
	case BackendMemory:
		s = NewMemory()
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", opts.Backend, err)
	}
	return s, nil
}

// asStore keeps a typed nil from leaking out as a non-nil interface.
func asStore[T Store](s T, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
