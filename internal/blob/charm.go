// ABOUTME: Charm KV blob backend with optional cloud sync after writes.
// ABOUTME: Short-lived connections per operation to avoid lock contention.

package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// DefaultCharmDB is the charm kv database name used when none is configured.
const DefaultCharmDB = "memopad"

// Charm does not hold a connection. Each operation opens the database,
// runs, and closes it.
type Charm struct {
	dbName   string
	autoSync bool
}

func OpenCharm(dbName, host string, autoSync bool) (*Charm, error) {
	if dbName == "" {
		dbName = DefaultCharmDB
	}
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, fmt.Errorf("set charm host: %w", err)
		}
	}
	return &Charm{dbName: dbName, autoSync: autoSync}, nil
}

func (c *Charm) Get(_ context.Context, key string) ([]byte, error) {
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (c *Charm) Set(_ context.Context, key string, value []byte) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := k.Set([]byte(key), value); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

// Sync triggers a manual sync with the charm server.
func (c *Charm) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

// LastSyncTime returns when the database last synced.
func (c *Charm) LastSyncTime() time.Time {
	var lastSync time.Time
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		lastSync = k.LastSyncTime()
		return nil
	})
	return lastSync
}

func (c *Charm) Close() error {
	return nil
}
