// ABOUTME: Whole-collection persistence for memos and the tag list.
// ABOUTME: JSON blobs under the "memos" and "tags" keys of a blob store.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/memopad/internal/blob"
	"github.com/harper/memopad/internal/models"
)

// Blob keys.
const (
	MemosKey = "memos"
	TagsKey  = "tags"
)

// Store is the persistence contract. Every write replaces the whole collection.
type Store interface {
	LoadMemos(ctx context.Context) ([]*models.Memo, error)
	SaveMemos(ctx context.Context, all []*models.Memo) error
	LoadTags(ctx context.Context) ([]string, error)
	SaveTags(ctx context.Context, all []string) error
}

// JSON implements Store over a blob.Store.
type JSON struct {
	blobs  blob.Store
	logger *log.Logger
}

// Option configures a JSON store.
type Option func(*JSON)

// WithLogger sets the logger used for swallowed parse failures.
func WithLogger(l *log.Logger) Option {
	return func(s *JSON) {
		s.logger = l
	}
}

func New(blobs blob.Store, opts ...Option) *JSON {
	s := &JSON{blobs: blobs, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadMemos returns the normalized collection. A missing or unparseable blob
// yields an empty collection; only backend failures are returned.
func (s *JSON) LoadMemos(ctx context.Context) ([]*models.Memo, error) {
	data, ok, err := s.get(ctx, MemosKey)
	if err != nil || !ok {
		return []*models.Memo{}, err
	}

	var memos []*models.Memo
	if err := json.Unmarshal(data, &memos); err != nil {
		s.logger.Warn("discarding unreadable memos blob", "err", err)
		return []*models.Memo{}, nil
	}

	out := make([]*models.Memo, 0, len(memos))
	for _, m := range memos {
		if m == nil {
			continue
		}
		m.Normalize()
		out = append(out, m)
	}
	return out, nil
}

func (s *JSON) SaveMemos(ctx context.Context, all []*models.Memo) error {
	if all == nil {
		all = []*models.Memo{}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal memos: %w", err)
	}
	if err := s.blobs.Set(ctx, MemosKey, data); err != nil {
		return fmt.Errorf("write memos: %w", err)
	}
	return nil
}

// LoadTags returns the persisted tag list, or DefaultTags when it is missing,
// empty or unparseable.
func (s *JSON) LoadTags(ctx context.Context) ([]string, error) {
	data, ok, err := s.get(ctx, TagsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return defaultTags(), nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		s.logger.Warn("discarding unreadable tags blob", "err", err)
		return defaultTags(), nil
	}
	if len(tags) == 0 {
		return defaultTags(), nil
	}
	return tags, nil
}

func (s *JSON) SaveTags(ctx context.Context, all []string) error {
	if all == nil {
		all = []string{}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	if err := s.blobs.Set(ctx, TagsKey, data); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}

func (s *JSON) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.blobs.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

func defaultTags() []string {
	return append([]string(nil), models.DefaultTags...)
}
