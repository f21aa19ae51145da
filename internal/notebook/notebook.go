// ABOUTME: Notebook applies user actions to the memo collection.
// ABOUTME: Every mutation reads the whole collection, modifies it, writes it back.

package notebook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/query"
	"github.com/harper/memopad/internal/store"
)

var (
	ErrMemoNotFound = errors.New("memo not found")
	ErrEmptyMemo    = errors.New("memo needs a title or content")
	ErrEmptyTag     = errors.New("tag name cannot be empty")
)

// Draft is what the create and edit views submit.
type Draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// View is the list view state derived from the collection and filters.
type View struct {
	Groups query.Grouped
	// Keys lists Groups in display order.
	Keys []string
	// TagNames are every tag in use, offered as filter values.
	TagNames []string
	// Suggestions are near matches when the tag filter matched nothing.
	Suggestions []string
	Total       int
}

type Notebook struct {
	store store.Store
	now   func() time.Time
}

// Option configures a Notebook.
type Option func(*Notebook)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notebook) {
		n.now = now
	}
}

func New(s store.Store, opts ...Option) *Notebook {
	n := &Notebook{store: s, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Create validates and appends a new memo. Tags not yet in the tag list are
// added to it.
func (n *Notebook) Create(ctx context.Context, d Draft) (*models.Memo, error) {
	plain := markup.StripMarkup(d.Content)
	if err := validate(d, plain); err != nil {
		return nil, err
	}

	memos, err := n.store.LoadMemos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}

	now := n.now()
	memo := models.NewMemo(nextID(memos, now), d.Title, d.Content, plain, d.Tags, now)
	memos = append(memos, memo)
	if err := n.store.SaveMemos(ctx, memos); err != nil {
		return nil, fmt.Errorf("save memos: %w", err)
	}

	if err := n.registerTags(ctx, memo.Tags); err != nil {
		return nil, err
	}
	return memo, nil
}

// Update replaces the memo with id by the draft, keeping id and createdAt.
func (n *Notebook) Update(ctx context.Context, id int64, d Draft) (*models.Memo, error) {
	plain := markup.StripMarkup(d.Content)
	if err := validate(d, plain); err != nil {
		return nil, err
	}

	memos, err := n.store.LoadMemos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}
	i := indexOf(memos, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrMemoNotFound, id)
	}

	old := memos[i]
	updated := models.NewMemo(id, d.Title, d.Content, plain, d.Tags, n.now())
	updated.CreatedAt = old.CreatedAt
	memos[i] = updated
	if err := n.store.SaveMemos(ctx, memos); err != nil {
		return nil, fmt.Errorf("save memos: %w", err)
	}

	if err := n.registerTags(ctx, updated.Tags); err != nil {
		return nil, err
	}
	return updated, nil
}

func (n *Notebook) Get(ctx context.Context, id int64) (*models.Memo, error) {
	memos, err := n.store.LoadMemos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}
	i := indexOf(memos, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrMemoNotFound, id)
	}
	return memos[i], nil
}

// List returns the whole collection in stored order.
func (n *Notebook) List(ctx context.Context) ([]*models.Memo, error) {
	memos, err := n.store.LoadMemos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}
	return memos, nil
}

// Delete rewrites the collection without id.
func (n *Notebook) Delete(ctx context.Context, id int64) error {
	memos, err := n.store.LoadMemos(ctx)
	if err != nil {
		return fmt.Errorf("load memos: %w", err)
	}
	i := indexOf(memos, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrMemoNotFound, id)
	}
	memos = append(memos[:i], memos[i+1:]...)
	if err := n.store.SaveMemos(ctx, memos); err != nil {
		return fmt.Errorf("save memos: %w", err)
	}
	return nil
}

// Replace writes memos as the whole collection, normalizing each record and
// dropping nil entries. Used by import.
func (n *Notebook) Replace(ctx context.Context, all []*models.Memo) error {
	memos := make([]*models.Memo, 0, len(all))
	for _, m := range all {
		if m == nil {
			continue
		}
		m.Normalize()
		memos = append(memos, m)
	}
	if err := n.store.SaveMemos(ctx, memos); err != nil {
		return fmt.Errorf("save memos: %w", err)
	}
	return n.registerTags(ctx, query.AllTagNames(memos))
}

// View loads the collection, groups it by tag and applies the filters.
func (n *Notebook) View(ctx context.Context, term, tag string) (*View, error) {
	memos, err := n.store.LoadMemos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memos: %w", err)
	}
	names := query.AllTagNames(memos)
	groups := query.ApplyFilters(query.GroupByTag(memos), term, tag)

	v := &View{
		Groups:   groups,
		Keys:     query.Keys(groups),
		TagNames: names,
		Total:    query.Count(groups),
	}
	if tag != "" && len(groups) == 0 && !models.ContainsTag(names, tag) {
		v.Suggestions = query.SuggestTags(tag, names)
	}
	return v, nil
}

// Tags returns the persisted tag list.
func (n *Notebook) Tags(ctx context.Context) ([]string, error) {
	tags, err := n.store.LoadTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return tags, nil
}

// AddTag appends name to the tag list and reports whether it was new.
func (n *Notebook) AddTag(ctx context.Context, name string) (bool, error) {
	name = models.NormalizeTag(name)
	if name == "" {
		return false, ErrEmptyTag
	}
	tags, err := n.Tags(ctx)
	if err != nil {
		return false, err
	}
	if models.ContainsTag(tags, name) {
		return false, nil
	}
	if err := n.store.SaveTags(ctx, append(tags, name)); err != nil {
		return false, fmt.Errorf("save tags: %w", err)
	}
	return true, nil
}

// RemoveTag drops name from the tag list. Memos carrying it keep it.
func (n *Notebook) RemoveTag(ctx context.Context, name string) error {
	name = models.NormalizeTag(name)
	tags, err := n.Tags(ctx)
	if err != nil {
		return err
	}
	if err := n.store.SaveTags(ctx, models.WithoutTag(tags, name)); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

func (n *Notebook) registerTags(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags, err := n.Tags(ctx)
	if err != nil {
		return err
	}
	changed := false
	for _, name := range names {
		if !models.ContainsTag(tags, name) {
			tags = append(tags, name)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := n.store.SaveTags(ctx, tags); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

func validate(d Draft, plain string) error {
	if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(plain) == "" {
		return ErrEmptyMemo
	}
	return nil
}

// nextID uses the creation time in milliseconds, bumped past the largest id
// already present.
func nextID(memos []*models.Memo, now time.Time) int64 {
	id := now.UnixMilli()
	for _, m := range memos {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}

func indexOf(memos []*models.Memo, id int64) int {
	for i, m := range memos {
		if m.ID == id {
			return i
		}
	}
	return -1
}
