// ABOUTME: Memo model representing a short rich-text note with tags.
// ABOUTME: Owns the effective-tag rule and load-time normalization.

package models

import (
	"strings"
	"time"
)

// TimeFormat is the ISO 8601 layout used for memo timestamps.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// DefaultTitle replaces a blank title at creation.
const DefaultTitle = "Untitled memo"

type Memo struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	PlainText string   `json:"plainText"`
	Tag       *string  `json:"tag,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// NewMemo builds a memo stamped with now. A blank title becomes DefaultTitle.
func NewMemo(id int64, title, content, plainText string, tags []string, now time.Time) *Memo {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	stamp := FormatTime(now)
	m := &Memo{
		ID:        id,
		Title:     title,
		Content:   content,
		PlainText: plainText,
		Tags:      CleanTags(tags),
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	return m
}

// FormatTime renders t the way memo timestamps are stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// Touch refreshes UpdatedAt.
func (m *Memo) Touch(now time.Time) {
	m.UpdatedAt = FormatTime(now)
}

// EffectiveTags returns the tags the memo is considered to carry.
// A present Tags slice wins over the legacy Tag field, even when it is empty.
func (m *Memo) EffectiveTags() []string {
	if m.Tags != nil {
		return CleanTags(m.Tags)
	}
	if m.Tag != nil {
		if t := strings.TrimSpace(*m.Tag); t != "" {
			return []string{t}
		}
	}
	return []string{}
}

// Normalize rewrites the memo into canonical form: Tags holds the effective
// tag set and the legacy Tag field is dropped.
func (m *Memo) Normalize() {
	m.Tags = m.EffectiveTags()
	m.Tag = nil
}

// CleanTags trims entries, drops blanks and collapses repeats, keeping first
// occurrence order. The result is never nil.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
