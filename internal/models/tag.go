// ABOUTME: Tag helpers for the persisted tag list.
// ABOUTME: Tag names are trimmed plain strings, unique within the list.

package models

import "strings"

// DefaultTags seed the tag list when none has been saved.
var DefaultTags = []string{"School", "Work", "Hobby"}

// NormalizeTag trims surrounding whitespace. Case is preserved.
func NormalizeTag(name string) string {
	return strings.TrimSpace(name)
}

// ContainsTag reports whether name is already in tags.
func ContainsTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

// WithoutTag returns tags minus every entry equal to name.
func WithoutTag(tags []string, name string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}
