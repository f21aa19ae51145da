// ABOUTME: Query engine deriving tag groupings from the memo collection.
// ABOUTME: Pure functions for grouping, text/tag filtering and tag listing.

package query

import (
	"sort"
	"strings"

	"github.com/harper/memopad/internal/models"
)

// NoTag is the synthetic group key for memos without tags. It is a display
// key only and never offered as a tag filter value.
const NoTag = "no tag"

// Grouped maps a tag name to the memos carrying it. A memo with several tags
// is shared by pointer across their groups.
type Grouped map[string][]*models.Memo

// EffectiveTags returns the normalized tag set of m.
func EffectiveTags(m *models.Memo) []string {
	return m.EffectiveTags()
}

// GroupByTag places every memo into each of its tag groups, or NoTag.
func GroupByTag(memos []*models.Memo) Grouped {
	g := make(Grouped)
	for _, m := range memos {
		tags := EffectiveTags(m)
		if len(tags) == 0 {
			g[NoTag] = append(g[NoTag], m)
			continue
		}
		for _, t := range tags {
			g[t] = append(g[t], m)
		}
	}
	return g
}

// FilterByText keeps memos whose title, plain text or content contains term,
// case-insensitively. Groups left empty are dropped. A blank term returns g.
func FilterByText(g Grouped, term string) Grouped {
	if strings.TrimSpace(term) == "" {
		return g
	}
	needle := strings.ToLower(term)
	out := make(Grouped)
	for tag, memos := range g {
		var kept []*models.Memo
		for _, m := range memos {
			if matches(m, needle) {
				kept = append(kept, m)
			}
		}
		if len(kept) > 0 {
			out[tag] = kept
		}
	}
	return out
}

func matches(m *models.Memo, needle string) bool {
	return strings.Contains(strings.ToLower(m.Title), needle) ||
		strings.Contains(strings.ToLower(m.PlainText), needle) ||
		strings.Contains(strings.ToLower(m.Content), needle)
}

// FilterByTag narrows g to the single group tag. An empty tag returns g.
func FilterByTag(g Grouped, tag string) Grouped {
	if tag == "" {
		return g
	}
	out := make(Grouped, 1)
	if memos, ok := g[tag]; ok {
		out[tag] = memos
	}
	return out
}

// ApplyFilters runs the text filter first and the tag filter on its result.
func ApplyFilters(all Grouped, term, tag string) Grouped {
	return FilterByTag(FilterByText(all, term), tag)
}

// AllTagNames returns the sorted union of every memo's effective tags.
func AllTagNames(memos []*models.Memo) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, m := range memos {
		for _, t := range EffectiveTags(m) {
			if !seen[t] {
				seen[t] = true
				names = append(names, t)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Keys returns the group keys in display order: ascending, NoTag last.
func Keys(g Grouped) []string {
	keys := make([]string, 0, len(g))
	hasNoTag := false
	for k := range g {
		if k == NoTag {
			hasNoTag = true
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if hasNoTag {
		keys = append(keys, NoTag)
	}
	return keys
}

// Count returns the number of distinct memos in g.
func Count(g Grouped) int {
	seen := make(map[*models.Memo]bool)
	for _, memos := range g {
		for _, m := range memos {
			seen[m] = true
		}
	}
	return len(seen)
}
