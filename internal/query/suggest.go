// ABOUTME: Fuzzy tag suggestions for tag filters that match nothing.
// ABOUTME: Ranks known tag names with sahilm/fuzzy.

package query

import "github.com/sahilm/fuzzy"

const maxSuggestions = 3

// SuggestTags returns up to three tag names resembling input, best first.
func SuggestTags(input string, names []string) []string {
	if input == "" || len(names) == 0 {
		return nil
	}
	matches := fuzzy.Find(input, names)
	var out []string
	for _, match := range matches {
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
