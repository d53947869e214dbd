package nav

import (
	"slices"
	"strings"
)

// Typeahead finds the next item whose label starts with prefix.
//
// The search wraps and compares case-insensitively. A single-character
// prefix starts after the current item so repeated presses cycle through
// matches; a longer prefix starts at the current item so typing further
// characters keeps a matching item focused.
func Typeahead(items []string, label func(string) string, current, prefix string) (string, bool) {
	if len(items) == 0 || prefix == "" {
		return "", false
	}
	prefix = strings.ToLower(prefix)
	start := 0
	if idx := slices.Index(items, current); idx >= 0 {
		start = idx
		if len([]rune(prefix)) == 1 {
			start = idx + 1
		}
	}
	for i := range items {
		id := items[(start+i)%len(items)]
		if strings.HasPrefix(strings.ToLower(label(id)), prefix) {
			return id, true
		}
	}
	return "", false
}
