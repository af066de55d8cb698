// Package match decides which profiles are shown as a match for the current
// user. Every function here is pure: it reads the profiles it is given and
// never fails. Missing or empty input simply does not match.
package match

import "strings"

// HasOverlap reports whether any wanted item equals an offered item after
// trimming and lowercasing both sides. Blank items are ignored, so an empty or
// nil side never overlaps.
func HasOverlap(wanted, offered []string) bool {
	want := normalize(wanted)
	if len(want) == 0 {
		return false
	}
	have := make(map[string]struct{}, len(offered))
	for _, item := range normalize(offered) {
		have[item] = struct{}{}
	}
	if len(have) == 0 {
		return false
	}
	for _, item := range want {
		if _, ok := have[item]; ok {
			return true
		}
	}
	return false
}

// Single wraps a lone value, such as a native language, as a one-element list.
func Single(value string) []string {
	return []string{value}
}

func normalize(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			normalized = append(normalized, item)
		}
	}
	return normalized
}
