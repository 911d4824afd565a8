// Package forms turns the flat string fields submitted by the front-end into
// the structured values the directory store works with.
package forms

import "strings"

// SplitCSV splits s on commas and trims each segment. Blank segments are
// kept, so an empty input yields a single empty string.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// SplitCSVNonEmpty is SplitCSV with blank segments dropped. An empty input
// yields an empty, non-nil slice.
func SplitCSVNonEmpty(s string) []string {
	out := []string{}
	for _, p := range SplitCSV(s) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinCSV is the display inverse used to seed text inputs from a list.
func JoinCSV(xs []string) string {
	return strings.Join(xs, ", ")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
