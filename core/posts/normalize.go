// ABOUTME: Username and flair normalization helpers
// ABOUTME: Pure functions so filtering is independently unit-testable

package posts

import "strings"

// NormalizeAuthor strips the platform username prefix ("u/" or "/u/") and
// lowercases, so configured and upstream author handles compare equal.
func NormalizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	author = strings.TrimPrefix(author, "/")
	author = strings.TrimPrefix(author, "u/")
	return strings.ToLower(author)
}

// matchesAuthor reports whether the post author passes the allowed-author
// filter. An empty filter passes everything.
func matchesAuthor(author, filter string) bool {
	if filter == "" {
		return true
	}
	return NormalizeAuthor(author) == NormalizeAuthor(filter)
}

// matchesFlair reports whether a flair label passes the required-flair
// filter: case-insensitive substring match. An empty filter passes everything.
func matchesFlair(flair, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(flair), strings.ToLower(filter))
}
