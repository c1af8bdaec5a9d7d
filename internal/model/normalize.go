package model

import "strings"

// normalize lower-cases and trims a user-supplied token for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
