package domain

import (
	"strings"
)

// NormalizeEmail prepares an email for storage and comparison:
// trims surrounding whitespace and lowercases it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims whitespace and compresses inner runs of spaces into one.
// Case is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
