package rsvp

import (
	"strings"

	"golang.org/x/text/cases"
)

// BlockedNames holds the substrings that keep a guest from confirming.
// Entries are already folded.
var BlockedNames = []string{"izabelle", "iza", "zabele", "zaza"}

// Normalize trims and case-folds a name so that comparisons ignore case.
func Normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// IsBlocked reports whether name contains any blocked substring,
// ignoring case and surrounding whitespace.
func IsBlocked(name string) bool {
	normalized := Normalize(name)
	if normalized == "" {
		return false
	}
	for _, blocked := range BlockedNames {
		if strings.Contains(normalized, blocked) {
			return true
		}
	}
	return false
}
