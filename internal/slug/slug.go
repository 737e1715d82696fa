// Package slug turns free text into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases s, folds accents to ASCII, drops everything that is not a
// letter, digit, space, underscore or hyphen, and collapses runs of spaces
// and hyphens into a single hyphen.
//
//	Make("Backend Engineer-Acme") == "backend-engineer-acme"
func Make(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ', r == '-', r == '\t', r == '\n':
			pendingSep = true
		}
	}
	return b.String()
}

// ForJob derives the slug of a job posting from its title and company.
func ForJob(title, companyName string) string {
	return Make(title + "-" + companyName)
}
