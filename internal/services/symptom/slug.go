// File: internal/services/symptom/slug.go
package symptom

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// diacriticFolder decomposes accented letters and drops the combining
// marks, so "Migraña" and "migrana" derive the same slug.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the deterministic cache key for a symptom display name:
// trimmed, lowercased, diacritics folded, non-alphanumeric runs collapsed
// to single hyphens. Pure function; identical input yields identical output.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	if folded, _, err := transform.String(diacriticFolder, s); err == nil {
		s = folded
	}

	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeQuery derives the search cache key for free text.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
