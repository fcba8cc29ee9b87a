package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PageSlug derives the URL slug for a page name: diacritics are folded,
// the result is lowercased and internal whitespace runs collapse into a
// single hyphen. The derivation is deterministic so the same name always
// yields the same slug.
func PageSlug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	folded = strings.ToLower(strings.TrimSpace(folded))

	return strings.Join(strings.Fields(folded), "-")
}

// SlugsEqual compares two page names by their derived slugs, ignoring case.
func SlugsEqual(a, b string) bool {
	return strings.EqualFold(PageSlug(a), PageSlug(b))
}
