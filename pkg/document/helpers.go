package document

import (
	"net/url"
	"strings"
	"unicode"
)

// normaliseInfoboxKey lowercases a raw infobox field name and collapses
// consecutive non-alphanumeric characters into a single underscore, per
// spec.md §4.1.4's infobox key-normalisation rule.
func normaliseInfoboxKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	var b strings.Builder
	lastWasSep := false
	for _, r := range key {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastWasSep = false
		} else if !lastWasSep {
			b.WriteByte('_')
			lastWasSep = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// NormaliseInfoboxKey exports the key-normalisation rule for callers
// outside this package (pkg/wikitext uses it while building Infobox.Data).
func NormaliseInfoboxKey(key string) string { return normaliseInfoboxKey(key) }

// encodeFileTitle upper-cases the file name's first rune, turns spaces
// into underscores, and percent-encodes the remainder for use in a URL
// path segment.
func encodeFileTitle(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = upperFirst(name)
	return url.PathEscape(name)
}

// upperFirst upper-cases the first rune of s, leaving the rest intact.
// Used only for file-title URL encoding; page-name casing in
// pkg/wikitext goes through its own Unicode-aware caser.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
