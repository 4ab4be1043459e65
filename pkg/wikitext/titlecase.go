package wikitext

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser performs locale-neutral upper-casing. Built once: the
// teacher's i18n tables are process-wide read-only state (spec.md §9)
// and a cases.Caser is safe for concurrent use the same way.
var titleCaser = cases.Upper(language.Und)

// titleCaseFirst upper-cases the first rune of s using Unicode case
// folding (golang.org/x/text/cases) rather than a byte-oriented ASCII
// trick, so namespace-prefixed titles in non-Latin scripts (Cyrillic,
// Greek, Armenian, ...) are canonicalised correctly.
func titleCaseFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	upper := []rune(titleCaser.String(string(r[0])))
	if len(upper) == 0 {
		return s
	}
	return string(upper) + string(r[1:])
}
