package wikitext

import (
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// detectRedirect matches spec.md §4.1.1's redirect rule: optional
// leading whitespace, '#', one of the i18n redirect words
// (case-insensitive), optional whitespace, then a [[...]] link. It
// must run before anything else, since a match short-circuits the
// whole document to redirect form.
func detectRedirect(text string) (*document.Link, bool) {
	rest := strings.TrimLeft(text, " \t\r\n")
	if len(rest) == 0 || rest[0] != '#' {
		return nil, false
	}
	rest = rest[1:]

	matched := ""
	for _, w := range redirectWords {
		if hasPrefixFold(rest, w) {
			matched = w
			break
		}
	}
	if matched == "" {
		return nil, false
	}
	rest = strings.TrimLeft(rest[len(matched):], " \t")
	if !strings.HasPrefix(rest, "[[") {
		return nil, false
	}

	end, ok := scanBalanced(rest, 0, false)
	if !ok {
		return nil, false
	}
	inner := rest[2 : end-2]
	link := renderInternalOrInterwiki(inner, "")
	return &link, true
}
