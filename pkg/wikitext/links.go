package wikitext

import (
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// renderInternalOrInterwiki parses a MarkerLink's Inner text into a
// canonical document.Link per spec.md §3: "page" is the target with
// its first character upper-cased and underscores turned into spaces,
// "anchor" is the optional #fragment, "text" defaults to page+suffix.
// suffix is the run of trailing lowercase letters immediately
// following the link's closing "]]" in the surrounding text (e.g. the
// "s" in "[[cat]]s"); pass "" when no such text is available or
// relevant to the caller.
func renderInternalOrInterwiki(inner, suffix string) document.Link {
	parts := splitTopLevel(inner, '|')
	target := parts[0]
	var displayOverride string
	hasDisplay := false
	if len(parts) > 1 {
		displayOverride = strings.Join(parts[1:], "|")
		hasDisplay = true
	}

	prefix := ""
	if ci := strings.IndexByte(target, ':'); ci > 0 {
		candidate := strings.ToLower(strings.TrimSpace(target[:ci]))
		if isInterwikiPrefix(candidate) {
			prefix = candidate
			target = target[ci+1:]
		}
	}

	anchor := ""
	if hi := strings.IndexByte(target, '#'); hi >= 0 {
		anchor = strings.TrimSpace(target[hi+1:])
		target = target[:hi]
	}

	page := canonicalisePageTarget(target)

	kind := document.LinkInternal
	switch {
	case prefix != "":
		kind = document.LinkInterwiki
	case page == "" && anchor != "":
		kind = document.LinkAnchor
	}

	text := page + suffix
	if kind == document.LinkAnchor {
		text = "#" + anchor + suffix
	}
	if hasDisplay {
		text = strings.TrimSpace(displayOverride)
	}

	return document.Link{
		Kind:   kind,
		Page:   page,
		Anchor: anchor,
		Prefix: prefix,
		Suffix: suffix,
		Text:   text,
	}
}

// canonicalisePageTarget turns underscores into spaces and upper-cases
// the first character, per spec.md §3.
func canonicalisePageTarget(target string) string {
	target = strings.TrimSpace(target)
	target = strings.ReplaceAll(target, "_", " ")
	return titleCaseFirst(target)
}

// interwikiPrefixes is a small, deliberately conservative set: only
// well-known cross-project prefixes are treated as interwiki links,
// everything else (including unrecognised namespaces) is a plain
// internal link whose "prefix:rest" is just part of the page name.
var interwikiPrefixes = map[string]bool{
	"wikt": true, "wiktionary": true, "commons": true, "wikisource": true,
	"wikibooks": true, "wikiquote": true, "wikispecies": true,
	"meta": true, "m": true, "b": true, "q": true, "s": true, "n": true,
	"v": true, "species": true,
}

func isInterwikiPrefix(p string) bool { return interwikiPrefixes[p] }

// renderExternal parses a MarkerExternalLink's Inner text ("url text")
// into a document.Link.
func renderExternal(inner string) document.Link {
	inner = strings.TrimSpace(inner)
	sp := strings.IndexAny(inner, " \t\n")
	if sp == -1 {
		return document.Link{Kind: document.LinkExternal, URL: inner, Text: ""}
	}
	url := inner[:sp]
	text := strings.TrimSpace(inner[sp+1:])
	return document.Link{Kind: document.LinkExternal, URL: url, Text: text}
}

// collapseLinkDisplay returns the plain text a link collapses to when
// spliced into surrounding prose (spec.md §4.1.3 step 3). l.Text
// already carries any trailing suffix baked in by renderInternalOrInterwiki.
func collapseLinkDisplay(l document.Link) string {
	return l.Text
}

// consumeSuffix reads a run of trailing lowercase ASCII letters
// starting at pos in s, used to build the "suffix" a [[page]]suffix
// construct picks up immediately after its closing brackets.
func consumeSuffix(s string, pos int) (suffix string, end int) {
	n := len(s)
	j := pos
	for j < n && s[j] >= 'a' && s[j] <= 'z' {
		j++
	}
	return s[pos:j], j
}
