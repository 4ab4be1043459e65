package wikitext

import "strings"

// commentScanBound is the upper scan bound (in bytes, after "<!--")
// within which a closing "-->" must be found; this is what keeps
// comment matching ReDoS-safe on unclosed input (spec.md §4.1.1).
const commentScanBound = 3000

// Scan performs the single left-to-right scan described in spec.md
// §4.1.1, returning the top-level markers found in text. Template and
// Link markers carry their nested markers (found by recursing into
// their Inner text) in Children, since templates and link-class
// constructs may nest arbitrarily and mutually.
//
// The scanner never fails: unbalanced or truncated constructs are
// simply dropped and their bytes fall through as plain text.
func Scan(text string) []Marker {
	return scanLevel(text)
}

func scanLevel(text string) []Marker {
	var markers []Marker
	n := len(text)
	i := 0
	atLineStart := true

	for i < n {
		c := text[i]

		switch {
		case c == '\n':
			atLineStart = true
			i++
			continue

		case hasPrefixFold(text[i:], "<!--"):
			end := scanComment(text, i)
			markers = append(markers, Marker{Kind: MarkerComment, Start: i, End: end, Raw: text[i:end]})
			i = end
			atLineStart = false
			continue

		case c == '{' && i+1 < n && text[i+1] == '{':
			if end, ok := scanBalanced(text, i, true); ok {
				inner := text[i+2 : end-2]
				m := Marker{Kind: MarkerTemplate, Start: i, End: end, Raw: text[i:end], Inner: inner}
				m.Children = scanLevel(inner)
				markers = append(markers, m)
				i = end
				atLineStart = false
				continue
			}
			i++
			atLineStart = false
			continue

		case c == '[' && i+1 < n && text[i+1] == '[':
			if end, ok := scanBalanced(text, i, false); ok {
				inner := text[i+2 : end-2]
				kind, _ := classifyLinkPrefix(inner)
				m := Marker{Kind: kind, Start: i, End: end, Raw: text[i:end], Inner: inner}
				if kind != MarkerExternalLink {
					m.Children = scanLevel(inner)
				}
				markers = append(markers, m)
				i = end
				atLineStart = false
				continue
			}
			i++
			atLineStart = false
			continue

		case c == '[' && isExternalLinkStart(text[i+1:]):
			if end, ok := scanExternalLink(text, i); ok {
				inner := text[i+1 : end-1]
				m := Marker{Kind: MarkerExternalLink, Start: i, End: end, Raw: text[i:end], Inner: inner}
				markers = append(markers, m)
				i = end
				atLineStart = false
				continue
			}
			i++
			atLineStart = false
			continue

		case c == '=' && atLineStart:
			if m, end, ok := scanHeading(text, i); ok {
				markers = append(markers, m)
				i = end
				atLineStart = true
				continue
			}
			i++
			atLineStart = false
			continue

		case hasPrefixFold(text[i:], "<ref"):
			if m, end, ok := scanRef(text, i); ok {
				markers = append(markers, m)
				i = end
				atLineStart = false
				continue
			}
			i++
			atLineStart = false
			continue

		default:
			i++
			atLineStart = false
		}
	}

	return markers
}

// scanComment finds the end of an HTML comment starting at i (where
// text[i:] begins with "<!--"). The search window is bounded to
// commentScanBound bytes; if no "-->" is found within it, the comment
// is treated as extending to the end of input.
func scanComment(text string, i int) int {
	n := len(text)
	start := i + 4
	limit := start + commentScanBound
	if limit > n {
		limit = n
	}
	for j := start; j < limit; j++ {
		if j+2 < n && text[j] == '-' && text[j+1] == '-' && text[j+2] == '>' {
			return j + 3
		}
	}
	return n
}

// scanBalanced scans a {{...}} or [[...]] construct starting at i,
// where isTemplate selects which delimiter class is being closed. Both
// classes are tracked independently so that templates nested inside
// links (and vice versa) don't prematurely close the outer construct.
func scanBalanced(text string, i int, isTemplate bool) (end int, ok bool) {
	n := len(text)
	tdepth, ldepth := 0, 0
	j := i
	for j < n {
		switch {
		case j+1 < n && text[j] == '{' && text[j+1] == '{':
			tdepth++
			j += 2
		case j+1 < n && text[j] == '}' && text[j+1] == '}':
			tdepth--
			j += 2
			if isTemplate && tdepth == 0 {
				return j, true
			}
		case j+1 < n && text[j] == '[' && text[j+1] == '[':
			ldepth++
			j += 2
		case j+1 < n && text[j] == ']' && text[j+1] == ']':
			ldepth--
			j += 2
			if !isTemplate && ldepth == 0 {
				return j, true
			}
		default:
			j++
		}
	}
	return i, false
}

// externalLinkSchemes are the schemes that must immediately follow an
// opening '[' for an external-link scan to be attempted, preventing
// false positives on prose like "arr[0]".
var externalLinkSchemes = []string{"http://", "https://", "ftp://", "mailto:"}

func isExternalLinkStart(rest string) bool {
	for _, scheme := range externalLinkSchemes {
		if hasPrefixFold(rest, scheme) {
			return true
		}
	}
	return false
}

// scanExternalLink scans a [url text] construct starting at i (where
// text[i]=='['). External links never nest and never contain newlines.
func scanExternalLink(text string, i int) (end int, ok bool) {
	n := len(text)
	j := i + 1
	for j < n && text[j] != ']' && text[j] != '\n' {
		j++
	}
	if j < n && text[j] == ']' {
		return j + 1, true
	}
	return i, false
}

// scanHeading attempts to match a heading at i, where atLineStart was
// true and text[i]=='='. See spec.md §4.1.1 for the matching rule.
func scanHeading(text string, i int) (m Marker, end int, ok bool) {
	n := len(text)
	j := i
	for j < n && text[j] == '=' {
		j++
	}
	openCount := j - i
	if openCount < 2 {
		return Marker{}, i, false
	}
	if openCount > 6 {
		openCount = 6
	}

	lineEnd := strings.IndexByte(text[j:], '\n')
	var lineEndPos int
	if lineEnd == -1 {
		lineEndPos = n
	} else {
		lineEndPos = j + lineEnd
	}
	line := text[j:lineEndPos]

	trimmed := strings.TrimRight(line, " \t\r")
	k := len(trimmed)
	closeCount := 0
	for k > 0 && trimmed[k-1] == '=' {
		closeCount++
		k--
	}
	if closeCount < 2 {
		return Marker{}, i, false
	}
	if closeCount > 6 {
		closeCount = 6
	}

	title := strings.TrimSpace(trimmed[:k])
	depth := openCount
	if closeCount < depth {
		depth = closeCount
	}
	depth -= 2
	if depth < 0 {
		depth = 0
	}
	if depth > 4 {
		depth = 4
	}

	return Marker{
		Kind:         MarkerHeading,
		Start:        i,
		End:          lineEndPos,
		Raw:          text[i:lineEndPos],
		HeadingDepth: depth,
		HeadingTitle: title,
	}, lineEndPos, true
}

// scanRef scans a <ref ...>...</ref> or self-closing <ref .../> tag
// starting at i, where text[i:] begins with "<ref" (case-insensitive).
func scanRef(text string, i int) (m Marker, end int, ok bool) {
	n := len(text)
	gt := strings.IndexByte(text[i:], '>')
	if gt == -1 {
		return Marker{}, i, false
	}
	gt += i

	attrs := text[i+4 : gt]
	selfClosing := strings.HasSuffix(strings.TrimRight(attrs, " \t"), "/")
	name := extractAttr(attrs, "name")

	if selfClosing {
		return Marker{
			Kind:    MarkerRefSelfClosing,
			Start:   i,
			End:     gt + 1,
			Raw:     text[i : gt+1],
			RefName: name,
		}, gt + 1, true
	}

	closeIdx := indexFold(text[gt+1:], "</ref>")
	if closeIdx == -1 {
		return Marker{}, i, false
	}
	contentStart := gt + 1
	contentEnd := contentStart + closeIdx
	end = contentEnd + len("</ref>")
	if end > n {
		end = n
	}

	kind := MarkerRefInline
	if name != "" {
		kind = MarkerRefNamed
	}

	return Marker{
		Kind:       kind,
		Start:      i,
		End:        end,
		Raw:        text[i:end],
		RefName:    name,
		RefContent: strings.TrimSpace(text[contentStart:contentEnd]),
	}, end, true
}

// classifyLinkPrefix inspects a [[...]] construct's inner text and
// classifies it per spec.md §4.1.1's namespace-prefix rules.
func classifyLinkPrefix(inner string) (kind MarkerKind, prefix string) {
	colon := strings.IndexByte(inner, ':')
	if colon <= 0 {
		return MarkerLink, ""
	}
	prefix = strings.ToLower(strings.TrimSpace(inner[:colon]))
	if fileNamespaces[prefix] {
		return MarkerFileLink, prefix
	}
	if categoryNamespaces[prefix] {
		return MarkerCategoryLink, prefix
	}
	return MarkerLink, prefix
}

// extractAttr pulls a quoted attribute value (name="value" or
// name='value') out of an HTML-tag attribute string.
func extractAttr(attrs, name string) string {
	idx := indexFold(attrs, name+"=")
	if idx == -1 {
		return ""
	}
	rest := attrs[idx+len(name)+1:]
	if rest == "" {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	end := strings.IndexByte(rest[1:], quote)
	if end == -1 {
		return ""
	}
	return rest[1 : 1+end]
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

func indexFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	ls := strings.ToLower(s)
	lsub := strings.ToLower(substr)
	return strings.Index(ls, lsub)
}
