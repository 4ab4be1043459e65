package wikitext

import (
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// extractLists pulls contiguous runs of wiki list lines (leading
// '*', '#', ';', ':') out of text, per spec.md §4.1.4's "line-based"
// list extraction, returning the remainder with those lines removed.
//
// text has already been through the marker walk that replaced every
// [[link]]/image with a control-byte sentinel, so each line's text is
// resolved back through links/images rather than re-scanned for
// wikitext markup.
func extractLists(text string, links []pendingLink, images []pendingImage) (remainder string, lists []document.List) {
	lines := strings.Split(text, "\n")
	var remLines []string

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if len(trimmed) == 0 || !isListMarkerChar(trimmed[0]) {
			remLines = append(remLines, lines[i])
			i++
			continue
		}

		var list document.List
		for i < len(lines) {
			t := strings.TrimLeft(lines[i], " \t")
			if len(t) == 0 || !isListMarkerChar(t[0]) {
				break
			}
			depth := 0
			for depth < len(t) && isListMarkerChar(t[depth]) {
				depth++
			}
			markerChar := t[depth-1]
			lineText := strings.TrimSpace(t[depth:])
			resolved, lineLinks, _ := stripTokens(renderPlainText(lineText, 1), links, images)
			list.Lines = append(list.Lines, document.ListLine{
				Marker: markerKindFor(markerChar),
				Text:   strings.TrimSpace(resolved),
				Links:  lineLinks,
				Depth:  depth,
			})
			i++
		}
		lists = append(lists, list)
	}

	return strings.Join(remLines, "\n"), lists
}

func isListMarkerChar(b byte) bool {
	return b == '*' || b == '#' || b == ';' || b == ':'
}

func markerKindFor(b byte) document.ListMarker {
	switch b {
	case '*':
		return document.MarkerBullet
	case '#':
		return document.MarkerNumbered
	case ';':
		return document.MarkerDefinitionTerm
	default:
		return document.MarkerDefinitionDef
	}
}
