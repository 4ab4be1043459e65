package wikitext

import (
	"strconv"
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// maxTableDepth bounds nested {| ... |} scanning (spec.md §4.1.4).
const maxTableDepth = 16

// extractTables finds every top-level {| ... |} block in text, parses
// it into a document.Table, and removes its bytes from the returned
// remainder so downstream paragraph/list extraction never sees it.
//
// text has already been through the marker walk that replaced every
// [[link]]/image with a control-byte sentinel (builder.go's
// writeLinkToken/writeImageToken), so cell/caption text is resolved
// back through links/images (the same pending arrays the section
// accumulated) rather than re-scanned for wikitext markup.
func extractTables(text string, links []pendingLink, images []pendingImage) (remainder string, tables []document.Table) {
	var b strings.Builder
	n := len(text)
	i := 0
	for i < n {
		if i+1 < n && text[i] == '{' && text[i+1] == '|' {
			if end, ok := scanTableBlock(text, i); ok {
				tables = append(tables, parseTable(text[i:end], links, images))
				i = end
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String(), tables
}

// scanTableBlock finds the matching "|}" for a "{|" at i, tracking
// nested tables up to maxTableDepth.
func scanTableBlock(text string, i int) (end int, ok bool) {
	n := len(text)
	depth := 0
	j := i
	for j < n {
		switch {
		case j+1 < n && text[j] == '{' && text[j+1] == '|':
			depth++
			if depth > maxTableDepth {
				return i, false
			}
			j += 2
		case j+1 < n && text[j] == '|' && text[j+1] == '}':
			depth--
			j += 2
			if depth == 0 {
				return j, true
			}
		default:
			j++
		}
	}
	return i, false
}

type parsedCell struct {
	text    string
	attrs   string
	links   []document.Link
	colspan int
	rowspan int
}

type rowSpanCarry struct {
	text     string
	attrs    string
	links    []document.Link
	remaining int
}

// parseTable parses one {| ... |} block's body into a document.Table
// per spec.md §4.1.4.
func parseTable(block string, links []pendingLink, images []pendingImage) document.Table {
	inner := strings.TrimSuffix(strings.TrimPrefix(block, "{|"), "|}")
	// Drop the table's own declaration line (attrs such as class="wikitable").
	if nl := strings.IndexByte(inner, '\n'); nl != -1 {
		inner = inner[nl+1:]
	} else {
		inner = ""
	}

	var table document.Table
	var headerLabels []string
	var curCells []parsedCell
	curIsHeader := false
	haveRow := false
	pendingRowSpans := map[int]*rowSpanCarry{}

	flushRow := func() {
		if !haveRow {
			return
		}
		expanded := expandColspans(curCells)
		if curIsHeader {
			labels := make([]string, len(expanded))
			for i, c := range expanded {
				labels[i] = strings.TrimSpace(c.text)
			}
			headerLabels = labels
		} else if len(expanded) > 0 {
			table.Rows = append(table.Rows, buildRow(expanded, pendingRowSpans, headerLabels))
		}
		curCells = nil
		curIsHeader = false
		haveRow = false
	}

	lines := strings.Split(inner, "\n")
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "|-"):
			flushRow()
		case strings.HasPrefix(trimmed, "|+"):
			caption, _, _ := stripTokens(renderPlainText(trimmed[2:], 1), links, images)
			table.Caption = strings.TrimSpace(caption)
		case strings.HasPrefix(trimmed, "!"):
			curIsHeader = true
			haveRow = true
			curCells = append(curCells, parseCellChunks(trimmed[1:], '!', links, images)...)
		case strings.HasPrefix(trimmed, "|"):
			haveRow = true
			curCells = append(curCells, parseCellChunks(trimmed[1:], '|', links, images)...)
		default:
			if len(curCells) > 0 {
				last := &curCells[len(curCells)-1]
				last.text += "\n" + trimmed
			}
		}
	}
	flushRow()

	return table
}

// parseCellChunks splits a header/data line's cell text on the doubled
// delimiter ("!!" or "||"), then within each chunk separates a leading
// attribute declaration (e.g. rowspan="2") from the cell content.
//
// content may still carry link/image sentinel tokens left by the
// section's marker walk; stripTokens resolves them against the
// section's pending links/images so cell.text comes out clean and
// cell.links carries the structured Links per spec.md §3.
func parseCellChunks(s string, delim byte, links []pendingLink, images []pendingImage) []parsedCell {
	double := string([]byte{delim, delim})
	rawChunks := strings.Split(s, double)

	var cells []parsedCell
	for _, chunk := range rawChunks {
		attrs, content := splitCellAttrs(chunk, delim)
		text, cellLinks, _ := stripTokens(renderPlainText(content, 1), links, images)
		cell := parsedCell{
			text:    strings.TrimSpace(text),
			attrs:   attrs,
			links:   cellLinks,
			colspan: extractNumericAttr(attrs, "colspan"),
			rowspan: extractNumericAttr(attrs, "rowspan"),
		}
		cells = append(cells, cell)
	}
	return cells
}

// splitCellAttrs splits "attrs|content" on the first unpaired
// occurrence of delim, treating the left side as attrs only when it
// looks like a bare attribute declaration (contains '=' and no spaces
// around it suggesting prose).
func splitCellAttrs(chunk string, delim byte) (attrs, content string) {
	idx := strings.IndexByte(chunk, delim)
	if idx == -1 {
		return "", chunk
	}
	candidate := chunk[:idx]
	if looksLikeAttrs(candidate) {
		return strings.TrimSpace(candidate), chunk[idx+1:]
	}
	return "", chunk
}

func looksLikeAttrs(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "=") {
		return false
	}
	for _, r := range s {
		if r == '=' || r == '"' || r == '\'' || r == ' ' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

func extractNumericAttr(attrs, name string) int {
	idx := indexFold(attrs, name)
	if idx == -1 {
		return 0
	}
	rest := attrs[idx+len(name):]
	eq := strings.IndexByte(rest, '=')
	if eq == -1 {
		return 0
	}
	rest = strings.TrimSpace(rest[eq+1:])
	rest = strings.Trim(rest, "\"'")
	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j == 0 {
		return 0
	}
	n, err := strconv.Atoi(rest[:j])
	if err != nil {
		return 0
	}
	return n
}

func expandColspans(cells []parsedCell) []parsedCell {
	var out []parsedCell
	for _, c := range cells {
		n := c.colspan
		if n < 1 {
			n = 1
		}
		out = append(out, c)
		for k := 1; k < n; k++ {
			out = append(out, parsedCell{})
		}
	}
	return out
}

func colLabel(idx int, headerLabels []string) string {
	if idx < len(headerLabels) && headerLabels[idx] != "" {
		return headerLabels[idx]
	}
	return "col" + strconv.Itoa(idx+1)
}

func buildRow(expanded []parsedCell, pendingRowSpans map[int]*rowSpanCarry, headerLabels []string) document.TableRow {
	row := document.TableRow{Cells: make(map[string]document.TableCell)}
	colIdx := 0
	qi := 0
	for {
		carry, hasPending := pendingRowSpans[colIdx]
		if !hasPending && qi >= len(expanded) {
			break
		}

		var text, attrs string
		var links []document.Link
		if hasPending {
			text, attrs, links = carry.text, carry.attrs, carry.links
			carry.remaining--
			if carry.remaining <= 0 {
				delete(pendingRowSpans, colIdx)
			}
		} else {
			c := expanded[qi]
			qi++
			text, attrs, links = c.text, c.attrs, c.links
			if c.rowspan > 1 {
				pendingRowSpans[colIdx] = &rowSpanCarry{text: text, attrs: attrs, links: links, remaining: c.rowspan - 1}
			}
		}

		label := colLabel(colIdx, headerLabels)
		row.Columns = append(row.Columns, label)
		row.Cells[label] = document.TableCell{Text: text, Links: links, Attrs: attrs}
		colIdx++
	}
	return row
}
