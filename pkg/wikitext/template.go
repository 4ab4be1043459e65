package wikitext

import (
	"strconv"
	"strings"
	"time"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// maxTemplateDepth bounds recursive template evaluation (spec.md
// §4.1.2) to prevent stack blow-ups on adversarial input.
const maxTemplateDepth = 50

// templateResult is the tagged-variant output of evaluating one
// template marker: a spliced-in string plus whichever typed side
// record applies (spec.md §9's "deeply dispatched templates" note).
type templateResult struct {
	Output           string
	Record           *document.TemplateRecord
	Coord            *document.Coordinate
	IsDisambiguation bool
}

// evaluateTemplateMarker evaluates a MarkerTemplate (recursively
// resolving any nested templates/links inside its parameters first)
// and returns its spliced output plus structured record.
func evaluateTemplateMarker(m Marker, depth int) templateResult {
	if depth > maxTemplateDepth {
		return templateResult{Output: ""}
	}
	resolvedInner := resolveChildren(m.Inner, m.Children, depth)
	pt := parseTemplateInner(resolvedInner)
	return dispatchTemplate(pt)
}

// renderPlainText scans text for markers and splices every template,
// link, and comment found into its rendered prose form. It is used
// wherever a piece of text needs full markup resolution outside the
// top-level section/template pass: infobox values, table cells, list
// lines, image captions.
func renderPlainText(text string, depth int) string {
	markers := Scan(text)
	return resolveChildren(text, markers, depth)
}

// resolveChildren splices every nested marker inside text (found at
// scan time and stored in children, with Start/End relative to text)
// into its rendered form: nested templates are recursively evaluated,
// nested links collapse to display text, comments are dropped.
func resolveChildren(text string, children []Marker, depth int) string {
	if len(children) == 0 {
		return text
	}
	var b strings.Builder
	pos := 0
	for _, c := range children {
		if c.Start < pos {
			continue // overlapping/out-of-order marker, skip defensively
		}
		b.WriteString(text[pos:c.Start])
		next := c.End
		switch c.Kind {
		case MarkerTemplate:
			res := evaluateTemplateMarker(c, depth+1)
			b.WriteString(res.Output)
		case MarkerLink:
			suffix, end := consumeSuffix(text, c.End)
			l := renderInternalOrInterwiki(c.Inner, suffix)
			b.WriteString(collapseLinkDisplay(l))
			next = end
		case MarkerExternalLink:
			l := renderExternal(c.Inner)
			b.WriteString(collapseLinkDisplay(l))
		case MarkerFileLink, MarkerCategoryLink:
			// Files/categories inside a template parameter contribute
			// nothing to the rendered string.
		case MarkerComment:
			// dropped
		default:
			b.WriteString(c.Raw)
		}
		pos = next
	}
	if pos < len(text) {
		b.WriteString(text[pos:])
	}
	return b.String()
}

// dispatchTemplate is the name-keyed dispatch table described in
// spec.md §4.1.2.
func dispatchTemplate(pt parsedTemplate) templateResult {
	name := pt.Name

	switch {
	case name == "birth date" || name == "birth date and age" || name == "bda" || name == "dob":
		return dateTemplate(pt, "birth date")
	case name == "death date" || name == "death date and age":
		return dateTemplate(pt, "death date")
	case name == "start date":
		return dateTemplate(pt, "start date")
	case name == "end date":
		return dateTemplate(pt, "end date")
	case name == "age":
		return ageTemplate(pt)
	case name == "as of":
		return asOfTemplate(pt)
	case name == "coord" || name == "coor" || name == "coor dms" || name == "coor dec":
		return coordTemplate(pt)
	case name == "nihongo" || name == "nihongo2" || name == "nihongo3" || name == "nihongo-s":
		return nihongoTemplate(pt)
	case isCurrencyTemplate(name):
		return currencyTemplate(pt, name)
	case name == "convert" || name == "cvt":
		return convertTemplate(pt)
	case name == "fraction" || name == "frac":
		return fractionTemplate(pt)
	case name == "val":
		return valTemplate(pt)
	case isListTemplate(name):
		return listJoinTemplate(pt)
	case name == "sortname":
		return sortnameTemplate(pt)
	case name == "url":
		return urlTemplate(pt)
	case name == "plural":
		return pluralTemplate(pt)
	case name == "lang" || strings.HasPrefix(name, "lang-"):
		return langTemplate(pt)
	case name == "nowrap" || name == "small" || name == "nobold" || name == "abbr":
		return templateResult{Output: pt.pos(1)}
	case name == "lc":
		return templateResult{Output: strings.ToLower(pt.pos(1))}
	case name == "uc":
		return templateResult{Output: strings.ToUpper(pt.pos(1))}
	case name == "ucfirst":
		return templateResult{Output: titleCaseFirst(pt.pos(1))}
	case name == "lcfirst":
		return templateResult{Output: lowerFirst(pt.pos(1))}
	case name == "trunc":
		return truncTemplate(pt)
	case name == "decade":
		return decadeTemplate(pt)
	case name == "century":
		return centuryTemplate(pt)
	case name == "circa":
		return templateResult{Output: "c. " + pt.pos(1)}
	case name == "aka":
		return templateResult{Output: "also known as " + pt.pos(1)}
	case name == "fl.":
		return templateResult{Output: "fl. " + pt.pos(1)}
	case name == "formatnum":
		return templateResult{Output: insertThousands(pt.pos(1))}
	case name == "ndash":
		return templateResult{Output: "–"}
	case name == "mdash":
		return templateResult{Output: "—"}
	case name == "middot":
		return templateResult{Output: "·"}
	case name == "spd":
		return templateResult{Output: "′"}
	case name == "1/2":
		return templateResult{Output: "½"}
	case name == "1/4":
		return templateResult{Output: "¼"}
	case name == "3/4":
		return templateResult{Output: "¾"}
	case name == "increase":
		return templateResult{Output: "▲"}
	case name == "decrease":
		return templateResult{Output: "▼"}
	case name == "steady":
		return templateResult{Output: "→"}
	case name == "radic":
		return templateResult{Output: "√"}
	case name == "currentyear":
		return templateResult{Output: strconv.Itoa(time.Now().Year())}
	case name == "currentmonthname":
		return templateResult{Output: monthNames[int(time.Now().Month())]}
	case name == "currentday":
		return templateResult{Output: strconv.Itoa(time.Now().Day())}
	case name == "currentdayname":
		return templateResult{Output: time.Now().Weekday().String()}
	case disambiguationTemplateNames[name]:
		return templateResult{Output: "", IsDisambiguation: true}
	default:
		return unknownTemplate(pt)
	}
}

func unknownTemplate(pt parsedTemplate) templateResult {
	params := make(map[string]string, len(pt.Named)+len(pt.Positional))
	for k, v := range pt.Named {
		params[k] = v
	}
	for i, v := range pt.Positional {
		params[strconv.Itoa(i+1)] = v
	}
	return templateResult{
		Output: "",
		Record: &document.TemplateRecord{Template: pt.Name, Params: params},
	}
}

func dateTemplate(pt parsedTemplate, name string) templateResult {
	year, month, day := pt.pos(1), pt.pos(2), pt.pos(3)
	out := year
	if mi, err := strconv.Atoi(month); err == nil && mi >= 1 && mi <= 12 {
		if di, err := strconv.Atoi(day); err == nil && di >= 1 {
			out = monthNames[mi] + " " + strconv.Itoa(di) + ", " + year
		} else {
			out = monthNames[mi] + " " + year
		}
	}
	return templateResult{
		Output: out,
		Record: &document.TemplateRecord{Template: name, Year: year, Month: month, Day: day},
	}
}

func ageTemplate(pt parsedTemplate) templateResult {
	y1, _ := strconv.Atoi(pt.pos(1))
	m1, _ := strconv.Atoi(pt.pos(2))
	d1, _ := strconv.Atoi(pt.pos(3))
	y2, _ := strconv.Atoi(pt.pos(4))
	m2, _ := strconv.Atoi(pt.pos(5))
	d2, _ := strconv.Atoi(pt.pos(6))
	age := y2 - y1
	if m2 < m1 || (m2 == m1 && d2 < d1) {
		age--
	}
	return templateResult{Output: strconv.Itoa(age)}
}

func asOfTemplate(pt parsedTemplate) templateResult {
	year, month, day := pt.pos(1), pt.pos(2), pt.pos(3)
	prefix := "As of"
	if strings.EqualFold(pt.Named["since"], "yes") {
		prefix = "Since"
	}
	datePart := year
	if mi, err := strconv.Atoi(month); err == nil && mi >= 1 && mi <= 12 {
		if di, err := strconv.Atoi(day); err == nil && di >= 1 {
			datePart = monthNames[mi] + " " + strconv.Itoa(di) + ", " + year
		} else {
			datePart = monthNames[mi] + " " + year
		}
	}
	return templateResult{Output: prefix + " " + datePart}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToLower(string(r[0])))[0]
	return string(r)
}

func truncTemplate(pt parsedTemplate) templateResult {
	s := pt.pos(1)
	n, err := strconv.Atoi(pt.pos(2))
	if err != nil || n < 0 || n >= len(s) {
		return templateResult{Output: s}
	}
	return templateResult{Output: s[:n]}
}

func decadeTemplate(pt parsedTemplate) templateResult {
	y, err := strconv.Atoi(pt.pos(1))
	if err != nil {
		return templateResult{Output: pt.pos(1)}
	}
	return templateResult{Output: strconv.Itoa((y/10)*10) + "s"}
}

func centuryTemplate(pt parsedTemplate) templateResult {
	y, err := strconv.Atoi(pt.pos(1))
	if err != nil {
		return templateResult{Output: pt.pos(1)}
	}
	c := (y-1)/100 + 1
	return templateResult{Output: ordinal(c) + " century"}
}

func ordinal(n int) string {
	s := strconv.Itoa(n)
	if n%100 >= 11 && n%100 <= 13 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	default:
		return s + "th"
	}
}

func insertThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return s
		}
	}
	if len(digits) <= 3 {
		return s
	}
	var b strings.Builder
	rem := len(digits) % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// coordTemplate implements the {{coord}}/{{coor}}/{{coor dms}}/{{coor dec}}
// family (spec.md §4.1.2): either a plain (lat, lon) decimal pair, or a
// DMS form (latD[, latM[, latS]], latDir, lonD[, lonM[, lonS]], lonDir).
func coordTemplate(pt parsedTemplate) templateResult {
	pos := pt.Positional
	if len(pos) == 2 {
		if lat, err1 := strconv.ParseFloat(pos[0], 64); err1 == nil {
			if lon, err2 := strconv.ParseFloat(pos[1], 64); err2 == nil {
				return finishCoord(lat, lon, "", "")
			}
		}
	}

	latIdx := -1
	for i, p := range pos {
		if isLatDir(p) {
			latIdx = i
			break
		}
	}
	if latIdx == -1 {
		return templateResult{Output: strings.Join(pos, " ")}
	}
	latDir := strings.ToUpper(pos[latIdx])
	latParts := pos[:latIdx]
	rest := pos[latIdx+1:]

	lonIdx := -1
	for i, p := range rest {
		if isLonDir(p) {
			lonIdx = i
			break
		}
	}
	if lonIdx == -1 {
		return templateResult{Output: strings.Join(pos, " ")}
	}
	lonDir := strings.ToUpper(rest[lonIdx])
	lonParts := rest[:lonIdx]

	lat := dmsToDecimal(latParts)
	if latDir == "S" {
		lat = -lat
	}
	lon := dmsToDecimal(lonParts)
	if lonDir == "W" {
		lon = -lon
	}
	return finishCoord(lat, lon, latDir, lonDir)
}

func isLatDir(s string) bool { return strings.EqualFold(s, "N") || strings.EqualFold(s, "S") }
func isLonDir(s string) bool { return strings.EqualFold(s, "E") || strings.EqualFold(s, "W") }

func dmsToDecimal(parts []string) float64 {
	var d, m, s float64
	if len(parts) > 0 {
		d, _ = strconv.ParseFloat(parts[0], 64)
	}
	if len(parts) > 1 {
		m, _ = strconv.ParseFloat(parts[1], 64)
	}
	if len(parts) > 2 {
		s, _ = strconv.ParseFloat(parts[2], 64)
	}
	return d + m/60 + s/3600
}

func finishCoord(lat, lon float64, latDir, lonDir string) templateResult {
	coord := &document.Coordinate{Lat: lat, Lon: lon, LatDir: latDir, LonDir: lonDir}
	params := map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	}
	if latDir != "" {
		params["latDir"] = latDir
	}
	if lonDir != "" {
		params["lonDir"] = lonDir
	}
	output := strconv.FormatFloat(lat, 'f', 3, 64) + "°" + latDir
	if lonDir != "" || lon != 0 {
		output += " " + strconv.FormatFloat(lon, 'f', 3, 64) + "°" + lonDir
	}
	return templateResult{
		Output: strings.TrimSpace(output),
		Coord:  coord,
		Record: &document.TemplateRecord{Template: "coord", Params: params},
	}
}

func nihongoTemplate(pt parsedTemplate) templateResult {
	var parts []string
	for _, p := range pt.Positional {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return templateResult{Output: strings.Join(parts, " ")}
}

func isCurrencyTemplate(name string) bool {
	if _, ok := currencySymbols[name]; ok {
		return true
	}
	return name == "currency"
}

func currencyTemplate(pt parsedTemplate, name string) templateResult {
	symbol := currencySymbols[name]
	if name == "currency" {
		code := pt.Named["code"]
		if s, ok := currencySymbols[strings.ToLower(code)]; ok {
			symbol = s
		} else {
			symbol = code
		}
	}
	amount := pt.pos(1)
	if isPlainInteger(amount) {
		if n, err := strconv.Atoi(amount); err == nil && n >= 1000 {
			amount = insertThousands(amount)
		}
	}
	return templateResult{Output: symbol + amount}
}

func isPlainInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func convertTemplate(pt parsedTemplate) templateResult {
	// {{convert|5|10|mi}}: second positional numeric => implicit range.
	if len(pt.Positional) >= 3 && isNumberLike(pt.pos(2)) {
		return templateResult{Output: pt.pos(1) + " to " + pt.pos(2) + " " + pt.pos(3)}
	}
	// {{convert|5|to|10|mi}} or {{convert|5|-|10|mi}}: explicit range word.
	if len(pt.Positional) >= 4 && (strings.EqualFold(pt.pos(2), "to") || pt.pos(2) == "-") {
		return templateResult{Output: pt.pos(1) + " to " + pt.pos(3) + " " + pt.pos(4)}
	}
	if len(pt.Positional) >= 2 {
		return templateResult{Output: pt.pos(1) + " " + pt.pos(2)}
	}
	return templateResult{Output: pt.pos(1)}
}

func isNumberLike(s string) bool {
	sawDigit := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sawDigit = true
		} else if r != '.' && r != '-' {
			return false
		}
	}
	return sawDigit
}

func fractionTemplate(pt parsedTemplate) templateResult {
	switch len(pt.Positional) {
	case 2:
		return templateResult{Output: pt.pos(1) + "/" + pt.pos(2)}
	case 3:
		return templateResult{Output: pt.pos(1) + " " + pt.pos(2) + "/" + pt.pos(3)}
	default:
		return templateResult{Output: strings.Join(pt.Positional, "/")}
	}
}

func valTemplate(pt parsedTemplate) templateResult {
	out := pt.pos(1)
	if u, ok := pt.Named["u"]; ok && u != "" {
		out += " " + u
	}
	return templateResult{Output: out}
}

var listTemplateNames = map[string]bool{
	"hlist": true, "plainlist": true, "ubl": true, "ublist": true,
	"unbulleted list": true, "collapsible list": true,
	"bulleted list": true, "flatlist": true,
}

func isListTemplate(name string) bool { return listTemplateNames[name] }

func listJoinTemplate(pt parsedTemplate) templateResult {
	return templateResult{Output: strings.Join(pt.Positional, ", ")}
}

func sortnameTemplate(pt parsedTemplate) templateResult {
	first, last := pt.pos(1), pt.pos(2)
	if first == "" {
		return templateResult{Output: last}
	}
	if last == "" {
		return templateResult{Output: first}
	}
	return templateResult{Output: first + " " + last}
}

func urlTemplate(pt parsedTemplate) templateResult {
	if p2 := pt.pos(2); p2 != "" {
		return templateResult{Output: p2}
	}
	return templateResult{Output: pt.pos(1)}
}

func pluralTemplate(pt parsedTemplate) templateResult {
	n := pt.pos(1)
	noun := pt.pos(2)
	if n == "1" {
		return templateResult{Output: n + " " + noun}
	}
	return templateResult{Output: n + " " + noun + "s"}
}

func langTemplate(pt parsedTemplate) templateResult {
	if len(pt.Positional) > 0 {
		return templateResult{Output: pt.Positional[len(pt.Positional)-1]}
	}
	return templateResult{Output: ""}
}
