package wikitext

import "strings"

// splitTopLevel splits s on sep while respecting balanced [[...]],
// {{...}}, and <...> spans, per spec.md §4.1.2's parameter-extraction
// rule.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	n := len(s)
	i := 0
	for i < n {
		switch {
		case i+1 < n && s[i] == '{' && s[i+1] == '{':
			depth++
			cur.WriteString("{{")
			i += 2
		case i+1 < n && s[i] == '}' && s[i+1] == '}':
			if depth > 0 {
				depth--
			}
			cur.WriteString("}}")
			i += 2
		case i+1 < n && s[i] == '[' && s[i+1] == '[':
			depth++
			cur.WriteString("[[")
			i += 2
		case i+1 < n && s[i] == ']' && s[i+1] == ']':
			if depth > 0 {
				depth--
			}
			cur.WriteString("]]")
			i += 2
		case s[i] == '<':
			depth++
			cur.WriteByte('<')
			i++
		case s[i] == '>':
			if depth > 0 {
				depth--
			}
			cur.WriteByte('>')
			i++
		case s[i] == sep && depth <= 0:
			parts = append(parts, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(s[i])
			i++
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// splitNamedParam splits a template parameter segment into a named
// (key, value) pair if it contains a top-level '=' before any
// structural bracket, else reports it as positional.
func splitNamedParam(seg string) (key, val string, isNamed bool) {
	depth := 0
	n := len(seg)
	i := 0
	for i < n {
		switch {
		case i+1 < n && seg[i] == '{' && seg[i+1] == '{':
			depth++
			i += 2
		case i+1 < n && seg[i] == '}' && seg[i+1] == '}':
			if depth > 0 {
				depth--
			}
			i += 2
		case i+1 < n && seg[i] == '[' && seg[i+1] == '[':
			depth++
			i += 2
		case i+1 < n && seg[i] == ']' && seg[i+1] == ']':
			if depth > 0 {
				depth--
			}
			i += 2
		case seg[i] == '<':
			depth++
			i++
		case seg[i] == '>':
			if depth > 0 {
				depth--
			}
			i++
		case seg[i] == '=' && depth == 0:
			key = strings.ToLower(strings.TrimSpace(seg[:i]))
			val = strings.TrimSpace(seg[i+1:])
			return key, val, true
		default:
			i++
		}
	}
	return "", strings.TrimSpace(seg), false
}

// normaliseTemplateName implements spec.md §4.1.2's template-name
// normalisation: strip anything after ':', lowercase, trim, '_' -> ' '.
func normaliseTemplateName(raw string) string {
	if idx := strings.IndexByte(raw, ':'); idx != -1 {
		raw = raw[:idx]
	}
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "_", " ")
	return strings.TrimSpace(raw)
}

// parsedTemplate is the result of splitting a template's Inner text
// into its name and parameters.
type parsedTemplate struct {
	Name       string
	Positional []string
	Named      map[string]string
	// NamedOrder records named-parameter keys in first-seen order, so
	// consumers that must preserve source order (e.g. infobox fields)
	// don't have to rely on Go's randomised map iteration.
	NamedOrder []string
}

func parseTemplateInner(inner string) parsedTemplate {
	parts := splitTopLevel(inner, '|')
	if len(parts) == 0 {
		return parsedTemplate{Named: map[string]string{}}
	}
	pt := parsedTemplate{
		Name:  normaliseTemplateName(parts[0]),
		Named: make(map[string]string),
	}
	for _, seg := range parts[1:] {
		if key, val, isNamed := splitNamedParam(seg); isNamed {
			if _, exists := pt.Named[key]; !exists {
				pt.NamedOrder = append(pt.NamedOrder, key)
			}
			pt.Named[key] = val
		} else {
			pt.Positional = append(pt.Positional, strings.TrimSpace(seg))
		}
	}
	return pt
}

// pos returns the 1-based positional parameter, or "" if absent.
func (pt parsedTemplate) pos(i int) string {
	if i < 1 || i > len(pt.Positional) {
		return ""
	}
	return pt.Positional[i-1]
}
