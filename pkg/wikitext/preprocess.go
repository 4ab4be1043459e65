package wikitext

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// magicWords are MediaWiki behavior switches with no textual meaning;
// they are deleted outright (spec.md §4.1.3 step 1).
var magicWords = []string{"__notoc__", "__noeditsection__", "__forcetoc__", "__toc__"}

var namedEntities = map[string]string{
	"&nbsp;": " ", "&ndash;": "–", "&mdash;": "—",
	"&amp;": "&", "&quot;": "\"", "&apos;": "'",
}

// inlineHTMLTags are stripped to their text content; <br/> is handled
// separately since it maps to a newline rather than disappearing.
var inlineHTMLTags = map[string]bool{
	"p": true, "span": true, "sub": true, "sup": true, "div": true,
	"table": true, "tr": true, "td": true, "th": true, "pre": true,
	"hr": true, "u": true, "nowiki": true,
}

// preprocess implements spec.md §4.1.3 step 1: strip comments, delete
// magic words, convert entities, normalise CJK punctuation, drop
// signatures and horizontal rules, fold HTML formatting tags into
// wiki markup, and collapse now-empty parenthetical asides. It runs
// once over the whole document before section/template processing.
func preprocess(text string) string {
	text = stripComments(text)
	text = removeMagicWords(text)
	text = convertEntities(text)
	text = strings.ReplaceAll(text, "。", ". ")
	text = removeSignatures(text)
	text = removeHorizontalRules(text)
	text = foldInlineHTML(text)
	text = collapseEmptyParens(text)
	return text
}

func stripComments(text string) string {
	var b strings.Builder
	n := len(text)
	i := 0
	for i < n {
		if hasPrefixFold(text[i:], "<!--") {
			i = scanComment(text, i)
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func removeMagicWords(text string) string {
	for _, w := range magicWords {
		text = removeFold(text, w)
	}
	return text
}

// removeFold deletes every case-insensitive occurrence of word in s.
func removeFold(s, word string) string {
	var b strings.Builder
	n := len(s)
	wl := len(word)
	i := 0
	for i < n {
		if i+wl <= n && strings.EqualFold(s[i:i+wl], word) {
			i += wl
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func convertEntities(text string) string {
	for from, to := range namedEntities {
		text = strings.ReplaceAll(text, from, to)
	}
	return convertNumericEntities(text)
}

func convertNumericEntities(text string) string {
	var b strings.Builder
	n := len(text)
	i := 0
	for i < n {
		if text[i] == '&' && i+2 < n && text[i+1] == '#' {
			j := i + 2
			hex := false
			if j < n && (text[j] == 'x' || text[j] == 'X') {
				hex = true
				j++
			}
			start := j
			for j < n && isEntityDigit(text[j], hex) {
				j++
			}
			if j > start && j < n && text[j] == ';' {
				base := 10
				if hex {
					base = 16
				}
				if v, err := strconv.ParseInt(text[start:j], base, 32); err == nil && v > 0 {
					b.WriteRune(rune(v))
					i = j + 1
					continue
				}
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isEntityDigit(b byte, hex bool) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func removeSignatures(text string) string {
	var b strings.Builder
	n := len(text)
	i := 0
	for i < n {
		if text[i] == '~' {
			j := i
			for j < n && text[j] == '~' {
				j++
			}
			if j-i >= 3 {
				i = j
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func removeHorizontalRules(text string) string {
	var b strings.Builder
	n := len(text)
	i := 0
	for i < n {
		if text[i] == '-' {
			j := i
			for j < n && text[j] == '-' {
				j++
			}
			if j-i >= 4 {
				i = j
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// foldInlineHTML uses golang.org/x/net/html's tokenizer (not a full
// DOM parse, since wikitext HTML fragments are rarely well-formed
// documents) to convert <i>/<b> to wiki quote markup, <br/> to a
// newline, and strip the remaining recognised formatting tags down to
// their text content.
func foldInlineHTML(text string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch tag {
			case "i":
				b.WriteString("''")
			case "b":
				b.WriteString("'''")
			case "br":
				b.WriteString("\n")
			default:
				if !inlineHTMLTags[tag] {
					b.Write(z.Raw())
				}
			}
		default:
			b.Write(z.Raw())
		}
	}
}

// collapseEmptyParens removes a parenthetical whose contents are only
// punctuation separators, e.g. "Name ( , ; )" → "Name ".
func collapseEmptyParens(text string) string {
	var b strings.Builder
	n := len(text)
	i := 0
	for i < n {
		if text[i] == '(' {
			j := i + 1
			for j < n && isParenFiller(text[j]) {
				j++
			}
			if j < n && text[j] == ')' {
				i = j + 1
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isParenFiller(b byte) bool {
	return b == ',' || b == ';' || b == ':' || b == ' '
}
