package wikitext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitSentences splits already markup-resolved prose into sentences
// per spec.md §4.1.5: a terminator ('.', '?', '!') ends a sentence when
// followed by whitespace and an upper-case letter, or by end of input,
// unless it is an abbreviation, a decimal point, or part of a compact
// initialism such as "D.C.". The scan is a single left-to-right pass
// over the byte string, so it is O(n).
func splitSentences(text string) []string {
	var sentences []string
	n := len(text)
	start := 0
	i := 0
	for i < n {
		c := text[i]
		if (c == '.' || c == '?' || c == '!') && isSentenceBoundary(text, i) {
			end := i + 1
			if s := strings.TrimSpace(text[start:end]); s != "" {
				sentences = append(sentences, s)
			}
			j := end
			for j < n && isASCIISpace(text[j]) {
				j++
			}
			start = j
			i = j
			continue
		}
		i++
	}
	if start < n {
		if s := strings.TrimSpace(text[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// isSentenceBoundary decides whether the terminator at text[i] ends a
// sentence.
func isSentenceBoundary(text string, i int) bool {
	n := len(text)

	if i+1 < n {
		if !isASCIISpace(text[i+1]) {
			return false
		}
		j := i + 1
		for j < n && isASCIISpace(text[j]) {
			j++
		}
		if j < n {
			r, _ := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}

	if text[i] == '.' {
		word := precedingLetters(text, i)
		if abbreviations[strings.ToLower(word)] {
			return false
		}
		if i > 0 && i+1 < n && isASCIIDigit(text[i-1]) && isASCIIDigit(text[i+1]) {
			return false
		}
		if i > 0 && isASCIILetter(text[i-1]) && i-2 >= 0 && text[i-2] == '.' {
			return false
		}
	}

	return true
}

// precedingLetters returns the run of ASCII letters immediately before
// position i in text.
func precedingLetters(text string, i int) string {
	j := i
	for j > 0 && isASCIILetter(text[j-1]) {
		j--
	}
	return text[j:i]
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// extractBoldItalic pulls the first '''...''' span and the first
// ''...'' span (searched after bold removal, so a bold span's own
// delimiters never get mistaken for an italic pair) out of text,
// leaving their inner content in place. It implements spec.md §3's
// "optional bold (first '''…''' span's inner text), optional italic
// (first ''…'' span's inner text)".
func extractBoldItalic(text string) (plain, bold, italic string) {
	plain, bold = extractQuoteSpan(text, "'''")
	plain, italic = extractQuoteSpan(plain, "''")
	return plain, bold, italic
}

func extractQuoteSpan(s, delim string) (result, inner string) {
	start := strings.Index(s, delim)
	if start == -1 {
		return s, ""
	}
	afterOpen := start + len(delim)
	closeOffset := strings.Index(s[afterOpen:], delim)
	if closeOffset == -1 {
		return s, ""
	}
	innerEnd := afterOpen + closeOffset
	inner = s[afterOpen:innerEnd]
	result = s[:start] + inner + s[innerEnd+len(delim):]
	return result, inner
}
