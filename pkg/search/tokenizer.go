package search

import (
	"regexp"
	"strings"
)

// MinWordLength and MaxWordLength are the fixed tokenizer bounds from
// spec.md §6: tokens shorter or longer than this are dropped outright.
const (
	MinWordLength = 2
	MaxWordLength = 50
)

// wordPattern matches maximal alphanumeric spans across Latin, Greek,
// and the Latin-extended blocks wikitext titles commonly draw from.
// It has no unbounded alternation or nested repetition, so it carries
// no catastrophic-backtracking risk regardless of input size.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9\x{0391}-\x{03FF}\x{00C0}-\x{024F}\x{1E00}-\x{1EFF}]+`)

// stopwords is the fixed English closed-class word list used to skip
// terms during indexing (not during query tokenisation).
var stopwords = buildStopwordSet([]string{
	"the", "a", "and", "of", "to", "in", "is", "it", "for", "on", "with", "as", "by", "at", "be",
	"this", "that", "from", "or", "an", "are", "was", "were", "has", "have", "had", "not", "but",
	"will", "would", "could", "should", "can", "may", "do", "does", "did", "if", "so", "no", "yes",
	"we", "you", "he", "she", "they", "i", "me", "my", "your", "his", "her", "its", "our", "their",
	"them", "there", "here", "what", "which", "who", "when", "where", "why", "how", "all", "each",
	"every", "both", "few", "more", "most", "other", "some", "any", "only", "own", "same", "than",
	"too", "very", "just", "also", "now", "about", "after", "before", "between", "during", "through",
	"under", "above", "below", "up", "down", "out", "off", "over", "again", "further", "once", "am",
	"been", "being", "him", "us", "hers", "ours", "theirs", "yours", "into", "such", "then", "these",
})

func buildStopwordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Token is one tokenised, stemmed term with its 0-based position
// within the field it came from.
type Token struct {
	Term     string
	Position int
}

// Tokenize extracts maximal word spans from text, drops anything
// outside [MinWordLength, MaxWordLength], lowercases, optionally
// filters the stopword set, and stems. Positions are assigned only to
// tokens that survive every filter, per spec.md §4.2.1.
//
// filterStopwords is true for indexing and false for query
// tokenisation — stopwords still count toward length/stemming but are
// never dropped from a query, since a multi-word query phrase like
// "the lord of the rings" needs its function words to stay matchable
// against titles that are mostly function words.
func Tokenize(text string, filterStopwords bool) []Token {
	matches := wordPattern.FindAllString(text, -1)
	tokens := make([]Token, 0, len(matches))
	pos := 0
	for _, raw := range matches {
		n := len([]rune(raw))
		if n < MinWordLength || n > MaxWordLength {
			continue
		}
		lower := strings.ToLower(raw)
		if filterStopwords && stopwords[lower] {
			continue
		}
		tokens = append(tokens, Token{Term: stem(lower), Position: pos})
		pos++
	}
	return tokens
}
