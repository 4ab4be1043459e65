// Package search implements a weighted-field full-text index over
// ArticleRecords: a tokenizer/stemmer pipeline, an Okapi BM25 scorer,
// and an in-memory inverted posting list with add/remove/clear/
// build_from/search/stats operations.
package search

// ArticleType classifies an ArticleRecord for search-result filtering.
type ArticleType string

const (
	TypePerson ArticleType = "person"
	TypePlace  ArticleType = "place"
	TypeOrg    ArticleType = "org"
	TypeWork   ArticleType = "work"
	TypeEvent  ArticleType = "event"
	TypeOther  ArticleType = "other"
)

// Field names the three indexed fields of an ArticleRecord. Fixed
// rather than open-ended: the weighting scheme in spec.md §4.2.3 is
// defined over exactly these three.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldContent     Field = "content"
)

// ArticleRecord is the unit the index consumes, produced by the
// wikitext parser (or an equivalent source) and handed to Add.
type ArticleRecord struct {
	ID          string
	Title       string
	Description string
	Content     string
	Type        ArticleType
}

func (a ArticleRecord) field(f Field) string {
	switch f {
	case FieldTitle:
		return a.Title
	case FieldDescription:
		return a.Description
	case FieldContent:
		return a.Content
	default:
		return ""
	}
}

// Posting is one (term, field) occurrence record for a document:
// its term frequency in that field, the field's weight, and the
// 0-based term positions within that field.
type Posting struct {
	DocID     string `json:"docId"`
	Field     Field  `json:"field"`
	Weight    float64 `json:"weight"`
	Frequency int     `json:"frequency"`
	Positions []int   `json:"positions"`
}

// DocumentStats caches the per-document lengths BM25 needs, so scoring
// never has to re-tokenise a document.
type DocumentStats struct {
	DocID        string
	FieldLengths map[Field]int
	TotalLength  float64
	Title        string
	Type         ArticleType
}

// CorpusStats tracks the aggregate counters BM25 and document_frequency
// need across the whole indexed corpus.
type CorpusStats struct {
	DocumentCount     int
	AvgDocLength      float64
	DocumentFrequency map[string]int
}

// BM25Config holds the tunable Okapi BM25 parameters.
type BM25Config struct {
	K1 float64
	B  float64
}

// DefaultBM25Config returns the spec's default k1=1.2, b=0.75.
func DefaultBM25Config() BM25Config {
	return BM25Config{K1: 1.2, B: 0.75}
}

func (c BM25Config) validate() error {
	if c.K1 < 0 {
		return &InvalidConfigError{Message: "bm25: k1 must be >= 0"}
	}
	if c.B < 0 || c.B > 1 {
		return &InvalidConfigError{Message: "bm25: b must be in [0,1]"}
	}
	return nil
}

// FieldWeights holds the per-field BM25 multipliers.
type FieldWeights struct {
	Title       float64
	Description float64
	Content     float64
}

// DefaultFieldWeights returns the spec's defaults: title 2.0,
// description 1.5, content 1.0.
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{Title: 2.0, Description: 1.5, Content: 1.0}
}

func (w FieldWeights) get(f Field) float64 {
	switch f {
	case FieldTitle:
		return w.Title
	case FieldDescription:
		return w.Description
	case FieldContent:
		return w.Content
	default:
		return 0
	}
}

func (w FieldWeights) validate() error {
	if w.Title < 0 || w.Description < 0 || w.Content < 0 {
		return &InvalidConfigError{Message: "field weights must be >= 0"}
	}
	if w.Title == 0 && w.Description == 0 && w.Content == 0 {
		return &InvalidConfigError{Message: "field weights: at least one field must carry nonzero weight"}
	}
	return nil
}

// SearchOptions configures a single Search call.
type SearchOptions struct {
	Limit    int
	MinScore float64
	Types    map[ArticleType]bool // nil or empty means "allow all"
}

// DefaultSearchOptions returns limit=20, min_score=0, no type filter.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: 20, MinScore: 0}
}

// Result is one scored hit returned by Search.
type Result struct {
	DocID        string
	Title        string
	Type         ArticleType
	Score        float64
	MatchedTerms []string
}

// Stats summarises the index's current size, per spec.md §6's
// stats() shape.
type Stats struct {
	DocumentCount  int
	VocabularySize int
	AvgDocLength   float64
	TotalPostings  int
}
