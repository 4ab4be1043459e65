package search

import (
	"encoding/json"
	"fmt"
	"sort"
)

// snapshotVersion is the only serialization version this package
// understands. Deserialize rejects anything else with
// MalformedInputError, per spec.md §6.
const snapshotVersion = 1

// termPostingsPair marshals as the 2-element JSON array
// [term, [Posting, ...]] the wire format in spec.md §6 specifies,
// rather than as a {"term":...,"postings":...} object.
type termPostingsPair struct {
	Term     string
	Postings []Posting
}

func (p termPostingsPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Term, p.Postings})
}

func (p *termPostingsPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.Term); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Postings)
}

// fieldLenPair marshals as [field, length].
type fieldLenPair struct {
	Field  Field
	Length int
}

func (p fieldLenPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Field, p.Length})
}

func (p *fieldLenPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.Field); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Length)
}

// termCountPair marshals as [term, count].
type termCountPair struct {
	Term  string
	Count int
}

func (p termCountPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Term, p.Count})
}

func (p *termCountPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.Term); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Count)
}

type docStatsEntry struct {
	DocID        string         `json:"docId"`
	FieldLengths []fieldLenPair `json:"fieldLengths"`
	TotalLength  float64        `json:"totalLength"`
	Title        string         `json:"title"`
	Type         ArticleType    `json:"type"`
}

type corpusStatsSnapshot struct {
	DocumentCount     int             `json:"documentCount"`
	AvgDocLength      float64         `json:"avgDocLength"`
	DocumentFrequency []termCountPair `json:"documentFrequency"`
}

type snapshotV1 struct {
	Version      int                 `json:"version"`
	Index        []termPostingsPair  `json:"index"`
	DocStats     []docStatsEntry     `json:"docStats"`
	CorpusStats  corpusStatsSnapshot `json:"corpusStats"`
}

// Serialize produces the version-1 JSON snapshot described in
// spec.md §6, suitable for round-tripping through Deserialize. Map
// iteration order is never relied on: every collection is sorted so
// that two calls against an identical index produce byte-identical
// output.
func (idx *Index) Serialize() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	terms := make([]string, 0, len(idx.postings))
	for t := range idx.postings {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	indexEntries := make([]termPostingsPair, 0, len(terms))
	for _, t := range terms {
		postings := append([]Posting(nil), idx.postings[t]...)
		indexEntries = append(indexEntries, termPostingsPair{Term: t, Postings: postings})
	}

	docIDs := make([]string, 0, len(idx.docStats))
	for id := range idx.docStats {
		docIDs = append(docIDs, id)
	}
	sort.Strings(docIDs)
	docEntries := make([]docStatsEntry, 0, len(docIDs))
	for _, id := range docIDs {
		stats := idx.docStats[id]
		fields := make([]Field, 0, len(stats.FieldLengths))
		for f := range stats.FieldLengths {
			fields = append(fields, f)
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
		lengths := make([]fieldLenPair, 0, len(fields))
		for _, f := range fields {
			lengths = append(lengths, fieldLenPair{Field: f, Length: stats.FieldLengths[f]})
		}
		docEntries = append(docEntries, docStatsEntry{
			DocID:        stats.DocID,
			FieldLengths: lengths,
			TotalLength:  stats.TotalLength,
			Title:        stats.Title,
			Type:         stats.Type,
		})
	}

	dfTerms := make([]string, 0, len(idx.corpus.DocumentFrequency))
	for t := range idx.corpus.DocumentFrequency {
		dfTerms = append(dfTerms, t)
	}
	sort.Strings(dfTerms)
	dfEntries := make([]termCountPair, 0, len(dfTerms))
	for _, t := range dfTerms {
		dfEntries = append(dfEntries, termCountPair{Term: t, Count: idx.corpus.DocumentFrequency[t]})
	}

	snap := snapshotV1{
		Version: snapshotVersion,
		Index:   indexEntries,
		DocStats: docEntries,
		CorpusStats: corpusStatsSnapshot{
			DocumentCount:     idx.corpus.DocumentCount,
			AvgDocLength:      idx.corpus.AvgDocLength,
			DocumentFrequency: dfEntries,
		},
	}
	return json.Marshal(snap)
}

// Deserialize rebuilds an Index from a Serialize snapshot, validating
// with bm25 and weights (the scorer configuration is a constructor
// concern and is not itself part of the wire format). It raises
// MalformedInputError when the bytes fail to parse, carry an
// unsupported version, or violate the schema's shape.
func Deserialize(data []byte, bm25 BM25Config, weights FieldWeights) (*Index, error) {
	var snap snapshotV1
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &MalformedInputError{Message: fmt.Sprintf("search: invalid snapshot: %v", err)}
	}
	if snap.Version != snapshotVersion {
		return nil, &MalformedInputError{Message: fmt.Sprintf("search: unsupported snapshot version %d", snap.Version)}
	}

	idx, err := NewIndex(bm25, weights)
	if err != nil {
		return nil, err
	}

	for _, entry := range snap.Index {
		postings := append([]Posting(nil), entry.Postings...)
		idx.postings[entry.Term] = postings
	}
	for _, entry := range snap.DocStats {
		fieldLengths := make(map[Field]int, len(entry.FieldLengths))
		terms := make(map[string]bool)
		for _, fl := range entry.FieldLengths {
			fieldLengths[fl.Field] = fl.Length
		}
		idx.docStats[entry.DocID] = &DocumentStats{
			DocID:        entry.DocID,
			FieldLengths: fieldLengths,
			TotalLength:  entry.TotalLength,
			Title:        entry.Title,
			Type:         entry.Type,
		}
		idx.totalLengthSum += entry.TotalLength
		idx.docTerms[entry.DocID] = terms
	}
	// Recover each document's contributed-term set from the posting
	// lists themselves, since docTerms is not part of the wire format.
	for term, postings := range idx.postings {
		for _, p := range postings {
			if terms, ok := idx.docTerms[p.DocID]; ok {
				terms[term] = true
			}
		}
	}

	idx.corpus.DocumentCount = snap.CorpusStats.DocumentCount
	idx.corpus.AvgDocLength = snap.CorpusStats.AvgDocLength
	for _, entry := range snap.CorpusStats.DocumentFrequency {
		idx.corpus.DocumentFrequency[entry.Term] = entry.Count
	}

	return idx, nil
}

// DeserializeDefault is Deserialize with the package's default BM25
// and field-weight configuration.
func DeserializeDefault(data []byte) (*Index, error) {
	return Deserialize(data, DefaultBM25Config(), DefaultFieldWeights())
}
