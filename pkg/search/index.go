package search

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/logging"
)

// indexedFields lists the three fields Add tokenises, in the order
// their contribution to TotalLength is summed.
var indexedFields = []Field{FieldTitle, FieldDescription, FieldContent}

// Index is the in-memory weighted-field inverted index described in
// spec.md §4.2.3. Add / Remove / Clear / BuildFrom / Search are
// serialised against each other by mu: readers may run concurrently
// with each other but never with a writer, so every search observes a
// consistent snapshot of (postings, docStats, corpusStats).
type Index struct {
	mu       sync.RWMutex
	postings map[string][]Posting
	docStats map[string]*DocumentStats
	docTerms map[string]map[string]bool // doc -> unique terms it contributed, for Remove's df bookkeeping

	corpus         CorpusStats
	totalLengthSum float64

	bm25    BM25Config
	weights FieldWeights

	buildGroup singleflight.Group
}

// NewIndex constructs an empty Index. It raises InvalidConfigError at
// construction time when bm25 or weights are out of range, per
// spec.md §7 — every operation afterward is total.
func NewIndex(bm25 BM25Config, weights FieldWeights) (*Index, error) {
	if err := bm25.validate(); err != nil {
		return nil, err
	}
	if err := weights.validate(); err != nil {
		return nil, err
	}
	return &Index{
		postings: make(map[string][]Posting),
		docStats: make(map[string]*DocumentStats),
		docTerms: make(map[string]map[string]bool),
		corpus:   CorpusStats{DocumentFrequency: make(map[string]int)},
		bm25:     bm25,
		weights:  weights,
	}, nil
}

// Add tokenises article's three fields, appends one Posting per
// (term, field), and updates doc/corpus stats. Adding a document with
// an id already present is equivalent to Remove(id) followed by a
// fresh Add, per spec.md §7.
func (idx *Index) Add(article ArticleRecord) {
	log := logging.GetIndexLogger("")
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeLocked(article.ID)
	idx.addLocked(article)
	log.Info().Str("doc_id", article.ID).Msg("document added")
}

func (idx *Index) addLocked(article ArticleRecord) {
	terms := make(map[string]bool)
	fieldLengths := make(map[Field]int, len(indexedFields))

	for _, field := range indexedFields {
		tokens := Tokenize(article.field(field), true)
		fieldLengths[field] = len(tokens)
		if len(tokens) == 0 {
			continue
		}
		freq := make(map[string]int)
		positions := make(map[string][]int)
		for _, tok := range tokens {
			freq[tok.Term]++
			positions[tok.Term] = append(positions[tok.Term], tok.Position)
		}
		weight := idx.weights.get(field)
		for term, f := range freq {
			idx.postings[term] = append(idx.postings[term], Posting{
				DocID:     article.ID,
				Field:     field,
				Weight:    weight,
				Frequency: f,
				Positions: positions[term],
			})
			terms[term] = true
		}
	}

	var total float64
	for field, n := range fieldLengths {
		total += float64(n) * idx.weights.get(field)
	}

	idx.docStats[article.ID] = &DocumentStats{
		DocID:        article.ID,
		FieldLengths: fieldLengths,
		TotalLength:  total,
		Title:        article.Title,
		Type:         article.Type,
	}
	idx.docTerms[article.ID] = terms
	for term := range terms {
		idx.corpus.DocumentFrequency[term]++
	}
	idx.corpus.DocumentCount++
	idx.totalLengthSum += total
	idx.recomputeAvgLocked()
}

// Remove drops every posting and stat belonging to docID. It returns
// false without side effects when docID was never added, per
// spec.md §7's NotFound signal.
func (idx *Index) Remove(docID string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	ok := idx.removeLocked(docID)
	if ok {
		logging.GetIndexLogger("").Info().Str("doc_id", docID).Msg("document removed")
	}
	return ok
}

func (idx *Index) removeLocked(docID string) bool {
	terms, ok := idx.docTerms[docID]
	if !ok {
		return false
	}
	for term := range terms {
		kept := idx.postings[term][:0:0]
		for _, p := range idx.postings[term] {
			if p.DocID != docID {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(idx.postings, term)
		} else {
			idx.postings[term] = kept
		}
		idx.corpus.DocumentFrequency[term]--
		if idx.corpus.DocumentFrequency[term] <= 0 {
			delete(idx.corpus.DocumentFrequency, term)
		}
	}
	idx.totalLengthSum -= idx.docStats[docID].TotalLength
	delete(idx.docStats, docID)
	delete(idx.docTerms, docID)
	idx.corpus.DocumentCount--
	idx.recomputeAvgLocked()
	return true
}

func (idx *Index) recomputeAvgLocked() {
	if idx.corpus.DocumentCount <= 0 {
		idx.corpus.AvgDocLength = 0
		return
	}
	idx.corpus.AvgDocLength = idx.totalLengthSum / float64(idx.corpus.DocumentCount)
}

// Clear resets the index to empty. Idempotent: Clear(); Clear() is
// equivalent to a single Clear().
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.clearLocked()
}

func (idx *Index) clearLocked() {
	idx.postings = make(map[string][]Posting)
	idx.docStats = make(map[string]*DocumentStats)
	idx.docTerms = make(map[string]map[string]bool)
	idx.corpus = CorpusStats{DocumentFrequency: make(map[string]int)}
	idx.totalLengthSum = 0
}

// buildProgressInterval is how often BuildFrom invokes onProgress,
// measured in documents consumed from source.
const buildProgressInterval = 100

// BuildFrom clears the index and adds every record pulled from
// source, invoking onProgress (if non-nil) every buildProgressInterval
// documents. Concurrent BuildFrom calls against the same Index
// collapse onto a single in-flight build via singleflight, preserving
// the single-writer ordering guarantee of spec.md §5. ctx is checked
// at each record boundary; a cancelled context stops the pull loop
// after the in-flight Add completes, never mid-update. mu is held for
// the whole build, so onProgress runs with it held and a call from it
// back into the index blocks.
func (idx *Index) BuildFrom(ctx context.Context, source Source, onProgress ProgressFunc) error {
	_, err, _ := idx.buildGroup.Do("build", func() (interface{}, error) {
		buildID := newBuildID()
		log := logging.GetIndexLogger(buildID)
		idx.mu.Lock()
		defer idx.mu.Unlock()
		idx.clearLocked()

		processed := 0
		for {
			if err := ctx.Err(); err != nil {
				log.Warn().Err(err).Int("processed", processed).Msg("build cancelled")
				return nil, nil
			}
			rec, ok := source.Next()
			if !ok {
				break
			}
			idx.removeLocked(rec.ID)
			idx.addLocked(rec)
			processed++
			if onProgress != nil && processed%buildProgressInterval == 0 {
				onProgress(processed)
			}
		}
		log.Info().Int("processed", processed).Msg("build complete")
		return nil, nil
	})
	return err
}

// candidate accumulates one query's match evidence against a single
// document while aggregating postings across the query's terms.
type candidate struct {
	termFreq  map[string]float64
	maxWeight map[string]float64
}

// Search tokenises query (stemmed, stopwords retained), scores every
// candidate document via BM25 summed over matched terms, and returns
// the top opts.Limit results ordered by descending score with doc_id
// ascending as the tiebreak. A query with no surviving terms, or an
// empty corpus, returns an empty slice rather than an error.
func (idx *Index) Search(query string, opts SearchOptions) []Result {
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchOptions().Limit
	}

	tokens := Tokenize(query, false)
	if len(tokens) == 0 {
		return []Result{}
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.corpus.DocumentCount == 0 {
		logging.GetIndexLogger("").Warn().Str("query", query).Msg("search against empty corpus")
		return []Result{}
	}

	queryTerms := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		queryTerms[t.Term] = true
	}

	termIDF := make(map[string]float64, len(queryTerms))
	candidates := make(map[string]*candidate)

	for term := range queryTerms {
		postings := idx.postings[term]
		if len(postings) == 0 {
			continue
		}
		df := idx.corpus.DocumentFrequency[term]
		termIDF[term] = idf(df, idx.corpus.DocumentCount)

		for _, p := range postings {
			c := candidates[p.DocID]
			if c == nil {
				c = &candidate{termFreq: make(map[string]float64), maxWeight: make(map[string]float64)}
				candidates[p.DocID] = c
			}
			c.termFreq[term] += float64(p.Frequency)
			if p.Weight > c.maxWeight[term] {
				c.maxWeight[term] = p.Weight
			}
		}
	}

	if len(candidates) == 0 {
		logging.GetIndexLogger("").Warn().Str("query", query).Msg("query terms matched no postings")
		return []Result{}
	}

	results := make([]Result, 0, len(candidates))
	for docID, c := range candidates {
		stats := idx.docStats[docID]
		if stats == nil {
			continue
		}
		if len(opts.Types) > 0 && !opts.Types[stats.Type] {
			continue
		}

		var score float64
		matched := make([]string, 0, len(c.termFreq))
		for term, tf := range c.termFreq {
			score += termScore(idx.bm25, tf, stats.TotalLength, idx.corpus.AvgDocLength, termIDF[term], c.maxWeight[term])
			matched = append(matched, term)
		}
		if score < opts.MinScore {
			continue
		}
		sort.Strings(matched)
		results = append(results, Result{
			DocID:        docID,
			Title:        stats.Title,
			Type:         stats.Type,
			Score:        score,
			MatchedTerms: matched,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// Stats summarises the index's current size per spec.md §6.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	total := 0
	for _, list := range idx.postings {
		total += len(list)
	}
	return Stats{
		DocumentCount:  idx.corpus.DocumentCount,
		VocabularySize: len(idx.postings),
		AvgDocLength:   idx.corpus.AvgDocLength,
		TotalPostings:  total,
	}
}

// DocumentFrequency returns the number of documents containing term,
// after applying the same stemming normalisation used at index time.
func (idx *Index) DocumentFrequency(term string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	norm := normalizeTerm(term)
	if norm == "" {
		return 0
	}
	return idx.corpus.DocumentFrequency[norm]
}

// normalizeTerm stems and lowercases a single raw term the same way
// Tokenize would, for lookups against already-indexed term keys.
func normalizeTerm(term string) string {
	tokens := Tokenize(term, false)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0].Term
}
