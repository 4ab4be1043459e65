package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(DefaultBM25Config(), DefaultFieldWeights())
	require.NoError(t, err)
	return idx
}

func TestNewIndexRejectsInvalidConfig(t *testing.T) {
	_, err := NewIndex(BM25Config{K1: -1, B: 0.75}, DefaultFieldWeights())
	assert.Error(t, err)
	var cfgErr *InvalidConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewIndex(BM25Config{K1: 1.2, B: 1.5}, DefaultFieldWeights())
	assert.Error(t, err)

	_, err = NewIndex(DefaultBM25Config(), FieldWeights{})
	assert.Error(t, err)
}

// Scenario 7: two documents, relative score ordering.
func TestSearchRanksByFieldWeightAndFrequency(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Description: "small animal", Content: "cats are pets", Type: TypeOther})
	idx.Add(ArticleRecord{ID: "D2", Title: "dog", Description: "loyal animal", Content: "dogs are pets", Type: TypeOther})

	catResults := idx.Search("cat", DefaultSearchOptions())
	require.Len(t, catResults, 1)
	assert.Equal(t, "D1", catResults[0].DocID)
	assert.Greater(t, catResults[0].Score, 0.0)

	animalResults := idx.Search("animal", DefaultSearchOptions())
	require.Len(t, animalResults, 2)
	for _, r := range animalResults {
		assert.Greater(t, r.Score, 0.0)
	}

	combined := idx.Search("cat pets", DefaultSearchOptions())
	require.Len(t, combined, 2)
	var d1Score, d2Score float64
	for _, r := range combined {
		if r.DocID == "D1" {
			d1Score = r.Score
		} else {
			d2Score = r.Score
		}
	}
	assert.Greater(t, d1Score, d2Score)
}

// Scenario 8: remove updates stats and df, and search returns nothing.
func TestRemoveUpdatesStatsAndDocumentFrequency(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Description: "small animal", Content: "cats are pets"})
	idx.Add(ArticleRecord{ID: "D2", Title: "dog", Description: "loyal animal", Content: "dogs are pets"})

	ok := idx.Remove("D1")
	assert.True(t, ok)
	assert.Equal(t, 1, idx.Stats().DocumentCount)
	assert.Equal(t, 0, idx.DocumentFrequency("cat"))
	assert.Empty(t, idx.Search("cat", DefaultSearchOptions()))
}

func TestRemoveUnknownDocReturnsFalseWithoutSideEffects(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat"})
	before := idx.Stats()
	ok := idx.Remove("nope")
	assert.False(t, ok)
	assert.Equal(t, before, idx.Stats())
}

func TestAddRemoveAddIsIdempotent(t *testing.T) {
	idx := newTestIndex(t)
	article := ArticleRecord{ID: "D1", Title: "cat", Description: "small animal", Content: "cats are pets"}

	idx.Add(article)
	snapshotOnce, err := idx.Serialize()
	require.NoError(t, err)

	idx.Remove("D1")
	idx.Add(article)
	snapshotTwice, err := idx.Serialize()
	require.NoError(t, err)

	assert.JSONEq(t, string(snapshotOnce), string(snapshotTwice))
}

func TestAddTwiceWithSameIDReplaces(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Content: "cats are pets"})
	idx.Add(ArticleRecord{ID: "D1", Title: "dog", Content: "dogs are pets"})

	assert.Equal(t, 1, idx.Stats().DocumentCount)
	assert.Empty(t, idx.Search("cat", DefaultSearchOptions()))
	results := idx.Search("dog", DefaultSearchOptions())
	require.Len(t, results, 1)
	assert.Equal(t, "dog", results[0].Title)
}

func TestClearIsIdempotent(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Content: "cats are pets"})
	idx.Clear()
	idx.Clear()
	assert.Equal(t, Stats{}, idx.Stats())
}

func TestAvgDocLengthInvariant(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Description: "small animal", Content: "cats are pets"})
	idx.Add(ArticleRecord{ID: "D2", Title: "dog", Description: "loyal animal", Content: "dogs are pets and run"})

	var sum float64
	idx.mu.RLock()
	for _, s := range idx.docStats {
		sum += s.TotalLength
	}
	count := idx.corpus.DocumentCount
	avg := idx.corpus.AvgDocLength
	idx.mu.RUnlock()

	assert.InDelta(t, sum, avg*float64(count), 1e-9)
}

func TestDocumentFrequencyCountsUniqueDocsNotOccurrences(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "pets pets", Content: "pets pets pets"})
	idx.Add(ArticleRecord{ID: "D2", Content: "no match here"})

	assert.Equal(t, 1, idx.DocumentFrequency("pet"))
}

func TestSearchEmptyQueryAndEmptyCorpus(t *testing.T) {
	idx := newTestIndex(t)
	assert.Empty(t, idx.Search("", DefaultSearchOptions()))
	assert.Empty(t, idx.Search("!!!", DefaultSearchOptions()))

	idx.Add(ArticleRecord{ID: "D1", Title: "cat"})
	idx.Remove("D1")
	assert.Empty(t, idx.Search("cat", DefaultSearchOptions()))
}

func TestSearchFiltersByTypeAndMinScore(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Content: "cats are pets", Type: TypePerson})
	idx.Add(ArticleRecord{ID: "D2", Title: "cat", Content: "cats are pets", Type: TypePlace})

	onlyPlace := idx.Search("cat", SearchOptions{Limit: 20, Types: map[ArticleType]bool{TypePlace: true}})
	require.Len(t, onlyPlace, 1)
	assert.Equal(t, "D2", onlyPlace[0].DocID)

	none := idx.Search("cat", SearchOptions{Limit: 20, MinScore: 1e9})
	assert.Empty(t, none)
}

func TestSearchRespectsLimit(t *testing.T) {
	idx := newTestIndex(t)
	for _, id := range []string{"A", "B", "C"} {
		idx.Add(ArticleRecord{ID: id, Title: "cat", Content: "cats are pets"})
	}
	results := idx.Search("cat", SearchOptions{Limit: 2})
	assert.Len(t, results, 2)
}

func TestBuildFromClearsAndReportsProgress(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "stale", Title: "leftover"})

	records := []ArticleRecord{
		{ID: "D1", Title: "cat", Content: "cats are pets"},
		{ID: "D2", Title: "dog", Content: "dogs are pets"},
	}
	var progressCalls int
	err := idx.BuildFrom(context.Background(), NewSliceSource(records), func(n int) {
		progressCalls++
	})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Stats().DocumentCount)
	assert.Empty(t, idx.Search("leftover", DefaultSearchOptions()))
	// Two records stay below buildProgressInterval, so no progress call fires.
	assert.Equal(t, len(records)/buildProgressInterval, progressCalls)
}

func TestSerializeRoundTrip(t *testing.T) {
	idx := newTestIndex(t)
	idx.Add(ArticleRecord{ID: "D1", Title: "cat", Description: "small animal", Content: "cats are pets", Type: TypeOther})
	idx.Add(ArticleRecord{ID: "D2", Title: "dog", Description: "loyal animal", Content: "dogs are pets", Type: TypePerson})

	data, err := idx.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data, DefaultBM25Config(), DefaultFieldWeights())
	require.NoError(t, err)

	before := idx.Search("cat pets", DefaultSearchOptions())
	after := restored.Search("cat pets", DefaultSearchOptions())
	require.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i].DocID, after[i].DocID)
		assert.InDelta(t, before[i].Score, after[i].Score, 1e-9)
	}
	assert.Equal(t, idx.Stats(), restored.Stats())
}

func TestDeserializeRejectsWrongVersion(t *testing.T) {
	_, err := Deserialize([]byte(`{"version":2,"index":[],"docStats":[],"corpusStats":{"documentCount":0,"avgDocLength":0,"documentFrequency":[]}}`), DefaultBM25Config(), DefaultFieldWeights())
	assert.Error(t, err)
	var malformed *MalformedInputError
	assert.ErrorAs(t, err, &malformed)
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	_, err := Deserialize([]byte(`not json`), DefaultBM25Config(), DefaultFieldWeights())
	assert.Error(t, err)
}
