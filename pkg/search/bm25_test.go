package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFNonNegative(t *testing.T) {
	// df very close to n would drive the naive formula negative;
	// Lucene's +1 variant floors it at zero instead.
	v := idf(99, 100)
	assert.GreaterOrEqual(t, v, 0.0)
}

func TestIDFDecreasesAsDocumentFrequencyRises(t *testing.T) {
	rare := idf(1, 1000)
	common := idf(500, 1000)
	assert.Greater(t, rare, common)
}

func TestIDFZeroCorpus(t *testing.T) {
	assert.Equal(t, 0.0, idf(0, 0))
}

func TestIDFPutsPlusOneInsideTheLog(t *testing.T) {
	// df=100, n=111: ratio = (n-df+0.5)/(df+0.5) = 11.5/100.5 ≈ 0.114;
	// compare against the formula computed independently here.
	df, n := 100, 111
	ratio := (float64(n-df) + 0.5) / (float64(df) + 0.5)
	want := math.Log(ratio + 1)
	assert.InDelta(t, want, idf(df, n), 1e-9)
	// Putting +1 outside the log (the old, wrong formula) would give a
	// visibly different, negative-before-clamp value for this ratio.
	wrong := math.Log(ratio) + 1
	assert.NotEqual(t, wrong, idf(df, n))
}

func TestTermScoreMonotonicInTermFrequency(t *testing.T) {
	cfg := DefaultBM25Config()
	low := termScore(cfg, 1, 100, 100, 2.0, 1.0)
	high := termScore(cfg, 5, 100, 100, 2.0, 1.0)
	assert.Greater(t, high, low)
}

func TestTermScoreScalesWithFieldWeight(t *testing.T) {
	cfg := DefaultBM25Config()
	a := termScore(cfg, 2, 50, 50, 1.5, 1.0)
	b := termScore(cfg, 2, 50, 50, 1.5, 2.0)
	assert.InDelta(t, a*2, b, 1e-9)
}

func TestTermScoreZeroWhenAvgDocLengthZero(t *testing.T) {
	cfg := DefaultBM25Config()
	score := termScore(cfg, 2, 0, 0, 1.5, 1.0)
	assert.Equal(t, 0.0, score)
}
