package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemStep1a(t *testing.T) {
	cases := map[string]string{
		"caresses": "caress",
		"ponies":   "poni",
		"ties":     "ti",
		"caress":   "caress",
		"cats":     "cat",
	}
	for in, want := range cases {
		assert.Equal(t, want, stem(in), "stem(%q)", in)
	}
}

func TestStemStep1b(t *testing.T) {
	cases := map[string]string{
		"feed":       "feed",
		"agreed":     "agree",
		"plastered":  "plaster",
		"motoring":   "motor",
		"conflated":  "conflate",
		"troubled":   "trouble",
		"hopping":    "hop",
		"falling":    "fall",
		"hissing":    "hiss",
		"fizzed":     "fizz",
	}
	for in, want := range cases {
		assert.Equal(t, want, stem(in), "stem(%q)", in)
	}
}

func TestStemStep1c(t *testing.T) {
	assert.Equal(t, "happi", stem("happy"))
	assert.Equal(t, "sky", stem("sky"))
}
