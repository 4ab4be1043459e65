package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentencesDecimalAware(t *testing.T) {
	got := splitSentences("He scored 2.5 points. The team won.")
	assert.Equal(t, []string{"He scored 2.5 points.", "The team won."}, got)
}

func TestSplitSentencesAbbreviationAware(t *testing.T) {
	got := splitSentences("Dr. Smith went to Washington D.C. for a meeting.")
	assert.Equal(t, []string{"Dr. Smith went to Washington D.C. for a meeting."}, got)
}

func TestSplitSentencesCurrencyTemplateOutput(t *testing.T) {
	got := splitSentences("Revenue was US$1.5 million. Profit was high.")
	assert.Equal(t, []string{"Revenue was US$1.5 million.", "Profit was high."}, got)
}

func TestExtractBoldItalic(t *testing.T) {
	plain, bold, italic := extractBoldItalic("'''Bold Title''' is an article about something.")
	assert.Equal(t, "Bold Title is an article about something.", plain)
	assert.Equal(t, "Bold Title", bold)
	assert.Equal(t, "", italic)
}

func TestExtractBoldItalicBoth(t *testing.T) {
	_, bold, italic := extractBoldItalic("'''bold''' then ''italic'' text")
	assert.Equal(t, "bold", bold)
	assert.Equal(t, "italic", italic)
}
