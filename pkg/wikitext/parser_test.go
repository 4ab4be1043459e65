package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoldTitleInference(t *testing.T) {
	doc := Parse("'''Bold Title''' is an article about something.", Options{})
	require.Equal(t, "Bold Title", doc.Title)
	require.Len(t, doc.Sections, 1)
	require.Len(t, doc.Sections[0].Paragraphs, 1)
	require.Len(t, doc.Sections[0].Paragraphs[0].Sentences, 1)
	assert.Equal(t, "Bold Title", doc.Sections[0].Paragraphs[0].Sentences[0].Bold)
}

func TestParseRedirect(t *testing.T) {
	doc := Parse("#REDIRECT [[Toronto Blue Jays#Stadium|Tranno]]", Options{})
	require.True(t, doc.IsRedirect)
	require.NotNil(t, doc.RedirectTarget)
	assert.Equal(t, "Toronto Blue Jays", doc.RedirectTarget.Page)
	assert.Equal(t, "Stadium", doc.RedirectTarget.Anchor)
	assert.Equal(t, "Tranno", doc.RedirectTarget.Text)
	assert.Equal(t, "", doc.Text())
}

func TestParseBirthDateTemplate(t *testing.T) {
	doc := Parse("Born {{birth date|1990|5|15}}.", Options{})
	assert.Contains(t, doc.Text(), "May 15, 1990")
	require.NotEmpty(t, doc.Sections[0].Templates)
	rec := doc.Sections[0].Templates[0]
	assert.Equal(t, "birth date", rec.Template)
	assert.Equal(t, "1990", rec.Year)
	assert.Equal(t, "5", rec.Month)
	assert.Equal(t, "15", rec.Day)
}

func TestParseCoordTemplate(t *testing.T) {
	doc := Parse("{{coord|35|41|N|139|41|E}}", Options{})
	require.Len(t, doc.Sections[0].Coords, 1)
	c := doc.Sections[0].Coords[0]
	assert.InDelta(t, 35.683, c.Lat, 0.01)
	assert.InDelta(t, 139.683, c.Lon, 0.01)
	assert.Equal(t, "N", c.LatDir)
	assert.Equal(t, "E", c.LonDir)
}

func TestParseFileLinkImage(t *testing.T) {
	doc := Parse("[[File:Wikipedesketch1.png|thumb|alt=A cartoon centipede.|The Wikipede]]", Options{})
	require.Len(t, doc.Sections[0].Images, 1)
	img := doc.Sections[0].Images[0]
	assert.Equal(t, "File:Wikipedesketch1.png", img.File)
	assert.Equal(t, "A cartoon centipede.", img.Alt)
	assert.Equal(t, "https://wikipedia.org/wiki/Special:Redirect/file/Wikipedesketch1.png", img.URL())
	assert.Equal(t, "https://wikipedia.org/wiki/Special:Redirect/file/Wikipedesketch1.png?width=300", img.Thumbnail(300))
}

func TestParseWikitable(t *testing.T) {
	doc := Parse(`{| class="wikitable"
|-
! A !! B !! C
|-
| a || b || c
|}`, Options{})
	require.Len(t, doc.Sections[0].Tables, 1)
	table := doc.Sections[0].Tables[0]
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "a", row.Cells["A"].Text)
	assert.Equal(t, "b", row.Cells["B"].Text)
	assert.Equal(t, "c", row.Cells["C"].Text)
}

func TestParseCategoriesExcludedFromLinks(t *testing.T) {
	doc := Parse("Something about [[Category:Science]] and [[Isaac Newton]].", Options{})
	assert.Contains(t, doc.Categories, "Science")
	for _, l := range doc.Links() {
		assert.NotContains(t, l.Page, "Category:")
	}
}

func TestParseIsTotalOnUnbalancedInput(t *testing.T) {
	assert.NotPanics(t, func() {
		Parse("[[unterminated {{template also unterminated", Options{})
	})
}

func TestParseTitleOverride(t *testing.T) {
	doc := Parse("Plain text with no bold span.", Options{Title: "Explicit Title"})
	assert.Equal(t, "Explicit Title", doc.Title)
}
