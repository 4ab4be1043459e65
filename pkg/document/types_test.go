package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURLDefaultsDomainAndStripsPrefix(t *testing.T) {
	img := Image{File: "File:My photo.jpg"}
	assert.Equal(t, "https://wikipedia.org/wiki/Special:Redirect/file/My_photo.jpg", img.URL())
}

func TestImageURLHonoursExplicitDomain(t *testing.T) {
	img := Image{File: "File:Pic.png", Domain: "en.wikipedia.org"}
	assert.Equal(t, "https://en.wikipedia.org/wiki/Special:Redirect/file/Pic.png", img.URL())
}

func TestImageThumbnailDefaultsSizeTo300(t *testing.T) {
	img := Image{File: "File:Pic.png"}
	assert.Equal(t, img.URL()+"?width=300", img.Thumbnail(0))
	assert.Equal(t, img.URL()+"?width=640", img.Thumbnail(640))
}

func TestInfoboxGetNormalisesKey(t *testing.T) {
	ib := Infobox{
		Data: map[string]string{"birth_date": "1990"},
	}
	v, ok := ib.Get("Birth-Date")
	require.True(t, ok)
	assert.Equal(t, "1990", v)

	_, ok = ib.Get("missing")
	assert.False(t, ok)
}

func TestDocumentTextJoinsSentencesAndSections(t *testing.T) {
	doc := Document{
		Sections: []Section{
			{Paragraphs: []Paragraph{{Sentences: []Sentence{{Text: "First."}, {Text: "Second."}}}}},
			{Paragraphs: []Paragraph{{Sentences: []Sentence{{Text: "Third."}}}}},
		},
	}
	assert.Equal(t, "First. Second.\n\nThird.", doc.Text())
}

func TestDocumentTextEmptyForRedirect(t *testing.T) {
	doc := Document{
		IsRedirect: true,
		Sections: []Section{
			{Paragraphs: []Paragraph{{Sentences: []Sentence{{Text: "ignored"}}}}},
		},
	}
	assert.Equal(t, "", doc.Text())
}

func TestDocumentSentencesFlattensInOrder(t *testing.T) {
	doc := Document{
		Sections: []Section{
			{Paragraphs: []Paragraph{
				{Sentences: []Sentence{{Text: "a"}}},
				{Sentences: []Sentence{{Text: "b"}, {Text: "c"}}},
			}},
		},
	}
	sentences := doc.Sentences()
	require.Len(t, sentences, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{sentences[0].Text, sentences[1].Text, sentences[2].Text})
}

func TestDocumentLinksFlattensParagraphsAndInfoboxesButNotTables(t *testing.T) {
	doc := Document{
		Sections: []Section{
			{
				Paragraphs: []Paragraph{{Links: []Link{{Kind: LinkInternal, Page: "A"}}}},
				Infoboxes:  []Infobox{{Links: []Link{{Kind: LinkInternal, Page: "B"}}}},
				Tables: []Table{{Rows: []TableRow{{Cells: map[string]TableCell{
					"col1": {Links: []Link{{Kind: LinkInternal, Page: "C"}}},
				}}}}},
			},
		},
	}
	links := doc.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "A", links[0].Page)
	assert.Equal(t, "B", links[1].Page)
}
