package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLineDepthFromMarkerRun(t *testing.T) {
	doc := Parse("Intro text.\n\n* top\n** nested\n", Options{})
	require.Len(t, doc.Sections[0].Lists, 1)
	lines := doc.Sections[0].Lists[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Depth)
	assert.Equal(t, "top", lines[0].Text)
	assert.Equal(t, 2, lines[1].Depth)
	assert.Equal(t, "nested", lines[1].Text)
}

func TestListLineResolvesLinkAndKeepsTextClean(t *testing.T) {
	doc := Parse("Intro text.\n\n* See [[Foo]] here\n", Options{})
	require.Len(t, doc.Sections[0].Lists, 1)
	line := doc.Sections[0].Lists[0].Lines[0]
	assert.Equal(t, "See Foo here", line.Text)
	require.Len(t, line.Links, 1)
	assert.Equal(t, "Foo", line.Links[0].Page)
}
