package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoboxFieldNormalisation(t *testing.T) {
	doc := Parse(`{{Infobox person
|name=Jane Doe
|birth-date=1990
|other field=value
}}`, Options{})
	require.Len(t, doc.Sections[0].Infoboxes, 1)
	ib := doc.Sections[0].Infoboxes[0]
	assert.Equal(t, "person", ib.Type)
	v, ok := ib.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", v)
	v, ok = ib.Get("birth_date")
	require.True(t, ok)
	assert.Equal(t, "1990", v)
	v, ok = ib.Get("other_field")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestInfoboxSkipsImageFields(t *testing.T) {
	doc := Parse(`{{Infobox company
|image=Logo.png
|name=Acme
}}`, Options{})
	ib := doc.Sections[0].Infoboxes[0]
	_, ok := ib.Get("image")
	assert.False(t, ok)
	v, ok := ib.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Acme", v)
}

func TestInfoboxBareNameHasEmptyType(t *testing.T) {
	doc := Parse(`{{Infobox
|name=Something
}}`, Options{})
	require.Len(t, doc.Sections[0].Infoboxes, 1)
	assert.Equal(t, "", doc.Sections[0].Infoboxes[0].Type)
}
