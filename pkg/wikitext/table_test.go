package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHeaderlessColumnNaming(t *testing.T) {
	doc := Parse(`{|
|-
| a || b || c
|}`, Options{})
	require.Len(t, doc.Sections[0].Tables, 1)
	row := doc.Sections[0].Tables[0].Rows[0]
	assert.Equal(t, "a", row.Cells["col1"].Text)
	assert.Equal(t, "b", row.Cells["col2"].Text)
	assert.Equal(t, "c", row.Cells["col3"].Text)
}

func TestTableColspanDuplicatesCells(t *testing.T) {
	doc := Parse(`{|
|-
! A !! B !! C
|-
| colspan="2" | wide || c
|}`, Options{})
	row := doc.Sections[0].Tables[0].Rows[0]
	assert.Equal(t, "wide", row.Cells["A"].Text)
	assert.Equal(t, "", row.Cells["B"].Text)
	assert.Equal(t, "c", row.Cells["C"].Text)
}

func TestTableRowspanCarriesValueDown(t *testing.T) {
	doc := Parse(`{|
|-
! A !! B
|-
| rowspan="2" | tall || x
|-
| y
|}`, Options{})
	rows := doc.Sections[0].Tables[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "tall", rows[0].Cells["A"].Text)
	assert.Equal(t, "x", rows[0].Cells["B"].Text)
	assert.Equal(t, "tall", rows[1].Cells["A"].Text)
	assert.Equal(t, "y", rows[1].Cells["B"].Text)
}

func TestTableCellResolvesLinkAndKeepsTextClean(t *testing.T) {
	doc := Parse(`{|
|-
| See [[Foo]] here
|}`, Options{})
	cell := doc.Sections[0].Tables[0].Rows[0].Cells["col1"]
	assert.Equal(t, "See Foo here", cell.Text)
	require.Len(t, cell.Links, 1)
	assert.Equal(t, "Foo", cell.Links[0].Page)
}

func TestTableCaptionPreserved(t *testing.T) {
	doc := Parse(`{|
|+ My caption
|-
! A
|-
| a
|}`, Options{})
	assert.Equal(t, "My caption", doc.Sections[0].Tables[0].Caption)
}
