package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

func TestParseImageAttributes(t *testing.T) {
	img := parseImage("File:My_photo.jpg|thumb|left|upright=1.2|border|alt=A photo|A caption here")
	assert.Equal(t, "File:My photo.jpg", img.File)
	assert.Equal(t, document.ImageThumb, img.Type)
	assert.Equal(t, document.AlignLeft, img.Align)
	assert.InDelta(t, 1.2, img.Upright, 1e-9)
	assert.True(t, img.Border)
	assert.Equal(t, "A photo", img.Alt)
	assert.NotNil(t, img.Caption)
	assert.Equal(t, "A caption here", img.Caption.Text)
}

func TestParseImageSize(t *testing.T) {
	img := parseImage("File:Pic.png|220px")
	assert.Equal(t, 220, img.Width)
	assert.Equal(t, 0, img.Height)

	img2 := parseImage("File:Pic.png|220x140px")
	assert.Equal(t, 220, img2.Width)
	assert.Equal(t, 140, img2.Height)
}

func TestParseImageSizeAllowsInteriorWhitespace(t *testing.T) {
	img := parseImage("File:Pic.png|100 x 200 px")
	assert.Equal(t, 100, img.Width)
	assert.Equal(t, 200, img.Height)
}

func TestParseImageUprightBare(t *testing.T) {
	img := parseImage("File:Pic.png|upright")
	assert.InDelta(t, 0.75, img.Upright, 1e-9)
}

func TestImageThumbnailDefaultSize(t *testing.T) {
	img := document.Image{File: "File:Pic.png"}
	assert.Equal(t, img.URL()+"?width=300", img.Thumbnail(0))
}
