package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseInfoboxKeyCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "birth_date", normaliseInfoboxKey("Birth-Date"))
	assert.Equal(t, "birth_date", normaliseInfoboxKey("birth_date"))
	assert.Equal(t, "birth_date", normaliseInfoboxKey("  Birth   Date  "))
	assert.Equal(t, "a_b", normaliseInfoboxKey("a!!!b"))
}

func TestNormaliseInfoboxKeyTrimsLeadingTrailingSeparators(t *testing.T) {
	assert.Equal(t, "name", normaliseInfoboxKey("-name-"))
}

func TestEncodeFileTitleUppercasesAndEscapes(t *testing.T) {
	assert.Equal(t, "My_photo.jpg", encodeFileTitle("my photo.jpg"))
	assert.Equal(t, "Caf%C3%A9.png", encodeFileTitle("café.png"))
}

func TestUpperFirstLeavesRestIntact(t *testing.T) {
	assert.Equal(t, "Hello world", upperFirst("hello world"))
	assert.Equal(t, "", upperFirst(""))
}
