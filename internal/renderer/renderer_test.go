package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitParagraphsSplitsOnBlankLines(t *testing.T) {
	got := splitParagraphs("First paragraph.\n\nSecond paragraph.\n\nThird.")
	assert.Equal(t, []string{"First paragraph.", "Second paragraph.", "Third."}, got)
}

func TestSplitParagraphsDropsEmptySegments(t *testing.T) {
	got := splitParagraphs("One.\n\n\n\nTwo.")
	assert.Equal(t, []string{"One.", "Two."}, got)
}

func TestSplitParagraphsHandlesSingleParagraph(t *testing.T) {
	got := splitParagraphs("Only one paragraph here.")
	assert.Equal(t, []string{"Only one paragraph here."}, got)
}

func TestDefaultCoverLetterTemplateIsEmbedded(t *testing.T) {
	assert.NotEmpty(t, defaultCoverLetterTemplate)
}
