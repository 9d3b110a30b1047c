package portal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToTextPreservesListStructure(t *testing.T) {
	h := newHTMLToText()
	got := h.Convert(`<ul><li>Write Go services</li><li>Own CI/CD</li></ul>`, "fallback")
	assert.Contains(t, got, "Write Go services")
	assert.Contains(t, got, "Own CI/CD")
	assert.True(t, strings.Count(got, "\n") >= 1)
}

func TestHTMLToTextStripsScriptTags(t *testing.T) {
	h := newHTMLToText()
	got := h.Convert(`<p>Legit content</p><script>alert(1)</script>`, "fallback")
	assert.Contains(t, got, "Legit content")
	assert.NotContains(t, got, "alert")
}

func TestHTMLToTextFallsBackOnEmptyInput(t *testing.T) {
	h := newHTMLToText()
	got := h.Convert("   ", "plain text fallback")
	assert.Equal(t, "plain text fallback", got)
}

func TestHTMLToTextFallsBackWhenConversionYieldsNothing(t *testing.T) {
	h := newHTMLToText()
	got := h.Convert(`<!-- just a comment -->`, "plain text fallback")
	assert.Equal(t, "plain text fallback", got)
}
