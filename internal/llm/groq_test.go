package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oclaw/coopmatch/internal/models"
)

func TestCleanMarkdownJSONStripsFences(t *testing.T) {
	got := cleanMarkdownJSON("```json\n{\"value\": 20}\n```")
	assert.Equal(t, `{"value": 20}`, got)
}

func TestCleanMarkdownJSONPassesThroughPlainJSON(t *testing.T) {
	got := cleanMarkdownJSON(`{"value": 20}`)
	assert.Equal(t, `{"value": 20}`, got)
}

func TestParseCompensationJSONReturnsNilForNullLiteral(t *testing.T) {
	comp, err := parseCompensationJSON("null")
	require.NoError(t, err)
	assert.Nil(t, comp)
}

func TestParseCompensationJSONReturnsNilForEmptyString(t *testing.T) {
	comp, err := parseCompensationJSON("")
	require.NoError(t, err)
	assert.Nil(t, comp)
}

func TestParseCompensationJSONParsesValidPayload(t *testing.T) {
	comp, err := parseCompensationJSON(`{"value": 28.5, "currency": "CAD", "period": "hour"}`)
	require.NoError(t, err)
	require.NotNil(t, comp)
	assert.Equal(t, 28.5, comp.Value)
	assert.Equal(t, "CAD", comp.Currency)
	assert.Equal(t, "hour", comp.Period)
}

func TestParseCompensationJSONRejectsMalformedPayload(t *testing.T) {
	_, err := parseCompensationJSON(`{value: 28.5}`)
	assert.Error(t, err)
}

func TestBuildCoverLetterUserPromptIncludesOnlyCoveredEvidence(t *testing.T) {
	job := models.Job{Title: "Backend Co-op", Company: "Acme", Summary: "Build services."}
	evidence := []models.Evidence{
		{RequirementText: "Experience with Go", Covered: true},
		{RequirementText: "Experience with Rust", Covered: false},
	}
	prompt := buildCoverLetterUserPrompt(job, evidence)
	assert.Contains(t, prompt, "Experience with Go")
	assert.NotContains(t, prompt, "Experience with Rust")
	assert.Contains(t, prompt, "Acme")
}

func TestNewGroqClientDefaultsModel(t *testing.T) {
	c := NewGroqClient("key", "")
	assert.Equal(t, "llama-3.3-70b-versatile", c.model)

	c2 := NewGroqClient("key", "custom-model")
	assert.Equal(t, "custom-model", c2.model)
}
