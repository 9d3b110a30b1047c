package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
terms:
  - canonical: Go
    aliases: [Golang]
  - canonical: Kubernetes
    aliases: [K8s]
  - canonical: Development
    aliases: []
  - canonical: New Grad Program
    aliases: []
`

func TestMatchAllFindsCanonicalAndAlias(t *testing.T) {
	lex, err := Load([]byte(testYAML))
	require.NoError(t, err)

	got := lex.MatchAll("We use Golang and Kubernetes extensively.")
	assert.ElementsMatch(t, []string{"Go", "Kubernetes"}, got)
}

func TestMatchAllRespectsWordBoundaries(t *testing.T) {
	lex, err := Load([]byte(testYAML))
	require.NoError(t, err)

	got := lex.MatchAll("We are going forward, not using Go.")
	assert.Contains(t, got, "Go")
	assert.NotContains(t, got, "going")
}

func TestMatchAllStemsSingleWordVariants(t *testing.T) {
	lex, err := Load([]byte(testYAML))
	require.NoError(t, err)

	got := lex.MatchAll("Responsible for developing new internal tools.")
	assert.Contains(t, got, "Development")
}

func TestContainsFalseWhenNoTermPresent(t *testing.T) {
	lex, err := Load([]byte(testYAML))
	require.NoError(t, err)

	assert.False(t, lex.Contains("Strong communication and teamwork skills."))
}

func TestHashChangesWithContent(t *testing.T) {
	lex1, err := Load([]byte(testYAML))
	require.NoError(t, err)
	lex2, err := Load([]byte(testYAML + "\n  - canonical: Rust\n    aliases: []\n"))
	require.NoError(t, err)

	assert.NotEqual(t, lex1.Hash(), lex2.Hash())
}

func TestLoadRejectsEmptyDocument(t *testing.T) {
	_, err := Load([]byte("terms: []"))
	assert.Error(t, err)
}

func TestLoadDefaultBuiltInLexicon(t *testing.T) {
	lex, err := LoadDefault()
	require.NoError(t, err)
	assert.True(t, lex.Contains("Experience with Python and PostgreSQL."))
}
