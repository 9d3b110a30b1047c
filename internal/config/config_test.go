package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.30, cfg.SimilarityThreshold)
	assert.Equal(t, 8, cfg.TopK)
	assert.Equal(t, "coopmatch.db", cfg.DBPath)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.True(t, cfg.PortalHeadless)
}

func TestLoadReadsYAMLFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coopmatch.yaml")
	contents := []byte(`
top_k: 3
db_path: custom.db
weights:
  keyword_match: 0.5
  semantic_coverage: 0.3
  semantic_strength: 0.1
  seniority_alignment: 0.1
`)
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 0.5, cfg.Weights.KeywordMatch)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangeSimilarityThreshold(t *testing.T) {
	cfg := &Config{SimilarityThreshold: 2, TopK: 1, ScrapeCheckpointEvery: 1, DBPath: "x.db",
		Weights: Weights{KeywordMatch: 1}}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTopK(t *testing.T) {
	cfg := &Config{SimilarityThreshold: 0.3, TopK: 0, ScrapeCheckpointEvery: 1, DBPath: "x.db",
		Weights: Weights{KeywordMatch: 1}}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroWeightSum(t *testing.T) {
	cfg := &Config{SimilarityThreshold: 0.3, TopK: 1, ScrapeCheckpointEvery: 1, DBPath: "x.db"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingDBPath(t *testing.T) {
	cfg := &Config{SimilarityThreshold: 0.3, TopK: 1, ScrapeCheckpointEvery: 1,
		Weights: Weights{KeywordMatch: 1}}
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsDefaultsProducedByLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
