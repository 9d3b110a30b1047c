package resumeindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oclaw/coopmatch/internal/embeddings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `
- Built a distributed job queue in Go handling 10k messages per second
- Designed PostgreSQL schemas for a multi-tenant SaaS platform
- Led migration of legacy services to Kubernetes on GCP
Education
- BSc Computer Science
`

func TestSplitBulletsDropsShortLines(t *testing.T) {
	bullets := SplitBullets(sampleResume)
	for _, b := range bullets {
		assert.GreaterOrEqual(t, len(b), 10)
	}
	assert.NotContains(t, bullets, "Education")
}

func TestBuildEmbedsEveryBullet(t *testing.T) {
	idx := Build(sampleResume)
	require.NotEmpty(t, idx.Bullets)
	for _, b := range idx.Bullets {
		assert.Len(t, b.Embedding, embeddings.Dimensions)
	}
}

func TestSearchOrdersBySimilarityDescending(t *testing.T) {
	idx := Build(sampleResume)
	query := embeddings.Embed("Kubernetes deployment on GCP")
	results := idx.Search(query, 2)
	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
}

func TestIsStaleDetectsSourceChange(t *testing.T) {
	idx := Build(sampleResume)
	assert.False(t, idx.IsStale(sampleResume))
	assert.True(t, idx.IsStale(sampleResume+"\n- Added a new bullet point here"))
}

func TestLoadOrBuildRoundTripsThroughCache(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "index.gob")

	idx1, err := LoadOrBuild(cachePath, sampleResume)
	require.NoError(t, err)

	data, err := os.ReadFile(cachePath)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	idx2, err := LoadOrBuild(cachePath, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, idx1.SourceHash, idx2.SourceHash)
	assert.Equal(t, len(idx1.Bullets), len(idx2.Bullets))
}
