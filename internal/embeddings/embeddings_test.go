package embeddings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedIsDeterministic(t *testing.T) {
	a := Embed("Built distributed systems in Go and Kubernetes")
	b := Embed("Built distributed systems in Go and Kubernetes")
	require.Equal(t, a, b)
}

func TestEmbedIsUnitNorm(t *testing.T) {
	vec := Embed("Implemented REST APIs using Go, PostgreSQL and Docker")
	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-9)
}

func TestEmbedHasFixedDimensions(t *testing.T) {
	assert.Len(t, Embed(""), Dimensions)
	assert.Len(t, Embed("a single short word"), Dimensions)
}

func TestEmbedEmptyTextIsZeroVector(t *testing.T) {
	vec := Embed("")
	for _, v := range vec {
		assert.Equal(t, 0.0, v)
	}
}

func TestCosineSimilaritySelfIsOne(t *testing.T) {
	vec := Embed("Led a team of engineers building cloud infrastructure on AWS")
	assert.InDelta(t, 1.0, CosineSimilarity(vec, vec), 1e-9)
}

func TestCosineSimilarityDissimilarTextIsLower(t *testing.T) {
	a := Embed("Go backend services and Kubernetes orchestration")
	b := Embed("Go backend services and Kubernetes orchestration plus extra unrelated filler words about gardening")
	c := Embed("Oil painting and watercolor landscape techniques")

	simAB := CosineSimilarity(a, b)
	simAC := CosineSimilarity(a, c)
	assert.Greater(t, simAB, simAC)
}
