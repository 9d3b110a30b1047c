// Package embeddings implements the deterministic embedding contract: a
// pure function from text to a 384-dimension, L2-normalized vector, such
// that cosine similarity between two embeddings reduces to their inner
// product.
//
// There is no ecosystem sentence-embedding model in the dependency pack
// this module was built from, and pulling in a large ML runtime for a
// job-matching CLI would be its own justification burden. Instead this
// package uses signed feature hashing (the classic "hashing trick"):
// each token is hashed into one of Dimensions buckets with a sign derived
// from a second hash, and bucket values are L2-normalized with
// gonum/floats. The scheme is exactly reproducible, has no training step,
// and satisfies every invariant the matcher depends on (determinism,
// fixed dimensionality, unit norm).
package embeddings

import (
	"hash/fnv"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Dimensions is the fixed vector width required by the matcher and the
// resume index.
const Dimensions = 384

// ModelID identifies this embedding scheme; it is one input to both the
// resume index's rebuild key and the matcher's engine-version hash.
const ModelID = "hash384-v1"

var tokenRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.#-]*`)

// Embed computes the deterministic embedding for text. It never returns
// an error: any input produces a Dimensions-length vector, unit-normalized
// when the text has at least one token and all-zero otherwise (including
// the empty string).
func Embed(text string) []float64 {
	vec := make([]float64, Dimensions)
	tokens := tokenize(text)
	for _, tok := range tokens {
		bucket, sign := hashToken(tok)
		vec[bucket] += sign
	}
	normalize(vec)
	return vec
}

// EmbedAll embeds a batch of strings, preserving order.
func EmbedAll(texts []string) [][]float64 {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = Embed(t)
	}
	return out
}

func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return tokenRe.FindAllString(lower, -1)
}

func hashToken(tok string) (bucket int, sign float64) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tok))
	bucket = int(h.Sum32() % uint32(Dimensions))

	h2 := fnv.New32a()
	_, _ = h2.Write([]byte(tok))
	_, _ = h2.Write([]byte{0xFF})
	if h2.Sum32()%2 == 0 {
		sign = 1
	} else {
		sign = -1
	}
	return bucket, sign
}

// normalize L2-normalizes vec in place. A zero vector is left as-is.
func normalize(vec []float64) {
	norm := floats.Norm(vec, 2)
	if norm == 0 {
		return
	}
	floats.Scale(1/norm, vec)
}

// CosineSimilarity returns the inner product of two already-normalized
// embeddings, which equals their cosine similarity for unit vectors.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return floats.Dot(a[:n], b[:n])
}
