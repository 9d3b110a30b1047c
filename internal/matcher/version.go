package matcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/embeddings"
)

// AlgorithmRevision is bumped whenever the scoring algorithm itself
// changes in a way that would produce different fit_score values for the
// same inputs; it is folded into the engine version so stale cache
// entries from an older algorithm are recomputed.
const AlgorithmRevision = 1

// EngineVersion fingerprints everything a cached MatchResult depends on:
// the weight vector, similarity threshold, lexicon content, skip-list
// content, embedding model id and algorithm revision. A cached result
// whose analysis_version doesn't match the current EngineVersion is
// stale per the match-cache policy.
func EngineVersion(weights config.Weights, threshold float64, lexiconHash, skipListHash string) string {
	h := sha256.New()
	fmt.Fprintf(h, "w:%v,%v,%v,%v|t:%v|lex:%s|skip:%s|model:%s|rev:%d",
		weights.KeywordMatch, weights.SemanticCoverage, weights.SemanticStrength, weights.SeniorityAlignment,
		threshold, lexiconHash, skipListHash, embeddings.ModelID, AlgorithmRevision)
	return hex.EncodeToString(h.Sum(nil))
}
