// Package matcher computes the hybrid lexical+semantic fit score between
// a candidate's résumé and a job posting.
package matcher

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/embeddings"
	"github.com/oclaw/coopmatch/internal/lexicon"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/oclaw/coopmatch/internal/requirement"
	"github.com/oclaw/coopmatch/internal/resumeindex"
)

// Matcher scores jobs against a fixed résumé index and technology set.
type Matcher struct {
	index      *resumeindex.Index
	resumeTech mapset.Set[string]
	lex        *lexicon.Lexicon
	extractor  *requirement.Extractor
	weights    config.Weights
	threshold  float64
	topK       int

	analysisVersion string
}

// New builds a Matcher bound to one résumé index and tech set.
func New(index *resumeindex.Index, resumeText string, lex *lexicon.Lexicon, extractor *requirement.Extractor, weights config.Weights, similarityThreshold float64, topK int, analysisVersion string) *Matcher {
	return &Matcher{
		index:           index,
		resumeTech:      lex.MatchSet(resumeText),
		lex:             lex,
		extractor:       extractor,
		weights:         weights,
		threshold:       similarityThreshold,
		topK:            topK,
		analysisVersion: analysisVersion,
	}
}

var seniorityPatterns = []struct {
	re    *regexp.Regexp
	score float64
}{
	{regexp.MustCompile(`(?i)\b(intern|co-?op)\b`), 0.80},
	{regexp.MustCompile(`(?i)\b(junior|entry|new grad)\b`), 0.50},
	{regexp.MustCompile(`(?i)\b(senior|staff|principal|lead)\b`), 0.30},
}

const defaultSeniorityAlignment = 0.70

// Score computes a MatchResult for one job. now is injected so results
// are deterministic and testable.
func (m *Matcher) Score(job models.Job, now time.Time) (models.MatchResult, error) {
	reqs := m.extractor.Extract(job.Title, job.Responsibilities, job.Skills)

	jobText := strings.Join([]string{job.Summary, job.Responsibilities, job.Skills, job.AdditionalInfo}, "\n")
	jobTech := m.lex.MatchSet(jobText)

	matched := sortedSlice(jobTech.Intersect(m.resumeTech))
	missing := sortedSlice(jobTech.Difference(m.resumeTech))

	var keywordMatch float64
	if jobTech.Cardinality() > 0 {
		keywordMatch = float64(len(matched)) / float64(jobTech.Cardinality())
	}

	evidence := make([]models.Evidence, len(reqs))
	var coveredCount int
	var coveredSimilaritySum float64

	for i, reqText := range reqs {
		queryVec := embeddings.Embed(reqText)
		bestIdx := -1
		var bestSim float64

		if neighbor, ok := m.index.Best(queryVec); ok {
			bestIdx = neighbor.Bullet.Index
			bestSim = neighbor.Similarity
		}

		if math.IsNaN(bestSim) || math.IsInf(bestSim, 0) {
			return models.MatchResult{}, fmt.Errorf("matcher: non-finite similarity for requirement %q", reqText)
		}

		covered := bestIdx >= 0 && bestSim >= m.threshold
		if covered {
			coveredCount++
			clamped := bestSim
			if clamped < 0 {
				clamped = 0
			}
			if clamped > 1 {
				clamped = 1
			}
			coveredSimilaritySum += clamped
		}

		evidence[i] = models.Evidence{
			RequirementText: reqText,
			BestBulletIndex: bestIdx,
			Similarity:      bestSim,
			Covered:         covered,
		}
	}

	var semanticCoverage, semanticStrength float64
	if len(evidence) > 0 {
		semanticCoverage = float64(coveredCount) / float64(len(evidence))
	}
	if coveredCount > 0 {
		semanticStrength = coveredSimilaritySum / float64(coveredCount)
	}

	seniority := seniorityAlignment(job.Title, job.Summary)

	fitScore := roundToOneDecimal(100 * (m.weights.KeywordMatch*keywordMatch +
		m.weights.SemanticCoverage*semanticCoverage +
		m.weights.SemanticStrength*semanticStrength +
		m.weights.SeniorityAlignment*seniority))

	return models.MatchResult{
		JobID:               job.JobID,
		FitScore:            fitScore,
		KeywordMatch:        keywordMatch,
		SemanticCoverage:    semanticCoverage,
		SemanticStrength:    semanticStrength,
		SeniorityAlignment:  seniority,
		MatchedTechnologies: matched,
		MissingTechnologies: missing,
		Evidence:            evidence,
		AnalysisVersion:     m.analysisVersion,
		AnalyzedAt:          now,
	}, nil
}

func seniorityAlignment(title, summary string) float64 {
	text := title + " " + summary
	for _, p := range seniorityPatterns {
		if p.re.MatchString(text) {
			return p.score
		}
	}
	return defaultSeniorityAlignment
}

func sortedSlice(s mapset.Set[string]) []string {
	out := s.ToSlice()
	sort.Strings(out)
	return out
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
