package matcher

import (
	"testing"
	"time"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/lexicon"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/oclaw/coopmatch/internal/requirement"
	"github.com/oclaw/coopmatch/internal/resumeindex"
	"github.com/stretchr/testify/require"
)

func testWeights() config.Weights {
	return config.Weights{
		KeywordMatch:       0.35,
		SemanticCoverage:   0.40,
		SemanticStrength:   0.10,
		SeniorityAlignment: 0.15,
	}
}

func buildMatcher(t *testing.T, resumeText string) *Matcher {
	t.Helper()
	lex, err := lexicon.LoadDefault()
	require.NoError(t, err)
	idx := resumeindex.Build(resumeText)
	extractor := requirement.New(lex.Contains, nil)
	return New(idx, resumeText, lex, extractor, testWeights(), 0.30, 8, "test-v1")
}

func TestScoreExactTechCoverage(t *testing.T) {
	resumeText := "- Built a Python REST API with PostgreSQL for internal tooling"
	m := buildMatcher(t, resumeText)

	job := models.Job{
		JobID:            "job-1",
		Title:            "Co-op Software Developer",
		Responsibilities: "Design REST APIs for our platform. Work with PostgreSQL databases daily.",
		Skills:           "Experience with Python.",
	}

	result, err := m.Score(job, time.Now())
	require.NoError(t, err)

	require.Equal(t, 0.80, result.SeniorityAlignment)
	require.InDelta(t, 1.0, result.KeywordMatch, 1e-9)
	require.Empty(t, result.MissingTechnologies)
}

func TestScoreSeniorityOverrideReducesFitScore(t *testing.T) {
	resumeText := "- Built a Python REST API with PostgreSQL for internal tooling"
	m := buildMatcher(t, resumeText)

	baseJob := models.Job{
		JobID:            "job-1",
		Title:            "Co-op Software Developer",
		Responsibilities: "Design REST APIs for our platform. Work with PostgreSQL databases daily.",
		Skills:           "Experience with Python.",
	}
	seniorJob := baseJob
	seniorJob.Title = "Senior Software Engineer"

	baseResult, err := m.Score(baseJob, time.Now())
	require.NoError(t, err)
	seniorResult, err := m.Score(seniorJob, time.Now())
	require.NoError(t, err)

	require.Equal(t, 0.30, seniorResult.SeniorityAlignment)
	require.InDelta(t, baseResult.FitScore-7.5, seniorResult.FitScore, 1e-6)
}

func TestScoreEmptyResumeIndexZeroesSemanticComponents(t *testing.T) {
	m := buildMatcher(t, "")

	job := models.Job{
		JobID:            "job-2",
		Title:            "Data Engineer",
		Responsibilities: "Build data pipelines using Python and Kubernetes.",
	}
	result, err := m.Score(job, time.Now())
	require.NoError(t, err)
	require.Equal(t, 0.0, result.SemanticCoverage)
	require.Equal(t, 0.0, result.SemanticStrength)
}

func TestScoreEmptyRequirementsDoesNotAffectKeywordOrSeniority(t *testing.T) {
	m := buildMatcher(t, "- Built systems with Go and Kubernetes")

	job := models.Job{
		JobID: "job-3",
		Title: "Intern Software Developer",
	}
	result, err := m.Score(job, time.Now())
	require.NoError(t, err)
	require.Equal(t, 0.0, result.SemanticCoverage)
	require.Equal(t, 0.0, result.SemanticStrength)
	require.Equal(t, 0.80, result.SeniorityAlignment)
}

func TestScoreIsDeterministic(t *testing.T) {
	m := buildMatcher(t, "- Designed distributed systems in Go and deployed them on Kubernetes")
	job := models.Job{
		JobID:            "job-4",
		Title:            "Backend Developer",
		Responsibilities: "Design and build scalable backend services using Go. Deploy to Kubernetes clusters.",
	}
	now := time.Now()
	r1, err := m.Score(job, now)
	require.NoError(t, err)
	r2, err := m.Score(job, now)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}

func TestEngineVersionChangesWithWeights(t *testing.T) {
	v1 := EngineVersion(testWeights(), 0.30, "lexhash", "skiphash")
	altWeights := testWeights()
	altWeights.KeywordMatch = 0.50
	v2 := EngineVersion(altWeights, 0.30, "lexhash", "skiphash")
	require.NotEqual(t, v1, v2)
}
