package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/filter"
	"github.com/oclaw/coopmatch/internal/lexicon"
	"github.com/oclaw/coopmatch/internal/matchcache"
	"github.com/oclaw/coopmatch/internal/matcher"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/oclaw/coopmatch/internal/portal"
	"github.com/oclaw/coopmatch/internal/requirement"
	"github.com/oclaw/coopmatch/internal/resumeindex"
	"github.com/oclaw/coopmatch/internal/store"
)

const testLexiconYAML = `
terms:
  - canonical: Go
    aliases: [Golang]
  - canonical: Kubernetes
    aliases: [K8s]
`

// fakeSession is a scriptable portal.Session double, so the orchestrator
// can be exercised without a real browser.
type fakeSession struct {
	rows       []portal.JobRow
	details    map[string]models.Job
	loginErr   error
	closed     bool
	savedTo    map[string]string
}

func newFakeSession(rows []portal.JobRow, details map[string]models.Job) *fakeSession {
	return &fakeSession{rows: rows, details: details, savedTo: map[string]string{}}
}

func (f *fakeSession) Login(ctx context.Context) error { return f.loginErr }

func (f *fakeSession) IterateJobs(ctx context.Context, folder string) ([]portal.JobRow, error) {
	return f.rows, nil
}

func (f *fakeSession) FetchDetail(ctx context.Context, jobID string) (models.Job, error) {
	job, ok := f.details[jobID]
	if !ok {
		return models.Job{}, assertionError("no fixture detail for " + jobID)
	}
	return job, nil
}

func (f *fakeSession) SaveToFolder(ctx context.Context, jobID, folder string) error {
	f.savedTo[jobID] = folder
	return nil
}

func (f *fakeSession) Apply(ctx context.Context, jobID string, opts portal.ApplyOptions) (models.ApplyOutcome, error) {
	return models.OutcomeSubmitted, nil
}

func (f *fakeSession) UploadDocument(ctx context.Context, jobID, path, kind string) error { return nil }

func (f *fakeSession) Close() { f.closed = true }

type assertionError string

func (e assertionError) Error() string { return string(e) }

func buildTestOrchestrator(t *testing.T) (*Orchestrator, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "coopmatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	lex, err := lexicon.Load([]byte(testLexiconYAML))
	require.NoError(t, err)

	extractor := requirement.New(lex.Contains, nil)
	idx := resumeindex.Build("Built REST services in Go. Deployed workloads to Kubernetes clusters.")

	weights := config.Weights{KeywordMatch: 0.4, SemanticCoverage: 0.4, SemanticStrength: 0.1, SeniorityAlignment: 0.1}
	m := matcher.New(idx, "Built REST services in Go. Deployed workloads to Kubernetes clusters.", lex, extractor, weights, 0.3, 5, "test-v1")

	cache := matchcache.New(st, "test-v1")

	cfg := &config.Config{MinMatchScore: 0, AutoSaveThreshold: 101, ScrapeCheckpointEvery: 5}
	filterer := filter.New(cfg)

	logger := zap.NewNop()

	return New(st, m, cache, filterer, nil, nil, logger, 5, "coopmatch"), st
}

func TestRunBatchFetchesScoresAndFilters(t *testing.T) {
	orch, st := buildTestOrchestrator(t)

	rows := []portal.JobRow{{JobID: "job-1", Title: "Backend Co-op", Company: "Acme"}}
	details := map[string]models.Job{
		"job-1": {
			JobID: "job-1", Title: "Backend Co-op", Company: "Acme",
			Summary: "Write Go services.", Responsibilities: "Own CI/CD on Kubernetes.", Active: true,
		},
	}
	session := newFakeSession(rows, details)

	result, err := orch.RunBatch(context.Background(), session, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Enumerated)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Scored)
	assert.True(t, session.closed)

	jobs, err := st.ListActiveJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}

func TestRunBatchSkipsFetchFailuresWithoutAborting(t *testing.T) {
	orch, _ := buildTestOrchestrator(t)

	rows := []portal.JobRow{{JobID: "missing-job"}}
	session := newFakeSession(rows, map[string]models.Job{})

	result, err := orch.RunBatch(context.Background(), session, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.FetchErrors)
	assert.Equal(t, 0, result.Fetched)
}

func TestRunStreamProcessesEachRowAndPersistsResults(t *testing.T) {
	orch, st := buildTestOrchestrator(t)

	rows := []portal.JobRow{{JobID: "job-1"}}
	details := map[string]models.Job{
		"job-1": {JobID: "job-1", Title: "Backend Co-op", Company: "Acme", Summary: "Go and Kubernetes role.", Active: true},
	}
	session := newFakeSession(rows, details)

	err := orch.RunStream(context.Background(), session, "")
	require.NoError(t, err)

	mr, ok, err := st.GetMatchResult(context.Background(), "job-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "test-v1", mr.AnalysisVersion)
}

func TestRunBatchPropagatesLoginFailure(t *testing.T) {
	orch, _ := buildTestOrchestrator(t)
	session := newFakeSession(nil, nil)
	session.loginErr = assertionError("bad credentials")

	_, err := orch.RunBatch(context.Background(), session, "")
	assert.Error(t, err)
}
