package matchcache

import (
	"context"
	"testing"
	"time"

	"github.com/oclaw/coopmatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	results map[string]models.MatchResult
}

func newFakeStore() *fakeStore { return &fakeStore{results: map[string]models.MatchResult{}} }

func (f *fakeStore) GetMatchResult(ctx context.Context, jobID string) (models.MatchResult, bool, error) {
	mr, ok := f.results[jobID]
	return mr, ok, nil
}

func (f *fakeStore) UpsertMatchResult(ctx context.Context, mr models.MatchResult) error {
	f.results[mr.JobID] = mr
	return nil
}

func TestGetMissesOnAbsentJob(t *testing.T) {
	cache := New(newFakeStore(), "v1")
	_, err := cache.Get(context.Background(), "job-1")
	require.Error(t, err)
}

func TestGetMissesOnStaleVersion(t *testing.T) {
	fs := newFakeStore()
	fs.results["job-1"] = models.MatchResult{JobID: "job-1", AnalysisVersion: "v0", AnalyzedAt: time.Now()}

	cache := New(fs, "v1")
	_, err := cache.Get(context.Background(), "job-1")
	require.Error(t, err)
}

func TestGetOrComputeCachesResult(t *testing.T) {
	fs := newFakeStore()
	cache := New(fs, "v1")

	calls := 0
	compute := func(ctx context.Context) (models.MatchResult, error) {
		calls++
		return models.MatchResult{JobID: "job-1", FitScore: 42}, nil
	}

	mr1, err := cache.GetOrCompute(context.Background(), "job-1", false, compute)
	require.NoError(t, err)
	assert.Equal(t, 42.0, mr1.FitScore)
	assert.Equal(t, 1, calls)

	mr2, err := cache.GetOrCompute(context.Background(), "job-1", false, compute)
	require.NoError(t, err)
	assert.Equal(t, mr1, mr2)
	assert.Equal(t, 1, calls, "second call should hit cache, not recompute")
}

func TestGetOrComputeForceRecompute(t *testing.T) {
	fs := newFakeStore()
	cache := New(fs, "v1")
	calls := 0
	compute := func(ctx context.Context) (models.MatchResult, error) {
		calls++
		return models.MatchResult{JobID: "job-1", FitScore: float64(calls)}, nil
	}

	_, err := cache.GetOrCompute(context.Background(), "job-1", false, compute)
	require.NoError(t, err)
	_, err = cache.GetOrCompute(context.Background(), "job-1", true, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
