package filter

import (
	"testing"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func baseConfig() *config.Config {
	return &config.Config{
		MinMatchScore:      50,
		AutoSaveThreshold:  80,
		PreferredLocations: []string{"Waterloo", "Remote"},
		KeywordsToMatch:    []string{"backend"},
		CompaniesToAvoid:   []string{"BadCo"},
	}
}

func TestDecideRealtimeDrop(t *testing.T) {
	e := New(baseConfig())
	job := models.Job{JobID: "1", Title: "Backend Developer", Location: "Toronto", Company: "GoodCo"}
	mr := models.MatchResult{FitScore: 40}
	assert.Equal(t, DecisionDrop, e.DecideRealtime(job, mr))
}

func TestDecideRealtimeKeep(t *testing.T) {
	e := New(baseConfig())
	job := models.Job{JobID: "1", Title: "Backend Developer", Location: "Waterloo", Company: "GoodCo"}
	mr := models.MatchResult{FitScore: 60}
	assert.Equal(t, DecisionKeep, e.DecideRealtime(job, mr))
}

func TestDecideRealtimeAutosave(t *testing.T) {
	e := New(baseConfig())
	job := models.Job{JobID: "1", Title: "Backend Developer", Location: "Remote", Company: "GoodCo"}
	mr := models.MatchResult{FitScore: 85}
	assert.Equal(t, DecisionAutosaveFolder, e.DecideRealtime(job, mr))
}

func TestDecideRealtimeDropsAvoidedCompany(t *testing.T) {
	e := New(baseConfig())
	job := models.Job{JobID: "1", Title: "Backend Developer", Location: "Waterloo", Company: "BadCo"}
	mr := models.MatchResult{FitScore: 90}
	assert.Equal(t, DecisionDrop, e.DecideRealtime(job, mr))
}

func TestMatchedLocationRemoteRequiresWordToken(t *testing.T) {
	e := New(baseConfig())
	assert.False(t, e.matchedLocation("Remotely managed office in Calgary"))
	assert.True(t, e.matchedLocation("Remote (Canada)"))
}

func TestApplyBatchSortsByFitScoreDescThenJobIDAsc(t *testing.T) {
	e := New(baseConfig())
	pairs := []Pair{
		{Job: models.Job{JobID: "b", Title: "Backend Developer", Location: "Waterloo", Company: "GoodCo"}, MatchResult: models.MatchResult{FitScore: 70}},
		{Job: models.Job{JobID: "a", Title: "Backend Developer", Location: "Waterloo", Company: "GoodCo"}, MatchResult: models.MatchResult{FitScore: 70}},
		{Job: models.Job{JobID: "c", Title: "Backend Developer", Location: "Waterloo", Company: "GoodCo"}, MatchResult: models.MatchResult{FitScore: 90}},
	}
	out := e.ApplyBatch(pairs)
	assert.Equal(t, []string{"c", "a", "b"}, []string{out[0].Job.JobID, out[1].Job.JobID, out[2].Job.JobID})
}

func TestDecideRealtimeEmptyPreferredLocationsDisablesPredicate(t *testing.T) {
	cfg := baseConfig()
	cfg.PreferredLocations = nil
	e := New(cfg)
	job := models.Job{JobID: "1", Title: "Backend Developer", Location: "Anywhere", Company: "GoodCo"}
	mr := models.MatchResult{FitScore: 60}
	assert.Equal(t, DecisionKeep, e.DecideRealtime(job, mr))
}
