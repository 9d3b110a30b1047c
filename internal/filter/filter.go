// Package filter implements the Filter Engine: a conjunctive predicate
// set evaluated either per-job during streaming (decide_realtime) or over
// a whole batch at once (apply_batch).
package filter

import (
	"sort"
	"strings"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/models"
)

// Decision is the outcome of decide_realtime.
type Decision string

const (
	DecisionKeep           Decision = "keep"
	DecisionDrop           Decision = "drop"
	DecisionAutosaveFolder Decision = "autosave_to_folder"
)

// Engine evaluates the predicate set against a fixed configuration.
type Engine struct {
	minMatchScore     float64
	autoSaveThreshold float64
	preferredLocations []string
	keywordsToMatch    []string
	companiesToAvoid   map[string]bool
}

// New builds an Engine from the operator-facing filter configuration.
func New(cfg *config.Config) *Engine {
	companies := make(map[string]bool, len(cfg.CompaniesToAvoid))
	for _, c := range cfg.CompaniesToAvoid {
		companies[strings.ToLower(c)] = true
	}
	return &Engine{
		minMatchScore:      cfg.MinMatchScore,
		autoSaveThreshold:  cfg.AutoSaveThreshold,
		preferredLocations: cfg.PreferredLocations,
		keywordsToMatch:    cfg.KeywordsToMatch,
		companiesToAvoid:   companies,
	}
}

// DecideRealtime classifies one (job, matchResult) pair during streaming.
func (e *Engine) DecideRealtime(job models.Job, mr models.MatchResult) Decision {
	if !e.passes(job, mr) {
		return DecisionDrop
	}
	if mr.FitScore >= e.autoSaveThreshold {
		return DecisionAutosaveFolder
	}
	return DecisionKeep
}

// Pair couples a Job with its MatchResult for batch processing.
type Pair struct {
	Job         models.Job
	MatchResult models.MatchResult
}

// ApplyBatch filters pairs through the same predicate set and returns the
// survivors sorted by fit_score descending, ties broken by job_id ascending.
func (e *Engine) ApplyBatch(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if e.passes(p.Job, p.MatchResult) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchResult.FitScore != out[j].MatchResult.FitScore {
			return out[i].MatchResult.FitScore > out[j].MatchResult.FitScore
		}
		return out[i].Job.JobID < out[j].Job.JobID
	})
	return out
}

func (e *Engine) passes(job models.Job, mr models.MatchResult) bool {
	if mr.FitScore < e.minMatchScore {
		return false
	}
	if !e.matchedLocation(job.Location) {
		return false
	}
	if e.companiesToAvoid[strings.ToLower(job.Company)] {
		return false
	}
	if !e.matchedKeyword(job) {
		return false
	}
	return true
}

// matchedLocation implements predicate 2: case-insensitive substring OR
// exact "remote" token match; an empty preferred-locations list disables
// the predicate entirely.
func (e *Engine) matchedLocation(jobLocation string) bool {
	if len(e.preferredLocations) == 0 {
		return true
	}
	lower := strings.ToLower(jobLocation)
	for _, pref := range e.preferredLocations {
		p := strings.ToLower(strings.TrimSpace(pref))
		if p == "remote" {
			if hasWordToken(lower, "remote") {
				return true
			}
			continue
		}
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// matchedKeyword implements predicate 4: an empty list disables it.
func (e *Engine) matchedKeyword(job models.Job) bool {
	if len(e.keywordsToMatch) == 0 {
		return true
	}
	haystack := strings.ToLower(job.Title + " " + job.Summary)
	for _, kw := range e.keywordsToMatch {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func hasWordToken(haystack, token string) bool {
	for _, word := range strings.Fields(haystack) {
		if strings.Trim(word, ".,;:()") == token {
			return true
		}
	}
	return false
}
