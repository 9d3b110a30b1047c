package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func techHitFixture(terms ...string) func(string) bool {
	return func(line string) bool {
		lower := line
		for _, t := range terms {
			if contains(lower, t) {
				return true
			}
		}
		return false
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if eqFold(s[i:i+len(substr)], substr) {
			return true
		}
	}
	return false
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func TestExtractDropsSkipListPhrases(t *testing.T) {
	e := New(techHitFixture("Python"), nil)
	reqs := e.Extract("Co-op Developer", "Must be a team player. Build Python REST services.", "")
	assert.NotContains(t, reqs, "Must be a team player.")
	assert.Contains(t, reqs, "Build Python REST services.")
}

func TestExtractDropsShortLines(t *testing.T) {
	e := New(techHitFixture("Go"), nil)
	reqs := e.Extract("", "Use Go.", "")
	assert.Empty(t, reqs)
}

func TestExtractDropsExperienceInRoleLine(t *testing.T) {
	e := New(techHitFixture("Go"), nil)
	reqs := e.Extract("Backend Developer", "Experience in a Backend Developer role. Design scalable Go services.", "")
	assert.NotContains(t, reqs, "Experience in a Backend Developer role.")
	assert.Contains(t, reqs, "Design scalable Go services.")
}

func TestExtractKeepsActionVerbLinesWithoutTechHit(t *testing.T) {
	e := New(techHitFixture(), nil)
	reqs := e.Extract("", "Document internal processes for the onboarding team.", "")
	assert.Contains(t, reqs, "Document internal processes for the onboarding team.")
}

func TestExtractDeduplicatesCaseInsensitively(t *testing.T) {
	e := New(techHitFixture("Go"), nil)
	reqs := e.Extract("", "Build services using Go. build services using GO.", "")
	assert.Len(t, reqs, 1)
}

func TestExtractEmptySectionsYieldEmptyResult(t *testing.T) {
	e := New(techHitFixture("Go"), nil)
	reqs := e.Extract("", "", "")
	assert.Empty(t, reqs)
}
