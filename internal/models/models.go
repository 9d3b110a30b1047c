// Package models defines the persisted entities shared across the
// resume-matching pipeline: jobs, résumé bullets, match results, cover
// letters, applications and folder memberships.
package models

import "time"

// ApplicationStatus is the lifecycle state of a single application attempt.
type ApplicationStatus string

const (
	StatusDraft            ApplicationStatus = "draft"
	StatusSubmitted        ApplicationStatus = "submitted"
	StatusSkippedExternal  ApplicationStatus = "skipped-external"
	StatusSkippedExtraDocs ApplicationStatus = "skipped-extra-docs"
	StatusSkippedPrescreen ApplicationStatus = "skipped-prescreen"
	StatusFailed           ApplicationStatus = "failed"
)

// ApplyOutcome is the result of a PortalSession.Apply call.
type ApplyOutcome string

const (
	OutcomeSubmitted        ApplyOutcome = "submitted"
	OutcomeSkippedPrescreen ApplyOutcome = "skipped_prescreen"
	OutcomeSkippedExtraDocs ApplyOutcome = "skipped_extra_docs"
	OutcomeSkippedExternal  ApplyOutcome = "skipped_external"
	OutcomeFailed           ApplyOutcome = "failed"
)

// Job is a single co-op posting, identified externally by JobID.
type Job struct {
	JobID       string
	Title       string
	Company     string
	Division    string
	Location    string
	Level       string
	Openings    int
	Applications int
	Deadline    *time.Time

	Summary                         string
	Responsibilities                string
	Skills                          string
	AdditionalInfo                  string
	EmploymentLocationArrangement   string
	WorkTermDuration                string

	CompensationValue    float64
	CompensationCurrency string
	CompensationPeriod   string
	CompensationRaw      string

	ApplicationDocumentsRequired []string
	TargetedDegreesDisciplines   []string

	Active bool

	ScrapedAt time.Time
	UpdatedAt time.Time
}

// ResumeBullet is one ordered, independently embedded unit of the résumé.
type ResumeBullet struct {
	Index     int
	Text      string
	Embedding []float64
}

// Evidence is the per-requirement support for a MatchResult.
type Evidence struct {
	RequirementText  string
	BestBulletIndex  int
	Similarity       float64
	Covered          bool
}

// MatchResult is the Matcher's output for one job, overwritten on re-score.
type MatchResult struct {
	JobID string

	FitScore float64

	KeywordMatch       float64
	SemanticCoverage   float64
	SemanticStrength   float64
	SeniorityAlignment float64

	MatchedTechnologies []string
	MissingTechnologies []string

	Evidence []Evidence

	AnalysisVersion string
	AnalyzedAt      time.Time
}

// CoverLetter is one generated letter for a job; the most recent is current.
type CoverLetter struct {
	ID          int64
	JobID       string
	Text        string
	FilePath    string
	GeneratedBy string
	GeneratedAt time.Time
	IsUploaded  bool
}

// Application is one attempt to apply to a job.
type Application struct {
	ID                   int64
	JobID                string
	Attempt              int
	Status               ApplicationStatus
	CoverLetterID         *int64
	UploadedDocumentIDs  []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// FolderMembership records that a job was saved to a named portal folder.
type FolderMembership struct {
	JobID  string
	Folder string
}
