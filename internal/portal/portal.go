// Package portal defines the PortalSession collaborator contract and a
// Playwright-backed implementation against a university co-op job portal.
package portal

import (
	"context"

	"github.com/oclaw/coopmatch/internal/models"
)

// JobRow is the lightweight row yielded while enumerating a folder or
// search result listing, before the full detail fetch.
type JobRow struct {
	JobID   string
	Title   string
	Company string
	Href    string
}

// Session is the PortalSession contract: a single-owner, non-thread-safe
// handle onto one authenticated browser session. All calls on a given
// Session execute on one logical stream; callers never invoke Session
// methods concurrently.
type Session interface {
	// Login authenticates, or returns an *errs.Error with KindAuth.
	// Idempotent: calling Login twice on an already-authenticated
	// session succeeds without re-submitting credentials.
	Login(ctx context.Context) error

	// IterateJobs materializes every job row in a folder ("" for the
	// default search listing). The returned slice is finite and is not
	// restartable — re-navigating already happened by the time it
	// returns.
	IterateJobs(ctx context.Context, folder string) ([]JobRow, error)

	// FetchDetail loads the full posting for one job. May return an
	// *errs.Error with KindFetch on a stale session or timeout.
	FetchDetail(ctx context.Context, jobID string) (models.Job, error)

	// SaveToFolder files a job under a named portal folder.
	SaveToFolder(ctx context.Context, jobID, folder string) error

	// Apply submits (or determines why it cannot submit) an application.
	Apply(ctx context.Context, jobID string, opts ApplyOptions) (models.ApplyOutcome, error)

	// UploadDocument attaches a file of the given kind to a job's
	// application materials.
	UploadDocument(ctx context.Context, jobID, path, kind string) error

	// Close releases the browser session. Idempotent and never raises;
	// failures are the caller's responsibility to log.
	Close()
}

// ApplyOptions configures one Apply call.
type ApplyOptions struct {
	CoverLetterPath string
	ResumePath      string
	ExtraDocuments  []string
}

// Document kinds recognized by UploadDocument.
const (
	DocumentKindResume      = "resume"
	DocumentKindCoverLetter = "cover_letter"
	DocumentKindTranscript  = "transcript"
	DocumentKindOther       = "other"
)
