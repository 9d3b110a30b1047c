package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/oclaw/coopmatch/internal/portal"
	"github.com/oclaw/coopmatch/internal/renderer"
)

// GenerateCoverLetter drafts, renders and persists a cover letter for a
// job the store already has a match result for. Downstream actions are
// invoked explicitly by the operator against already-persisted jobs, not
// automatically by batch or streaming runs.
func (o *Orchestrator) GenerateCoverLetter(ctx context.Context, jobID string, r renderer.Renderer, templatePath, outputDir string) (models.CoverLetter, error) {
	if o.llmClient == nil {
		return models.CoverLetter{}, errs.New(errs.KindConfig, "pipeline.GenerateCoverLetter", jobID, fmt.Errorf("no LLM client configured"))
	}

	job, ok, err := o.store.GetJob(ctx, jobID)
	if err != nil {
		return models.CoverLetter{}, err
	}
	if !ok {
		return models.CoverLetter{}, errs.New(errs.KindStore, "pipeline.GenerateCoverLetter", jobID, fmt.Errorf("job not found"))
	}

	mr, ok, err := o.store.GetMatchResult(ctx, jobID)
	if err != nil {
		return models.CoverLetter{}, err
	}
	if !ok {
		return models.CoverLetter{}, errs.New(errs.KindStore, "pipeline.GenerateCoverLetter", jobID, fmt.Errorf("no match result; score the job first"))
	}

	text, err := o.llmClient.GenerateCoverLetter(ctx, job, mr.Evidence)
	if err != nil {
		return models.CoverLetter{}, fmt.Errorf("pipeline: generating cover letter: %w", err)
	}

	outputPath := fmt.Sprintf("%s/%s.pdf", outputDir, jobID)
	renderedPath, err := r.RenderCoverLetter(templatePath, text, outputPath)
	if err != nil {
		return models.CoverLetter{}, fmt.Errorf("pipeline: rendering cover letter: %w", err)
	}

	cl := models.CoverLetter{
		JobID:       jobID,
		Text:        text,
		FilePath:    renderedPath,
		GeneratedBy: "llm",
		GeneratedAt: time.Now().UTC(),
	}
	id, err := o.store.InsertCoverLetter(ctx, cl)
	if err != nil {
		return models.CoverLetter{}, err
	}
	cl.ID = id
	return cl, nil
}

// Apply submits an application for jobID against an authenticated portal
// session, recording the outcome, the attempt number and, when
// opts.CoverLetterPath is set, the job's current cover letter. Uploaded
// document identifiers are not recorded.
func (o *Orchestrator) Apply(ctx context.Context, session portal.Session, jobID string, opts portal.ApplyOptions) (models.Application, error) {
	defer session.Close()

	if err := session.Login(ctx); err != nil {
		return models.Application{}, errs.New(errs.KindAuth, "pipeline.Apply", jobID, err)
	}

	outcome, err := session.Apply(ctx, jobID, opts)
	if err != nil {
		outcome = models.OutcomeFailed
	}

	status := outcomeToStatus(outcome)

	apps, err2 := o.store.ListApplicationsForJob(ctx, jobID)
	if err2 != nil {
		return models.Application{}, err2
	}
	attempt := len(apps) + 1

	app := models.Application{
		JobID:   jobID,
		Attempt: attempt,
		Status:  status,
	}
	if opts.CoverLetterPath != "" {
		if cl, ok, clErr := o.store.CurrentCoverLetter(ctx, jobID); clErr == nil && ok {
			app.CoverLetterID = &cl.ID
		}
	}

	id, storeErr := o.store.UpsertApplication(ctx, app)
	if storeErr != nil {
		return models.Application{}, storeErr
	}
	app.ID = id

	if err != nil {
		return app, fmt.Errorf("pipeline: apply: %w", err)
	}
	return app, nil
}

func outcomeToStatus(outcome models.ApplyOutcome) models.ApplicationStatus {
	switch outcome {
	case models.OutcomeSubmitted:
		return models.StatusSubmitted
	case models.OutcomeSkippedPrescreen:
		return models.StatusSkippedPrescreen
	case models.OutcomeSkippedExtraDocs:
		return models.StatusSkippedExtraDocs
	case models.OutcomeSkippedExternal:
		return models.StatusSkippedExternal
	default:
		return models.StatusFailed
	}
}

// SyncFolders saves every job in jobIDs to folder on the portal and
// records the membership in the store, tolerating per-job save failures.
func (o *Orchestrator) SyncFolders(ctx context.Context, session portal.Session, folder string, jobIDs []string) (int, error) {
	defer session.Close()

	if err := session.Login(ctx); err != nil {
		return 0, errs.New(errs.KindAuth, "pipeline.SyncFolders", "", err)
	}

	synced := 0
	for _, jobID := range jobIDs {
		if ctx.Err() != nil {
			return synced, errs.New(errs.KindCancelled, "pipeline.SyncFolders", "", ctx.Err())
		}
		if err := session.SaveToFolder(ctx, jobID, folder); err != nil {
			o.logger.Warn("folder sync failed for job", zap.String("job_id", jobID), zap.Error(err))
			continue
		}
		if err := o.store.AddFolderMembership(ctx, jobID, folder); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

// ReconcileUploads marks a job's current cover letter uploaded once the
// portal's own "uploaded documents" list for that job includes it,
// reconciling local state with what the portal actually accepted.
func (o *Orchestrator) ReconcileUploads(ctx context.Context, jobID string, uploadedFileNames []string) error {
	cl, ok, err := o.store.CurrentCoverLetter(ctx, jobID)
	if err != nil {
		return err
	}
	if !ok || cl.IsUploaded {
		return nil
	}
	for _, name := range uploadedFileNames {
		if name == cl.FilePath || name == filepath.Base(cl.FilePath) {
			return o.store.MarkCoverLetterUploaded(ctx, cl.ID)
		}
	}
	return nil
}
