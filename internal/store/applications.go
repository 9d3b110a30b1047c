package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
)

// InsertCoverLetter records a newly generated cover letter; the most
// recently inserted row per job is "current" by generated_at ordering.
func (s *Store) InsertCoverLetter(ctx context.Context, cl models.CoverLetter) (int64, error) {
	now := cl.GeneratedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cover_letters (job_id, text, file_path, generated_by, generated_at, is_uploaded)
		VALUES (?,?,?,?,?,?)`,
		cl.JobID, cl.Text, cl.FilePath, cl.GeneratedBy, now, boolToInt(cl.IsUploaded))
	if err != nil {
		return 0, errs.New(errs.KindStore, "store.InsertCoverLetter", cl.JobID, err)
	}
	return res.LastInsertId()
}

// CurrentCoverLetter returns the most recently generated cover letter for
// a job, if any.
func (s *Store) CurrentCoverLetter(ctx context.Context, jobID string) (models.CoverLetter, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_id, text, file_path, generated_by, generated_at, is_uploaded
		FROM cover_letters WHERE job_id = ? ORDER BY generated_at DESC LIMIT 1`, jobID)

	var cl models.CoverLetter
	var uploadedInt int
	err := row.Scan(&cl.ID, &cl.JobID, &cl.Text, &cl.FilePath, &cl.GeneratedBy, &cl.GeneratedAt, &uploadedInt)
	if err == sql.ErrNoRows {
		return models.CoverLetter{}, false, nil
	}
	if err != nil {
		return models.CoverLetter{}, false, errs.New(errs.KindStore, "store.CurrentCoverLetter", jobID, err)
	}
	cl.IsUploaded = uploadedInt != 0
	return cl, true, nil
}

// MarkCoverLetterUploaded flips is_uploaded for reconciliation against the
// portal's "uploaded documents" list.
func (s *Store) MarkCoverLetterUploaded(ctx context.Context, coverLetterID int64) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE cover_letters SET is_uploaded = 1 WHERE id = ?`, coverLetterID); err != nil {
		return errs.New(errs.KindStore, "store.MarkCoverLetterUploaded", "", err)
	}
	return nil
}

// UpsertApplication inserts or updates the (job_id, attempt) application row.
func (s *Store) UpsertApplication(ctx context.Context, app models.Application) (int64, error) {
	docsJSON, err := json.Marshal(app.UploadedDocumentIDs)
	if err != nil {
		return 0, errs.New(errs.KindStore, "store.UpsertApplication", app.JobID, err)
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (job_id, attempt, status, cover_letter_id, uploaded_document_ids, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(job_id, attempt) DO UPDATE SET
			status=excluded.status, cover_letter_id=excluded.cover_letter_id,
			uploaded_document_ids=excluded.uploaded_document_ids, updated_at=excluded.updated_at`,
		app.JobID, app.Attempt, string(app.Status), app.CoverLetterID, string(docsJSON), now, now)
	if err != nil {
		return 0, errs.New(errs.KindStore, "store.UpsertApplication", app.JobID, err)
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		return id, nil
	}

	var id int64
	row := s.db.QueryRowContext(ctx, `SELECT id FROM applications WHERE job_id = ? AND attempt = ?`, app.JobID, app.Attempt)
	if err := row.Scan(&id); err != nil {
		return 0, errs.New(errs.KindStore, "store.UpsertApplication", app.JobID, err)
	}
	return id, nil
}

// ListApplicationsForJob returns every attempt recorded for a job, most
// recent attempt first.
func (s *Store) ListApplicationsForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, attempt, status, cover_letter_id, uploaded_document_ids, created_at, updated_at
		FROM applications WHERE job_id = ? ORDER BY attempt DESC`, jobID)
	if err != nil {
		return nil, errs.New(errs.KindStore, "store.ListApplicationsForJob", jobID, err)
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		var app models.Application
		var docsJSON string
		var coverLetterID sql.NullInt64
		if err := rows.Scan(&app.ID, &app.JobID, &app.Attempt, &app.Status, &coverLetterID, &docsJSON, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, errs.New(errs.KindStore, "store.ListApplicationsForJob", jobID, err)
		}
		if coverLetterID.Valid {
			v := coverLetterID.Int64
			app.CoverLetterID = &v
		}
		_ = json.Unmarshal([]byte(docsJSON), &app.UploadedDocumentIDs)
		out = append(out, app)
	}
	return out, rows.Err()
}

// AddFolderMembership records that a job was saved to a named portal folder.
func (s *Store) AddFolderMembership(ctx context.Context, jobID, folder string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO folder_memberships (job_id, folder) VALUES (?, ?)`, jobID, folder); err != nil {
		return errs.New(errs.KindStore, "store.AddFolderMembership", jobID, err)
	}
	return nil
}

// ListFolderMemberships returns the ids of every job saved to a folder.
func (s *Store) ListFolderMemberships(ctx context.Context, folder string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT job_id FROM folder_memberships WHERE folder = ?`, folder)
	if err != nil {
		return nil, errs.New(errs.KindStore, "store.ListFolderMemberships", "", err)
	}
	defer rows.Close()

	var jobIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errs.New(errs.KindStore, "store.ListFolderMemberships", "", err)
		}
		jobIDs = append(jobIDs, id)
	}
	return jobIDs, rows.Err()
}
