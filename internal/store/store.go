// Package store implements the single-file relational persistence layer:
// jobs, match results, cover letters, applications and folder
// memberships in one SQLite database file.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
)

// Store wraps a single SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database file at path, enables
// WAL mode, and applies the schema. Migrations are idempotent: re-running
// Open against an already-migrated file is a no-op beyond the CREATE IF
// NOT EXISTS statements.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, errs.New(errs.KindStore, "store.Open", "", fmt.Errorf("opening %q: %w", path, err))
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, errs.New(errs.KindStore, "store.Open", "", fmt.Errorf("enabling WAL: %w", err))
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, errs.New(errs.KindStore, "store.Open", "", fmt.Errorf("applying schema: %w", err))
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ---------------- JOBS ----------------

// UpsertJob inserts a new job or updates an existing one by job_id.
// updated_at is always refreshed; scraped_at is preserved on update.
func (s *Store) UpsertJob(ctx context.Context, job models.Job) error {
	docs, err := json.Marshal(job.ApplicationDocumentsRequired)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertJob", job.JobID, err)
	}
	degrees, err := json.Marshal(job.TargetedDegreesDisciplines)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertJob", job.JobID, err)
	}

	now := time.Now().UTC()
	if job.ScrapedAt.IsZero() {
		job.ScrapedAt = now
	}

	query := `
		INSERT INTO jobs (
			job_id, title, company, division, location, level, openings, applications, deadline,
			summary, responsibilities, skills, additional_info, employment_location_arrangement, work_term_duration,
			compensation_value, compensation_currency, compensation_period, compensation_raw,
			application_documents_required, targeted_degrees_disciplines, active, scraped_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(job_id) DO UPDATE SET
			title=excluded.title, company=excluded.company, division=excluded.division,
			location=excluded.location, level=excluded.level, openings=excluded.openings,
			applications=excluded.applications, deadline=excluded.deadline,
			summary=excluded.summary, responsibilities=excluded.responsibilities, skills=excluded.skills,
			additional_info=excluded.additional_info,
			employment_location_arrangement=excluded.employment_location_arrangement,
			work_term_duration=excluded.work_term_duration,
			compensation_value=excluded.compensation_value, compensation_currency=excluded.compensation_currency,
			compensation_period=excluded.compensation_period, compensation_raw=excluded.compensation_raw,
			application_documents_required=excluded.application_documents_required,
			targeted_degrees_disciplines=excluded.targeted_degrees_disciplines,
			active=excluded.active, updated_at=excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		job.JobID, job.Title, job.Company, job.Division, job.Location, job.Level, job.Openings, job.Applications, nullableTime(job.Deadline),
		job.Summary, job.Responsibilities, job.Skills, job.AdditionalInfo, job.EmploymentLocationArrangement, job.WorkTermDuration,
		job.CompensationValue, job.CompensationCurrency, job.CompensationPeriod, job.CompensationRaw,
		string(docs), string(degrees), boolToInt(job.Active), job.ScrapedAt, now,
	)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertJob", job.JobID, err)
	}
	return nil
}

// GetJob fetches a job by id. Returns (models.Job{}, false, nil) if absent.
func (s *Store) GetJob(ctx context.Context, jobID string) (models.Job, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT job_id, title, company, division, location, level, openings, applications, deadline,
			summary, responsibilities, skills, additional_info, employment_location_arrangement, work_term_duration,
			compensation_value, compensation_currency, compensation_period, compensation_raw,
			application_documents_required, targeted_degrees_disciplines, active, scraped_at, updated_at
		FROM jobs WHERE job_id = ?`, jobID)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return models.Job{}, false, nil
	}
	if err != nil {
		return models.Job{}, false, errs.New(errs.KindStore, "store.GetJob", jobID, err)
	}
	return job, true, nil
}

// ListActiveJobs returns all jobs currently marked active.
func (s *Store) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT job_id, title, company, division, location, level, openings, applications, deadline,
			summary, responsibilities, skills, additional_info, employment_location_arrangement, work_term_duration,
			compensation_value, compensation_currency, compensation_period, compensation_raw,
			application_documents_required, targeted_degrees_disciplines, active, scraped_at, updated_at
		FROM jobs WHERE active = 1`)
	if err != nil {
		return nil, errs.New(errs.KindStore, "store.ListActiveJobs", "", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, errs.New(errs.KindStore, "store.ListActiveJobs", "", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// MarkInactiveExcept flips active=0 for every job not present in keepIDs,
// implementing the "marked inactive when no longer enumerated" lifecycle
// rule after a full scrape pass.
func (s *Store) MarkInactiveExcept(ctx context.Context, keepIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.New(errs.KindStore, "store.MarkInactiveExcept", "", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE jobs SET active = 0, updated_at = ? WHERE active = 1`, time.Now().UTC()); err != nil {
		return errs.New(errs.KindStore, "store.MarkInactiveExcept", "", err)
	}

	stmt, err := tx.PrepareContext(ctx, `UPDATE jobs SET active = 1 WHERE job_id = ?`)
	if err != nil {
		return errs.New(errs.KindStore, "store.MarkInactiveExcept", "", err)
	}
	defer stmt.Close()

	for _, id := range keepIDs {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return errs.New(errs.KindStore, "store.MarkInactiveExcept", id, err)
		}
	}
	return tx.Commit()
}

// DeleteJob removes a job and, via ON DELETE CASCADE, every match result,
// cover letter, application and folder membership referencing it.
func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = ?`, jobID); err != nil {
		return errs.New(errs.KindStore, "store.DeleteJob", jobID, err)
	}
	return nil
}

func scanJob(row interface{ Scan(...any) error }) (models.Job, error) {
	var job models.Job
	var deadline sql.NullTime
	var docsJSON, degreesJSON string
	var activeInt int

	err := row.Scan(
		&job.JobID, &job.Title, &job.Company, &job.Division, &job.Location, &job.Level, &job.Openings, &job.Applications, &deadline,
		&job.Summary, &job.Responsibilities, &job.Skills, &job.AdditionalInfo, &job.EmploymentLocationArrangement, &job.WorkTermDuration,
		&job.CompensationValue, &job.CompensationCurrency, &job.CompensationPeriod, &job.CompensationRaw,
		&docsJSON, &degreesJSON, &activeInt, &job.ScrapedAt, &job.UpdatedAt,
	)
	if err != nil {
		return models.Job{}, err
	}
	if deadline.Valid {
		job.Deadline = &deadline.Time
	}
	_ = json.Unmarshal([]byte(docsJSON), &job.ApplicationDocumentsRequired)
	_ = json.Unmarshal([]byte(degreesJSON), &job.TargetedDegreesDisciplines)
	job.Active = activeInt != 0
	return job, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
