package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
)

// UpsertMatchResult writes the per-job match result atomically. It backs
// the match cache: the analysis_version column is what GetMatchResult's
// caller compares against the current engine version to decide hit/miss.
func (s *Store) UpsertMatchResult(ctx context.Context, mr models.MatchResult) error {
	matchedJSON, err := json.Marshal(mr.MatchedTechnologies)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertMatchResult", mr.JobID, err)
	}
	missingJSON, err := json.Marshal(mr.MissingTechnologies)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertMatchResult", mr.JobID, err)
	}
	evidenceJSON, err := json.Marshal(mr.Evidence)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertMatchResult", mr.JobID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_results (
			job_id, fit_score, keyword_match, semantic_coverage, semantic_strength, seniority_alignment,
			matched_technologies, missing_technologies, evidence, analysis_version, analyzed_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(job_id) DO UPDATE SET
			fit_score=excluded.fit_score, keyword_match=excluded.keyword_match,
			semantic_coverage=excluded.semantic_coverage, semantic_strength=excluded.semantic_strength,
			seniority_alignment=excluded.seniority_alignment, matched_technologies=excluded.matched_technologies,
			missing_technologies=excluded.missing_technologies, evidence=excluded.evidence,
			analysis_version=excluded.analysis_version, analyzed_at=excluded.analyzed_at`,
		mr.JobID, mr.FitScore, mr.KeywordMatch, mr.SemanticCoverage, mr.SemanticStrength, mr.SeniorityAlignment,
		string(matchedJSON), string(missingJSON), string(evidenceJSON), mr.AnalysisVersion, mr.AnalyzedAt,
	)
	if err != nil {
		return errs.New(errs.KindStore, "store.UpsertMatchResult", mr.JobID, err)
	}
	return nil
}

// GetMatchResult fetches the cached result for a job, if any.
func (s *Store) GetMatchResult(ctx context.Context, jobID string) (models.MatchResult, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT job_id, fit_score, keyword_match, semantic_coverage, semantic_strength, seniority_alignment,
			matched_technologies, missing_technologies, evidence, analysis_version, analyzed_at
		FROM match_results WHERE job_id = ?`, jobID)

	mr, err := scanMatchResult(row)
	if err == sql.ErrNoRows {
		return models.MatchResult{}, false, nil
	}
	if err != nil {
		return models.MatchResult{}, false, errs.New(errs.KindStore, "store.GetMatchResult", jobID, err)
	}
	return mr, true, nil
}

// ListMatchResults returns every persisted match result,
// sorted by fit_score descending, job_id ascending — the apply_batch order.
func (s *Store) ListMatchResults(ctx context.Context) ([]models.MatchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT job_id, fit_score, keyword_match, semantic_coverage, semantic_strength, seniority_alignment,
			matched_technologies, missing_technologies, evidence, analysis_version, analyzed_at
		FROM match_results ORDER BY fit_score DESC, job_id ASC`)
	if err != nil {
		return nil, errs.New(errs.KindStore, "store.ListMatchResults", "", err)
	}
	defer rows.Close()

	var out []models.MatchResult
	for rows.Next() {
		mr, err := scanMatchResult(rows)
		if err != nil {
			return nil, errs.New(errs.KindStore, "store.ListMatchResults", "", err)
		}
		out = append(out, mr)
	}
	return out, rows.Err()
}

// ClearMatchResults deletes every persisted match result, forcing the
// match cache to miss on every job until each is rescored.
func (s *Store) ClearMatchResults(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM match_results`)
	if err != nil {
		return 0, errs.New(errs.KindStore, "store.ClearMatchResults", "", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errs.New(errs.KindStore, "store.ClearMatchResults", "", err)
	}
	return n, nil
}

func scanMatchResult(row interface{ Scan(...any) error }) (models.MatchResult, error) {
	var mr models.MatchResult
	var matchedJSON, missingJSON, evidenceJSON string

	err := row.Scan(
		&mr.JobID, &mr.FitScore, &mr.KeywordMatch, &mr.SemanticCoverage, &mr.SemanticStrength, &mr.SeniorityAlignment,
		&matchedJSON, &missingJSON, &evidenceJSON, &mr.AnalysisVersion, &mr.AnalyzedAt,
	)
	if err != nil {
		return models.MatchResult{}, err
	}
	if err := json.Unmarshal([]byte(matchedJSON), &mr.MatchedTechnologies); err != nil {
		return models.MatchResult{}, fmt.Errorf("decoding matched_technologies: %w", err)
	}
	if err := json.Unmarshal([]byte(missingJSON), &mr.MissingTechnologies); err != nil {
		return models.MatchResult{}, fmt.Errorf("decoding missing_technologies: %w", err)
	}
	if err := json.Unmarshal([]byte(evidenceJSON), &mr.Evidence); err != nil {
		return models.MatchResult{}, fmt.Errorf("decoding evidence: %w", err)
	}
	return mr, nil
}
