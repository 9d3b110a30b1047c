package store

// Schema is the single-file relational store's full DDL. Foreign keys
// with ON DELETE CASCADE enforce invariant 2: deleting a job removes its
// matches, cover letters, applications and folder memberships.
const Schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS jobs (
    job_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    company TEXT NOT NULL,
    division TEXT,
    location TEXT,
    level TEXT,
    openings INTEGER DEFAULT 0,
    applications INTEGER DEFAULT 0,
    deadline DATETIME,
    summary TEXT,
    responsibilities TEXT,
    skills TEXT,
    additional_info TEXT,
    employment_location_arrangement TEXT,
    work_term_duration TEXT,
    compensation_value REAL,
    compensation_currency TEXT,
    compensation_period TEXT,
    compensation_raw TEXT,
    application_documents_required TEXT,
    targeted_degrees_disciplines TEXT,
    active INTEGER NOT NULL DEFAULT 1,
    scraped_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS match_results (
    job_id TEXT PRIMARY KEY REFERENCES jobs(job_id) ON DELETE CASCADE,
    fit_score REAL NOT NULL,
    keyword_match REAL NOT NULL,
    semantic_coverage REAL NOT NULL,
    semantic_strength REAL NOT NULL,
    seniority_alignment REAL NOT NULL,
    matched_technologies TEXT,
    missing_technologies TEXT,
    evidence TEXT,
    analysis_version TEXT NOT NULL,
    analyzed_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_match_results_fit_score ON match_results(fit_score DESC, job_id ASC);

CREATE TABLE IF NOT EXISTS cover_letters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id TEXT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    file_path TEXT,
    generated_by TEXT,
    generated_at DATETIME NOT NULL,
    is_uploaded INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_cover_letters_job ON cover_letters(job_id, generated_at DESC);

CREATE TABLE IF NOT EXISTS applications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id TEXT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
    attempt INTEGER NOT NULL,
    status TEXT NOT NULL,
    cover_letter_id INTEGER REFERENCES cover_letters(id) ON DELETE SET NULL,
    uploaded_document_ids TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    UNIQUE (job_id, attempt)
);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);

CREATE TABLE IF NOT EXISTS folder_memberships (
    job_id TEXT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
    folder TEXT NOT NULL,
    PRIMARY KEY (job_id, folder)
);

CREATE TABLE IF NOT EXISTS store_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
INSERT OR IGNORE INTO store_metadata (key, value) VALUES ('schema_version', '1');
`
