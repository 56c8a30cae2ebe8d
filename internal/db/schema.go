package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap creates the tables on startup if they do not exist yet, so a
// fresh database is usable without a separate migration step.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			company_name  TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id                         TEXT PRIMARY KEY,
			job_title                  TEXT NOT NULL,
			employment_type            TEXT[] NOT NULL,
			work_mode                  TEXT[] NOT NULL,
			salary_min                 DOUBLE PRECISION NOT NULL,
			salary_max                 DOUBLE PRECISION NOT NULL,
			description                TEXT NOT NULL,
			company_name               TEXT NOT NULL,
			job_locations              TEXT[] NOT NULL,
			company_logo               TEXT NOT NULL DEFAULT '',
			company_url                TEXT NOT NULL DEFAULT '',
			roles_and_responsibilities TEXT NOT NULL,
			experience_min             DOUBLE PRECISION NOT NULL,
			experience_max             DOUBLE PRECISION NOT NULL,
			status                     TEXT NOT NULL DEFAULT 'active',
			posted_by                  TEXT NOT NULL REFERENCES users(id),
			created_at                 TIMESTAMPTZ NOT NULL,
			updated_at                 TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS jobs_status_created_idx ON jobs (status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS jobs_posted_by_idx ON jobs (posted_by)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id           TEXT PRIMARY KEY,
			job_id       TEXT NOT NULL,
			email        TEXT NOT NULL,
			linkedin_url TEXT NOT NULL DEFAULT '',
			resume_path  TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'pending',
			submitted_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS applications_job_id_idx ON applications (job_id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
