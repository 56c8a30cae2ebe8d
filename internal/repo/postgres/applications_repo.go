package postgres

import (
	"context"

	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/application"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationsRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationsRepo(pool *pgxpool.Pool) *ApplicationsRepo {
	return &ApplicationsRepo{pool: pool}
}

func (r *ApplicationsRepo) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO applications (id, job_id, email, linkedin_url, resume_path, status, submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.JobID, a.Email, a.LinkedinUrl, a.ResumePath, a.Status, a.SubmittedAt,
	)

	return err
}

// ListByJob matches the jobId column exactly; the reference is opaque and is
// not joined against the jobs table.
func (r *ApplicationsRepo) ListByJob(ctx context.Context, jobID string) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, job_id, email, linkedin_url, resume_path, status, submitted_at
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY submitted_at DESC, id`, jobID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]application.Application, 0)

	for rows.Next() {
		var a application.Application

		err = rows.Scan(&a.ID, &a.JobID, &a.Email, &a.LinkedinUrl, &a.ResumePath, &a.Status, &a.SubmittedAt)

		if err != nil {
			return nil, err
		}

		output = append(output, a)
	}

	return output, rows.Err()
}

// UpdateStatus overwrites the status verbatim; the value is free-form and
// carries no enumeration check.
func (r *ApplicationsRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`, id, status)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}

	return nil
}
