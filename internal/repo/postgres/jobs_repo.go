package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/job"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

const jobColumns = `j.id, j.job_title, j.employment_type, j.work_mode,
	j.salary_min, j.salary_max, j.description, j.company_name, j.job_locations,
	j.company_logo, j.company_url, j.roles_and_responsibilities,
	j.experience_min, j.experience_max, j.status, j.posted_by, j.created_at, j.updated_at`

func scanJob(row pgx.Row, withEmail bool) (job.WithEmployer, error) {
	var out job.WithEmployer

	dest := []any{
		&out.ID, &out.JobTitle, &out.EmploymentType, &out.WorkMode,
		&out.Salary.Min, &out.Salary.Max, &out.Description, &out.CompanyName, &out.JobLocations,
		&out.CompanyLogo, &out.CompanyUrl, &out.RolesAndResponsibilities,
		&out.Experience.Min, &out.Experience.Max, &out.Status, &out.PostedBy, &out.CreatedAt, &out.UpdatedAt,
	}

	if withEmail {
		dest = append(dest, &out.EmployerEmail)
	}

	if err := row.Scan(dest...); err != nil {
		return job.WithEmployer{}, err
	}

	return out, nil
}

func (r *JobsRepo) Create(ctx context.Context, j job.Job) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO jobs (id, job_title, employment_type, work_mode,
			salary_min, salary_max, description, company_name, job_locations,
			company_logo, company_url, roles_and_responsibilities,
			experience_min, experience_max, status, posted_by, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		j.ID, j.JobTitle, j.EmploymentType, j.WorkMode,
		j.Salary.Min, j.Salary.Max, j.Description, j.CompanyName, j.JobLocations,
		j.CompanyLogo, j.CompanyUrl, j.RolesAndResponsibilities,
		j.Experience.Min, j.Experience.Max, j.Status, j.PostedBy, j.CreatedAt, j.UpdatedAt,
	)

	return err
}

// List returns every job with the posting employer's email resolved via a
// join rather than an embedded copy.
func (r *JobsRepo) List(ctx context.Context) ([]job.WithEmployer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+`, COALESCE(u.email, '') AS employer_email
		 FROM jobs j
		 LEFT JOIN users u ON u.id = j.posted_by
		 ORDER BY j.created_at DESC, j.id`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]job.WithEmployer, 0)

	for rows.Next() {
		j, err := scanJob(rows, true)

		if err != nil {
			return nil, err
		}

		output = append(output, j)
	}

	return output, rows.Err()
}

func (r *JobsRepo) GetByID(ctx context.Context, id string) (job.WithEmployer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+`, COALESCE(u.email, '') AS employer_email
		 FROM jobs j
		 LEFT JOIN users u ON u.id = j.posted_by
		 WHERE j.id = $1`, id)

	j, err := scanJob(row, true)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.WithEmployer{}, job.ErrNotFound
		}
		return job.WithEmployer{}, err
	}

	return j, nil
}

func (r *JobsRepo) ListByOwner(ctx context.Context, ownerID string) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.posted_by = $1
		 ORDER BY j.created_at DESC, j.id`, ownerID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]job.Job, 0)

	for rows.Next() {
		j, err := scanJob(rows, false)

		if err != nil {
			return nil, err
		}

		output = append(output, j.Job)
	}

	return output, rows.Err()
}

// GetOwned fetches a job only when it exists AND belongs to ownerID. A job
// owned by someone else comes back as ErrNotFound, identical to a missing
// one, so callers cannot probe for existence.
func (r *JobsRepo) GetOwned(ctx context.Context, id, ownerID string) (job.Job, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.id = $1 AND j.posted_by = $2`, id, ownerID)

	j, err := scanJob(row, false)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}

	return j.Job, nil
}

// Update overwrites the record, again scoped to id+owner in a single
// statement so the ownership check cannot race with the write.
func (r *JobsRepo) Update(ctx context.Context, j job.Job) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs
			SET job_title = $3,
					employment_type = $4,
					work_mode = $5,
					salary_min = $6,
					salary_max = $7,
					description = $8,
					company_name = $9,
					job_locations = $10,
					company_logo = $11,
					company_url = $12,
					roles_and_responsibilities = $13,
					experience_min = $14,
					experience_max = $15,
					status = $16,
					updated_at = $17
		 WHERE id = $1 AND posted_by = $2`,
		j.ID, j.PostedBy,
		j.JobTitle, j.EmploymentType, j.WorkMode,
		j.Salary.Min, j.Salary.Max, j.Description, j.CompanyName, j.JobLocations,
		j.CompanyLogo, j.CompanyUrl, j.RolesAndResponsibilities,
		j.Experience.Min, j.Experience.Max, j.Status, j.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}

	return nil
}

func (r *JobsRepo) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND posted_by = $2`, id, ownerID)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}

	return nil
}

// Search builds the filter dynamically with positional args only; the
// substring patterns travel as parameters, never by string concatenation.
func (r *JobsRepo) Search(ctx context.Context, filter job.SearchFilter) ([]job.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs j`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Keyword != nil {
		conds = append(conds, fmt.Sprintf(
			`(j.job_title ILIKE '%%' || $%d || '%%'
			 OR j.description ILIKE '%%' || $%d || '%%'
			 OR j.company_name ILIKE '%%' || $%d || '%%')`,
			argsPosition, argsPosition, argsPosition))
		args = append(args, *filter.Keyword)
		argsPosition++
	}

	if filter.Location != nil {
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM unnest(j.job_locations) AS loc WHERE loc ILIKE '%%' || $%d || '%%')`,
			argsPosition))
		args = append(args, *filter.Location)
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY j.created_at DESC, j.id"

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]job.Job, 0)

	for rows.Next() {
		j, err := scanJob(rows, false)

		if err != nil {
			return nil, err
		}

		output = append(output, j.Job)
	}

	return output, rows.Err()
}
