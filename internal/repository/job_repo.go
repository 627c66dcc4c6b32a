package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// JobRepository defines operations for job postings
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id int64) (*model.Job, error)
	FindAll(ctx context.Context, filters model.JobFilters) ([]model.Job, error)
	FindByRecruiter(ctx context.Context, recruiterID int) ([]model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type jobRepository struct {
	db DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db DB) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, recruiter_id, title, max_applicants, max_positions, date_of_posting, deadline,
            skill_sets, job_type, duration, salary, rating, created_at, updated_at`

func scanJob(row pgx.Row, j *model.Job) error {
	return row.Scan(
		&j.ID, &j.RecruiterID, &j.Title, &j.MaxApplicants, &j.MaxPositions, &j.DateOfPosting,
		&j.Deadline, &j.SkillSets, &j.JobType, &j.Duration, &j.Salary, &j.Rating,
		&j.CreatedAt, &j.UpdatedAt,
	)
}

// Create inserts a new job posting
func (r *jobRepository) Create(ctx context.Context, j *model.Job) error {
	sql := `INSERT INTO jobs (recruiter_id, title, max_applicants, max_positions, date_of_posting, deadline, skill_sets, job_type, duration, salary, rating)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at`
	if j.SkillSets == nil {
		j.SkillSets = []string{}
	}
	err := r.db.QueryRow(ctx, sql,
		j.RecruiterID, j.Title, j.MaxApplicants, j.MaxPositions, j.DateOfPosting, j.Deadline,
		j.SkillSets, j.JobType, j.Duration, j.Salary, j.Rating,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID retrieves a job by its ID
func (r *jobRepository) FindByID(ctx context.Context, id int64) (*model.Job, error) {
	j := &model.Job{}
	sql := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	if err := scanJob(r.db.QueryRow(ctx, sql, id), j); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}
	return j, nil
}

// FindAll retrieves job listings with filtering, sorting and pagination
func (r *jobRepository) FindAll(ctx context.Context, filters model.JobFilters) ([]model.Job, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + jobColumns + ` FROM jobs`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.JobType != nil && *filters.JobType != "" {
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", argCount))
		args = append(args, *filters.JobType)
		argCount++
	}
	if filters.MinSalary != nil {
		conditions = append(conditions, fmt.Sprintf("salary >= $%d", argCount))
		args = append(args, *filters.MinSalary)
		argCount++
	}
	if filters.MaxSalary != nil {
		conditions = append(conditions, fmt.Sprintf("salary <= $%d", argCount))
		args = append(args, *filters.MaxSalary)
		argCount++
	}
	if filters.Duration != nil {
		// duration 0 means indefinite, filter selects jobs at most N months
		conditions = append(conditions, fmt.Sprintf("duration <= $%d", argCount))
		args = append(args, *filters.Duration)
		argCount++
	}
	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	// Sort column comes from a fixed whitelist, never from user input directly.
	sortColumn := "date_of_posting"
	switch filters.SortBy {
	case "salary":
		sortColumn = "salary"
	case "rating":
		sortColumn = "rating"
	case "date_of_posting", "":
	default:
		return nil, fmt.Errorf("unsupported sort field: %s", filters.SortBy)
	}
	order := "ASC"
	if filters.SortDesc {
		order = "DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, id %s", sortColumn, order, order))

	if filters.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.Limit)
		argCount++
	}
	if filters.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

// FindByRecruiter retrieves all jobs posted by one recruiter
func (r *jobRepository) FindByRecruiter(ctx context.Context, recruiterID int) ([]model.Job, error) {
	sql := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY date_of_posting DESC`
	rows, err := r.db.Query(ctx, sql, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by recruiter: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

// Update modifies an existing job posting, scoped to its recruiter
func (r *jobRepository) Update(ctx context.Context, j *model.Job) error {
	sql := `UPDATE jobs
            SET title = $1, max_applicants = $2, max_positions = $3, deadline = $4, skill_sets = $5,
                job_type = $6, duration = $7, salary = $8
            WHERE id = $9 AND recruiter_id = $10 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		j.Title, j.MaxApplicants, j.MaxPositions, j.Deadline, j.SkillSets,
		j.JobType, j.Duration, j.Salary, j.ID, j.RecruiterID,
	).Scan(&j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("job not found or not owned by recruiter for update")
		}
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// Delete removes a job posting
func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found for deletion")
	}
	return nil
}

// Count returns the total number of job postings
func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}
