package repository

import (
	"context"
	"errors"
	"fmt"

	"job_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// ApplicationRepository defines operations for job applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id int64) (*model.Application, error)
	FindByApplicant(ctx context.Context, applicantID int) ([]model.Application, error)
	FindByJob(ctx context.Context, jobID int64) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	HasActiveApplication(ctx context.Context, applicantID int, jobID int64) (bool, error)
	CountActiveByJob(ctx context.Context, jobID int64) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type applicationRepository struct {
	db DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, applicant_id, recruiter_id, job_id, status, sop, date_of_application, created_at, updated_at`

func scanApplication(row pgx.Row, a *model.Application) error {
	return row.Scan(
		&a.ID, &a.ApplicantID, &a.RecruiterID, &a.JobID, &a.Status, &a.SOP,
		&a.DateOfApplication, &a.CreatedAt, &a.UpdatedAt,
	)
}

// Create inserts a new application
func (r *applicationRepository) Create(ctx context.Context, a *model.Application) error {
	sql := `INSERT INTO applications (applicant_id, recruiter_id, job_id, status, sop, date_of_application)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		a.ApplicantID, a.RecruiterID, a.JobID, a.Status, a.SOP, a.DateOfApplication,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID retrieves an application by its ID
func (r *applicationRepository) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	a := &model.Application{}
	sql := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	if err := scanApplication(r.db.QueryRow(ctx, sql, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find application by ID: %w", err)
	}
	return a, nil
}

// FindByApplicant retrieves all applications made by one applicant
func (r *applicationRepository) FindByApplicant(ctx context.Context, applicantID int) ([]model.Application, error) {
	sql := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY date_of_application DESC`
	return r.queryApplications(ctx, sql, applicantID)
}

// FindByJob retrieves all applications for one job posting
func (r *applicationRepository) FindByJob(ctx context.Context, jobID int64) ([]model.Application, error) {
	sql := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY date_of_application ASC`
	return r.queryApplications(ctx, sql, jobID)
}

func (r *applicationRepository) queryApplications(ctx context.Context, sql string, args ...any) ([]model.Application, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var a model.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to a new lifecycle status
func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	sql := `UPDATE applications SET status = $1 WHERE id = $2 RETURNING updated_at`
	var updatedAt any
	err := r.db.QueryRow(ctx, sql, status, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("application not found for status update")
		}
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

// HasActiveApplication reports whether the applicant already has a
// non-terminated application for the job.
func (r *applicationRepository) HasActiveApplication(ctx context.Context, applicantID int, jobID int64) (bool, error) {
	sql := `SELECT EXISTS (
	            SELECT 1 FROM applications
	            WHERE applicant_id = $1 AND job_id = $2 AND status NOT IN ('rejected', 'cancelled')
	        )`
	var exists bool
	if err := r.db.QueryRow(ctx, sql, applicantID, jobID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return exists, nil
}

// CountActiveByJob counts non-terminated applications for a job, used to
// enforce the posting's applicant cap.
func (r *applicationRepository) CountActiveByJob(ctx context.Context, jobID int64) (int64, error) {
	sql := `SELECT COUNT(*) FROM applications WHERE job_id = $1 AND status NOT IN ('rejected', 'cancelled')`
	var count int64
	if err := r.db.QueryRow(ctx, sql, jobID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications for job: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of applications per lifecycle status
func (r *applicationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan application count row: %w", err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application count rows: %w", err)
	}
	return counts, nil
}
