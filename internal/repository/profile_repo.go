package repository

import (
	"context"
	"errors"
	"fmt"

	"job_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository defines operations for the three role profile variants.
type ProfileRepository interface {
	CreateApplicant(ctx context.Context, p *model.ApplicantProfile) error
	CreateRecruiter(ctx context.Context, p *model.RecruiterProfile) error
	CreateAdmin(ctx context.Context, p *model.AdminProfile) error

	FindApplicantByUserID(ctx context.Context, userID int) (*model.ApplicantProfile, error)
	FindRecruiterByUserID(ctx context.Context, userID int) (*model.RecruiterProfile, error)
	FindAdminByUserID(ctx context.Context, userID int) (*model.AdminProfile, error)

	UpdateApplicant(ctx context.Context, p *model.ApplicantProfile) error
	UpdateRecruiter(ctx context.Context, p *model.RecruiterProfile) error
	UpdateAdmin(ctx context.Context, p *model.AdminProfile) error
}

type profileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepository{db: db}
}

// CreateApplicant inserts a new applicant profile
func (r *profileRepository) CreateApplicant(ctx context.Context, p *model.ApplicantProfile) error {
	sql := `INSERT INTO applicant_profiles (user_id, name, education, skills, cgpa, rating, resume, profile)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if p.Education == nil {
		p.Education = []model.Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	err := r.db.QueryRow(ctx, sql, p.UserID, p.Name, p.Education, p.Skills, p.CGPA, p.Rating, p.Resume, p.Profile).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create applicant profile: %w", err)
	}
	return nil
}

// CreateRecruiter inserts a new recruiter profile
func (r *profileRepository) CreateRecruiter(ctx context.Context, p *model.RecruiterProfile) error {
	sql := `INSERT INTO recruiter_profiles (user_id, name, contact_number, bio)
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.UserID, p.Name, p.ContactNumber, p.Bio).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create recruiter profile: %w", err)
	}
	return nil
}

// CreateAdmin inserts a new admin profile
func (r *profileRepository) CreateAdmin(ctx context.Context, p *model.AdminProfile) error {
	sql := `INSERT INTO admin_profiles (user_id, name, contact_number, role, permissions)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if p.Permissions == nil {
		p.Permissions = model.DefaultAdminPermissions
	}
	err := r.db.QueryRow(ctx, sql, p.UserID, p.Name, p.ContactNumber, p.Role, p.Permissions).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create admin profile: %w", err)
	}
	return nil
}

// FindApplicantByUserID retrieves an applicant profile by credential id
func (r *profileRepository) FindApplicantByUserID(ctx context.Context, userID int) (*model.ApplicantProfile, error) {
	p := &model.ApplicantProfile{}
	sql := `SELECT id, user_id, name, education, skills, cgpa, rating, resume, profile
            FROM applicant_profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Education, &p.Skills, &p.CGPA, &p.Rating, &p.Resume, &p.Profile,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find applicant profile: %w", err)
	}
	return p, nil
}

// FindRecruiterByUserID retrieves a recruiter profile by credential id
func (r *profileRepository) FindRecruiterByUserID(ctx context.Context, userID int) (*model.RecruiterProfile, error) {
	p := &model.RecruiterProfile{}
	sql := `SELECT id, user_id, name, contact_number, bio FROM recruiter_profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.ContactNumber, &p.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recruiter profile: %w", err)
	}
	return p, nil
}

// FindAdminByUserID retrieves an admin profile by credential id
func (r *profileRepository) FindAdminByUserID(ctx context.Context, userID int) (*model.AdminProfile, error) {
	p := &model.AdminProfile{}
	sql := `SELECT id, user_id, name, contact_number, role, permissions FROM admin_profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.ContactNumber, &p.Role, &p.Permissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin profile: %w", err)
	}
	return p, nil
}

// UpdateApplicant persists the full applicant profile state
func (r *profileRepository) UpdateApplicant(ctx context.Context, p *model.ApplicantProfile) error {
	sql := `UPDATE applicant_profiles
            SET name = $1, education = $2, skills = $3, cgpa = $4, resume = $5, profile = $6
            WHERE user_id = $7 RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.Name, p.Education, p.Skills, p.CGPA, p.Resume, p.Profile, p.UserID).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("applicant profile not found for update")
		}
		return fmt.Errorf("failed to update applicant profile: %w", err)
	}
	return nil
}

// UpdateRecruiter persists the full recruiter profile state
func (r *profileRepository) UpdateRecruiter(ctx context.Context, p *model.RecruiterProfile) error {
	sql := `UPDATE recruiter_profiles SET name = $1, contact_number = $2, bio = $3
            WHERE user_id = $4 RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.Name, p.ContactNumber, p.Bio, p.UserID).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("recruiter profile not found for update")
		}
		return fmt.Errorf("failed to update recruiter profile: %w", err)
	}
	return nil
}

// UpdateAdmin persists the full admin profile state
func (r *profileRepository) UpdateAdmin(ctx context.Context, p *model.AdminProfile) error {
	sql := `UPDATE admin_profiles SET name = $1, contact_number = $2, role = $3
            WHERE user_id = $4 RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.Name, p.ContactNumber, p.Role, p.UserID).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("admin profile not found for update")
		}
		return fmt.Errorf("failed to update admin profile: %w", err)
	}
	return nil
}
