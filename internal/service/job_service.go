package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrForbidden           = errors.New("forbidden: user does not have permission for this action")
	ErrAlreadyApplied      = errors.New("an active application for this job already exists")
	ErrJobFull             = errors.New("job has reached its maximum number of applicants")
	ErrDeadlinePassed      = errors.New("application deadline for this job has passed")
	ErrInvalidStatus       = errors.New("invalid application status")
)

// JobService defines job posting, application and admin reporting operations
type JobService interface {
	CreateJob(ctx context.Context, recruiterID int, req model.CreateJobRequest) (*model.Job, error)
	GetJob(ctx context.Context, jobID int64) (*model.Job, error)
	ListJobs(ctx context.Context, filters model.JobFilters) ([]model.Job, error)
	ListRecruiterJobs(ctx context.Context, recruiterID int) ([]model.Job, error)
	UpdateJob(ctx context.Context, jobID int64, recruiterID int, req model.UpdateJobRequest) (*model.Job, error)
	DeleteJob(ctx context.Context, jobID int64, recruiterID int) error

	Apply(ctx context.Context, applicantID int, jobID int64, req model.ApplyRequest) (*model.Application, error)
	GetApplicantApplications(ctx context.Context, applicantID int) ([]model.Application, error)
	GetJobApplications(ctx context.Context, jobID int64, recruiterID int) ([]model.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID int64, actorID int, actorType, status string) (*model.Application, error)

	GetAdminStats(ctx context.Context) (*model.AdminStats, error)
}

type jobService struct {
	jobRepo  repository.JobRepository
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository, userRepo repository.UserRepository) JobService {
	return &jobService{jobRepo: jobRepo, appRepo: appRepo, userRepo: userRepo}
}

func (s *jobService) CreateJob(ctx context.Context, recruiterID int, req model.CreateJobRequest) (*model.Job, error) {
	job := &model.Job{
		RecruiterID:   recruiterID,
		Title:         req.Title,
		MaxApplicants: req.MaxApplicants,
		MaxPositions:  req.MaxPositions,
		DateOfPosting: time.Now(),
		Deadline:      req.Deadline,
		SkillSets:     req.SkillSets,
		JobType:       req.JobType,
		Duration:      req.Duration,
		Salary:        req.Salary,
		Rating:        model.RatingUnrated,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job in repo: %w", err)
	}
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID int64) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, filters model.JobFilters) ([]model.Job, error) {
	jobs, err := s.jobRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs from repo: %w", err)
	}
	return jobs, nil
}

func (s *jobService) ListRecruiterJobs(ctx context.Context, recruiterID int) ([]model.Job, error) {
	jobs, err := s.jobRepo.FindByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recruiter jobs from repo: %w", err)
	}
	return jobs, nil
}

func (s *jobService) UpdateJob(ctx context.Context, jobID int64, recruiterID int, req model.UpdateJobRequest) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for update: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.MaxApplicants != nil {
		job.MaxApplicants = *req.MaxApplicants
	}
	if req.MaxPositions != nil {
		job.MaxPositions = *req.MaxPositions
	}
	if req.Deadline != nil {
		job.Deadline = *req.Deadline
	}
	if req.SkillSets != nil {
		job.SkillSets = req.SkillSets
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Duration != nil {
		job.Duration = *req.Duration
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job in repo: %w", err)
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, jobID int64, recruiterID int) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to find job for deletion: %w", err)
	}
	if job == nil {
		return ErrJobNotFound
	}
	if job.RecruiterID != recruiterID {
		return ErrForbidden
	}
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job in repo: %w", err)
	}
	return nil
}

// Apply records an application for an open job. Duplicate active
// applications, full jobs and expired deadlines are rejected.
func (s *jobService) Apply(ctx context.Context, applicantID int, jobID int64, req model.ApplyRequest) (*model.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for application: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if time.Now().After(job.Deadline) {
		return nil, ErrDeadlinePassed
	}

	exists, err := s.appRepo.HasActiveApplication(ctx, applicantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	active, err := s.appRepo.CountActiveByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active applications: %w", err)
	}
	if active >= int64(job.MaxApplicants) {
		return nil, ErrJobFull
	}

	app := &model.Application{
		ApplicantID:       applicantID,
		RecruiterID:       job.RecruiterID,
		JobID:             jobID,
		Status:            model.ApplicationStatusApplied,
		SOP:               req.SOP,
		DateOfApplication: time.Now(),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application in repo: %w", err)
	}
	return app, nil
}

func (s *jobService) GetApplicantApplications(ctx context.Context, applicantID int) ([]model.Application, error) {
	apps, err := s.appRepo.FindByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicant applications: %w", err)
	}
	return apps, nil
}

func (s *jobService) GetJobApplications(ctx context.Context, jobID int64, recruiterID int) ([]model.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for applications listing: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}

	apps, err := s.appRepo.FindByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application through its lifecycle. The
// recruiter who owns the posting drives the pipeline; the applicant may
// only cancel their own application.
func (s *jobService) UpdateApplicationStatus(ctx context.Context, applicationID int64, actorID int, actorType, status string) (*model.Application, error) {
	if !model.ValidApplicationStatus(status) {
		return nil, ErrInvalidStatus
	}

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application for status update: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	switch actorType {
	case model.TypeApplicant:
		if app.ApplicantID != actorID || status != model.ApplicationStatusCancelled {
			return nil, ErrForbidden
		}
	case model.TypeRecruiter:
		if app.RecruiterID != actorID || status == model.ApplicationStatusCancelled {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("failed to update application status in repo: %w", err)
	}
	app.Status = status
	return app, nil
}

// GetAdminStats aggregates counts for the admin reporting dashboard
func (s *jobService) GetAdminStats(ctx context.Context) (*model.AdminStats, error) {
	usersByType, err := s.userRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users for stats: %w", err)
	}
	totalJobs, err := s.jobRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs for stats: %w", err)
	}
	appsByStatus, err := s.appRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications for stats: %w", err)
	}

	return &model.AdminStats{
		UsersByType:          usersByType,
		TotalJobs:            totalJobs,
		ApplicationsByStatus: appsByStatus,
	}, nil
}
