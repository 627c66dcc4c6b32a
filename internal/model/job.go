package model

import "time"

const (
	JobTypeFullTime     = "full-time"
	JobTypePartTime     = "part-time"
	JobTypeWorkFromHome = "work-from-home"
)

const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusCancelled   = "cancelled"
	ApplicationStatusFinished    = "finished"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted,
		ApplicationStatusAccepted, ApplicationStatusRejected,
		ApplicationStatusCancelled, ApplicationStatusFinished:
		return true
	}
	return false
}

// Job is a posting created by a recruiter.
type Job struct {
	ID            int64     `json:"id"`
	RecruiterID   int       `json:"recruiter_id"`
	Title         string    `json:"title"`
	MaxApplicants int       `json:"max_applicants"`
	MaxPositions  int       `json:"max_positions"`
	DateOfPosting time.Time `json:"date_of_posting"`
	Deadline      time.Time `json:"deadline"`
	SkillSets     []string  `json:"skill_sets"`
	JobType       string    `json:"job_type"`
	Duration      int       `json:"duration"` // months, 0 means indefinite
	Salary        int64     `json:"salary"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateJobRequest is used by recruiters to post a new job.
type CreateJobRequest struct {
	Title         string    `json:"title" binding:"required"`
	MaxApplicants int       `json:"max_applicants" binding:"required,gt=0"`
	MaxPositions  int       `json:"max_positions" binding:"required,gt=0"`
	Deadline      time.Time `json:"deadline" binding:"required"`
	SkillSets     []string  `json:"skill_sets"`
	JobType       string    `json:"job_type" binding:"required,oneof=full-time part-time work-from-home"`
	Duration      int       `json:"duration" binding:"gte=0"`
	Salary        int64     `json:"salary" binding:"gte=0"`
}

// UpdateJobRequest allows partial edits of a posting.
type UpdateJobRequest struct {
	Title         *string    `json:"title,omitempty"`
	MaxApplicants *int       `json:"max_applicants,omitempty" binding:"omitempty,gt=0"`
	MaxPositions  *int       `json:"max_positions,omitempty" binding:"omitempty,gt=0"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	SkillSets     []string   `json:"skill_sets,omitempty"`
	JobType       *string    `json:"job_type,omitempty" binding:"omitempty,oneof=full-time part-time work-from-home"`
	Duration      *int       `json:"duration,omitempty" binding:"omitempty,gte=0"`
	Salary        *int64     `json:"salary,omitempty" binding:"omitempty,gte=0"`
}

// JobFilters contains the filter/sort/pagination parameters for job listings.
type JobFilters struct {
	JobType   *string
	MinSalary *int64
	MaxSalary *int64
	Duration  *int
	Search    *string // matched against title
	SortBy    string  // salary | rating | date_of_posting
	SortDesc  bool
	Limit     int
	Offset    int
}

// Application records one applicant applying to one job.
type Application struct {
	ID                int64     `json:"id"`
	ApplicantID       int       `json:"applicant_id"`
	RecruiterID       int       `json:"recruiter_id"`
	JobID             int64     `json:"job_id"`
	Status            string    `json:"status"`
	SOP               string    `json:"sop"`
	DateOfApplication time.Time `json:"date_of_application"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ApplyRequest is used by applicants to apply to a job.
type ApplyRequest struct {
	SOP string `json:"sop" binding:"max=2000"`
}

// UpdateApplicationStatusRequest is used by recruiters to move an
// application through its lifecycle.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminStats is the aggregate reporting payload for administrators.
type AdminStats struct {
	UsersByType          map[string]int64 `json:"users_by_type"`
	TotalJobs            int64            `json:"total_jobs"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
}
