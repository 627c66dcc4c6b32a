package service

import (
	"context"
	"testing"
	"time"

	"job_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockJobRepo struct {
	jobs   map[int64]*model.Job
	nextID int64
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[int64]*model.Job), nextID: 1}
}

func (m *mockJobRepo) Create(ctx context.Context, job *model.Job) error {
	job.ID = m.nextID
	m.nextID++
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockJobRepo) FindByID(ctx context.Context, id int64) (*model.Job, error) {
	return m.jobs[id], nil
}

func (m *mockJobRepo) FindAll(ctx context.Context, filters model.JobFilters) ([]model.Job, error) {
	var out []model.Job
	for _, j := range m.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (m *mockJobRepo) FindByRecruiter(ctx context.Context, recruiterID int) ([]model.Job, error) {
	var out []model.Job
	for _, j := range m.jobs {
		if j.RecruiterID == recruiterID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *mockJobRepo) Update(ctx context.Context, job *model.Job) error {
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockJobRepo) Delete(ctx context.Context, id int64) error {
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.jobs)), nil
}

type mockApplicationRepo struct {
	apps   map[int64]*model.Application
	nextID int64
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[int64]*model.Application), nextID: 1}
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	app.ID = m.nextID
	m.nextID++
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	cp := *app
	m.apps[app.ID] = &cp
	return nil
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	return m.apps[id], nil
}

func (m *mockApplicationRepo) FindByApplicant(ctx context.Context, applicantID int) ([]model.Application, error) {
	var out []model.Application
	for _, a := range m.apps {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) FindByJob(ctx context.Context, jobID int64) ([]model.Application, error) {
	var out []model.Application
	for _, a := range m.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if a, ok := m.apps[id]; ok {
		a.Status = status
	}
	return nil
}

func (m *mockApplicationRepo) HasActiveApplication(ctx context.Context, applicantID int, jobID int64) (bool, error) {
	for _, a := range m.apps {
		if a.ApplicantID == applicantID && a.JobID == jobID &&
			a.Status != model.ApplicationStatusRejected && a.Status != model.ApplicationStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) CountActiveByJob(ctx context.Context, jobID int64) (int64, error) {
	var n int64
	for _, a := range m.apps {
		if a.JobID == jobID &&
			a.Status != model.ApplicationStatusRejected && a.Status != model.ApplicationStatusCancelled {
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, a := range m.apps {
		counts[a.Status]++
	}
	return counts, nil
}

func newJobServiceForTest() (JobService, *mockJobRepo, *mockApplicationRepo, *mockUserRepo) {
	jobRepo := newMockJobRepo()
	appRepo := newMockApplicationRepo()
	userRepo := newMockUserRepo()
	return NewJobService(jobRepo, appRepo, userRepo), jobRepo, appRepo, userRepo
}

func seedJob(t *testing.T, jobRepo *mockJobRepo, recruiterID, maxApplicants int, deadline time.Time) *model.Job {
	t.Helper()
	job := &model.Job{
		RecruiterID:   recruiterID,
		Title:         "Backend Engineer",
		MaxApplicants: maxApplicants,
		MaxPositions:  1,
		DateOfPosting: time.Now(),
		Deadline:      deadline,
		JobType:       model.JobTypeFullTime,
		Salary:        90000,
		Rating:        model.RatingUnrated,
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))
	return job
}

func TestCreateJob_SetsDefaults(t *testing.T) {
	svc, _, _, _ := newJobServiceForTest()

	job, err := svc.CreateJob(context.Background(), 5, model.CreateJobRequest{
		Title:         "Backend Engineer",
		MaxApplicants: 10,
		MaxPositions:  2,
		Deadline:      time.Now().Add(7 * 24 * time.Hour),
		JobType:       model.JobTypeFullTime,
		Salary:        90000,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, job.RecruiterID)
	assert.Equal(t, float64(model.RatingUnrated), job.Rating)
	assert.WithinDuration(t, time.Now(), job.DateOfPosting, 5*time.Second)
}

func TestApply_Success(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	app, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{SOP: "I want this job"})

	require.NoError(t, err)
	assert.Equal(t, 7, app.ApplicantID)
	assert.Equal(t, job.RecruiterID, app.RecruiterID)
	assert.Equal(t, model.ApplicationStatusApplied, app.Status)
	assert.Equal(t, "I want this job", app.SOP)
}

func TestApply_JobNotFound(t *testing.T) {
	svc, _, _, _ := newJobServiceForTest()
	_, err := svc.Apply(context.Background(), 7, 999, model.ApplyRequest{})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestApply_DeadlinePassed(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(-time.Hour))

	_, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestApply_DuplicateActiveApplication(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	_, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApply_AfterCancellationAllowed(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	app, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(context.Background(), app.ID, 7, model.TypeApplicant, model.ApplicationStatusCancelled)
	require.NoError(t, err)

	// a cancelled application no longer blocks reapplying
	_, err = svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	assert.NoError(t, err)
}

func TestApply_JobFull(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 2, time.Now().Add(24*time.Hour))

	_, err := svc.Apply(context.Background(), 1, job.ID, model.ApplyRequest{})
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), 2, job.ID, model.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), 3, job.ID, model.ApplyRequest{})
	assert.ErrorIs(t, err, ErrJobFull)
}

func TestUpdateJob_OnlyOwner(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	newTitle := "Senior Backend Engineer"
	_, err := svc.UpdateJob(context.Background(), job.ID, 6, model.UpdateJobRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateJob(context.Background(), job.ID, 5, model.UpdateJobRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	// untouched fields survive a partial update
	assert.Equal(t, int64(90000), updated.Salary)
}

func TestDeleteJob_OnlyOwner(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	err := svc.DeleteJob(context.Background(), job.ID, 6)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteJob(context.Background(), job.ID, 5)
	assert.NoError(t, err)

	err = svc.DeleteJob(context.Background(), job.ID, 5)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestGetJobApplications_OnlyOwner(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	_, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.GetJobApplications(context.Background(), job.ID, 6)
	assert.ErrorIs(t, err, ErrForbidden)

	apps, err := svc.GetJobApplications(context.Background(), job.ID, 5)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestUpdateApplicationStatus_ApplicantMayOnlyCancelOwn(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	app, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	require.NoError(t, err)

	// someone else's application
	_, err = svc.UpdateApplicationStatus(context.Background(), app.ID, 8, model.TypeApplicant, model.ApplicationStatusCancelled)
	assert.ErrorIs(t, err, ErrForbidden)

	// own application but a status other than cancelled
	_, err = svc.UpdateApplicationStatus(context.Background(), app.ID, 7, model.TypeApplicant, model.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateApplicationStatus(context.Background(), app.ID, 7, model.TypeApplicant, model.ApplicationStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusCancelled, updated.Status)
}

func TestUpdateApplicationStatus_RecruiterRules(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	job := seedJob(t, jobRepo, 5, 10, time.Now().Add(24*time.Hour))

	app, err := svc.Apply(context.Background(), 7, job.ID, model.ApplyRequest{})
	require.NoError(t, err)

	// a recruiter who does not own the posting
	_, err = svc.UpdateApplicationStatus(context.Background(), app.ID, 6, model.TypeRecruiter, model.ApplicationStatusShortlisted)
	assert.ErrorIs(t, err, ErrForbidden)

	// the owning recruiter may not cancel on the applicant's behalf
	_, err = svc.UpdateApplicationStatus(context.Background(), app.ID, 5, model.TypeRecruiter, model.ApplicationStatusCancelled)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateApplicationStatus(context.Background(), app.ID, 5, model.TypeRecruiter, model.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusShortlisted, updated.Status)
}

func TestUpdateApplicationStatus_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newJobServiceForTest()
	_, err := svc.UpdateApplicationStatus(context.Background(), 1, 5, model.TypeRecruiter, "promoted")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetAdminStats(t *testing.T) {
	svc, jobRepo, appRepo, userRepo := newJobServiceForTest()

	userRepo.users[1] = &model.User{ID: 1, Type: model.TypeApplicant}
	userRepo.users[2] = &model.User{ID: 2, Type: model.TypeApplicant}
	userRepo.users[3] = &model.User{ID: 3, Type: model.TypeRecruiter}

	job := seedJob(t, jobRepo, 3, 10, time.Now().Add(24*time.Hour))
	require.NoError(t, appRepo.Create(context.Background(), &model.Application{
		ApplicantID: 1, RecruiterID: 3, JobID: job.ID, Status: model.ApplicationStatusApplied,
	}))
	require.NoError(t, appRepo.Create(context.Background(), &model.Application{
		ApplicantID: 2, RecruiterID: 3, JobID: job.ID, Status: model.ApplicationStatusShortlisted,
	}))

	stats, err := svc.GetAdminStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UsersByType[model.TypeApplicant])
	assert.Equal(t, int64(1), stats.UsersByType[model.TypeRecruiter])
	assert.Equal(t, int64(1), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.ApplicationsByStatus[model.ApplicationStatusApplied])
	assert.Equal(t, int64(1), stats.ApplicationsByStatus[model.ApplicationStatusShortlisted])
}
