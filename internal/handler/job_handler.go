package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"job_portal/internal/model"
	"job_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// JobHandler handles job posting, application and admin reporting requests
type JobHandler struct {
	service service.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(s service.JobService) *JobHandler {
	return &JobHandler{service: s}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	recruiterID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), recruiterID, req)
	if err != nil {
		log.Printf("Error creating job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var filters model.JobFilters
	if jobType := c.Query("job_type"); jobType != "" {
		filters.JobType = &jobType
	}
	if minSalaryStr := c.Query("min_salary"); minSalaryStr != "" {
		minSalary, err := strconv.ParseInt(minSalaryStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_salary format"})
			return
		}
		filters.MinSalary = &minSalary
	}
	if maxSalaryStr := c.Query("max_salary"); maxSalaryStr != "" {
		maxSalary, err := strconv.ParseInt(maxSalaryStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_salary format"})
			return
		}
		filters.MaxSalary = &maxSalary
	}
	if durationStr := c.Query("duration"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration format"})
			return
		}
		filters.Duration = &duration
	}
	if search := c.Query("q"); search != "" {
		filters.Search = &search
	}
	filters.SortBy = c.Query("sort_by")
	filters.SortDesc = c.Query("sort_order") == "desc"
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit format"})
			return
		}
		filters.Limit = limit
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset format"})
			return
		}
		filters.Offset = offset
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	recruiterID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobs, err := h.service.ListRecruiterJobs(c.Request.Context(), recruiterID)
	if err != nil {
		log.Printf("Error listing recruiter jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	recruiterID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var req model.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := h.service.UpdateJob(c.Request.Context(), jobID, recruiterID, req)
	if err != nil {
		h.respondJobError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	recruiterID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), jobID, recruiterID); err != nil {
		h.respondJobError(c, err, "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

func (h *JobHandler) Apply(c *gin.Context) {
	applicantID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var req model.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	app, err := h.service.Apply(c.Request.Context(), applicantID, jobID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyApplied):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrJobFull), errors.Is(err, service.ErrDeadlinePassed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error applying to job: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply to job"})
		}
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *JobHandler) ListMyApplications(c *gin.Context) {
	applicantID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	apps, err := h.service.GetApplicantApplications(c.Request.Context(), applicantID)
	if err != nil {
		log.Printf("Error listing applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *JobHandler) ListJobApplications(c *gin.Context) {
	recruiterID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	apps, err := h.service.GetJobApplications(c.Request.Context(), jobID, recruiterID)
	if err != nil {
		h.respondJobError(c, err, "Failed to retrieve applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	actorType, err := getAuthUserType(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req model.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	app, err := h.service.UpdateApplicationStatus(c.Request.Context(), applicationID, actorID, actorType, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating application status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application status"})
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *JobHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		log.Printf("Error getting admin stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *JobHandler) respondJobError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// RegisterJobRoutes registers job, application and admin reporting routes
func (h *JobHandler) RegisterJobRoutes(rg *gin.RouterGroup, authMW, applicantMW, recruiterMW, adminMW gin.HandlerFunc) {
	jobRoutes := rg.Group("/jobs")
	jobRoutes.Use(authMW)
	{
		jobRoutes.GET("", h.ListJobs)
		jobRoutes.GET("/:id", h.GetJob)
		jobRoutes.POST("", recruiterMW, h.CreateJob)
		jobRoutes.PUT("/:id", recruiterMW, h.UpdateJob)
		jobRoutes.DELETE("/:id", recruiterMW, h.DeleteJob)
		jobRoutes.POST("/:id/applications", applicantMW, h.Apply)
		jobRoutes.GET("/:id/applications", recruiterMW, h.ListJobApplications)
	}

	recruiterRoutes := rg.Group("/recruiter")
	recruiterRoutes.Use(authMW, recruiterMW)
	{
		recruiterRoutes.GET("/jobs", h.ListMyJobs)
	}

	applicationRoutes := rg.Group("/applications")
	applicationRoutes.Use(authMW)
	{
		applicationRoutes.GET("", applicantMW, h.ListMyApplications)
		applicationRoutes.PUT("/:id/status", h.UpdateApplicationStatus)
	}

	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW, adminMW)
	{
		adminRoutes.GET("/stats", h.GetAdminStats)
	}
}
