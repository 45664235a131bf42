package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/services"
	"github.com/internfinder/internfinder/internal/middleware"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
)

// JobController handles job posting operations
type JobController struct {
	jobService services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJob creates a job posting
// @Summary Create a job posting
// @Description Creates a job for the caller's company, ACTIVE unless draft is set
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job fields"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse} "Job created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a company"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	job, err := c.jobService.CreateJob(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromJob(job), "Job created"))
}

// ListJobs lists active job postings
// @Summary List jobs
// @Description Public listing of ACTIVE jobs with filtering, search, sorting and pagination
// @Tags jobs
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param jobType query string false "Filter by job type" Enums(REMOTE, ONSITE, HYBRID)
// @Param location query string false "Filter by location substring"
// @Param search query string false "Search in title and description"
// @Param sortBy query string false "Sort column" Enums(createdAt, deadline, viewCount, title)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=[]dto.JobResponse} "Jobs"
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	filter := c.parseFilter(ctx)

	jobs, pagination, err := c.jobService.ListJobs(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(toJobResponses(jobs), pagination))
}

// ListMyJobs lists the caller company's jobs including drafts
// @Summary List own jobs
// @Description Lists every job of the caller's company, drafts and terminal statuses included, each with its received application count
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Filter by status" Enums(DRAFT, ACTIVE, FILLED, CLOSED, CANCELLED)
// @Success 200 {object} dto.APIResponse{data=[]dto.JobResponse} "Jobs"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a company"
// @Router /my/jobs [get]
func (c *JobController) ListMyJobs(ctx *gin.Context) {
	filter := c.parseFilter(ctx)
	filter.Status = ctx.Query("status")

	jobs, pagination, err := c.jobService.ListCompanyJobs(ctx.Request.Context(), middleware.CurrentUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(toJobResponses(jobs), pagination))
}

// GetJob retrieves a job posting
// @Summary Get a job
// @Description Returns a job posting. Drafts are only visible to their owner. Intern views bump the view counter.
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse} "Job"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.jobService.GetJob(ctx.Request.Context(), id, middleware.CurrentRole(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromJob(job), ""))
}

// UpdateJob edits a job posting
// @Summary Update a job
// @Description Edits the content of a non-terminal job owned by the caller's company
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse} "Updated job"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 409 {object} dto.ErrorResponse "Job is in a terminal status"
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	job, err := c.jobService.UpdateJob(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromJob(job), "Job updated"))
}

// UpdateJobStatus moves a job along its lifecycle
// @Summary Change job status
// @Description Moves a job to a new lifecycle status; only the transitions DRAFT→ACTIVE/CANCELLED and ACTIVE→FILLED/CLOSED/CANCELLED are allowed
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse} "Updated job"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed"
// @Router /jobs/{id}/status [put]
func (c *JobController) UpdateJobStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	job, err := c.jobService.UpdateJobStatus(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), models.JobStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromJob(job), "Job status updated"))
}

// DeleteJob deletes a draft job
// @Summary Delete a draft job
// @Description Deletes a job that never left DRAFT; listed jobs must be closed or cancelled instead
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Job deleted"
// @Failure 409 {object} dto.ErrorResponse "Job is not a draft"
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Job deleted"))
}

func (c *JobController) parseFilter(ctx *gin.Context) *dto.JobFilter {
	page, size := helpers.ParsePaginationParams(ctx)
	return &dto.JobFilter{
		JobType:   ctx.Query("jobType"),
		Location:  ctx.Query("location"),
		Search:    ctx.Query("search"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
		Page:      page,
		PageSize:  size,
	}
}

func toJobResponses(jobs []models.Job) []dto.JobResponse {
	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, dto.FromJob(&jobs[i]))
	}
	return responses
}
