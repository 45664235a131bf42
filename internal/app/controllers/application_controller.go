package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/services"
	"github.com/internfinder/internfinder/internal/middleware"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
)

// ApplicationController handles application operations
type ApplicationController struct {
	applicationService services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Apply submits an application
// @Summary Apply to a job
// @Description Submits an application to an ACTIVE job. Each intern holds at most one active application per job.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Application fields"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application submitted"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an intern"
// @Failure 409 {object} dto.ErrorResponse "Duplicate application or job not accepting"
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req dto.CreateApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	application, err := c.applicationService.Apply(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application, "Application submitted"))
}

// GetApplication retrieves an application
// @Summary Get an application
// @Description Returns an application visible to the applicant, the job's company or an admin
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.applicationService.GetApplication(ctx.Request.Context(), id,
		middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application, ""))
}

// ListMyApplications lists applications from the caller's side of the market:
// the intern's own applications, or every application across the company's jobs.
// @Summary List own applications
// @Description Lists the caller's applications with optional status filter. Interns see their submissions, companies see applications across all their jobs.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Filter by status" Enums(PENDING, REVIEWING, INTERVIEW, ACCEPTED, REJECTED, WITHDRAWN)
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications"
// @Router /my/applications [get]
func (c *ApplicationController) ListMyApplications(ctx *gin.Context) {
	filter := parseApplicationFilter(ctx)

	var (
		applications []models.Application
		pagination   dto.PaginationInfo
		err          error
	)
	switch middleware.CurrentRole(ctx) {
	case models.RoleCompany:
		applications, pagination, err = c.applicationService.ListCompanyApplications(ctx.Request.Context(),
			middleware.CurrentUserID(ctx), filter)
	case models.RoleIntern:
		applications, pagination, err = c.applicationService.ListOwnApplications(ctx.Request.Context(),
			middleware.CurrentUserID(ctx), filter)
	default:
		err = apperrors.ErrPermissionDenied
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(applications, pagination))
}

// ListJobApplications lists applications to a job
// @Summary List applications for a job
// @Description Lists the applications to one of the caller company's jobs
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Filter by status" Enums(PENDING, REVIEWING, INTERVIEW, ACCEPTED, REJECTED, WITHDRAWN)
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications"
// @Failure 403 {object} dto.ErrorResponse "Job belongs to another company"
// @Router /jobs/{id}/applications [get]
func (c *ApplicationController) ListJobApplications(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	filter := parseApplicationFilter(ctx)

	applications, pagination, err := c.applicationService.ListJobApplications(ctx.Request.Context(),
		jobID, middleware.CurrentUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(applications, pagination))
}

// UpdateStatus moves an application along the company-side state machine
// @Summary Change application status
// @Description Moves an application to REVIEWING, INTERVIEW, ACCEPTED or REJECTED following the allowed transitions. Accepting marks the job FILLED.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "Target status and optional score"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Updated application"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	application, err := c.applicationService.UpdateStatus(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application, "Application status updated"))
}

// Withdraw withdraws the caller's application
// @Summary Withdraw an application
// @Description Moves the caller's non-terminal application to WITHDRAWN, freeing the job for a fresh application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Withdrawn application"
// @Failure 409 {object} dto.ErrorResponse "Application is already terminal"
// @Router /applications/{id}/withdraw [post]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.applicationService.Withdraw(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application, "Application withdrawn"))
}

func parseApplicationFilter(ctx *gin.Context) *dto.ApplicationFilter {
	page, size := helpers.ParsePaginationParams(ctx)
	return &dto.ApplicationFilter{
		Status:   ctx.Query("status"),
		Page:     page,
		PageSize: size,
	}
}
