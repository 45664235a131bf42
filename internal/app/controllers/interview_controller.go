package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/services"
	"github.com/internfinder/internfinder/internal/middleware"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
)

// InterviewController handles interview operations
type InterviewController struct {
	interviewService services.InterviewService
	logger           zerolog.Logger
}

// NewInterviewController creates a new InterviewController
func NewInterviewController(interviewService services.InterviewService, logger zerolog.Logger) *InterviewController {
	return &InterviewController{
		interviewService: interviewService,
		logger:           logger,
	}
}

// Schedule creates an interview
// @Summary Schedule an interview
// @Description Schedules an interview for an application to one of the caller company's jobs and moves the application into INTERVIEW
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleInterviewRequest true "Interview fields"
// @Success 201 {object} dto.APIResponse{data=models.Interview} "Interview scheduled"
// @Failure 403 {object} dto.ErrorResponse "Application belongs to another company"
// @Failure 409 {object} dto.ErrorResponse "Application is terminal"
// @Router /interviews [post]
func (c *InterviewController) Schedule(ctx *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.interviewService.Schedule(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(interview, "Interview scheduled"))
}

// GetInterview retrieves an interview
// @Summary Get an interview
// @Description Returns an interview visible to the applicant, the company or an admin
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.APIResponse{data=models.Interview} "Interview"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /interviews/{id} [get]
func (c *InterviewController) GetInterview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	interview, err := c.interviewService.GetInterview(ctx.Request.Context(), id,
		middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interview, ""))
}

// ListByApplication lists the interviews of an application
// @Summary List interviews of an application
// @Description Returns the interviews of an application visible to the caller, newest first
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Interview} "Interviews"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the application"
// @Router /applications/{id}/interviews [get]
func (c *InterviewController) ListByApplication(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	interviews, err := c.interviewService.ListByApplication(ctx.Request.Context(), applicationID,
		middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interviews, ""))
}

// ListMyInterviews lists the caller's interviews
// @Summary List own interviews
// @Description Lists the interviews the caller is a party to, soonest first. Companies see interviews they scheduled, interns see interviews they are invited to.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Filter by status" Enums(SCHEDULED, RESCHEDULED, COMPLETED, CANCELLED)
// @Success 200 {object} dto.APIResponse{data=[]models.Interview} "Interviews"
// @Router /my/interviews [get]
func (c *InterviewController) ListMyInterviews(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.InterviewFilter{
		Status:   ctx.Query("status"),
		Page:     page,
		PageSize: size,
	}

	interviews, pagination, err := c.interviewService.ListOwn(ctx.Request.Context(),
		middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(interviews, pagination))
}

// Reschedule moves an interview to a new time
// @Summary Reschedule an interview
// @Description Moves an open interview to a new time with a reason; completed or cancelled interviews cannot move
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Param request body dto.RescheduleInterviewRequest true "New time and reason"
// @Success 200 {object} dto.APIResponse{data=models.Interview} "Rescheduled interview"
// @Failure 409 {object} dto.ErrorResponse "Interview is not open"
// @Router /interviews/{id}/reschedule [post]
func (c *InterviewController) Reschedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RescheduleInterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.interviewService.Reschedule(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interview, "Interview rescheduled"))
}

// Cancel cancels an interview
// @Summary Cancel an interview
// @Description Cancels an open interview with a reason
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Param request body dto.CancelInterviewRequest true "Cancellation reason"
// @Success 200 {object} dto.APIResponse{data=models.Interview} "Cancelled interview"
// @Failure 409 {object} dto.ErrorResponse "Interview is not open"
// @Router /interviews/{id}/cancel [post]
func (c *InterviewController) Cancel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CancelInterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.interviewService.Cancel(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interview, "Interview cancelled"))
}

// SubmitFeedback attaches feedback and completes the interview
// @Summary Submit interview feedback
// @Description Attaches the interviewer's assessment to an open interview and marks it COMPLETED. Feedback is write-once.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Param request body dto.InterviewFeedbackRequest true "Assessment"
// @Success 200 {object} dto.APIResponse{data=models.Interview} "Completed interview"
// @Failure 409 {object} dto.ErrorResponse "Feedback already submitted or interview not open"
// @Router /interviews/{id}/feedback [post]
func (c *InterviewController) SubmitFeedback(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.InterviewFeedbackRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.interviewService.SubmitFeedback(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interview, "Feedback submitted"))
}
