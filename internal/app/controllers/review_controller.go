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

// ReviewController handles review operations
type ReviewController struct {
	reviewService services.ReviewService
	logger        zerolog.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService, logger zerolog.Logger) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		logger:        logger,
	}
}

// CreateReview submits a review
// @Summary Submit a review
// @Description Submits a review about the other marketplace side. Requires an accepted application between the parties. New reviews start PENDING and stay hidden until approved.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review fields"
// @Success 201 {object} dto.APIResponse{data=models.Review} "Review submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid rating or direction"
// @Failure 403 {object} dto.ErrorResponse "No accepted application between the parties"
// @Failure 409 {object} dto.ErrorResponse "Duplicate review"
// @Router /reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.CreateReview(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(review, "Review submitted"))
}

// ListUserReviews lists the approved reviews about a user
// @Summary List reviews about a user
// @Description Returns the APPROVED reviews targeting the given user. Admins see every status.
// @Tags reviews
// @Produce json
// @Param id path int true "Target user ID"
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Review} "Reviews"
// @Router /users/{id}/reviews [get]
func (c *ReviewController) ListUserReviews(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.ReviewFilter{
		TargetID: targetID,
		Page:     page,
		PageSize: size,
	}

	reviews, pagination, err := c.reviewService.ListReviews(ctx.Request.Context(), filter, middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(reviews, pagination))
}

// ListMyReviews lists the reviews written by the caller
// @Summary List own reviews
// @Description Returns the reviews the caller submitted, in every moderation state
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} dto.APIResponse{data=[]models.Review} "Reviews"
// @Router /my/reviews [get]
func (c *ReviewController) ListMyReviews(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.ReviewFilter{
		Status:   ctx.Query("status"),
		Page:     page,
		PageSize: size,
	}

	reviews, pagination, err := c.reviewService.ListOwn(ctx.Request.Context(), middleware.CurrentUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(reviews, pagination))
}

// Retract deletes the caller's pending review
// @Summary Retract a review
// @Description Deletes the caller's own review while it is still pending moderation. Moderated reviews cannot be retracted.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} dto.APIResponse "Review retracted"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the author"
// @Failure 409 {object} dto.ErrorResponse "Review already moderated"
// @Router /reviews/{id} [delete]
func (c *ReviewController) Retract(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.reviewService.Retract(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Review retracted"))
}

// GetSummary aggregates a user's approved ratings
// @Summary Get review summary
// @Description Returns the average rating and count over the APPROVED reviews of a user
// @Tags reviews
// @Produce json
// @Param id path int true "Target user ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewSummary} "Summary"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/reviews/summary [get]
func (c *ReviewController) GetSummary(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.reviewService.GetSummary(ctx.Request.Context(), targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary, ""))
}

// ListPending lists reviews awaiting moderation
// @Summary List pending reviews
// @Description Returns the reviews awaiting moderation. Admin only.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Review} "Pending reviews"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /admin/reviews/pending [get]
func (c *ReviewController) ListPending(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.ReviewFilter{
		Page:     page,
		PageSize: size,
	}

	reviews, pagination, err := c.reviewService.ListPending(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(reviews, pagination))
}

// Moderate resolves a pending review
// @Summary Moderate a review
// @Description Approves or rejects a pending review. Moderation is final. Admin only.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body dto.ModerateReviewRequest true "Resolution"
// @Success 200 {object} dto.APIResponse{data=models.Review} "Moderated review"
// @Failure 409 {object} dto.ErrorResponse "Review already moderated"
// @Router /admin/reviews/{id}/moderate [put]
func (c *ReviewController) Moderate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ModerateReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.Moderate(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(review, "Review moderated"))
}
