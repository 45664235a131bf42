package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/services"
	"github.com/internfinder/internfinder/internal/middleware"
)

// UserController handles profile operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the authenticated user's profile
// @Summary Get own profile
// @Description Returns the combined account and role-specific profile of the caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	profile, err := c.userService.GetProfile(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, ""))
}

// DeactivateAccount disables the caller's account
// @Summary Deactivate own account
// @Description Disables the caller's account. Disabled accounts cannot log in or refresh sessions; the data stays in place.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Account deactivated"
// @Router /profile [delete]
func (c *UserController) DeactivateAccount(ctx *gin.Context) {
	if err := c.userService.DeactivateAccount(ctx.Request.Context(), middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Account deactivated"))
}

// GetUser returns a user's public profile
// @Summary Get a user profile
// @Description Returns the profile of the given user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, ""))
}

// UpdateProfile updates the shared account fields
// @Summary Update own base profile
// @Description Updates first name, last name and phone of the caller
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Profile updated"))
}

// UpdateInternProfile updates intern-specific profile fields
// @Summary Update intern profile
// @Description Updates headline, bio, location, skills, education and experience. Intern role only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateInternProfileRequest true "Intern profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an intern"
// @Router /profile/intern [put]
func (c *UserController) UpdateInternProfile(ctx *gin.Context) {
	var req dto.UpdateInternProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.userService.UpdateInternProfile(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Intern profile updated"))
}

// UpdateCompanyProfile updates company-specific profile fields
// @Summary Update company profile
// @Description Updates company name, industry, description and links. Company role only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCompanyProfileRequest true "Company profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a company"
// @Router /profile/company [put]
func (c *UserController) UpdateCompanyProfile(ctx *gin.Context) {
	var req dto.UpdateCompanyProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.userService.UpdateCompanyProfile(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Company profile updated"))
}

// parseIDParam reads a positive integer path parameter, writing a validation
// error response on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
