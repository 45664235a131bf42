package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/logger"
)

// HandleAPIError maps service errors to their HTTP responses. Controllers call
// this from their error paths so the wire format stays uniform.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	}

	// Custom errors carry a caller-provided message that is safe to surface
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		detail.Message = custom.Message
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrJobNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Job not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrInterviewNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Interview not found")
	case errors.Is(err, apperrors.ErrReviewNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Review not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "File not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrApplicationExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "An active application for this job already exists")
	case errors.Is(err, apperrors.ErrReviewExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "A review for this target already exists")
	case errors.Is(err, apperrors.ErrFeedbackAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Interview feedback already submitted")
	case errors.Is(err, apperrors.ErrReviewModerated):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Review has already been moderated")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict")

	// State machine violations
	case errors.Is(err, apperrors.ErrInvalidStatusChange):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Application status transition not allowed")
	case errors.Is(err, apperrors.ErrApplicationTerminal):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Application is in a terminal status")
	case errors.Is(err, apperrors.ErrInvalidJobTransition):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Job status transition not allowed")
	case errors.Is(err, apperrors.ErrInterviewNotReschedulable):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Interview cannot be rescheduled in its current status")
	case errors.Is(err, apperrors.ErrInterviewNotCancellable):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Interview cannot be cancelled in its current status")
	case errors.Is(err, apperrors.ErrJobNotActive):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Job is not accepting applications")
	case errors.Is(err, apperrors.ErrJobDeadlinePassed):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Job application deadline has passed")

	// Bad requests
	case errors.Is(err, apperrors.ErrInvalidRating):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rating must be between 1 and 5").WithField("rating")
	case errors.Is(err, apperrors.ErrDirectionMismatch):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Review direction does not match the target role")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File exceeds the allowed size").WithField("file")
	case errors.Is(err, apperrors.ErrUnsupportedType):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File type is not allowed").WithField("file")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Bad request")

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
