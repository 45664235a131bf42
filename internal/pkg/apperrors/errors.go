package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Job errors
var (
	ErrJobNotFound          = errors.New("job not found")
	ErrJobNotActive         = errors.New("job is not accepting applications")
	ErrJobDeadlinePassed    = errors.New("job application deadline has passed")
	ErrInvalidJobTransition = errors.New("job status transition not allowed")
)

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("an active application for this job already exists")
	ErrInvalidStatusChange = errors.New("application status transition not allowed")
	ErrApplicationTerminal = errors.New("application is in a terminal status")
	ErrSelfApplication     = errors.New("companies cannot apply to jobs")
)

// Interview errors
var (
	ErrInterviewNotFound         = errors.New("interview not found")
	ErrInterviewNotReschedulable = errors.New("interview cannot be rescheduled in its current status")
	ErrInterviewNotCancellable   = errors.New("interview cannot be cancelled in its current status")
	ErrFeedbackAlreadyExists     = errors.New("interview feedback already submitted")
)

// Review errors
var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrReviewExists      = errors.New("a review for this target already exists")
	ErrReviewModerated   = errors.New("review has already been moderated")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrDirectionMismatch = errors.New("review direction does not match the target role")
)

// File errors
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrFileTooLarge    = errors.New("file exceeds the allowed size")
	ErrUnsupportedType = errors.New("file type is not allowed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
