package auth

import (
	"context"
	"errors"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/repositories"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/logger"
)

// AuthorizationService handles ownership and role checks that need database
// state beyond what the JWT claims carry.
type AuthorizationService struct {
	userRepo *repositories.UserRepository
	jobRepo  *repositories.JobRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository, jobRepo *repositories.JobRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
		jobRepo:  jobRepo,
	}
}

// GetCompanyForUser resolves the company profile of a company-role user
func (s *AuthorizationService) GetCompanyForUser(ctx context.Context, userID int64) (*models.Company, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCompany {
		return nil, apperrors.ErrPermissionDenied
	}

	company, err := s.userRepo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Warn().Int64("userID", userID).Msg("Company profile missing for company-role user")
		}
		return nil, err
	}

	return company, nil
}

// GetInternForUser resolves the intern profile of an intern-role user
func (s *AuthorizationService) GetInternForUser(ctx context.Context, userID int64) (*models.Intern, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleIntern {
		return nil, apperrors.ErrPermissionDenied
	}

	intern, err := s.userRepo.GetInternByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Warn().Int64("userID", userID).Msg("Intern profile missing for intern-role user")
		}
		return nil, err
	}

	return intern, nil
}

// ValidateJobOwnership ensures the user owns the company behind the job
func (s *AuthorizationService) ValidateJobOwnership(ctx context.Context, jobID, userID int64) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	company, err := s.GetCompanyForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if job.CompanyID != company.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	return job, nil
}

// ValidateApplicationAccess ensures the user is either the applicant or the
// company that owns the job the application targets. Admins pass unconditionally.
func (s *AuthorizationService) ValidateApplicationAccess(ctx context.Context, application *models.Application, userID int64, role models.Role) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleIntern:
		intern, err := s.userRepo.GetInternByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if application.InternID != intern.ID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	case models.RoleCompany:
		company, err := s.userRepo.GetCompanyByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if application.Job == nil || application.Job.CompanyID != company.ID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	}

	return apperrors.ErrPermissionDenied
}
