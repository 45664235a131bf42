package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

// UserService handles profile retrieval and edits
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error)
	UpdateInternProfile(ctx context.Context, userID int64, req *dto.UpdateInternProfileRequest) (*dto.UserProfile, error)
	UpdateCompanyProfile(ctx context.Context, userID int64, req *dto.UpdateCompanyProfileRequest) (*dto.UserProfile, error)
	DeactivateAccount(ctx context.Context, userID int64) error
}

// profileStore is the slice of UserRepository the user service needs
type profileStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phone *string) error
	GetInternByUserID(ctx context.Context, userID int64) (*models.Intern, error)
	UpdateIntern(ctx context.Context, intern *models.Intern) error
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	SetUserActive(ctx context.Context, userID int64, active bool) error
}

// fileURLResolver resolves a stored file ID to its public URL
type fileURLResolver interface {
	ResolveURL(ctx context.Context, fileID *int64) *string
}

type userService struct {
	store  profileStore
	files  fileURLResolver
	logger zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(store profileStore, files fileURLResolver, logger zerolog.Logger) UserService {
	return &userService{
		store:  store,
		files:  files,
		logger: logger,
	}
}

// GetProfile returns the combined profile view for a user
func (s *userService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildProfile(ctx, user)
}

func (s *userService) buildProfile(ctx context.Context, user *models.User) (*dto.UserProfile, error) {
	profile := &dto.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
	}
	if s.files != nil {
		profile.AvatarURL = s.files.ResolveURL(ctx, user.AvatarFileID)
	}

	switch user.Role {
	case models.RoleIntern:
		intern, err := s.store.GetInternByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		profile.Intern = intern
	case models.RoleCompany:
		company, err := s.store.GetCompanyByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		profile.Company = company
	}

	return profile, nil
}

// UpdateProfile updates the shared account fields
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	if err := s.store.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Phone); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// UpdateInternProfile updates the intern-specific fields
func (s *userService) UpdateInternProfile(ctx context.Context, userID int64, req *dto.UpdateInternProfileRequest) (*dto.UserProfile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleIntern {
		return nil, apperrors.ErrPermissionDenied
	}

	intern, err := s.store.GetInternByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Headline != nil {
		intern.Headline = req.Headline
	}
	if req.Bio != nil {
		intern.Bio = req.Bio
	}
	if req.Location != nil {
		intern.Location = req.Location
	}
	if req.Skills != nil {
		intern.Skills = req.Skills
	}
	if req.Education != nil {
		intern.Education = req.Education
	}
	if req.Experience != nil {
		intern.Experience = req.Experience
	}

	if err := s.store.UpdateIntern(ctx, intern); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("userID", userID).Msg("Intern profile updated")
	return s.GetProfile(ctx, userID)
}

// UpdateCompanyProfile updates the company-specific fields
func (s *userService) UpdateCompanyProfile(ctx context.Context, userID int64, req *dto.UpdateCompanyProfileRequest) (*dto.UserProfile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCompany {
		return nil, apperrors.ErrPermissionDenied
	}

	company, err := s.store.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		company.CompanyName = *req.CompanyName
	}
	if req.Industry != nil {
		company.Industry = req.Industry
	}
	if req.Description != nil {
		company.Description = req.Description
	}
	if req.Website != nil {
		company.Website = req.Website
	}
	if req.SizeBucket != nil {
		company.SizeBucket = req.SizeBucket
	}
	if req.FoundedYear != nil {
		company.FoundedYear = req.FoundedYear
	}
	if req.LinkedinURL != nil {
		company.LinkedinURL = req.LinkedinURL
	}
	if req.TwitterURL != nil {
		company.TwitterURL = req.TwitterURL
	}

	if err := s.store.UpdateCompany(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("userID", userID).Msg("Company profile updated")
	return s.GetProfile(ctx, userID)
}

// DeactivateAccount disables the account. Disabled accounts cannot log in or
// refresh their sessions; the data stays in place.
func (s *userService) DeactivateAccount(ctx context.Context, userID int64) error {
	if err := s.store.SetUserActive(ctx, userID, false); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Account deactivated")
	return nil
}
