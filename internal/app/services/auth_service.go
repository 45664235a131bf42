package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/repositories"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/auth"
)

// AuthService handles registration, login and token lifecycle
type AuthService interface {
	RegisterIntern(ctx context.Context, req *dto.RegisterInternRequest) (*dto.AuthResponse, error)
	RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
}

// authUserStore is the slice of UserRepository the auth service needs
type authUserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	CreateIntern(ctx context.Context, intern *models.Intern) error
	CreateCompany(ctx context.Context, company *models.Company) error
}

// tokenStore is the slice of TokenRepository the auth service needs
type tokenStore interface {
	StoreRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

type authService struct {
	userStore  authUserStore
	tokenStore tokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore authUserStore, tokenStore tokenStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterIntern creates an intern account with its profile
func (s *authService) RegisterIntern(ctx context.Context, req *dto.RegisterInternRequest) (*dto.AuthResponse, error) {
	user, err := s.registerUser(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Phone, models.RoleIntern)
	if err != nil {
		return nil, err
	}

	intern := &models.Intern{
		UserID:     user.ID,
		Headline:   req.Headline,
		Location:   req.Location,
		Skills:     []string{},
		Education:  []models.Education{},
		Experience: []models.Experience{},
	}
	if err := s.userStore.CreateIntern(ctx, intern); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to create intern profile")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Intern registered")
	return s.issueTokens(ctx, user)
}

// RegisterCompany creates a company account with its profile
func (s *authService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error) {
	user, err := s.registerUser(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Phone, models.RoleCompany)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		UserID:      user.ID,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Website:     req.Website,
	}
	if err := s.userStore.CreateCompany(ctx, company); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to create company profile")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("company", company.CompanyName).Msg("Company registered")
	return s.issueTokens(ctx, user)
}

func (s *authService) registerUser(ctx context.Context, email, password, firstName, lastName string, phone *string, role models.Role) (*models.User, error) {
	exists, err := s.userStore.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Role:      role,
		IsActive:  true,
	}

	id, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	return user, nil
}

// Login authenticates a user and issues a token pair
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			TokenType:        "Bearer",
			ExpiresIn:        int64(expiresIn),
			RefreshExpiresIn: int64(refreshExpiresIn),
		},
		User: user,
	}, nil
}

// RefreshToken rotates a refresh token and issues a new token pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenStore.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userStore.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation: the old token is dead once a new pair is issued
	if err := s.tokenStore.RevokeRefreshToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to revoke rotated refresh token")
	}

	accessToken, newRefreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, user.ID, newRefreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// Logout revokes the presented refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenStore.RevokeRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			// Token already gone; logout is idempotent
			return nil
		}
		return err
	}
	return nil
}

// ChangePassword verifies the current password and replaces it, revoking all sessions
func (s *authService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userStore.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	if err := s.tokenStore.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password change")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}
