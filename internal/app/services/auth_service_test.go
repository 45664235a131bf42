package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/repositories"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/auth"
)

type fakeAuthUserStore struct {
	users     map[int64]*models.User
	nextID    int64
	interns   []*models.Intern
	companies []*models.Company
}

func newFakeAuthUserStore(users ...*models.User) *fakeAuthUserStore {
	s := &fakeAuthUserStore{users: make(map[int64]*models.User)}
	for _, u := range users {
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeAuthUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *fakeAuthUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeAuthUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeAuthUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (s *fakeAuthUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	return nil
}

func (s *fakeAuthUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (s *fakeAuthUserStore) CreateIntern(_ context.Context, intern *models.Intern) error {
	s.interns = append(s.interns, intern)
	return nil
}

func (s *fakeAuthUserStore) CreateCompany(_ context.Context, company *models.Company) error {
	s.companies = append(s.companies, company)
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*repositories.RefreshToken)}
}

func (s *fakeTokenStore) StoreRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	s.tokens[token] = &repositories.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeTokenStore) GetRefreshToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	stored, ok := s.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return stored, nil
}

func (s *fakeTokenStore) RevokeRefreshToken(_ context.Context, token string) error {
	stored, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.Revoked = true
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, stored := range s.tokens {
		if stored.UserID == userID {
			stored.Revoked = true
		}
	}
	return nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestRegisterInternCreatesAccountAndProfile(t *testing.T) {
	users := newFakeAuthUserStore()
	tokens := newFakeTokenStore()
	svc := NewAuthService(users, tokens, newTestJWTService(), testLogger)

	resp, err := svc.RegisterIntern(context.Background(), &dto.RegisterInternRequest{
		Email:     "ada@example.com",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)

	require.Len(t, users.interns, 1)
	created := users.users[users.interns[0].UserID]
	require.NotNil(t, created)
	assert.Equal(t, models.RoleIntern, created.Role)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "s3cretpass", created.Password, "password must be stored hashed")
}

func TestRegisterCompanyCreatesProfile(t *testing.T) {
	users := newFakeAuthUserStore()
	svc := NewAuthService(users, newFakeTokenStore(), newTestJWTService(), testLogger)

	_, err := svc.RegisterCompany(context.Background(), &dto.RegisterCompanyRequest{
		Email:       "hr@acme.example",
		Password:    "s3cretpass",
		FirstName:   "Grace",
		LastName:    "Hopper",
		CompanyName: "Acme GmbH",
	})
	require.NoError(t, err)
	require.Len(t, users.companies, 1)
	assert.Equal(t, "Acme GmbH", users.companies[0].CompanyName)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeAuthUserStore(&models.User{ID: 1, Email: "ada@example.com"})
	svc := NewAuthService(users, newFakeTokenStore(), newTestJWTService(), testLogger)

	_, err := svc.RegisterIntern(context.Background(), &dto.RegisterInternRequest{
		Email:     "ada@example.com",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func registeredUser(t *testing.T, svc AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.RegisterIntern(context.Background(), &dto.RegisterInternRequest{
		Email:     "ada@example.com",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return resp
}

func TestLogin(t *testing.T) {
	users := newFakeAuthUserStore()
	svc := NewAuthService(users, newFakeTokenStore(), newTestJWTService(), testLogger)
	registeredUser(t, svc)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	users := newFakeAuthUserStore()
	svc := NewAuthService(users, newFakeTokenStore(), newTestJWTService(), testLogger)
	resp := registeredUser(t, svc)

	user := resp.User.(*models.User)
	user.IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotation(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := NewAuthService(newFakeAuthUserStore(), tokens, newTestJWTService(), testLogger)
	resp := registeredUser(t, svc)

	rotated, err := svc.RefreshToken(context.Background(), resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Token.RefreshToken, rotated.RefreshToken)

	// The old token died with the rotation
	_, err = svc.RefreshToken(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The new one still works
	_, err = svc.RefreshToken(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := NewAuthService(newFakeAuthUserStore(), tokens, newTestJWTService(), testLogger)
	resp := registeredUser(t, svc)

	tokens.tokens[resp.Token.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err := svc.RefreshToken(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserStore(), newFakeTokenStore(), newTestJWTService(), testLogger)

	_, err := svc.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutIsIdempotent(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := NewAuthService(newFakeAuthUserStore(), tokens, newTestJWTService(), testLogger)
	resp := registeredUser(t, svc)

	require.NoError(t, svc.Logout(context.Background(), resp.Token.RefreshToken))
	assert.True(t, tokens.tokens[resp.Token.RefreshToken].Revoked)

	// Logging out an unknown token is not an error
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestChangePassword(t *testing.T) {
	users := newFakeAuthUserStore()
	tokens := newFakeTokenStore()
	svc := NewAuthService(users, tokens, newTestJWTService(), testLogger)
	resp := registeredUser(t, svc)
	user := resp.User.(*models.User)

	err := svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrongpass",
		NewPassword:     "brandnewpass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "s3cretpass",
		NewPassword:     "brandnewpass",
	})
	require.NoError(t, err)

	// Old sessions die with the password change
	assert.True(t, tokens.tokens[resp.Token.RefreshToken].Revoked)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "brandnewpass"})
	assert.NoError(t, err)
}
