package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/repositories/user"
)

// UserRepository combines the account, intern and company repositories
// behind a single surface for the service layer.
type UserRepository struct {
	common  *user.Repository
	intern  *user.InternRepository
	company *user.CompanyRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		common:  user.NewRepository(db),
		intern:  user.NewInternRepository(db),
		company: user.NewCompanyRepository(db),
	}
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	return r.common.CreateUser(ctx, u)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// UpdateProfile updates a user's basic profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phone *string) error {
	return r.common.UpdateUserProfile(ctx, userID, firstName, lastName, phone)
}

// UpdateAvatarFileID updates the avatar file reference for a user
func (r *UserRepository) UpdateAvatarFileID(ctx context.Context, userID int64, fileID *int64) error {
	return r.common.UpdateUserAvatarFileID(ctx, userID, fileID)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.common.UpdatePassword(ctx, userID, passwordHash)
}

// SetUserActive toggles the account's active flag
func (r *UserRepository) SetUserActive(ctx context.Context, userID int64, active bool) error {
	return r.common.SetUserActive(ctx, userID, active)
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	return r.common.UpdateLastLogin(ctx, userID)
}

// CreateIntern creates an intern profile
func (r *UserRepository) CreateIntern(ctx context.Context, intern *models.Intern) error {
	return r.intern.CreateIntern(ctx, intern)
}

// GetInternByUserID retrieves an intern profile by user account ID
func (r *UserRepository) GetInternByUserID(ctx context.Context, userID int64) (*models.Intern, error) {
	return r.intern.GetInternByUserID(ctx, userID)
}

// GetInternByID retrieves an intern profile by its own ID
func (r *UserRepository) GetInternByID(ctx context.Context, id int64) (*models.Intern, error) {
	return r.intern.GetInternByID(ctx, id)
}

// UpdateIntern updates an intern profile
func (r *UserRepository) UpdateIntern(ctx context.Context, intern *models.Intern) error {
	return r.intern.UpdateIntern(ctx, intern)
}

// UpdateResumeFileID updates the resume file reference for an intern
func (r *UserRepository) UpdateResumeFileID(ctx context.Context, internID int64, fileID *int64) error {
	return r.intern.UpdateResumeFileID(ctx, internID, fileID)
}

// CreateCompany creates a company profile
func (r *UserRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	return r.company.CreateCompany(ctx, company)
}

// GetCompanyByUserID retrieves a company profile by user account ID
func (r *UserRepository) GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	return r.company.GetCompanyByUserID(ctx, userID)
}

// GetCompanyByID retrieves a company profile by its own ID
func (r *UserRepository) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.company.GetCompanyByID(ctx, id)
}

// UpdateCompany updates a company profile
func (r *UserRepository) UpdateCompany(ctx context.Context, company *models.Company) error {
	return r.company.UpdateCompany(ctx, company)
}

// UpdateLogoFileID updates the logo file reference for a company
func (r *UserRepository) UpdateLogoFileID(ctx context.Context, companyID int64, fileID *int64) error {
	return r.company.UpdateLogoFileID(ctx, companyID, fileID)
}

// UpdateCoverFileID updates the cover image file reference for a company
func (r *UserRepository) UpdateCoverFileID(ctx context.Context, companyID int64, fileID *int64) error {
	return r.company.UpdateCoverFileID(ctx, companyID, fileID)
}
