package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

const companyColumns = "id, user_id, company_name, industry, description, website, size_bucket, founded_year, logo_file_id, cover_file_id, linkedin_url, twitter_url"

// CompanyRepository handles company profile database operations
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// CreateCompany creates a company profile row for an existing user
func (r *CompanyRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	query := squirrel.Insert("companies").
		Columns("user_id", "company_name", "industry", "description", "website", "size_bucket", "founded_year", "linkedin_url", "twitter_url").
		Values(company.UserID, company.CompanyName, company.Industry, company.Description, company.Website,
			company.SizeBucket, company.FoundedYear, company.LinkedinURL, company.TwitterURL).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID)
	if err != nil {
		return fmt.Errorf("error creating company profile: %w", err)
	}

	return nil
}

// GetCompanyByUserID retrieves a company profile by its user account ID
func (r *CompanyRepository) GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	return r.getCompany(ctx, squirrel.Eq{"user_id": userID})
}

// GetCompanyByID retrieves a company profile by its own ID
func (r *CompanyRepository) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.getCompany(ctx, squirrel.Eq{"id": id})
}

func (r *CompanyRepository) getCompany(ctx context.Context, cond squirrel.Eq) (*models.Company, error) {
	query := squirrel.Select(companyColumns).
		From("companies").
		Where(cond).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	company := &models.Company{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&company.ID, &company.UserID, &company.CompanyName, &company.Industry, &company.Description,
		&company.Website, &company.SizeBucket, &company.FoundedYear, &company.LogoFileID,
		&company.CoverFileID, &company.LinkedinURL, &company.TwitterURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return company, nil
}

// UpdateCompany updates the editable fields of a company profile
func (r *CompanyRepository) UpdateCompany(ctx context.Context, company *models.Company) error {
	query := squirrel.Update("companies").
		Set("company_name", company.CompanyName).
		Set("industry", company.Industry).
		Set("description", company.Description).
		Set("website", company.Website).
		Set("size_bucket", company.SizeBucket).
		Set("founded_year", company.FoundedYear).
		Set("linkedin_url", company.LinkedinURL).
		Set("twitter_url", company.TwitterURL).
		Where("id = ?", company.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLogoFileID updates the logo file reference for a company
func (r *CompanyRepository) UpdateLogoFileID(ctx context.Context, companyID int64, fileID *int64) error {
	return r.updateFileColumn(ctx, companyID, "logo_file_id", fileID)
}

// UpdateCoverFileID updates the cover image file reference for a company
func (r *CompanyRepository) UpdateCoverFileID(ctx context.Context, companyID int64, fileID *int64) error {
	return r.updateFileColumn(ctx, companyID, "cover_file_id", fileID)
}

func (r *CompanyRepository) updateFileColumn(ctx context.Context, companyID int64, column string, fileID *int64) error {
	query := squirrel.Update("companies").
		Set(column, fileID).
		Where("id = ?", companyID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
