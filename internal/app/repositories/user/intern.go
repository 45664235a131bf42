package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

// InternRepository handles intern profile database operations
type InternRepository struct {
	db *pgxpool.Pool
}

// NewInternRepository creates a new InternRepository
func NewInternRepository(db *pgxpool.Pool) *InternRepository {
	return &InternRepository{db: db}
}

// CreateIntern creates an intern profile row for an existing user
func (r *InternRepository) CreateIntern(ctx context.Context, intern *models.Intern) error {
	education, err := json.Marshal(intern.Education)
	if err != nil {
		return fmt.Errorf("error encoding education: %w", err)
	}
	experience, err := json.Marshal(intern.Experience)
	if err != nil {
		return fmt.Errorf("error encoding experience: %w", err)
	}

	query := squirrel.Insert("interns").
		Columns("user_id", "headline", "bio", "location", "skills", "education", "experience", "resume_file_id").
		Values(intern.UserID, intern.Headline, intern.Bio, intern.Location, intern.Skills, education, experience, intern.ResumeFileID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&intern.ID)
	if err != nil {
		return fmt.Errorf("error creating intern profile: %w", err)
	}

	return nil
}

// GetInternByUserID retrieves an intern profile by its user account ID
func (r *InternRepository) GetInternByUserID(ctx context.Context, userID int64) (*models.Intern, error) {
	return r.getIntern(ctx, squirrel.Eq{"user_id": userID})
}

// GetInternByID retrieves an intern profile by its own ID
func (r *InternRepository) GetInternByID(ctx context.Context, id int64) (*models.Intern, error) {
	return r.getIntern(ctx, squirrel.Eq{"id": id})
}

func (r *InternRepository) getIntern(ctx context.Context, cond squirrel.Eq) (*models.Intern, error) {
	query := squirrel.Select("id", "user_id", "headline", "bio", "location", "skills", "education", "experience", "resume_file_id").
		From("interns").
		Where(cond).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	intern := &models.Intern{}
	var education, experience []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&intern.ID, &intern.UserID, &intern.Headline, &intern.Bio, &intern.Location,
		&intern.Skills, &education, &experience, &intern.ResumeFileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	if err := json.Unmarshal(education, &intern.Education); err != nil {
		return nil, fmt.Errorf("error decoding education: %w", err)
	}
	if err := json.Unmarshal(experience, &intern.Experience); err != nil {
		return nil, fmt.Errorf("error decoding experience: %w", err)
	}

	return intern, nil
}

// UpdateIntern updates the editable fields of an intern profile
func (r *InternRepository) UpdateIntern(ctx context.Context, intern *models.Intern) error {
	education, err := json.Marshal(intern.Education)
	if err != nil {
		return fmt.Errorf("error encoding education: %w", err)
	}
	experience, err := json.Marshal(intern.Experience)
	if err != nil {
		return fmt.Errorf("error encoding experience: %w", err)
	}

	query := squirrel.Update("interns").
		Set("headline", intern.Headline).
		Set("bio", intern.Bio).
		Set("location", intern.Location).
		Set("skills", intern.Skills).
		Set("education", education).
		Set("experience", experience).
		Where("id = ?", intern.ID).
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

// UpdateResumeFileID updates the resume file reference for an intern
func (r *InternRepository) UpdateResumeFileID(ctx context.Context, internID int64, fileID *int64) error {
	query := squirrel.Update("interns").
		Set("resume_file_id", fileID).
		Where("id = ?", internID).
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
