package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/dberrors"
)

const reviewColumns = "r.id, r.reviewer_id, r.target_id, r.job_id, r.direction, r.rating, " +
	"r.content, r.status, r.admin_notes, r.created_at, r.updated_at"

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review. The unique index on (reviewer_id, target_id, job_id)
// rejects duplicate reviews for the same context.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (int64, error) {
	query := squirrel.Insert("reviews").
		Columns("reviewer_id", "target_id", "job_id", "direction", "rating", "content", "status").
		Values(review.ReviewerID, review.TargetID, review.JobID, review.Direction,
			review.Rating, review.Content, review.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrReviewExists
		}
		return 0, fmt.Errorf("error creating review: %w", err)
	}

	return id, nil
}

// GetByID retrieves a review with the reviewer's display name
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query := squirrel.Select(reviewColumns, "u.first_name", "u.last_name").
		From("reviews r").
		Join("users u ON u.id = r.reviewer_id").
		Where("r.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	review := &models.Review{Reviewer: &models.User{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&review.ID, &review.ReviewerID, &review.TargetID, &review.JobID,
		&review.Direction, &review.Rating, &review.Content, &review.Status,
		&review.AdminNotes, &review.CreatedAt, &review.UpdatedAt,
		&review.Reviewer.FirstName, &review.Reviewer.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	review.Reviewer.ID = review.ReviewerID

	return review, nil
}

// GetAll retrieves reviews matching the filter with pagination
func (r *ReviewRepository) GetAll(ctx context.Context, filter *dto.ReviewFilter) ([]models.Review, int64, error) {
	query := squirrel.Select(reviewColumns, "u.first_name", "u.last_name", "COUNT(*) OVER()").
		From("reviews r").
		Join("users u ON u.id = r.reviewer_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.TargetID > 0 {
		query = query.Where("r.target_id = ?", filter.TargetID)
	}
	if filter.ReviewerID > 0 {
		query = query.Where("r.reviewer_id = ?", filter.ReviewerID)
	}
	if filter.Status != "" {
		query = query.Where("r.status = ?", filter.Status)
	}

	query = query.OrderBy("r.created_at DESC")

	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	var total int64

	for rows.Next() {
		var review models.Review
		review.Reviewer = &models.User{}
		err := rows.Scan(
			&review.ID, &review.ReviewerID, &review.TargetID, &review.JobID,
			&review.Direction, &review.Rating, &review.Content, &review.Status,
			&review.AdminNotes, &review.CreatedAt, &review.UpdatedAt,
			&review.Reviewer.FirstName, &review.Reviewer.LastName, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		review.Reviewer.ID = review.ReviewerID
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

// UpdateStatus resolves a review's moderation status
func (r *ReviewRepository) UpdateStatus(ctx context.Context, reviewID int64, status models.ReviewStatus, adminNotes *string) error {
	query := squirrel.Update("reviews").
		Set("status", status).
		Set("admin_notes", adminNotes).
		Set("updated_at", time.Now()).
		Where("id = ?", reviewID).
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
		return apperrors.ErrReviewNotFound
	}

	return nil
}

// GetSummary aggregates the approved ratings for a target user
func (r *ReviewRepository) GetSummary(ctx context.Context, targetID int64) (*dto.ReviewSummary, error) {
	summary := &dto.ReviewSummary{TargetID: targetID}
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE target_id = $1 AND status = 'APPROVED'`,
		targetID).Scan(&summary.AverageRating, &summary.ReviewCount)
	if err != nil {
		return nil, fmt.Errorf("error aggregating reviews: %w", err)
	}

	return summary, nil
}

// Delete deletes a review
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("reviews").
		Where("id = ?", id).
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
		return apperrors.ErrReviewNotFound
	}

	return nil
}
