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

const applicationColumns = "a.id, a.job_id, a.intern_id, a.status, a.score, a.cover_letter, a.created_at, a.updated_at"

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application. The partial unique index on
// (job_id, intern_id) rejects a second active application for the same pair.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) (int64, error) {
	query := squirrel.Insert("applications").
		Columns("job_id", "intern_id", "status", "cover_letter").
		Values(application.JobID, application.InternID, application.Status, application.CoverLetter).
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
			return 0, apperrors.ErrApplicationExists
		}
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetByID retrieves an application with its job and intern context
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := squirrel.Select(applicationColumns,
		"j.company_id", "j.title", "j.status", "i.user_id").
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Join("interns i ON i.id = a.intern_id").
		Where("a.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	app := &models.Application{Job: &models.Job{}, Intern: &models.Intern{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&app.ID, &app.JobID, &app.InternID, &app.Status, &app.Score,
		&app.CoverLetter, &app.CreatedAt, &app.UpdatedAt,
		&app.Job.CompanyID, &app.Job.Title, &app.Job.Status, &app.Intern.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	app.Job.ID = app.JobID
	app.Intern.ID = app.InternID

	return app, nil
}

// GetAll retrieves applications matching the filter with pagination.
// Results carry the job title and company so list views need no extra lookups.
func (r *ApplicationRepository) GetAll(ctx context.Context, filter *dto.ApplicationFilter) ([]models.Application, int64, error) {
	query := squirrel.Select(applicationColumns,
		"j.company_id", "j.title", "j.status", "i.user_id", "COUNT(*) OVER()").
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Join("interns i ON i.id = a.intern_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.JobID > 0 {
		query = query.Where("a.job_id = ?", filter.JobID)
	}
	if filter.InternID > 0 {
		query = query.Where("a.intern_id = ?", filter.InternID)
	}
	if filter.CompanyID > 0 {
		query = query.Where("j.company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		query = query.Where("a.status = ?", filter.Status)
	}

	query = query.OrderBy("a.created_at DESC")

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

	var applications []models.Application
	var total int64

	for rows.Next() {
		var app models.Application
		app.Job = &models.Job{}
		app.Intern = &models.Intern{}
		err := rows.Scan(
			&app.ID, &app.JobID, &app.InternID, &app.Status, &app.Score,
			&app.CoverLetter, &app.CreatedAt, &app.UpdatedAt,
			&app.Job.CompanyID, &app.Job.Title, &app.Job.Status, &app.Intern.UserID, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		app.Job.ID = app.JobID
		app.Intern.ID = app.InternID
		applications = append(applications, app)
	}

	return applications, total, nil
}

// UpdateStatus moves an application to a new status, optionally with a score
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus, score *int) error {
	query := squirrel.Update("applications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where("id = ?", applicationID).
		PlaceholderFormat(squirrel.Dollar)

	if score != nil {
		query = query.Set("score", *score)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// HasAcceptedApplication reports whether an intern was accepted for any job of
// the target company, which gates review submission.
func (r *ApplicationRepository) HasAcceptedApplication(ctx context.Context, internUserID, companyUserID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM applications a
			JOIN jobs j ON j.id = a.job_id
			JOIN companies c ON c.id = j.company_id
			JOIN interns i ON i.id = a.intern_id
			WHERE i.user_id = $1 AND c.user_id = $2 AND a.status = 'ACCEPTED')`,
		internUserID, companyUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking accepted application: %w", err)
	}

	return exists, nil
}

// CountByJobID returns how many applications a job has received
func (r *ApplicationRepository) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM applications WHERE job_id = $1`,
		jobID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}

	return count, nil
}
