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
)

const jobColumns = "j.id, j.company_id, j.title, j.job_type, j.location, j.salary_min, j.salary_max, " +
	"j.salary_currency, j.salary_period, j.duration, j.start_date, j.deadline, j.description, " +
	"j.responsibilities, j.requirements, j.benefits, j.status, j.view_count, j.created_at, j.updated_at"

// JobRepository handles job posting database operations
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job posting and returns the generated ID
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (int64, error) {
	query := squirrel.Insert("jobs").
		Columns("company_id", "title", "job_type", "location", "salary_min", "salary_max",
			"salary_currency", "salary_period", "duration", "start_date", "deadline",
			"description", "responsibilities", "requirements", "benefits", "status").
		Values(job.CompanyID, job.Title, job.JobType, job.Location, job.SalaryMin, job.SalaryMax,
			job.SalaryCurrency, job.SalaryPeriod, job.Duration, job.StartDate, job.Deadline,
			job.Description, job.Responsibilities, job.Requirements, job.Benefits, job.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating job: %w", err)
	}

	return id, nil
}

// GetByID retrieves a job with its company profile
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := squirrel.Select(jobColumns, "c.company_name", "c.user_id").
		From("jobs j").
		Join("companies c ON c.id = j.company_id").
		Where("j.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	job := &models.Job{Company: &models.Company{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.JobType, &job.Location,
		&job.SalaryMin, &job.SalaryMax, &job.SalaryCurrency, &job.SalaryPeriod,
		&job.Duration, &job.StartDate, &job.Deadline, &job.Description,
		&job.Responsibilities, &job.Requirements, &job.Benefits,
		&job.Status, &job.ViewCount, &job.CreatedAt, &job.UpdatedAt,
		&job.Company.CompanyName, &job.Company.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	job.Company.ID = job.CompanyID

	return job, nil
}

// GetAll retrieves jobs matching the filter with pagination
func (r *JobRepository) GetAll(ctx context.Context, filter *dto.JobFilter) ([]models.Job, int64, error) {
	query := squirrel.Select(jobColumns, "c.company_name", "COUNT(*) OVER()").
		From("jobs j").
		Join("companies c ON c.id = j.company_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.CompanyID > 0 {
		query = query.Where("j.company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		query = query.Where("j.status = ?", filter.Status)
	}
	if filter.JobType != "" {
		query = query.Where("j.job_type = ?", filter.JobType)
	}
	if filter.Location != "" {
		query = query.Where("j.location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		query = query.Where("(j.title ILIKE ? OR j.description ILIKE ?)",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	query = query.OrderBy(jobOrderClause(filter.SortBy, filter.SortOrder))

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

	var jobs []models.Job
	var total int64

	for rows.Next() {
		var job models.Job
		job.Company = &models.Company{}
		err := rows.Scan(
			&job.ID, &job.CompanyID, &job.Title, &job.JobType, &job.Location,
			&job.SalaryMin, &job.SalaryMax, &job.SalaryCurrency, &job.SalaryPeriod,
			&job.Duration, &job.StartDate, &job.Deadline, &job.Description,
			&job.Responsibilities, &job.Requirements, &job.Benefits,
			&job.Status, &job.ViewCount, &job.CreatedAt, &job.UpdatedAt,
			&job.Company.CompanyName, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		job.Company.ID = job.CompanyID
		jobs = append(jobs, job)
	}

	return jobs, total, nil
}

// jobOrderClause maps the sort parameters to a safe ORDER BY clause
func jobOrderClause(sortBy, sortOrder string) string {
	column := "j.created_at"
	switch sortBy {
	case "deadline":
		column = "j.deadline"
	case "viewCount":
		column = "j.view_count"
	case "title":
		column = "j.title"
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	return column + " " + direction
}

// Update updates an existing job posting
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	query := squirrel.Update("jobs").
		Set("title", job.Title).
		Set("job_type", job.JobType).
		Set("location", job.Location).
		Set("salary_min", job.SalaryMin).
		Set("salary_max", job.SalaryMax).
		Set("salary_currency", job.SalaryCurrency).
		Set("salary_period", job.SalaryPeriod).
		Set("duration", job.Duration).
		Set("start_date", job.StartDate).
		Set("deadline", job.Deadline).
		Set("description", job.Description).
		Set("responsibilities", job.Responsibilities).
		Set("requirements", job.Requirements).
		Set("benefits", job.Benefits).
		Set("updated_at", time.Now()).
		Where("id = ?", job.ID).
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
		return apperrors.ErrJobNotFound
	}

	return nil
}

// UpdateStatus moves a job to a new lifecycle status
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID int64, status models.JobStatus) error {
	query := squirrel.Update("jobs").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where("id = ?", jobID).
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
		return apperrors.ErrJobNotFound
	}

	return nil
}

// IncrementViewCount atomically bumps the view counter
func (r *JobRepository) IncrementViewCount(ctx context.Context, jobID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET view_count = view_count + 1
		WHERE id = $1`,
		jobID)
	if err != nil {
		return fmt.Errorf("error incrementing view count: %w", err)
	}

	return nil
}

// Delete deletes a job posting
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("jobs").
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
		return apperrors.ErrJobNotFound
	}

	return nil
}
