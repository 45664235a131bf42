package repositories

import (
	"context"
	"encoding/json"
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

const interviewColumns = "iv.id, iv.application_id, iv.interviewer_id, iv.type, iv.scheduled_at, " +
	"iv.duration_minutes, iv.location, iv.meeting_link, iv.status, iv.status_reason, iv.feedback, " +
	"iv.created_at, iv.updated_at"

// InterviewRepository handles interview database operations
type InterviewRepository struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(db *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{db: db}
}

// Create creates a new interview and returns the generated ID
func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) (int64, error) {
	query := squirrel.Insert("interviews").
		Columns("application_id", "interviewer_id", "type", "scheduled_at",
			"duration_minutes", "location", "meeting_link", "status").
		Values(interview.ApplicationID, interview.InterviewerID, interview.Type, interview.ScheduledAt,
			interview.DurationMinutes, interview.Location, interview.MeetingLink, interview.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating interview: %w", err)
	}

	return id, nil
}

// GetByID retrieves an interview with its application context
func (r *InterviewRepository) GetByID(ctx context.Context, id int64) (*models.Interview, error) {
	query := squirrel.Select(interviewColumns, "a.job_id", "a.intern_id", "a.status", "j.company_id").
		From("interviews iv").
		Join("applications a ON a.id = iv.application_id").
		Join("jobs j ON j.id = a.job_id").
		Where("iv.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	interview := &models.Interview{Application: &models.Application{Job: &models.Job{}}}
	var feedback []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&interview.ID, &interview.ApplicationID, &interview.InterviewerID, &interview.Type,
		&interview.ScheduledAt, &interview.DurationMinutes, &interview.Location,
		&interview.MeetingLink, &interview.Status, &interview.StatusReason, &feedback,
		&interview.CreatedAt, &interview.UpdatedAt,
		&interview.Application.JobID, &interview.Application.InternID,
		&interview.Application.Status, &interview.Application.Job.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	interview.Application.ID = interview.ApplicationID
	interview.Application.Job.ID = interview.Application.JobID

	if len(feedback) > 0 {
		interview.Feedback = &models.Feedback{}
		if err := json.Unmarshal(feedback, interview.Feedback); err != nil {
			return nil, fmt.Errorf("error decoding feedback: %w", err)
		}
	}

	return interview, nil
}

// GetByApplicationID retrieves all interviews of an application, newest first
func (r *InterviewRepository) GetByApplicationID(ctx context.Context, applicationID int64) ([]models.Interview, error) {
	query := squirrel.Select("id", "application_id", "interviewer_id", "type", "scheduled_at",
		"duration_minutes", "location", "meeting_link", "status", "status_reason", "feedback",
		"created_at", "updated_at").
		From("interviews").
		Where("application_id = ?", applicationID).
		OrderBy("scheduled_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var interviews []models.Interview
	for rows.Next() {
		var interview models.Interview
		var feedback []byte
		err := rows.Scan(
			&interview.ID, &interview.ApplicationID, &interview.InterviewerID, &interview.Type,
			&interview.ScheduledAt, &interview.DurationMinutes, &interview.Location,
			&interview.MeetingLink, &interview.Status, &interview.StatusReason, &feedback,
			&interview.CreatedAt, &interview.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if len(feedback) > 0 {
			interview.Feedback = &models.Feedback{}
			if err := json.Unmarshal(feedback, interview.Feedback); err != nil {
				return nil, fmt.Errorf("error decoding feedback: %w", err)
			}
		}
		interviews = append(interviews, interview)
	}

	return interviews, nil
}

// GetAll retrieves interviews matching the filter, soonest first
func (r *InterviewRepository) GetAll(ctx context.Context, filter *dto.InterviewFilter) ([]models.Interview, int64, error) {
	query := squirrel.Select(interviewColumns, "a.job_id", "a.intern_id", "a.status", "j.company_id", "COUNT(*) OVER()").
		From("interviews iv").
		Join("applications a ON a.id = iv.application_id").
		Join("jobs j ON j.id = a.job_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.InterviewerID > 0 {
		query = query.Where("iv.interviewer_id = ?", filter.InterviewerID)
	}
	if filter.InternUserID > 0 {
		query = query.Where("a.intern_id IN (SELECT id FROM interns WHERE user_id = ?)", filter.InternUserID)
	}
	if filter.Status != "" {
		query = query.Where("iv.status = ?", filter.Status)
	}

	query = query.OrderBy("iv.scheduled_at ASC")

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

	var interviews []models.Interview
	var total int64

	for rows.Next() {
		interview := models.Interview{Application: &models.Application{Job: &models.Job{}}}
		var feedback []byte
		err := rows.Scan(
			&interview.ID, &interview.ApplicationID, &interview.InterviewerID, &interview.Type,
			&interview.ScheduledAt, &interview.DurationMinutes, &interview.Location,
			&interview.MeetingLink, &interview.Status, &interview.StatusReason, &feedback,
			&interview.CreatedAt, &interview.UpdatedAt,
			&interview.Application.JobID, &interview.Application.InternID,
			&interview.Application.Status, &interview.Application.Job.CompanyID, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		interview.Application.ID = interview.ApplicationID
		interview.Application.Job.ID = interview.Application.JobID
		if len(feedback) > 0 {
			interview.Feedback = &models.Feedback{}
			if err := json.Unmarshal(feedback, interview.Feedback); err != nil {
				return nil, 0, fmt.Errorf("error decoding feedback: %w", err)
			}
		}
		interviews = append(interviews, interview)
	}

	return interviews, total, nil
}

// Reschedule moves an interview to a new time and marks it RESCHEDULED
func (r *InterviewRepository) Reschedule(ctx context.Context, interviewID int64, scheduledAt time.Time, reason *string) error {
	query := squirrel.Update("interviews").
		Set("scheduled_at", scheduledAt).
		Set("status", models.InterviewStatusRescheduled).
		Set("status_reason", reason).
		Set("updated_at", time.Now()).
		Where("id = ?", interviewID).
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
		return apperrors.ErrInterviewNotFound
	}

	return nil
}

// UpdateStatus moves an interview to a new status with an optional reason
func (r *InterviewRepository) UpdateStatus(ctx context.Context, interviewID int64, status models.InterviewStatus, reason *string) error {
	query := squirrel.Update("interviews").
		Set("status", status).
		Set("status_reason", reason).
		Set("updated_at", time.Now()).
		Where("id = ?", interviewID).
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
		return apperrors.ErrInterviewNotFound
	}

	return nil
}

// SaveFeedback attaches feedback to an interview and marks it COMPLETED
func (r *InterviewRepository) SaveFeedback(ctx context.Context, interviewID int64, feedback *models.Feedback) error {
	encoded, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("error encoding feedback: %w", err)
	}

	query := squirrel.Update("interviews").
		Set("feedback", encoded).
		Set("status", models.InterviewStatusCompleted).
		Set("updated_at", time.Now()).
		Where("id = ?", interviewID).
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
		return apperrors.ErrInterviewNotFound
	}

	return nil
}
