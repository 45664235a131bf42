package repositories

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

// FileRepository handles file metadata database operations
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create stores metadata for an uploaded file and returns the generated ID
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	query := squirrel.Insert("files").
		Columns("file_name", "file_path", "file_url", "file_size", "file_type", "resource_type", "uploaded_by").
		Values(file.FileName, file.FilePath, file.FileURL, file.FileSize, file.FileType, file.ResourceType, file.UploadedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating file record: %w", err)
	}

	return id, nil
}

// GetByID retrieves a file record by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := squirrel.Select("id", "file_name", "file_path", "file_url", "file_size",
		"file_type", "resource_type", "uploaded_by", "created_at").
		From("files").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	file := &models.File{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&file.ID, &file.FileName, &file.FilePath, &file.FileURL, &file.FileSize,
		&file.FileType, &file.ResourceType, &file.UploadedBy, &file.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return file, nil
}

// Delete removes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("files").
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
		return apperrors.ErrFileNotFound
	}

	return nil
}
