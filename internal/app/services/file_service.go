package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/filestorage"
)

// FileService handles validated uploads and file record bookkeeping
type FileService interface {
	UploadAvatar(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error)
	UploadLogo(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error)
	UploadCover(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error)
	UploadResume(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error)
	GetFile(ctx context.Context, fileID int64) (*models.File, error)
	ResolveURL(ctx context.Context, fileID *int64) *string
}

// fileRecordStore is the slice of FileRepository the service needs
type fileRecordStore interface {
	Create(ctx context.Context, file *models.File) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Delete(ctx context.Context, id int64) error
}

// fileOwnerStore resolves profiles and swaps their file references
type fileOwnerStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateAvatarFileID(ctx context.Context, userID int64, fileID *int64) error
	GetInternByUserID(ctx context.Context, userID int64) (*models.Intern, error)
	UpdateResumeFileID(ctx context.Context, internID int64, fileID *int64) error
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error)
	UpdateLogoFileID(ctx context.Context, companyID int64, fileID *int64) error
	UpdateCoverFileID(ctx context.Context, companyID int64, fileID *int64) error
}

type fileService struct {
	records fileRecordStore
	owners  fileOwnerStore
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(records fileRecordStore, owners fileOwnerStore, storage filestorage.FileStorage, logger zerolog.Logger) FileService {
	return &fileService{
		records: records,
		owners:  owners,
		storage: storage,
		logger:  logger,
	}
}

// UploadAvatar stores a profile image for any user
func (s *fileService) UploadAvatar(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	user, err := s.owners.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	file, err := s.saveValidated(ctx, userID, fileHeader, filestorage.ImagePolicy, models.FileResourceAvatar, "avatars")
	if err != nil {
		return nil, err
	}

	previous := user.AvatarFileID
	if err := s.owners.UpdateAvatarFileID(ctx, userID, &file.ID); err != nil {
		return nil, err
	}
	s.cleanupReplaced(ctx, previous)

	return file, nil
}

// UploadLogo stores a company logo
func (s *fileService) UploadLogo(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	company, err := s.companyOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	file, err := s.saveValidated(ctx, userID, fileHeader, filestorage.ImagePolicy, models.FileResourceLogo, "logos")
	if err != nil {
		return nil, err
	}

	previous := company.LogoFileID
	if err := s.owners.UpdateLogoFileID(ctx, company.ID, &file.ID); err != nil {
		return nil, err
	}
	s.cleanupReplaced(ctx, previous)

	return file, nil
}

// UploadCover stores a company cover image
func (s *fileService) UploadCover(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	company, err := s.companyOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	file, err := s.saveValidated(ctx, userID, fileHeader, filestorage.ImagePolicy, models.FileResourceCover, "covers")
	if err != nil {
		return nil, err
	}

	previous := company.CoverFileID
	if err := s.owners.UpdateCoverFileID(ctx, company.ID, &file.ID); err != nil {
		return nil, err
	}
	s.cleanupReplaced(ctx, previous)

	return file, nil
}

// UploadResume stores an intern's resume, allowing PDF in addition to images
func (s *fileService) UploadResume(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error) {
	user, err := s.owners.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleIntern {
		return nil, apperrors.ErrPermissionDenied
	}

	intern, err := s.owners.GetInternByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	file, err := s.saveValidated(ctx, userID, fileHeader, filestorage.DocumentPolicy, models.FileResourceResume, "resumes")
	if err != nil {
		return nil, err
	}

	previous := intern.ResumeFileID
	if err := s.owners.UpdateResumeFileID(ctx, intern.ID, &file.ID); err != nil {
		return nil, err
	}
	s.cleanupReplaced(ctx, previous)

	return file, nil
}

// GetFile retrieves a file record
func (s *fileService) GetFile(ctx context.Context, fileID int64) (*models.File, error) {
	return s.records.GetByID(ctx, fileID)
}

// ResolveURL returns the public URL of a stored file, or nil when absent
func (s *fileService) ResolveURL(ctx context.Context, fileID *int64) *string {
	if fileID == nil {
		return nil
	}

	file, err := s.records.GetByID(ctx, *fileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrFileNotFound) {
			s.logger.Warn().Err(err).Int64("fileID", *fileID).Msg("Failed to resolve file URL")
		}
		return nil
	}

	return &file.FileURL
}

func (s *fileService) companyOf(ctx context.Context, userID int64) (*models.Company, error) {
	user, err := s.owners.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCompany {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.owners.GetCompanyByUserID(ctx, userID)
}

func (s *fileService) saveValidated(ctx context.Context, userID int64, fileHeader *multipart.FileHeader, policy filestorage.UploadPolicy, resource models.FileResource, subPath string) (*models.File, error) {
	mimeType, err := policy.Validate(fileHeader)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, subPath)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:     fileHeader.Filename,
		FilePath:     fileURL,
		FileURL:      fileURL,
		FileSize:     fileHeader.Size,
		FileType:     mimeType,
		ResourceType: resource,
		UploadedBy:   userID,
	}

	id, err := s.records.Create(ctx, file)
	if err != nil {
		// Orphaned file on disk; remove it so storage matches the records
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("url", fileURL).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}
	file.ID = id

	s.logger.Info().Int64("fileID", id).Str("resource", string(resource)).Int64("userID", userID).Msg("File uploaded")
	return file, nil
}

// cleanupReplaced removes the previous file record and its bytes after a
// successful replacement. Failures only log; the new upload already stands.
func (s *fileService) cleanupReplaced(ctx context.Context, previousID *int64) {
	if previousID == nil {
		return
	}

	file, err := s.records.GetByID(ctx, *previousID)
	if err != nil {
		return
	}

	if err := s.storage.DeleteFile(file.FileURL); err != nil {
		s.logger.Warn().Err(err).Int64("fileID", file.ID).Msg("Failed to delete replaced file from storage")
	}
	if err := s.records.Delete(ctx, file.ID); err != nil {
		s.logger.Warn().Err(err).Int64("fileID", file.ID).Msg("Failed to delete replaced file record")
	}
}
