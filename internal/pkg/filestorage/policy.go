package filestorage

import (
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

// UploadPolicy describes what an upload endpoint accepts
type UploadPolicy struct {
	// AllowedTypes is the MIME allow-list
	AllowedTypes []string
	// MaxBytes is the size ceiling in bytes
	MaxBytes int64
}

const megabyte = 1 << 20

// ImagePolicy accepts common image formats up to 5MB (avatars, logos, covers, job photos)
var ImagePolicy = UploadPolicy{
	AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
	MaxBytes:     5 * megabyte,
}

// DocumentPolicy accepts images plus PDF up to 10MB (resumes)
var DocumentPolicy = UploadPolicy{
	AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
	MaxBytes:     10 * megabyte,
}

// Validate checks an uploaded file against the policy before anything is
// written to disk. It returns the detected MIME type on success.
func (p UploadPolicy) Validate(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewBadRequestError("no file provided")
	}

	if fileHeader.Size > p.MaxBytes {
		return "", apperrors.ErrFileTooLarge
	}

	mimeType := detectMimeType(fileHeader)
	for _, allowed := range p.AllowedTypes {
		if mimeType == allowed {
			return mimeType, nil
		}
	}

	return "", apperrors.ErrUnsupportedType
}

// detectMimeType resolves the MIME type from the multipart header, falling
// back to the file extension when the client sent none.
func detectMimeType(fileHeader *multipart.FileHeader) string {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/octet-stream" {
		// Strip any parameters like charset
		if idx := strings.Index(contentType, ";"); idx >= 0 {
			contentType = contentType[:idx]
		}
		return strings.TrimSpace(strings.ToLower(contentType))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		if idx := strings.Index(byExt, ";"); idx >= 0 {
			byExt = byExt[:idx]
		}
		return byExt
	}

	return "application/octet-stream"
}
