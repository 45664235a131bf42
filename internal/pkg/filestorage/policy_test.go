package filestorage

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

func header(filename, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   make(textproto.MIMEHeader),
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestImagePolicyAcceptsImages(t *testing.T) {
	for _, contentType := range []string{"image/jpeg", "image/png", "image/webp"} {
		mimeType, err := ImagePolicy.Validate(header("pic", contentType, megabyte))
		require.NoError(t, err)
		assert.Equal(t, contentType, mimeType)
	}
}

func TestImagePolicyRejectsPDF(t *testing.T) {
	_, err := ImagePolicy.Validate(header("cv.pdf", "application/pdf", megabyte))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedType)
}

func TestImagePolicySizeCeiling(t *testing.T) {
	_, err := ImagePolicy.Validate(header("pic.png", "image/png", 5*megabyte))
	assert.NoError(t, err)

	_, err = ImagePolicy.Validate(header("pic.png", "image/png", 5*megabyte+1))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestDocumentPolicyAcceptsPDFUpTo10MB(t *testing.T) {
	mimeType, err := DocumentPolicy.Validate(header("cv.pdf", "application/pdf", 10*megabyte))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mimeType)

	_, err = DocumentPolicy.Validate(header("cv.pdf", "application/pdf", 10*megabyte+1))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestValidateNilHeader(t *testing.T) {
	_, err := ImagePolicy.Validate(nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDetectMimeTypeStripsParameters(t *testing.T) {
	mimeType, err := ImagePolicy.Validate(header("pic.jpg", "image/jpeg; charset=binary", megabyte))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
}

func TestDetectMimeTypeFallsBackToExtension(t *testing.T) {
	// Browsers sometimes send octet-stream; the extension decides then
	mimeType, err := DocumentPolicy.Validate(header("resume.pdf", "application/octet-stream", megabyte))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mimeType)

	_, err = ImagePolicy.Validate(header("archive.zip", "", megabyte))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedType)
}
