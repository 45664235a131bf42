package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

func TestClassifyErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"file too large", apperrors.ErrFileTooLarge, http.StatusBadRequest},
		{"unsupported file type", apperrors.ErrUnsupportedType, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"job not found", apperrors.ErrJobNotFound, http.StatusNotFound},
		{"duplicate application", apperrors.ErrApplicationExists, http.StatusConflict},
		{"invalid transition", apperrors.ErrInvalidStatusChange, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := classifyError(tt.err)
			assert.Equal(t, tt.want, status)
		})
	}
}
