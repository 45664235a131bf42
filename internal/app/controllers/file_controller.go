package controllers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/app/services"
	"github.com/internfinder/internfinder/internal/middleware"
)

// FileController handles validated file uploads
type FileController struct {
	fileService services.FileService
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService, logger zerolog.Logger) *FileController {
	return &FileController{
		fileService: fileService,
		logger:      logger,
	}
}

// UploadAvatar uploads a profile image
// @Summary Upload avatar
// @Description Stores a profile image (JPEG, PNG or WebP, max 5MB) and attaches it to the caller's account
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse} "Uploaded file"
// @Failure 400 {object} dto.ErrorResponse "File too large or unsupported type"
// @Router /uploads/avatar [post]
func (c *FileController) UploadAvatar(ctx *gin.Context) {
	c.handleUpload(ctx, c.fileService.UploadAvatar)
}

// UploadLogo uploads a company logo
// @Summary Upload company logo
// @Description Stores a logo image (JPEG, PNG or WebP, max 5MB) for the caller's company
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse} "Uploaded file"
// @Failure 400 {object} dto.ErrorResponse "File too large or unsupported type"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a company"
// @Router /uploads/logo [post]
func (c *FileController) UploadLogo(ctx *gin.Context) {
	c.handleUpload(ctx, c.fileService.UploadLogo)
}

// UploadCover uploads a company cover image
// @Summary Upload company cover
// @Description Stores a cover image (JPEG, PNG or WebP, max 5MB) for the caller's company
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse} "Uploaded file"
// @Failure 400 {object} dto.ErrorResponse "File too large or unsupported type"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a company"
// @Router /uploads/cover [post]
func (c *FileController) UploadCover(ctx *gin.Context) {
	c.handleUpload(ctx, c.fileService.UploadCover)
}

// UploadResume uploads an intern resume
// @Summary Upload resume
// @Description Stores a resume (PDF or image, max 10MB) for the caller's intern profile
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Resume file"
// @Success 201 {object} dto.APIResponse{data=dto.FileResponse} "Uploaded file"
// @Failure 400 {object} dto.ErrorResponse "File too large or unsupported type"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an intern"
// @Router /uploads/resume [post]
func (c *FileController) UploadResume(ctx *gin.Context) {
	c.handleUpload(ctx, c.fileService.UploadResume)
}

// GetFile returns a file record
// @Summary Get file metadata
// @Description Returns the metadata of an uploaded file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} dto.APIResponse{data=dto.FileResponse} "File"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/{id} [get]
func (c *FileController) GetFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := c.fileService.GetFile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toFileResponse(file), ""))
}

type uploadFn func(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.File, error)

func (c *FileController) handleUpload(ctx *gin.Context, upload uploadFn) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file field").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	file, err := upload(ctx.Request.Context(), middleware.CurrentUserID(ctx), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toFileResponse(file), "File uploaded"))
}

func toFileResponse(file *models.File) dto.FileResponse {
	return dto.FileResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileURL:   file.FileURL,
		FileSize:  file.FileSize,
		FileType:  file.FileType,
		CreatedAt: file.CreatedAt,
	}
}
