package models

import "time"

// FileResource represents the kind of entity a file belongs to
type FileResource string

const (
	FileResourceAvatar FileResource = "AVATAR"
	FileResourceLogo   FileResource = "LOGO"
	FileResourceCover  FileResource = "COVER"
	FileResourceResume FileResource = "RESUME"
	FileResourceJob    FileResource = "JOB"
)

// File represents an uploaded file record in the 'files' table
type File struct {
	ID           int64        `json:"id" db:"id"`
	FileName     string       `json:"fileName" db:"file_name"` // Original filename
	FilePath     string       `json:"filePath" db:"file_path"` // Path on disk relative to the storage root
	FileURL      string       `json:"fileUrl" db:"file_url"`   // Publicly served URL
	FileSize     int64        `json:"fileSize" db:"file_size"`
	FileType     string       `json:"fileType" db:"file_type"` // MIME type
	ResourceType FileResource `json:"resourceType" db:"resource_type"`
	UploadedBy   int64        `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}
