package dto

import "time"

// FileResponse is the API view of an uploaded file
type FileResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileSize  int64     `json:"fileSize"`
	FileType  string    `json:"fileType"` // MIME type
	CreatedAt time.Time `json:"createdAt"`
}
