package dto

// CreateApplicationRequest submits an application to a job
type CreateApplicationRequest struct {
	JobID       int64   `json:"jobId" binding:"required,min=1"`
	CoverLetter *string `json:"coverLetter,omitempty" binding:"omitempty,max=5000"`
}

// UpdateApplicationStatusRequest moves an application to a new status
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=REVIEWING INTERVIEW ACCEPTED REJECTED"`
	Score  *int   `json:"score,omitempty" binding:"omitempty,min=0,max=100"`
}

// ApplicationFilter carries the query parameters of application listings
type ApplicationFilter struct {
	JobID     int64
	InternID  int64
	CompanyID int64
	Status    string
	Page      int
	PageSize  int
}
