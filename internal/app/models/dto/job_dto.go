package dto

import (
	"time"

	"github.com/internfinder/internfinder/internal/app/models"
)

// CreateJobRequest represents a new job posting
type CreateJobRequest struct {
	Title            string     `json:"title" binding:"required,min=3,max=200"`
	JobType          string     `json:"jobType" binding:"required,oneof=REMOTE ONSITE HYBRID"`
	Location         *string    `json:"location,omitempty"`
	SalaryMin        *int       `json:"salaryMin,omitempty" binding:"omitempty,min=0"`
	SalaryMax        *int       `json:"salaryMax,omitempty" binding:"omitempty,min=0"`
	SalaryCurrency   *string    `json:"salaryCurrency,omitempty"`
	SalaryPeriod     *string    `json:"salaryPeriod,omitempty" binding:"omitempty,oneof=hour day week month year"`
	Duration         *string    `json:"duration,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Description      string     `json:"description" binding:"required"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Requirements     []string   `json:"requirements,omitempty"`
	Benefits         []string   `json:"benefits,omitempty"`
	Draft            bool       `json:"draft"` // When true the job is created as DRAFT instead of ACTIVE
}

// UpdateJobRequest represents edits to an existing job posting
type UpdateJobRequest struct {
	Title            *string    `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	JobType          *string    `json:"jobType,omitempty" binding:"omitempty,oneof=REMOTE ONSITE HYBRID"`
	Location         *string    `json:"location,omitempty"`
	SalaryMin        *int       `json:"salaryMin,omitempty" binding:"omitempty,min=0"`
	SalaryMax        *int       `json:"salaryMax,omitempty" binding:"omitempty,min=0"`
	SalaryCurrency   *string    `json:"salaryCurrency,omitempty"`
	SalaryPeriod     *string    `json:"salaryPeriod,omitempty" binding:"omitempty,oneof=hour day week month year"`
	Duration         *string    `json:"duration,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Requirements     []string   `json:"requirements,omitempty"`
	Benefits         []string   `json:"benefits,omitempty"`
}

// UpdateJobStatusRequest moves a job to a new lifecycle status
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ACTIVE FILLED CLOSED CANCELLED"`
}

// JobFilter carries the query parameters of the public job listing
type JobFilter struct {
	CompanyID int64
	JobType   string
	Location  string
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// JobResponse is the public view of a job posting
type JobResponse struct {
	ID               int64      `json:"id"`
	CompanyID        int64      `json:"companyId"`
	CompanyName      string     `json:"companyName,omitempty"`
	Title            string     `json:"title"`
	JobType          string     `json:"jobType"`
	Location         *string    `json:"location,omitempty"`
	SalaryMin        *int       `json:"salaryMin,omitempty"`
	SalaryMax        *int       `json:"salaryMax,omitempty"`
	SalaryCurrency   *string    `json:"salaryCurrency,omitempty"`
	SalaryPeriod     *string    `json:"salaryPeriod,omitempty"`
	Duration         *string    `json:"duration,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Description      string     `json:"description"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Requirements     []string   `json:"requirements,omitempty"`
	Benefits         []string   `json:"benefits,omitempty"`
	Status           string     `json:"status"`
	ViewCount        int64      `json:"viewCount"`
	ApplicationCount *int64     `json:"applicationCount,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FromJob converts a job model to its response DTO
func FromJob(job *models.Job) JobResponse {
	resp := JobResponse{
		ID:               job.ID,
		CompanyID:        job.CompanyID,
		Title:            job.Title,
		JobType:          string(job.JobType),
		Location:         job.Location,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		SalaryCurrency:   job.SalaryCurrency,
		SalaryPeriod:     job.SalaryPeriod,
		Duration:         job.Duration,
		StartDate:        job.StartDate,
		Deadline:         job.Deadline,
		Description:      job.Description,
		Responsibilities: job.Responsibilities,
		Requirements:     job.Requirements,
		Benefits:         job.Benefits,
		Status:           string(job.Status),
		ViewCount:        job.ViewCount,
		ApplicationCount: job.ApplicationCount,
		CreatedAt:        job.CreatedAt,
	}
	if job.Company != nil {
		resp.CompanyName = job.Company.CompanyName
	}
	return resp
}
