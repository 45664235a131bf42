package models

import "time"

// Job defines a job posting based on the 'jobs' table
type Job struct {
	ID               int64      `json:"id" db:"id" example:"1"`
	CompanyID        int64      `json:"companyId" db:"company_id" example:"3"` // Owning company (companies.id)
	Title            string     `json:"title" db:"title" example:"Frontend Intern"`
	JobType          JobType    `json:"jobType" db:"job_type" example:"REMOTE"`
	Location         *string    `json:"location,omitempty" db:"location" example:"Berlin"`
	SalaryMin        *int       `json:"salaryMin,omitempty" db:"salary_min" example:"1200"`
	SalaryMax        *int       `json:"salaryMax,omitempty" db:"salary_max" example:"1800"`
	SalaryCurrency   *string    `json:"salaryCurrency,omitempty" db:"salary_currency" example:"EUR"`
	SalaryPeriod     *string    `json:"salaryPeriod,omitempty" db:"salary_period" example:"month"`
	Duration         *string    `json:"duration,omitempty" db:"duration" example:"6 months"`
	StartDate        *time.Time `json:"startDate,omitempty" db:"start_date"`
	Deadline         *time.Time `json:"deadline,omitempty" db:"deadline"` // Applications are rejected after this date
	Description      string     `json:"description" db:"description"`
	Responsibilities []string   `json:"responsibilities" db:"responsibilities"`
	Requirements     []string   `json:"requirements" db:"requirements"`
	Benefits         []string   `json:"benefits" db:"benefits"`
	Status           JobStatus  `json:"status" db:"status" example:"ACTIVE"`
	ViewCount        int64      `json:"viewCount" db:"view_count" example:"42"`
	ApplicationCount *int64     `json:"applicationCount,omitempty" example:"17"` // Populated on the owning company's listing
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Company *Company `json:"company,omitempty"`
}

// AcceptsApplications reports whether an intern can currently apply to the job
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.Deadline != nil && j.Deadline.Before(now) {
		return false
	}
	return true
}
