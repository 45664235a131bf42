package models

import "time"

// Application links an intern to a job, based on the 'applications' table.
// At most one non-withdrawn, non-rejected application may exist per (job, intern)
// pair; the constraint is enforced by a partial unique index.
type Application struct {
	ID          int64             `json:"id" db:"id" example:"1"`
	JobID       int64             `json:"jobId" db:"job_id" example:"4"`
	InternID    int64             `json:"internId" db:"intern_id" example:"9"` // interns.id
	Status      ApplicationStatus `json:"status" db:"status" example:"PENDING"`
	Score       *int              `json:"score,omitempty" db:"score" example:"85"` // Optional company-assigned score (0-100)
	CoverLetter *string           `json:"coverLetter,omitempty" db:"cover_letter"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Job    *Job    `json:"job,omitempty"`
	Intern *Intern `json:"intern,omitempty"`
}
