package models

import "time"

// Review is rating and text feedback from one marketplace side about the other,
// based on the 'reviews' table. Reviews only become publicly visible once an
// admin moderates them to APPROVED.
type Review struct {
	ID         int64           `json:"id" db:"id" example:"1"`
	ReviewerID int64           `json:"reviewerId" db:"reviewer_id" example:"5"` // users.id of the author
	TargetID   int64           `json:"targetId" db:"target_id" example:"7"`     // users.id of the reviewed party
	JobID      *int64          `json:"jobId,omitempty" db:"job_id"`             // Optional job context
	Direction  ReviewDirection `json:"direction" db:"direction" example:"INTERN_TO_COMPANY"`
	Rating     int             `json:"rating" db:"rating" example:"5"` // Integer in [1,5]
	Content    string          `json:"content" db:"content"`
	Status     ReviewStatus    `json:"status" db:"status" example:"PENDING"`
	AdminNotes *string         `json:"adminNotes,omitempty" db:"admin_notes"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Reviewer *User `json:"reviewer,omitempty"`
	Target   *User `json:"target,omitempty"`
}
