package models

import "time"

// Interview defines an interview tied to an application, based on the 'interviews' table
type Interview struct {
	ID              int64           `json:"id" db:"id" example:"1"`
	ApplicationID   int64           `json:"applicationId" db:"application_id" example:"12"`
	InterviewerID   int64           `json:"interviewerId" db:"interviewer_id" example:"7"` // users.id of the company-side interviewer
	Type            InterviewType   `json:"type" db:"type" example:"VIDEO"`
	ScheduledAt     time.Time       `json:"scheduledAt" db:"scheduled_at"`
	DurationMinutes int             `json:"durationMinutes" db:"duration_minutes" example:"45"`
	Location        *string         `json:"location,omitempty" db:"location"`        // For in-person interviews
	MeetingLink     *string         `json:"meetingLink,omitempty" db:"meeting_link"` // For phone/video interviews
	Status          InterviewStatus `json:"status" db:"status" example:"SCHEDULED"`
	StatusReason    *string         `json:"statusReason,omitempty" db:"status_reason"` // Reschedule or cancellation reason
	Feedback        *Feedback       `json:"feedback,omitempty"`                        // Attached after completion, stored as jsonb
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Application *Application `json:"application,omitempty"`
}

// Feedback is the interviewer's assessment of a completed interview
type Feedback struct {
	Rating       int      `json:"rating" example:"4"` // 1-5
	Comments     string   `json:"comments,omitempty"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Outcome      string   `json:"outcome,omitempty" example:"recommend"`
}
