package dto

import "time"

// ScheduleInterviewRequest creates an interview from an application
type ScheduleInterviewRequest struct {
	ApplicationID   int64     `json:"applicationId" binding:"required,min=1"`
	Type            string    `json:"type" binding:"required,oneof=PHONE VIDEO IN_PERSON"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,min=5,max=480"`
	Location        *string   `json:"location,omitempty"`
	MeetingLink     *string   `json:"meetingLink,omitempty" binding:"omitempty,url"`
}

// RescheduleInterviewRequest moves an interview to a new date
type RescheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Reason      string    `json:"reason" binding:"required"`
}

// CancelInterviewRequest cancels an interview
type CancelInterviewRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InterviewFilter narrows interview listings
type InterviewFilter struct {
	InterviewerID int64
	InternUserID  int64
	Status        string
	Page          int
	PageSize      int
}

// InterviewFeedbackRequest attaches the interviewer's assessment and completes
// the interview
type InterviewFeedbackRequest struct {
	Rating       int      `json:"rating" binding:"required,min=1,max=5"`
	Comments     string   `json:"comments,omitempty"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Outcome      string   `json:"outcome,omitempty" binding:"omitempty,oneof=recommend reject undecided"`
}
