package models

// Role defines the user role type
type Role string

const (
	RoleIntern  Role = "INTERN"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

// JobType represents the working arrangement of a job
type JobType string

const (
	JobTypeRemote JobType = "REMOTE"
	JobTypeOnsite JobType = "ONSITE"
	JobTypeHybrid JobType = "HYBRID"
)

// JobStatus represents the lifecycle status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusActive    JobStatus = "ACTIVE"
	JobStatusFilled    JobStatus = "FILLED"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed from the status
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusFilled || s == JobStatusClosed || s == JobStatusCancelled
}

// ApplicationStatus represents the lifecycle status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusReviewing ApplicationStatus = "REVIEWING"
	ApplicationStatusInterview ApplicationStatus = "INTERVIEW"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// IsTerminal reports whether the application can still move to another status
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected || s == ApplicationStatusWithdrawn
}

// applicationTransitions lists the statuses a company may move an application into
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:   {ApplicationStatusReviewing, ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusReviewing: {ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusInterview: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

// CanTransitionTo reports whether the status may move to the target status
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// InterviewType represents how the interview is conducted
type InterviewType string

const (
	InterviewTypePhone    InterviewType = "PHONE"
	InterviewTypeVideo    InterviewType = "VIDEO"
	InterviewTypeInPerson InterviewType = "IN_PERSON"
)

// InterviewStatus represents the lifecycle status of an interview
type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "SCHEDULED"
	InterviewStatusRescheduled InterviewStatus = "RESCHEDULED"
	InterviewStatusCompleted   InterviewStatus = "COMPLETED"
	InterviewStatusCancelled   InterviewStatus = "CANCELLED"
)

// IsOpen reports whether the interview has not yet reached a terminal status
func (s InterviewStatus) IsOpen() bool {
	return s == InterviewStatusScheduled || s == InterviewStatusRescheduled
}

// ReviewDirection indicates which side of the marketplace wrote the review
type ReviewDirection string

const (
	DirectionCompanyToIntern ReviewDirection = "COMPANY_TO_INTERN"
	DirectionInternToCompany ReviewDirection = "INTERN_TO_COMPANY"
)

// ReviewStatus represents the moderation status of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "PENDING"
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
)
