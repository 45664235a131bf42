package dto

// CreateReviewRequest submits a review about the other marketplace side
type CreateReviewRequest struct {
	TargetID int64  `json:"targetId" binding:"required,min=1"`
	JobID    *int64 `json:"jobId,omitempty" binding:"omitempty,min=1"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Content  string `json:"content" binding:"required,min=10,max=5000"`
}

// ModerateReviewRequest resolves a pending review
type ModerateReviewRequest struct {
	Status     string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	AdminNotes *string `json:"adminNotes,omitempty" binding:"omitempty,max=2000"`
}

// ReviewFilter carries the query parameters of review listings
type ReviewFilter struct {
	TargetID   int64
	ReviewerID int64
	Status     string
	Page       int
	PageSize   int
}

// ReviewSummary aggregates the approved ratings for a target
type ReviewSummary struct {
	TargetID      int64   `json:"targetId"`
	AverageRating float64 `json:"averageRating" example:"4.2"`
	ReviewCount   int64   `json:"reviewCount" example:"17"`
}
