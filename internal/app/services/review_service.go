package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
)

// ReviewService handles review submission, listing and moderation
type ReviewService interface {
	CreateReview(ctx context.Context, reviewerUserID int64, req *dto.CreateReviewRequest) (*models.Review, error)
	GetReview(ctx context.Context, reviewID int64) (*models.Review, error)
	ListReviews(ctx context.Context, filter *dto.ReviewFilter, callerRole models.Role) ([]models.Review, dto.PaginationInfo, error)
	ListOwn(ctx context.Context, reviewerUserID int64, filter *dto.ReviewFilter) ([]models.Review, dto.PaginationInfo, error)
	ListPending(ctx context.Context, filter *dto.ReviewFilter) ([]models.Review, dto.PaginationInfo, error)
	Moderate(ctx context.Context, reviewID int64, req *dto.ModerateReviewRequest) (*models.Review, error)
	Retract(ctx context.Context, reviewID, reviewerUserID int64) error
	GetSummary(ctx context.Context, targetID int64) (*dto.ReviewSummary, error)
}

// reviewStore is the slice of ReviewRepository the service needs
type reviewStore interface {
	Create(ctx context.Context, review *models.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetAll(ctx context.Context, filter *dto.ReviewFilter) ([]models.Review, int64, error)
	UpdateStatus(ctx context.Context, reviewID int64, status models.ReviewStatus, adminNotes *string) error
	Delete(ctx context.Context, id int64) error
	GetSummary(ctx context.Context, targetID int64) (*dto.ReviewSummary, error)
}

// reviewUserStore resolves the two parties of a review
type reviewUserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// workHistoryChecker verifies the parties actually worked together
type workHistoryChecker interface {
	HasAcceptedApplication(ctx context.Context, internUserID, companyUserID int64) (bool, error)
}

type reviewService struct {
	store   reviewStore
	users   reviewUserStore
	history workHistoryChecker
	logger  zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(store reviewStore, users reviewUserStore, history workHistoryChecker, logger zerolog.Logger) ReviewService {
	return &reviewService{
		store:   store,
		users:   users,
		history: history,
		logger:  logger,
	}
}

// CreateReview submits a review about the other marketplace side. The reviewer
// and target must sit on opposite sides and share an accepted application.
// New reviews always start PENDING.
func (s *reviewService) CreateReview(ctx context.Context, reviewerUserID int64, req *dto.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}
	if req.TargetID == reviewerUserID {
		return nil, apperrors.NewBadRequestError("you cannot review yourself")
	}

	reviewer, err := s.users.GetUserByID(ctx, reviewerUserID)
	if err != nil {
		return nil, err
	}
	target, err := s.users.GetUserByID(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	var direction models.ReviewDirection
	var internUserID, companyUserID int64
	switch {
	case reviewer.Role == models.RoleIntern && target.Role == models.RoleCompany:
		direction = models.DirectionInternToCompany
		internUserID, companyUserID = reviewer.ID, target.ID
	case reviewer.Role == models.RoleCompany && target.Role == models.RoleIntern:
		direction = models.DirectionCompanyToIntern
		internUserID, companyUserID = target.ID, reviewer.ID
	default:
		return nil, apperrors.ErrDirectionMismatch
	}

	worked, err := s.history.HasAcceptedApplication(ctx, internUserID, companyUserID)
	if err != nil {
		return nil, err
	}
	if !worked {
		return nil, apperrors.NewForbiddenError("reviews require an accepted application between the parties")
	}

	review := &models.Review{
		ReviewerID: reviewerUserID,
		TargetID:   req.TargetID,
		JobID:      req.JobID,
		Direction:  direction,
		Rating:     req.Rating,
		Content:    req.Content,
		Status:     models.ReviewStatusPending,
	}

	id, err := s.store.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reviewID", id).Int64("reviewerID", reviewerUserID).Int64("targetID", req.TargetID).Msg("Review submitted")
	return s.store.GetByID(ctx, id)
}

// GetReview retrieves a single review
func (s *reviewService) GetReview(ctx context.Context, reviewID int64) (*models.Review, error) {
	return s.store.GetByID(ctx, reviewID)
}

// ListReviews lists reviews for a target. Non-admin callers only see APPROVED ones.
func (s *reviewService) ListReviews(ctx context.Context, filter *dto.ReviewFilter, callerRole models.Role) ([]models.Review, dto.PaginationInfo, error) {
	if callerRole != models.RoleAdmin {
		filter.Status = string(models.ReviewStatusApproved)
	}
	return s.list(ctx, filter)
}

// ListOwn lists the caller's own reviews in every moderation state
func (s *reviewService) ListOwn(ctx context.Context, reviewerUserID int64, filter *dto.ReviewFilter) ([]models.Review, dto.PaginationInfo, error) {
	filter.ReviewerID = reviewerUserID
	filter.TargetID = 0
	return s.list(ctx, filter)
}

// ListPending lists reviews awaiting moderation
func (s *reviewService) ListPending(ctx context.Context, filter *dto.ReviewFilter) ([]models.Review, dto.PaginationInfo, error) {
	filter.Status = string(models.ReviewStatusPending)
	return s.list(ctx, filter)
}

func (s *reviewService) list(ctx context.Context, filter *dto.ReviewFilter) ([]models.Review, dto.PaginationInfo, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > helpers.MaxPageSize {
		filter.PageSize = helpers.DefaultPageSize
	}

	reviews, total, err := s.store.GetAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return reviews, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

// Moderate resolves a pending review to APPROVED or REJECTED. Moderation is final.
func (s *reviewService) Moderate(ctx context.Context, reviewID int64, req *dto.ModerateReviewRequest) (*models.Review, error) {
	review, err := s.store.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.Status != models.ReviewStatusPending {
		return nil, apperrors.ErrReviewModerated
	}

	status := models.ReviewStatus(req.Status)
	if err := s.store.UpdateStatus(ctx, reviewID, status, req.AdminNotes); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reviewID", reviewID).Str("status", string(status)).Msg("Review moderated")
	return s.store.GetByID(ctx, reviewID)
}

// Retract deletes the caller's own review while it is still awaiting
// moderation. Moderated reviews are part of the public record and stay.
func (s *reviewService) Retract(ctx context.Context, reviewID, reviewerUserID int64) error {
	review, err := s.store.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.ReviewerID != reviewerUserID {
		return apperrors.ErrPermissionDenied
	}
	if review.Status != models.ReviewStatusPending {
		return apperrors.ErrReviewModerated
	}

	if err := s.store.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info().Int64("reviewID", reviewID).Int64("reviewerID", reviewerUserID).Msg("Review retracted")
	return nil
}

// GetSummary aggregates the approved ratings of a target user
func (s *reviewService) GetSummary(ctx context.Context, targetID int64) (*dto.ReviewSummary, error) {
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return nil, err
	}
	return s.store.GetSummary(ctx, targetID)
}
