package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
	"github.com/internfinder/internfinder/internal/pkg/mailer"
)

// InterviewService handles scheduling and resolving interviews
type InterviewService interface {
	Schedule(ctx context.Context, companyUserID int64, req *dto.ScheduleInterviewRequest) (*models.Interview, error)
	GetInterview(ctx context.Context, interviewID, userID int64, role models.Role) (*models.Interview, error)
	ListByApplication(ctx context.Context, applicationID, userID int64, role models.Role) ([]models.Interview, error)
	ListOwn(ctx context.Context, userID int64, role models.Role, filter *dto.InterviewFilter) ([]models.Interview, dto.PaginationInfo, error)
	Reschedule(ctx context.Context, interviewID, companyUserID int64, req *dto.RescheduleInterviewRequest) (*models.Interview, error)
	Cancel(ctx context.Context, interviewID, companyUserID int64, reason string) (*models.Interview, error)
	SubmitFeedback(ctx context.Context, interviewID, companyUserID int64, req *dto.InterviewFeedbackRequest) (*models.Interview, error)
}

// interviewStore is the slice of InterviewRepository the service needs
type interviewStore interface {
	Create(ctx context.Context, interview *models.Interview) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Interview, error)
	GetByApplicationID(ctx context.Context, applicationID int64) ([]models.Interview, error)
	GetAll(ctx context.Context, filter *dto.InterviewFilter) ([]models.Interview, int64, error)
	Reschedule(ctx context.Context, interviewID int64, scheduledAt time.Time, reason *string) error
	UpdateStatus(ctx context.Context, interviewID int64, status models.InterviewStatus, reason *string) error
	SaveFeedback(ctx context.Context, interviewID int64, feedback *models.Feedback) error
}

// interviewApplicationStore loads and moves applications while interviews run
type interviewApplicationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus, score *int) error
}

type interviewService struct {
	store    interviewStore
	appStore interviewApplicationStore
	authz    partyResolver
	users    applicantNotifier
	mail     mailer.Mailer
	logger   zerolog.Logger
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(store interviewStore, appStore interviewApplicationStore, authz partyResolver, users applicantNotifier, mail mailer.Mailer, logger zerolog.Logger) InterviewService {
	return &interviewService{
		store:    store,
		appStore: appStore,
		authz:    authz,
		users:    users,
		mail:     mail,
		logger:   logger,
	}
}

// Schedule creates an interview for an application of the company's job and
// moves the application into INTERVIEW if it is not there yet.
func (s *interviewService) Schedule(ctx context.Context, companyUserID int64, req *dto.ScheduleInterviewRequest) (*models.Interview, error) {
	application, err := s.appStore.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, application, companyUserID, models.RoleCompany); err != nil {
		return nil, err
	}

	if application.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationTerminal
	}

	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduledAt cannot be in the past")
	}

	interviewType := models.InterviewType(req.Type)
	if interviewType == models.InterviewTypeInPerson && req.Location == nil {
		return nil, apperrors.NewBadRequestError("location is required for in-person interviews")
	}

	interview := &models.Interview{
		ApplicationID:   req.ApplicationID,
		InterviewerID:   companyUserID,
		Type:            interviewType,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		MeetingLink:     req.MeetingLink,
		Status:          models.InterviewStatusScheduled,
	}

	id, err := s.store.Create(ctx, interview)
	if err != nil {
		return nil, err
	}

	if application.Status != models.ApplicationStatusInterview {
		if err := s.appStore.UpdateStatus(ctx, application.ID, models.ApplicationStatusInterview, nil); err != nil {
			s.logger.Warn().Err(err).Int64("applicationID", application.ID).Msg("Failed to move application into interview status")
		}
	}

	s.logger.Info().Int64("interviewID", id).Int64("applicationID", req.ApplicationID).Msg("Interview scheduled")
	s.notifyScheduled(ctx, application, req.ScheduledAt)

	return s.store.GetByID(ctx, id)
}

// GetInterview retrieves an interview visible to the caller
func (s *interviewService) GetInterview(ctx context.Context, interviewID, userID int64, role models.Role) (*models.Interview, error) {
	interview, err := s.store.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, interview.Application, userID, role); err != nil {
		return nil, err
	}

	return interview, nil
}

// ListByApplication lists the interviews of an application visible to the caller
func (s *interviewService) ListByApplication(ctx context.Context, applicationID, userID int64, role models.Role) ([]models.Interview, error) {
	application, err := s.appStore.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, application, userID, role); err != nil {
		return nil, err
	}

	return s.store.GetByApplicationID(ctx, applicationID)
}

// ListOwn lists the caller's interviews: the ones the company scheduled, or
// the ones the intern is invited to.
func (s *interviewService) ListOwn(ctx context.Context, userID int64, role models.Role, filter *dto.InterviewFilter) ([]models.Interview, dto.PaginationInfo, error) {
	switch role {
	case models.RoleCompany:
		filter.InterviewerID = userID
	case models.RoleIntern:
		filter.InternUserID = userID
	default:
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > helpers.MaxPageSize {
		filter.PageSize = helpers.DefaultPageSize
	}

	interviews, total, err := s.store.GetAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return interviews, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

// Reschedule moves an open interview to a new time
func (s *interviewService) Reschedule(ctx context.Context, interviewID, companyUserID int64, req *dto.RescheduleInterviewRequest) (*models.Interview, error) {
	interview, err := s.ownedOpenInterview(ctx, interviewID, companyUserID, apperrors.ErrInterviewNotReschedulable)
	if err != nil {
		return nil, err
	}

	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduledAt cannot be in the past")
	}

	if err := s.store.Reschedule(ctx, interview.ID, req.ScheduledAt, &req.Reason); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("interviewID", interviewID).Time("scheduledAt", req.ScheduledAt).Msg("Interview rescheduled")
	s.notifyScheduled(ctx, interview.Application, req.ScheduledAt)

	return s.store.GetByID(ctx, interviewID)
}

// Cancel cancels an open interview
func (s *interviewService) Cancel(ctx context.Context, interviewID, companyUserID int64, reason string) (*models.Interview, error) {
	interview, err := s.ownedOpenInterview(ctx, interviewID, companyUserID, apperrors.ErrInterviewNotCancellable)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, interview.ID, models.InterviewStatusCancelled, &reason); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("interviewID", interviewID).Msg("Interview cancelled")
	return s.store.GetByID(ctx, interviewID)
}

// SubmitFeedback attaches feedback to an open interview and completes it
func (s *interviewService) SubmitFeedback(ctx context.Context, interviewID, companyUserID int64, req *dto.InterviewFeedbackRequest) (*models.Interview, error) {
	interview, err := s.store.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, interview.Application, companyUserID, models.RoleCompany); err != nil {
		return nil, err
	}

	if interview.Feedback != nil {
		return nil, apperrors.ErrFeedbackAlreadyExists
	}
	if !interview.Status.IsOpen() {
		return nil, apperrors.NewConflictError("interview is not awaiting feedback")
	}

	feedback := &models.Feedback{
		Rating:       req.Rating,
		Comments:     req.Comments,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
		Outcome:      req.Outcome,
	}

	if err := s.store.SaveFeedback(ctx, interviewID, feedback); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("interviewID", interviewID).Int("rating", req.Rating).Msg("Interview feedback submitted")
	return s.store.GetByID(ctx, interviewID)
}

func (s *interviewService) ownedOpenInterview(ctx context.Context, interviewID, companyUserID int64, closedErr error) (*models.Interview, error) {
	interview, err := s.store.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, interview.Application, companyUserID, models.RoleCompany); err != nil {
		return nil, err
	}

	if !interview.Status.IsOpen() {
		return nil, closedErr
	}

	return interview, nil
}

func (s *interviewService) notifyScheduled(ctx context.Context, application *models.Application, when time.Time) {
	if s.mail == nil || application == nil || application.Job == nil {
		return
	}

	intern, err := s.users.GetInternByID(ctx, application.InternID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("internID", application.InternID).Msg("Failed to resolve applicant for interview notification")
		return
	}
	account, err := s.users.GetUserByID(ctx, intern.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", intern.UserID).Msg("Failed to resolve applicant account for interview notification")
		return
	}

	if err := s.mail.SendInterviewScheduledMail(account.Email, account.FullName(), application.Job.Title, when.Format(time.RFC1123)); err != nil {
		s.logger.Warn().Err(err).Str("email", account.Email).Msg("Failed to send interview notification")
	}
}
