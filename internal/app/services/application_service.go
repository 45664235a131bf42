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

// ApplicationService handles the application lifecycle
type ApplicationService interface {
	Apply(ctx context.Context, internUserID int64, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetApplication(ctx context.Context, applicationID, userID int64, role models.Role) (*models.Application, error)
	ListJobApplications(ctx context.Context, jobID, companyUserID int64, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error)
	ListOwnApplications(ctx context.Context, internUserID int64, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error)
	ListCompanyApplications(ctx context.Context, companyUserID int64, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error)
	UpdateStatus(ctx context.Context, applicationID, companyUserID int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	Withdraw(ctx context.Context, applicationID, internUserID int64) (*models.Application, error)
}

// applicationStore is the slice of ApplicationRepository the service needs
type applicationStore interface {
	Create(ctx context.Context, application *models.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetAll(ctx context.Context, filter *dto.ApplicationFilter) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus, score *int) error
}

// applicationJobStore is the slice of JobRepository the service needs
type applicationJobStore interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	UpdateStatus(ctx context.Context, jobID int64, status models.JobStatus) error
}

// partyResolver resolves role profiles and access rules for both sides
type partyResolver interface {
	GetInternForUser(ctx context.Context, userID int64) (*models.Intern, error)
	GetCompanyForUser(ctx context.Context, userID int64) (*models.Company, error)
	ValidateApplicationAccess(ctx context.Context, application *models.Application, userID int64, role models.Role) error
}

// applicantNotifier resolves the applicant's contact details for mail
type applicantNotifier interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetInternByID(ctx context.Context, id int64) (*models.Intern, error)
}

type applicationService struct {
	store    applicationStore
	jobStore applicationJobStore
	authz    partyResolver
	users    applicantNotifier
	mail     mailer.Mailer
	logger   zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(store applicationStore, jobStore applicationJobStore, authz partyResolver, users applicantNotifier, mail mailer.Mailer, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		store:    store,
		jobStore: jobStore,
		authz:    authz,
		users:    users,
		mail:     mail,
		logger:   logger,
	}
}

// Apply submits an application to an active job. The database enforces the
// one-active-application rule per (job, intern) pair.
func (s *applicationService) Apply(ctx context.Context, internUserID int64, req *dto.CreateApplicationRequest) (*models.Application, error) {
	intern, err := s.authz.GetInternForUser(ctx, internUserID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobStore.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrJobNotActive
	}
	if job.Deadline != nil && job.Deadline.Before(now) {
		return nil, apperrors.ErrJobDeadlinePassed
	}

	application := &models.Application{
		JobID:       req.JobID,
		InternID:    intern.ID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
	}

	id, err := s.store.Create(ctx, application)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", id).Int64("jobID", req.JobID).Int64("internID", intern.ID).Msg("Application submitted")
	return s.store.GetByID(ctx, id)
}

// GetApplication retrieves an application visible to the caller
func (s *applicationService) GetApplication(ctx context.Context, applicationID, userID int64, role models.Role) (*models.Application, error) {
	application, err := s.store.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, application, userID, role); err != nil {
		return nil, err
	}

	return application, nil
}

// ListJobApplications lists applications to one of the company's jobs
func (s *applicationService) ListJobApplications(ctx context.Context, jobID, companyUserID int64, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error) {
	job, err := s.jobStore.GetByID(ctx, jobID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	company, err := s.authz.GetCompanyForUser(ctx, companyUserID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if job.CompanyID != company.ID {
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	filter.JobID = jobID
	return s.list(ctx, filter)
}

// ListOwnApplications lists the intern's own applications
func (s *applicationService) ListOwnApplications(ctx context.Context, internUserID int64, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error) {
	intern, err := s.authz.GetInternForUser(ctx, internUserID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filter.InternID = intern.ID
	return s.list(ctx, filter)
}

// ListCompanyApplications lists applications across all of the company's jobs
func (s *applicationService) ListCompanyApplications(ctx context.Context, companyUserID int64, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error) {
	company, err := s.authz.GetCompanyForUser(ctx, companyUserID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filter.CompanyID = company.ID
	return s.list(ctx, filter)
}

func (s *applicationService) list(ctx context.Context, filter *dto.ApplicationFilter) ([]models.Application, dto.PaginationInfo, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > helpers.MaxPageSize {
		filter.PageSize = helpers.DefaultPageSize
	}

	applications, total, err := s.store.GetAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return applications, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

// UpdateStatus moves an application along the company-side state machine.
// Accepting an application marks the job FILLED.
func (s *applicationService) UpdateStatus(ctx context.Context, applicationID, companyUserID int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	application, err := s.store.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, application, companyUserID, models.RoleCompany); err != nil {
		return nil, err
	}

	target := models.ApplicationStatus(req.Status)
	if application.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationTerminal
	}
	if !application.Status.CanTransitionTo(target) {
		return nil, apperrors.ErrInvalidStatusChange
	}

	if err := s.store.UpdateStatus(ctx, applicationID, target, req.Score); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).
		Str("from", string(application.Status)).Str("to", string(target)).
		Msg("Application status changed")

	if target == models.ApplicationStatusAccepted && application.Job != nil {
		if err := s.jobStore.UpdateStatus(ctx, application.JobID, models.JobStatusFilled); err != nil {
			s.logger.Warn().Err(err).Int64("jobID", application.JobID).Msg("Failed to mark job filled after acceptance")
		}
	}

	s.notifyStatusChange(ctx, application, target)

	return s.store.GetByID(ctx, applicationID)
}

// Withdraw lets the intern withdraw a non-terminal application
func (s *applicationService) Withdraw(ctx context.Context, applicationID, internUserID int64) (*models.Application, error) {
	application, err := s.store.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateApplicationAccess(ctx, application, internUserID, models.RoleIntern); err != nil {
		return nil, err
	}

	if application.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationTerminal
	}

	if err := s.store.UpdateStatus(ctx, applicationID, models.ApplicationStatusWithdrawn, nil); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).Msg("Application withdrawn")
	return s.store.GetByID(ctx, applicationID)
}

func (s *applicationService) notifyStatusChange(ctx context.Context, application *models.Application, status models.ApplicationStatus) {
	if s.mail == nil || application.Job == nil {
		return
	}

	intern, err := s.users.GetInternByID(ctx, application.InternID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("internID", application.InternID).Msg("Failed to resolve applicant for notification")
		return
	}
	account, err := s.users.GetUserByID(ctx, intern.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", intern.UserID).Msg("Failed to resolve applicant account for notification")
		return
	}

	if err := s.mail.SendApplicationStatusMail(account.Email, account.FullName(), application.Job.Title, string(status)); err != nil {
		s.logger.Warn().Err(err).Str("email", account.Email).Msg("Failed to send status notification")
	}
}
