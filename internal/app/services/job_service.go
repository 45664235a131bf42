package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
)

// jobTransitions lists the statuses a company may move a job posting into.
// Terminal statuses have no outgoing edges.
var jobTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobStatusDraft:  {models.JobStatusActive, models.JobStatusCancelled},
	models.JobStatusActive: {models.JobStatusFilled, models.JobStatusClosed, models.JobStatusCancelled},
}

func jobCanTransition(from, to models.JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// JobService handles the job posting lifecycle
type JobService interface {
	CreateJob(ctx context.Context, companyUserID int64, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, jobID int64, viewerRole models.Role, viewerUserID int64) (*models.Job, error)
	ListJobs(ctx context.Context, filter *dto.JobFilter) ([]models.Job, dto.PaginationInfo, error)
	ListCompanyJobs(ctx context.Context, companyUserID int64, filter *dto.JobFilter) ([]models.Job, dto.PaginationInfo, error)
	UpdateJob(ctx context.Context, jobID, companyUserID int64, req *dto.UpdateJobRequest) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, jobID, companyUserID int64, status models.JobStatus) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID, companyUserID int64) error
}

// jobStore is the slice of JobRepository the job service needs
type jobStore interface {
	Create(ctx context.Context, job *models.Job) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	GetAll(ctx context.Context, filter *dto.JobFilter) ([]models.Job, int64, error)
	Update(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, jobID int64, status models.JobStatus) error
	IncrementViewCount(ctx context.Context, jobID int64) error
	Delete(ctx context.Context, id int64) error
}

// applicationCounter reports how many applications a job has received
type applicationCounter interface {
	CountByJobID(ctx context.Context, jobID int64) (int64, error)
}

// companyResolver resolves the company profile of a user
type companyResolver interface {
	GetCompanyForUser(ctx context.Context, userID int64) (*models.Company, error)
}

type jobService struct {
	store        jobStore
	applications applicationCounter
	authz        companyResolver
	logger       zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(store jobStore, applications applicationCounter, authz companyResolver, logger zerolog.Logger) JobService {
	return &jobService{
		store:        store,
		applications: applications,
		authz:        authz,
		logger:       logger,
	}
}

// CreateJob creates a job posting for the company, ACTIVE unless drafted
func (s *jobService) CreateJob(ctx context.Context, companyUserID int64, req *dto.CreateJobRequest) (*models.Job, error) {
	company, err := s.authz.GetCompanyForUser(ctx, companyUserID)
	if err != nil {
		return nil, err
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, apperrors.NewBadRequestError("salaryMin cannot exceed salaryMax")
	}
	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("deadline cannot be in the past")
	}

	status := models.JobStatusActive
	if req.Draft {
		status = models.JobStatusDraft
	}

	job := &models.Job{
		CompanyID:        company.ID,
		Title:            req.Title,
		JobType:          models.JobType(req.JobType),
		Location:         req.Location,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryCurrency:   req.SalaryCurrency,
		SalaryPeriod:     req.SalaryPeriod,
		Duration:         req.Duration,
		StartDate:        req.StartDate,
		Deadline:         req.Deadline,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Benefits:         req.Benefits,
		Status:           status,
	}

	id, err := s.store.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).Int64("companyID", company.ID).Str("status", string(status)).Msg("Job created")
	return s.store.GetByID(ctx, id)
}

// GetJob retrieves a job. Non-owners only see listed (non-draft) jobs, and each
// intern view bumps the view counter.
func (s *jobService) GetJob(ctx context.Context, jobID int64, viewerRole models.Role, viewerUserID int64) (*models.Job, error) {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	isOwner := false
	if viewerRole == models.RoleCompany {
		company, err := s.authz.GetCompanyForUser(ctx, viewerUserID)
		if err == nil && company.ID == job.CompanyID {
			isOwner = true
		}
	}

	if job.Status == models.JobStatusDraft && !isOwner && viewerRole != models.RoleAdmin {
		return nil, apperrors.ErrJobNotFound
	}

	if viewerRole == models.RoleIntern {
		if err := s.store.IncrementViewCount(ctx, jobID); err != nil {
			s.logger.Warn().Err(err).Int64("jobID", jobID).Msg("Failed to increment view count")
		} else {
			job.ViewCount++
		}
	}

	return job, nil
}

// ListJobs returns the public listing, restricted to ACTIVE jobs
func (s *jobService) ListJobs(ctx context.Context, filter *dto.JobFilter) ([]models.Job, dto.PaginationInfo, error) {
	filter.Status = string(models.JobStatusActive)
	return s.list(ctx, filter)
}

// ListCompanyJobs returns every job of the company, drafts included, with
// the number of applications each job has received
func (s *jobService) ListCompanyJobs(ctx context.Context, companyUserID int64, filter *dto.JobFilter) ([]models.Job, dto.PaginationInfo, error) {
	company, err := s.authz.GetCompanyForUser(ctx, companyUserID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filter.CompanyID = company.ID
	jobs, pagination, err := s.list(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	for i := range jobs {
		count, err := s.applications.CountByJobID(ctx, jobs[i].ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("jobID", jobs[i].ID).Msg("Failed to count applications")
			continue
		}
		jobs[i].ApplicationCount = &count
	}

	return jobs, pagination, nil
}

func (s *jobService) list(ctx context.Context, filter *dto.JobFilter) ([]models.Job, dto.PaginationInfo, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > helpers.MaxPageSize {
		filter.PageSize = helpers.DefaultPageSize
	}

	jobs, total, err := s.store.GetAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return jobs, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

// UpdateJob edits the content of a job owned by the company. Jobs in a
// terminal status are read-only.
func (s *jobService) UpdateJob(ctx context.Context, jobID, companyUserID int64, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(ctx, jobID, companyUserID)
	if err != nil {
		return nil, err
	}

	if job.Status.IsTerminal() {
		return nil, apperrors.ErrInvalidJobTransition
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.JobType != nil {
		job.JobType = models.JobType(*req.JobType)
	}
	if req.Location != nil {
		job.Location = req.Location
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = req.SalaryCurrency
	}
	if req.SalaryPeriod != nil {
		job.SalaryPeriod = req.SalaryPeriod
	}
	if req.Duration != nil {
		job.Duration = req.Duration
	}
	if req.StartDate != nil {
		job.StartDate = req.StartDate
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Responsibilities != nil {
		job.Responsibilities = req.Responsibilities
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.Benefits != nil {
		job.Benefits = req.Benefits
	}

	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperrors.NewBadRequestError("salaryMin cannot exceed salaryMax")
	}

	if err := s.store.Update(ctx, job); err != nil {
		return nil, err
	}

	return s.store.GetByID(ctx, jobID)
}

// UpdateJobStatus moves a job along its lifecycle, enforcing the transition table
func (s *jobService) UpdateJobStatus(ctx context.Context, jobID, companyUserID int64, status models.JobStatus) (*models.Job, error) {
	job, err := s.ownedJob(ctx, jobID, companyUserID)
	if err != nil {
		return nil, err
	}

	if job.Status == status {
		return job, nil
	}
	if !jobCanTransition(job.Status, status) {
		return nil, apperrors.ErrInvalidJobTransition
	}

	if err := s.store.UpdateStatus(ctx, jobID, status); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", jobID).
		Str("from", string(job.Status)).Str("to", string(status)).
		Msg("Job status changed")

	job.Status = status
	return job, nil
}

// DeleteJob removes a draft job. Listed jobs are closed or cancelled instead
// so existing applications keep their context.
func (s *jobService) DeleteJob(ctx context.Context, jobID, companyUserID int64) error {
	job, err := s.ownedJob(ctx, jobID, companyUserID)
	if err != nil {
		return err
	}

	if job.Status != models.JobStatusDraft {
		return apperrors.NewConflictError("only draft jobs can be deleted")
	}

	return s.store.Delete(ctx, jobID)
}

func (s *jobService) ownedJob(ctx context.Context, jobID, companyUserID int64) (*models.Job, error) {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	company, err := s.authz.GetCompanyForUser(ctx, companyUserID)
	if err != nil {
		return nil, err
	}

	if job.CompanyID != company.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	return job, nil
}
