package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

// Shared in-memory fakes for the service tests. They mimic the behavior the
// repositories get from the database, including the partial unique index on
// active applications.

var testLogger = zerolog.Nop()

type fakeAuthz struct {
	intern    *models.Intern
	company   *models.Company
	accessErr error
}

func (f *fakeAuthz) GetInternForUser(_ context.Context, userID int64) (*models.Intern, error) {
	if f.intern == nil || f.intern.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return f.intern, nil
}

func (f *fakeAuthz) GetCompanyForUser(_ context.Context, userID int64) (*models.Company, error) {
	if f.company == nil || f.company.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return f.company, nil
}

func (f *fakeAuthz) ValidateApplicationAccess(_ context.Context, _ *models.Application, _ int64, _ models.Role) error {
	return f.accessErr
}

type fakeJobStore struct {
	jobs      map[int64]*models.Job
	nextID    int64
	viewBumps map[int64]int
}

func newFakeJobStore(jobs ...*models.Job) *fakeJobStore {
	s := &fakeJobStore{jobs: make(map[int64]*models.Job), viewBumps: make(map[int64]int)}
	for _, job := range jobs {
		if job.ID > s.nextID {
			s.nextID = job.ID
		}
		s.jobs[job.ID] = job
	}
	return s
}

func (s *fakeJobStore) Create(_ context.Context, job *models.Job) (int64, error) {
	s.nextID++
	job.ID = s.nextID
	job.CreatedAt = time.Now()
	s.jobs[job.ID] = job
	return job.ID, nil
}

func (s *fakeJobStore) GetByID(_ context.Context, id int64) (*models.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (s *fakeJobStore) GetAll(_ context.Context, filter *dto.JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job
	for _, job := range s.jobs {
		if filter.Status != "" && string(job.Status) != filter.Status {
			continue
		}
		if filter.CompanyID != 0 && job.CompanyID != filter.CompanyID {
			continue
		}
		jobs = append(jobs, *job)
	}
	return jobs, int64(len(jobs)), nil
}

func (s *fakeJobStore) Update(_ context.Context, job *models.Job) error {
	if _, ok := s.jobs[job.ID]; !ok {
		return apperrors.ErrJobNotFound
	}
	copied := *job
	s.jobs[job.ID] = &copied
	return nil
}

func (s *fakeJobStore) UpdateStatus(_ context.Context, jobID int64, status models.JobStatus) error {
	job, ok := s.jobs[jobID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	job.Status = status
	return nil
}

func (s *fakeJobStore) IncrementViewCount(_ context.Context, jobID int64) error {
	job, ok := s.jobs[jobID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	job.ViewCount++
	s.viewBumps[jobID]++
	return nil
}

func (s *fakeJobStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.jobs[id]; !ok {
		return apperrors.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

type fakeApplicationStore struct {
	apps   map[int64]*models.Application
	nextID int64
}

func (s *fakeApplicationStore) CountByJobID(_ context.Context, jobID int64) (int64, error) {
	var count int64
	for _, app := range s.apps {
		if app.JobID == jobID {
			count++
		}
	}
	return count, nil
}

func newFakeApplicationStore(apps ...*models.Application) *fakeApplicationStore {
	s := &fakeApplicationStore{apps: make(map[int64]*models.Application)}
	for _, app := range apps {
		if app.ID > s.nextID {
			s.nextID = app.ID
		}
		s.apps[app.ID] = app
	}
	return s
}

func (s *fakeApplicationStore) Create(_ context.Context, application *models.Application) (int64, error) {
	for _, existing := range s.apps {
		if existing.JobID == application.JobID && existing.InternID == application.InternID &&
			existing.Status != models.ApplicationStatusWithdrawn && existing.Status != models.ApplicationStatusRejected {
			return 0, apperrors.ErrApplicationExists
		}
	}
	s.nextID++
	application.ID = s.nextID
	application.CreatedAt = time.Now()
	s.apps[application.ID] = application
	return application.ID, nil
}

func (s *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (s *fakeApplicationStore) GetAll(_ context.Context, filter *dto.ApplicationFilter) ([]models.Application, int64, error) {
	var apps []models.Application
	for _, app := range s.apps {
		if filter.JobID != 0 && app.JobID != filter.JobID {
			continue
		}
		if filter.InternID != 0 && app.InternID != filter.InternID {
			continue
		}
		if filter.CompanyID != 0 && (app.Job == nil || app.Job.CompanyID != filter.CompanyID) {
			continue
		}
		if filter.Status != "" && string(app.Status) != filter.Status {
			continue
		}
		apps = append(apps, *app)
	}
	return apps, int64(len(apps)), nil
}

func (s *fakeApplicationStore) UpdateStatus(_ context.Context, applicationID int64, status models.ApplicationStatus, score *int) error {
	app, ok := s.apps[applicationID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.Status = status
	if score != nil {
		app.Score = score
	}
	app.UpdatedAt = time.Now()
	return nil
}

func (s *fakeApplicationStore) HasAcceptedApplication(_ context.Context, _, _ int64) (bool, error) {
	for _, app := range s.apps {
		if app.Status == models.ApplicationStatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

type fakeInterviewStore struct {
	interviews map[int64]*models.Interview
	nextID     int64
	// internID -> userID, mirrors the interns table join
	internUsers map[int64]int64
}

func newFakeInterviewStore(interviews ...*models.Interview) *fakeInterviewStore {
	s := &fakeInterviewStore{
		interviews:  make(map[int64]*models.Interview),
		internUsers: map[int64]int64{9: 90},
	}
	for _, iv := range interviews {
		if iv.ID > s.nextID {
			s.nextID = iv.ID
		}
		s.interviews[iv.ID] = iv
	}
	return s
}

func (s *fakeInterviewStore) Create(_ context.Context, interview *models.Interview) (int64, error) {
	s.nextID++
	interview.ID = s.nextID
	interview.CreatedAt = time.Now()
	s.interviews[interview.ID] = interview
	return interview.ID, nil
}

func (s *fakeInterviewStore) GetByID(_ context.Context, id int64) (*models.Interview, error) {
	iv, ok := s.interviews[id]
	if !ok {
		return nil, apperrors.ErrInterviewNotFound
	}
	copied := *iv
	return &copied, nil
}

func (s *fakeInterviewStore) GetByApplicationID(_ context.Context, applicationID int64) ([]models.Interview, error) {
	var interviews []models.Interview
	for _, iv := range s.interviews {
		if iv.ApplicationID == applicationID {
			interviews = append(interviews, *iv)
		}
	}
	return interviews, nil
}

func (s *fakeInterviewStore) GetAll(_ context.Context, filter *dto.InterviewFilter) ([]models.Interview, int64, error) {
	var interviews []models.Interview
	for _, iv := range s.interviews {
		if filter.InterviewerID != 0 && iv.InterviewerID != filter.InterviewerID {
			continue
		}
		if filter.InternUserID != 0 {
			if iv.Application == nil || s.internUsers[iv.Application.InternID] != filter.InternUserID {
				continue
			}
		}
		if filter.Status != "" && string(iv.Status) != filter.Status {
			continue
		}
		interviews = append(interviews, *iv)
	}
	return interviews, int64(len(interviews)), nil
}

func (s *fakeInterviewStore) Reschedule(_ context.Context, interviewID int64, scheduledAt time.Time, reason *string) error {
	iv, ok := s.interviews[interviewID]
	if !ok {
		return apperrors.ErrInterviewNotFound
	}
	iv.ScheduledAt = scheduledAt
	iv.StatusReason = reason
	iv.Status = models.InterviewStatusRescheduled
	return nil
}

func (s *fakeInterviewStore) UpdateStatus(_ context.Context, interviewID int64, status models.InterviewStatus, reason *string) error {
	iv, ok := s.interviews[interviewID]
	if !ok {
		return apperrors.ErrInterviewNotFound
	}
	iv.Status = status
	iv.StatusReason = reason
	return nil
}

func (s *fakeInterviewStore) SaveFeedback(_ context.Context, interviewID int64, feedback *models.Feedback) error {
	iv, ok := s.interviews[interviewID]
	if !ok {
		return apperrors.ErrInterviewNotFound
	}
	iv.Feedback = feedback
	iv.Status = models.InterviewStatusCompleted
	return nil
}

type fakeReviewStore struct {
	reviews map[int64]*models.Review
	nextID  int64
}

func newFakeReviewStore(reviews ...*models.Review) *fakeReviewStore {
	s := &fakeReviewStore{reviews: make(map[int64]*models.Review)}
	for _, review := range reviews {
		if review.ID > s.nextID {
			s.nextID = review.ID
		}
		s.reviews[review.ID] = review
	}
	return s
}

func (s *fakeReviewStore) Create(_ context.Context, review *models.Review) (int64, error) {
	for _, existing := range s.reviews {
		if existing.ReviewerID == review.ReviewerID && existing.TargetID == review.TargetID &&
			int64Value(existing.JobID) == int64Value(review.JobID) {
			return 0, apperrors.ErrReviewExists
		}
	}
	s.nextID++
	review.ID = s.nextID
	review.CreatedAt = time.Now()
	s.reviews[review.ID] = review
	return review.ID, nil
}

func (s *fakeReviewStore) GetByID(_ context.Context, id int64) (*models.Review, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (s *fakeReviewStore) GetAll(_ context.Context, filter *dto.ReviewFilter) ([]models.Review, int64, error) {
	var reviews []models.Review
	for _, review := range s.reviews {
		if filter.TargetID != 0 && review.TargetID != filter.TargetID {
			continue
		}
		if filter.ReviewerID != 0 && review.ReviewerID != filter.ReviewerID {
			continue
		}
		if filter.Status != "" && string(review.Status) != filter.Status {
			continue
		}
		reviews = append(reviews, *review)
	}
	return reviews, int64(len(reviews)), nil
}

func (s *fakeReviewStore) UpdateStatus(_ context.Context, reviewID int64, status models.ReviewStatus, adminNotes *string) error {
	review, ok := s.reviews[reviewID]
	if !ok {
		return apperrors.ErrReviewNotFound
	}
	review.Status = status
	review.AdminNotes = adminNotes
	return nil
}

func (s *fakeReviewStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.reviews[id]; !ok {
		return apperrors.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *fakeReviewStore) GetSummary(_ context.Context, targetID int64) (*dto.ReviewSummary, error) {
	summary := &dto.ReviewSummary{TargetID: targetID}
	var sum int
	for _, review := range s.reviews {
		if review.TargetID == targetID && review.Status == models.ReviewStatusApproved {
			summary.ReviewCount++
			sum += review.Rating
		}
	}
	if summary.ReviewCount > 0 {
		summary.AverageRating = float64(sum) / float64(summary.ReviewCount)
	}
	return summary, nil
}

type fakeUserDirectory struct {
	users   map[int64]*models.User
	interns map[int64]*models.Intern
}

func newFakeUserDirectory(users []*models.User, interns []*models.Intern) *fakeUserDirectory {
	d := &fakeUserDirectory{users: make(map[int64]*models.User), interns: make(map[int64]*models.Intern)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	for _, i := range interns {
		d.interns[i.ID] = i
	}
	return d
}

func (d *fakeUserDirectory) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (d *fakeUserDirectory) GetInternByID(_ context.Context, id int64) (*models.Intern, error) {
	intern, ok := d.interns[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return intern, nil
}

type fakeHistory struct {
	accepted bool
}

func (f *fakeHistory) HasAcceptedApplication(_ context.Context, _, _ int64) (bool, error) {
	return f.accepted, nil
}

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	statusMails    []sentMail
	interviewMails []sentMail
}

func (m *fakeMailer) SendApplicationStatusMail(toEmail, _, _, status string) error {
	m.statusMails = append(m.statusMails, sentMail{to: toEmail, subject: status})
	return nil
}

func (m *fakeMailer) SendInterviewScheduledMail(toEmail, _, _, when string) error {
	m.interviewMails = append(m.interviewMails, sentMail{to: toEmail, subject: when})
	return nil
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
