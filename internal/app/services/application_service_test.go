package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/app/models/dto"
	"github.com/internfinder/internfinder/internal/pkg/apperrors"
)

type applicationFixture struct {
	svc      ApplicationService
	store    *fakeApplicationStore
	jobStore *fakeJobStore
	mail     *fakeMailer
}

func newApplicationFixture(jobs []*models.Job, apps []*models.Application) *applicationFixture {
	store := newFakeApplicationStore(apps...)
	jobStore := newFakeJobStore(jobs...)
	authz := &fakeAuthz{
		intern:  &models.Intern{ID: 9, UserID: 90},
		company: &models.Company{ID: 3, UserID: 30, CompanyName: "Acme GmbH"},
	}
	users := newFakeUserDirectory(
		[]*models.User{{ID: 90, Email: "intern@example.com", FirstName: "Ada", LastName: "Lovelace"}},
		[]*models.Intern{{ID: 9, UserID: 90}},
	)
	mail := &fakeMailer{}
	return &applicationFixture{
		svc:      NewApplicationService(store, jobStore, authz, users, mail, testLogger),
		store:    store,
		jobStore: jobStore,
		mail:     mail,
	}
}

func activeJob(id int64) *models.Job {
	return &models.Job{ID: id, CompanyID: 3, Title: "Backend Intern", Status: models.JobStatusActive}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newApplicationFixture([]*models.Job{activeJob(1)}, nil)

	application, err := f.svc.Apply(context.Background(), 90, &dto.CreateApplicationRequest{JobID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, int64(9), application.InternID)
}

func TestApplyRejectsInactiveJob(t *testing.T) {
	tests := []struct {
		name   string
		status models.JobStatus
	}{
		{"draft", models.JobStatusDraft},
		{"filled", models.JobStatusFilled},
		{"closed", models.JobStatusClosed},
		{"cancelled", models.JobStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := activeJob(1)
			job.Status = tt.status
			f := newApplicationFixture([]*models.Job{job}, nil)

			_, err := f.svc.Apply(context.Background(), 90, &dto.CreateApplicationRequest{JobID: 1})
			assert.ErrorIs(t, err, apperrors.ErrJobNotActive)
		})
	}
}

func TestApplyRejectsPassedDeadline(t *testing.T) {
	job := activeJob(1)
	past := time.Now().Add(-time.Hour)
	job.Deadline = &past
	f := newApplicationFixture([]*models.Job{job}, nil)

	_, err := f.svc.Apply(context.Background(), 90, &dto.CreateApplicationRequest{JobID: 1})
	assert.ErrorIs(t, err, apperrors.ErrJobDeadlinePassed)
}

func TestApplyRejectsDuplicateActiveApplication(t *testing.T) {
	f := newApplicationFixture([]*models.Job{activeJob(1)}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusPending},
	})

	_, err := f.svc.Apply(context.Background(), 90, &dto.CreateApplicationRequest{JobID: 1})
	assert.ErrorIs(t, err, apperrors.ErrApplicationExists)
}

func TestApplyAllowedAfterWithdrawal(t *testing.T) {
	f := newApplicationFixture([]*models.Job{activeJob(1)}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusWithdrawn},
	})

	application, err := f.svc.Apply(context.Background(), 90, &dto.CreateApplicationRequest{JobID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ApplicationStatus
		to      string
		wantErr error
	}{
		{"pending to reviewing", models.ApplicationStatusPending, "REVIEWING", nil},
		{"pending to accepted", models.ApplicationStatusPending, "ACCEPTED", nil},
		{"reviewing to interview", models.ApplicationStatusReviewing, "INTERVIEW", nil},
		{"interview to rejected", models.ApplicationStatusInterview, "REJECTED", nil},
		{"reviewing back to pending", models.ApplicationStatusReviewing, "PENDING", apperrors.ErrInvalidStatusChange},
		{"interview to reviewing", models.ApplicationStatusInterview, "REVIEWING", apperrors.ErrInvalidStatusChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := activeJob(1)
			f := newApplicationFixture([]*models.Job{job}, []*models.Application{
				{ID: 5, JobID: 1, InternID: 9, Status: tt.from, Job: &models.Job{ID: 1, CompanyID: 3, Title: "Backend Intern"}},
			})

			application, err := f.svc.UpdateStatus(context.Background(), 5, 30, &dto.UpdateApplicationStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.ApplicationStatus(tt.to), application.Status)
		})
	}
}

func TestUpdateStatusTerminalApplicationsAreFrozen(t *testing.T) {
	for _, status := range []models.ApplicationStatus{
		models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newApplicationFixture([]*models.Job{activeJob(1)}, []*models.Application{
				{ID: 5, JobID: 1, InternID: 9, Status: status},
			})

			_, err := f.svc.UpdateStatus(context.Background(), 5, 30, &dto.UpdateApplicationStatusRequest{Status: "REVIEWING"})
			assert.ErrorIs(t, err, apperrors.ErrApplicationTerminal)
		})
	}
}

func TestAcceptingApplicationMarksJobFilled(t *testing.T) {
	job := activeJob(1)
	f := newApplicationFixture([]*models.Job{job}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusInterview, Job: &models.Job{ID: 1, CompanyID: 3, Title: "Backend Intern"}},
	})

	_, err := f.svc.UpdateStatus(context.Background(), 5, 30, &dto.UpdateApplicationStatusRequest{Status: "ACCEPTED", Score: intPtr(92)})
	require.NoError(t, err)

	stored, err := f.jobStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFilled, stored.Status)

	application, err := f.store.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 92, *application.Score)

	require.Len(t, f.mail.statusMails, 1)
	assert.Equal(t, "intern@example.com", f.mail.statusMails[0].to)
}

func TestWithdraw(t *testing.T) {
	f := newApplicationFixture([]*models.Job{activeJob(1)}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusReviewing},
	})

	application, err := f.svc.Withdraw(context.Background(), 5, 90)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWithdrawn, application.Status)
}

func TestWithdrawTerminalApplication(t *testing.T) {
	f := newApplicationFixture([]*models.Job{activeJob(1)}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusAccepted},
	})

	_, err := f.svc.Withdraw(context.Background(), 5, 90)
	assert.ErrorIs(t, err, apperrors.ErrApplicationTerminal)
}

func TestListJobApplicationsRejectsForeignJob(t *testing.T) {
	foreign := activeJob(2)
	foreign.CompanyID = 8
	f := newApplicationFixture([]*models.Job{foreign}, nil)

	_, _, err := f.svc.ListJobApplications(context.Background(), 2, 30, &dto.ApplicationFilter{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestListCompanyApplicationsSpansJobs(t *testing.T) {
	otherJob := activeJob(2)
	f := newApplicationFixture([]*models.Job{activeJob(1), otherJob}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusPending, Job: &models.Job{ID: 1, CompanyID: 3}},
		{ID: 6, JobID: 2, InternID: 11, Status: models.ApplicationStatusReviewing, Job: &models.Job{ID: 2, CompanyID: 3}},
		{ID: 7, JobID: 3, InternID: 9, Status: models.ApplicationStatusPending, Job: &models.Job{ID: 3, CompanyID: 8}},
	})

	applications, pagination, err := f.svc.ListCompanyApplications(context.Background(), 30, &dto.ApplicationFilter{})
	require.NoError(t, err)
	assert.Len(t, applications, 2)
	assert.Equal(t, int64(2), pagination.TotalItems)
}

func TestListOwnApplicationsFiltersByIntern(t *testing.T) {
	f := newApplicationFixture([]*models.Job{activeJob(1)}, []*models.Application{
		{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusPending},
		{ID: 6, JobID: 1, InternID: 11, Status: models.ApplicationStatusPending},
	})

	applications, pagination, err := f.svc.ListOwnApplications(context.Background(), 90, &dto.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, int64(9), applications[0].InternID)
	assert.Equal(t, int64(1), pagination.TotalItems)
}
