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

func newJobServiceForTest(store *fakeJobStore, company *models.Company) JobService {
	return NewJobService(store, newFakeApplicationStore(), &fakeAuthz{company: company}, testLogger)
}

func testCompany() *models.Company {
	return &models.Company{ID: 3, UserID: 30, CompanyName: "Acme GmbH"}
}

func TestCreateJobDefaultsToActive(t *testing.T) {
	store := newFakeJobStore()
	svc := newJobServiceForTest(store, testCompany())

	job, err := svc.CreateJob(context.Background(), 30, &dto.CreateJobRequest{
		Title:       "Backend Intern",
		JobType:     "REMOTE",
		Description: "Work on Go services",
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, int64(3), job.CompanyID)
}

func TestCreateJobDraftFlag(t *testing.T) {
	store := newFakeJobStore()
	svc := newJobServiceForTest(store, testCompany())

	job, err := svc.CreateJob(context.Background(), 30, &dto.CreateJobRequest{
		Title:       "Backend Intern",
		JobType:     "REMOTE",
		Description: "Work on Go services",
		Draft:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDraft, job.Status)
}

func TestCreateJobRejectsInvertedSalaryRange(t *testing.T) {
	svc := newJobServiceForTest(newFakeJobStore(), testCompany())

	_, err := svc.CreateJob(context.Background(), 30, &dto.CreateJobRequest{
		Title:       "Backend Intern",
		JobType:     "REMOTE",
		Description: "Work on Go services",
		SalaryMin:   intPtr(2000),
		SalaryMax:   intPtr(1000),
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateJobRejectsPastDeadline(t *testing.T) {
	svc := newJobServiceForTest(newFakeJobStore(), testCompany())

	past := time.Now().Add(-24 * time.Hour)
	_, err := svc.CreateJob(context.Background(), 30, &dto.CreateJobRequest{
		Title:       "Backend Intern",
		JobType:     "REMOTE",
		Description: "Work on Go services",
		Deadline:    &past,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetJobHidesDraftsFromOthers(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusDraft})
	svc := newJobServiceForTest(store, testCompany())

	_, err := svc.GetJob(context.Background(), 1, models.RoleIntern, 99)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	_, err = svc.GetJob(context.Background(), 1, "", 0)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestGetJobDraftVisibleToOwnerAndAdmin(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusDraft})
	svc := newJobServiceForTest(store, testCompany())

	job, err := svc.GetJob(context.Background(), 1, models.RoleCompany, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ID)

	_, err = svc.GetJob(context.Background(), 1, models.RoleAdmin, 999)
	assert.NoError(t, err)
}

func TestGetJobInternViewBumpsCounter(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusActive, ViewCount: 5})
	svc := newJobServiceForTest(store, testCompany())

	job, err := svc.GetJob(context.Background(), 1, models.RoleIntern, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(6), job.ViewCount)
	assert.Equal(t, 1, store.viewBumps[1])

	// Anonymous and company views leave the counter alone
	_, err = svc.GetJob(context.Background(), 1, "", 0)
	require.NoError(t, err)
	_, err = svc.GetJob(context.Background(), 1, models.RoleCompany, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, store.viewBumps[1])
}

func TestListJobsOnlyActive(t *testing.T) {
	store := newFakeJobStore(
		&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusActive},
		&models.Job{ID: 2, CompanyID: 3, Status: models.JobStatusDraft},
		&models.Job{ID: 3, CompanyID: 3, Status: models.JobStatusClosed},
	)
	svc := newJobServiceForTest(store, testCompany())

	jobs, pagination, err := svc.ListJobs(context.Background(), &dto.JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusActive, jobs[0].Status)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestListCompanyJobsIncludesDrafts(t *testing.T) {
	store := newFakeJobStore(
		&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusActive},
		&models.Job{ID: 2, CompanyID: 3, Status: models.JobStatusDraft},
		&models.Job{ID: 3, CompanyID: 8, Status: models.JobStatusActive},
	)
	svc := newJobServiceForTest(store, testCompany())

	jobs, _, err := svc.ListCompanyJobs(context.Background(), 30, &dto.JobFilter{})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestListCompanyJobsCarriesApplicationCounts(t *testing.T) {
	store := newFakeJobStore(
		&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusActive},
		&models.Job{ID: 2, CompanyID: 3, Status: models.JobStatusDraft},
	)
	appStore := newFakeApplicationStore(
		&models.Application{ID: 5, JobID: 1, InternID: 9, Status: models.ApplicationStatusPending},
		&models.Application{ID: 6, JobID: 1, InternID: 11, Status: models.ApplicationStatusRejected},
	)
	svc := NewJobService(store, appStore, &fakeAuthz{company: testCompany()}, testLogger)

	jobs, _, err := svc.ListCompanyJobs(context.Background(), 30, &dto.JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	counts := map[int64]int64{}
	for _, job := range jobs {
		require.NotNil(t, job.ApplicationCount)
		counts[job.ID] = *job.ApplicationCount
	}
	assert.Equal(t, int64(2), counts[1])
	assert.Equal(t, int64(0), counts[2])
}

func TestUpdateJobStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.JobStatus
		to      models.JobStatus
		wantErr error
	}{
		{"draft to active", models.JobStatusDraft, models.JobStatusActive, nil},
		{"draft to cancelled", models.JobStatusDraft, models.JobStatusCancelled, nil},
		{"active to filled", models.JobStatusActive, models.JobStatusFilled, nil},
		{"active to closed", models.JobStatusActive, models.JobStatusClosed, nil},
		{"active to cancelled", models.JobStatusActive, models.JobStatusCancelled, nil},
		{"draft to filled", models.JobStatusDraft, models.JobStatusFilled, apperrors.ErrInvalidJobTransition},
		{"active to draft", models.JobStatusActive, models.JobStatusDraft, apperrors.ErrInvalidJobTransition},
		{"filled is terminal", models.JobStatusFilled, models.JobStatusActive, apperrors.ErrInvalidJobTransition},
		{"closed is terminal", models.JobStatusClosed, models.JobStatusActive, apperrors.ErrInvalidJobTransition},
		{"cancelled is terminal", models.JobStatusCancelled, models.JobStatusActive, apperrors.ErrInvalidJobTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: tt.from})
			svc := newJobServiceForTest(store, testCompany())

			job, err := svc.UpdateJobStatus(context.Background(), 1, 30, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, job.Status)
		})
	}
}

func TestUpdateJobStatusSameStatusIsNoOp(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusActive})
	svc := newJobServiceForTest(store, testCompany())

	job, err := svc.UpdateJobStatus(context.Background(), 1, 30, models.JobStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, job.Status)
}

func TestUpdateJobRejectsForeignCompany(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 8, Status: models.JobStatusActive})
	svc := newJobServiceForTest(store, testCompany())

	_, err := svc.UpdateJob(context.Background(), 1, 30, &dto.UpdateJobRequest{Title: strPtr("New Title")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateJobTerminalIsReadOnly(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusClosed})
	svc := newJobServiceForTest(store, testCompany())

	_, err := svc.UpdateJob(context.Background(), 1, 30, &dto.UpdateJobRequest{Title: strPtr("New Title")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobTransition)
}

func TestUpdateJobPatchesFields(t *testing.T) {
	store := newFakeJobStore(&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusActive, Title: "Old", Description: "Desc"})
	svc := newJobServiceForTest(store, testCompany())

	job, err := svc.UpdateJob(context.Background(), 1, 30, &dto.UpdateJobRequest{
		Title:     strPtr("New Title"),
		SalaryMin: intPtr(1000),
		SalaryMax: intPtr(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", job.Title)
	assert.Equal(t, "Desc", job.Description)
	assert.Equal(t, 1000, *job.SalaryMin)
}

func TestDeleteJobOnlyDrafts(t *testing.T) {
	store := newFakeJobStore(
		&models.Job{ID: 1, CompanyID: 3, Status: models.JobStatusDraft},
		&models.Job{ID: 2, CompanyID: 3, Status: models.JobStatusActive},
	)
	svc := newJobServiceForTest(store, testCompany())

	require.NoError(t, svc.DeleteJob(context.Background(), 1, 30))
	_, err := svc.GetJob(context.Background(), 1, models.RoleAdmin, 0)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	err = svc.DeleteJob(context.Background(), 2, 30)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
