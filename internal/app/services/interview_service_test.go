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

type interviewFixture struct {
	svc      InterviewService
	store    *fakeInterviewStore
	appStore *fakeApplicationStore
	mail     *fakeMailer
}

func newInterviewFixture(apps []*models.Application, interviews []*models.Interview) *interviewFixture {
	store := newFakeInterviewStore(interviews...)
	appStore := newFakeApplicationStore(apps...)
	authz := &fakeAuthz{
		intern:  &models.Intern{ID: 9, UserID: 90},
		company: &models.Company{ID: 3, UserID: 30},
	}
	users := newFakeUserDirectory(
		[]*models.User{{ID: 90, Email: "intern@example.com", FirstName: "Ada", LastName: "Lovelace"}},
		[]*models.Intern{{ID: 9, UserID: 90}},
	)
	mail := &fakeMailer{}
	return &interviewFixture{
		svc:      NewInterviewService(store, appStore, authz, users, mail, testLogger),
		store:    store,
		appStore: appStore,
		mail:     mail,
	}
}

func reviewingApplication() *models.Application {
	return &models.Application{
		ID:       5,
		JobID:    1,
		InternID: 9,
		Status:   models.ApplicationStatusReviewing,
		Job:      &models.Job{ID: 1, CompanyID: 3, Title: "Backend Intern"},
	}
}

func TestScheduleMovesApplicationToInterview(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, nil)

	interview, err := f.svc.Schedule(context.Background(), 30, &dto.ScheduleInterviewRequest{
		ApplicationID:   5,
		Type:            "VIDEO",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 45,
		MeetingLink:     strPtr("https://meet.example.com/abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusScheduled, interview.Status)
	assert.Equal(t, int64(30), interview.InterviewerID)

	application, err := f.appStore.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterview, application.Status)

	require.Len(t, f.mail.interviewMails, 1)
	assert.Equal(t, "intern@example.com", f.mail.interviewMails[0].to)
}

func TestScheduleRejectsTerminalApplication(t *testing.T) {
	app := reviewingApplication()
	app.Status = models.ApplicationStatusRejected
	f := newInterviewFixture([]*models.Application{app}, nil)

	_, err := f.svc.Schedule(context.Background(), 30, &dto.ScheduleInterviewRequest{
		ApplicationID:   5,
		Type:            "VIDEO",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, apperrors.ErrApplicationTerminal)
}

func TestScheduleRejectsPastTime(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, nil)

	_, err := f.svc.Schedule(context.Background(), 30, &dto.ScheduleInterviewRequest{
		ApplicationID:   5,
		Type:            "VIDEO",
		ScheduledAt:     time.Now().Add(-time.Hour),
		DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestScheduleInPersonRequiresLocation(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, nil)

	_, err := f.svc.Schedule(context.Background(), 30, &dto.ScheduleInterviewRequest{
		ApplicationID:   5,
		Type:            "IN_PERSON",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func openInterview(status models.InterviewStatus) *models.Interview {
	return &models.Interview{
		ID:            7,
		ApplicationID: 5,
		InterviewerID: 30,
		Type:          models.InterviewTypeVideo,
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		Status:        status,
		Application:   reviewingApplication(),
	}
}

func TestRescheduleOpenInterview(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{openInterview(models.InterviewStatusScheduled)})

	newTime := time.Now().Add(72 * time.Hour)
	interview, err := f.svc.Reschedule(context.Background(), 7, 30, &dto.RescheduleInterviewRequest{
		ScheduledAt: newTime,
		Reason:      "interviewer unavailable",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusRescheduled, interview.Status)
	assert.WithinDuration(t, newTime, interview.ScheduledAt, time.Second)
	assert.Equal(t, "interviewer unavailable", *interview.StatusReason)
}

func TestRescheduleClosedInterview(t *testing.T) {
	for _, status := range []models.InterviewStatus{models.InterviewStatusCompleted, models.InterviewStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{openInterview(status)})

			_, err := f.svc.Reschedule(context.Background(), 7, 30, &dto.RescheduleInterviewRequest{
				ScheduledAt: time.Now().Add(72 * time.Hour),
				Reason:      "too late",
			})
			assert.ErrorIs(t, err, apperrors.ErrInterviewNotReschedulable)
		})
	}
}

func TestCancelOpenInterview(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{openInterview(models.InterviewStatusRescheduled)})

	interview, err := f.svc.Cancel(context.Background(), 7, 30, "position filled internally")
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusCancelled, interview.Status)
	assert.Equal(t, "position filled internally", *interview.StatusReason)
}

func TestCancelClosedInterview(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{openInterview(models.InterviewStatusCompleted)})

	_, err := f.svc.Cancel(context.Background(), 7, 30, "changed our mind")
	assert.ErrorIs(t, err, apperrors.ErrInterviewNotCancellable)
}

func TestSubmitFeedbackCompletesInterview(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{openInterview(models.InterviewStatusScheduled)})

	interview, err := f.svc.SubmitFeedback(context.Background(), 7, 30, &dto.InterviewFeedbackRequest{
		Rating:    4,
		Comments:  "strong fundamentals",
		Strengths: []string{"communication"},
		Outcome:   "recommend",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusCompleted, interview.Status)
	require.NotNil(t, interview.Feedback)
	assert.Equal(t, 4, interview.Feedback.Rating)
}

func TestSubmitFeedbackIsWriteOnce(t *testing.T) {
	iv := openInterview(models.InterviewStatusScheduled)
	iv.Feedback = &models.Feedback{Rating: 3}
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{iv})

	_, err := f.svc.SubmitFeedback(context.Background(), 7, 30, &dto.InterviewFeedbackRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrFeedbackAlreadyExists)
}

func TestSubmitFeedbackCancelledInterview(t *testing.T) {
	f := newInterviewFixture([]*models.Application{reviewingApplication()}, []*models.Interview{openInterview(models.InterviewStatusCancelled)})

	_, err := f.svc.SubmitFeedback(context.Background(), 7, 30, &dto.InterviewFeedbackRequest{Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestListOwnInterviews(t *testing.T) {
	foreign := openInterview(models.InterviewStatusScheduled)
	foreign.ID = 9
	foreign.InterviewerID = 77
	foreign.Application = &models.Application{ID: 6, JobID: 2, InternID: 11}

	f := newInterviewFixture(
		[]*models.Application{reviewingApplication()},
		[]*models.Interview{openInterview(models.InterviewStatusScheduled), foreign},
	)

	// Company sees what it scheduled
	interviews, pagination, err := f.svc.ListOwn(context.Background(), 30, models.RoleCompany, &dto.InterviewFilter{})
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, int64(7), interviews[0].ID)
	assert.Equal(t, int64(1), pagination.TotalItems)

	// Intern sees invitations through the application link
	interviews, _, err = f.svc.ListOwn(context.Background(), 90, models.RoleIntern, &dto.InterviewFilter{})
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, int64(7), interviews[0].ID)

	_, _, err = f.svc.ListOwn(context.Background(), 1, models.RoleAdmin, &dto.InterviewFilter{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestListByApplication(t *testing.T) {
	f := newInterviewFixture(
		[]*models.Application{reviewingApplication()},
		[]*models.Interview{
			openInterview(models.InterviewStatusScheduled),
			{ID: 8, ApplicationID: 5, InterviewerID: 30, Status: models.InterviewStatusCancelled},
			{ID: 9, ApplicationID: 6, InterviewerID: 30, Status: models.InterviewStatusScheduled},
		},
	)

	interviews, err := f.svc.ListByApplication(context.Background(), 5, 90, models.RoleIntern)
	require.NoError(t, err)
	assert.Len(t, interviews, 2)
}
