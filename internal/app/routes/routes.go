package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/internfinder/internfinder/internal/app/controllers"
	"github.com/internfinder/internfinder/internal/app/models"
	"github.com/internfinder/internfinder/internal/middleware"
)

// Controllers bundles every controller the router needs.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Job         *controllers.JobController
	Application *controllers.ApplicationController
	Interview   *controllers.InterviewController
	Review      *controllers.ReviewController
	File        *controllers.FileController
}

// SetupRoutes registers every API route under /api/v1.
func SetupRoutes(router *gin.Engine, ctrl Controllers, authMW *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public authentication endpoints
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register/intern", ctrl.Auth.RegisterIntern)
		authGroup.POST("/register/company", ctrl.Auth.RegisterCompany)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.POST("/refresh", ctrl.Auth.RefreshToken)
		authGroup.POST("/logout", ctrl.Auth.Logout)
	}

	// Public reads. Claims are picked up when present so that owners still
	// see their drafts and intern views bump the job counter.
	public := v1.Group("")
	public.Use(authMW.JWTOptional())
	{
		public.GET("/jobs", ctrl.Job.ListJobs)
		public.GET("/jobs/:id", ctrl.Job.GetJob)
		public.GET("/users/:id/reviews", ctrl.Review.ListUserReviews)
		public.GET("/users/:id/reviews/summary", ctrl.Review.GetSummary)
	}

	// Everything below requires a valid access token
	authenticated := v1.Group("")
	authenticated.Use(authMW.JWTAuth())
	{
		authenticated.PUT("/auth/password", ctrl.Auth.ChangePassword)

		authenticated.GET("/profile", ctrl.User.GetMe)
		authenticated.PUT("/profile", ctrl.User.UpdateProfile)
		authenticated.DELETE("/profile", ctrl.User.DeactivateAccount)
		authenticated.PUT("/profile/intern", ctrl.User.UpdateInternProfile)
		authenticated.PUT("/profile/company", ctrl.User.UpdateCompanyProfile)
		authenticated.GET("/users/:id", ctrl.User.GetUser)

		authenticated.GET("/applications/:id", ctrl.Application.GetApplication)
		authenticated.GET("/applications/:id/interviews", ctrl.Interview.ListByApplication)
		authenticated.GET("/interviews/:id", ctrl.Interview.GetInterview)

		// Both sides list their half of the market through the same paths
		authenticated.GET("/my/applications", ctrl.Application.ListMyApplications)
		authenticated.GET("/my/interviews", ctrl.Interview.ListMyInterviews)
		authenticated.GET("/my/reviews", ctrl.Review.ListMyReviews)

		authenticated.POST("/reviews", ctrl.Review.CreateReview)
		authenticated.DELETE("/reviews/:id", ctrl.Review.Retract)

		authenticated.GET("/files/:id", ctrl.File.GetFile)
		authenticated.POST("/uploads/avatar", ctrl.File.UploadAvatar)

		// Company-side operations
		company := authenticated.Group("")
		company.Use(authMW.RoleRequired(models.RoleCompany))
		{
			company.POST("/jobs", ctrl.Job.CreateJob)
			company.GET("/my/jobs", ctrl.Job.ListMyJobs)
			company.PUT("/jobs/:id", ctrl.Job.UpdateJob)
			company.PUT("/jobs/:id/status", ctrl.Job.UpdateJobStatus)
			company.DELETE("/jobs/:id", ctrl.Job.DeleteJob)
			company.GET("/jobs/:id/applications", ctrl.Application.ListJobApplications)

			company.PUT("/applications/:id/status", ctrl.Application.UpdateStatus)

			company.POST("/interviews", ctrl.Interview.Schedule)
			company.POST("/interviews/:id/reschedule", ctrl.Interview.Reschedule)
			company.POST("/interviews/:id/cancel", ctrl.Interview.Cancel)
			company.POST("/interviews/:id/feedback", ctrl.Interview.SubmitFeedback)

			company.POST("/uploads/logo", ctrl.File.UploadLogo)
			company.POST("/uploads/cover", ctrl.File.UploadCover)
		}

		// Intern-side operations
		intern := authenticated.Group("")
		intern.Use(authMW.RoleRequired(models.RoleIntern))
		{
			intern.POST("/applications", ctrl.Application.Apply)
			intern.POST("/applications/:id/withdraw", ctrl.Application.Withdraw)

			intern.POST("/uploads/resume", ctrl.File.UploadResume)
		}

		// Admin moderation endpoints
		admin := authenticated.Group("/admin")
		admin.Use(authMW.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/reviews/pending", ctrl.Review.ListPending)
			admin.PUT("/reviews/:id/moderate", ctrl.Review.Moderate)
		}
	}
}
