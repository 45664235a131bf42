package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/internfinder/internfinder/internal/app/auth"
	appControllers "github.com/internfinder/internfinder/internal/app/controllers"
	appMigrations "github.com/internfinder/internfinder/internal/app/migrations"
	appRepos "github.com/internfinder/internfinder/internal/app/repositories"
	appRoutes "github.com/internfinder/internfinder/internal/app/routes"
	appServices "github.com/internfinder/internfinder/internal/app/services"
	"github.com/internfinder/internfinder/internal/config"
	"github.com/internfinder/internfinder/internal/db"
	appMiddleware "github.com/internfinder/internfinder/internal/middleware"
	pkgAuth "github.com/internfinder/internfinder/internal/pkg/auth"
	"github.com/internfinder/internfinder/internal/pkg/filestorage"
	"github.com/internfinder/internfinder/internal/pkg/helpers"
	"github.com/internfinder/internfinder/internal/pkg/logger"
	"github.com/internfinder/internfinder/internal/pkg/mailer"
	"github.com/internfinder/internfinder/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	UserService        appServices.UserService
	JobService         appServices.JobService
	ApplicationService appServices.ApplicationService
	InterviewService   appServices.InterviewService
	ReviewService      appServices.ReviewService
	FileService        appServices.FileService

	Controllers appRoutes.Controllers

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	FileStorage    *filestorage.LocalStorage
	Mailer         mailer.Mailer
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding problems should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage URL must match the static file serving path
	var err error
	fileStorageBaseURL := cfg.BaseURL() + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.User, deps.Repos.Job)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Mailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.User, deps.Repos.Token, deps.JWTService, lgr)
	deps.FileService = appServices.NewFileService(deps.Repos.File, deps.Repos.User, deps.FileStorage, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.User, deps.FileService, lgr)
	deps.JobService = appServices.NewJobService(deps.Repos.Job, deps.Repos.Application, deps.AuthzService, lgr)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.Application,
		deps.Repos.Job,
		deps.AuthzService,
		deps.Repos.User,
		deps.Mailer,
		lgr,
	)
	deps.InterviewService = appServices.NewInterviewService(
		deps.Repos.Interview,
		deps.Repos.Application,
		deps.AuthzService,
		deps.Repos.User,
		deps.Mailer,
		lgr,
	)
	deps.ReviewService = appServices.NewReviewService(deps.Repos.Review, deps.Repos.User, deps.Repos.Application, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(deps.AuthService, lgr),
		User:        appControllers.NewUserController(deps.UserService, lgr),
		Job:         appControllers.NewJobController(deps.JobService, lgr),
		Application: appControllers.NewApplicationController(deps.ApplicationService, lgr),
		Interview:   appControllers.NewInterviewController(deps.InterviewService, lgr),
		Review:      appControllers.NewReviewController(deps.ReviewService, lgr),
		File:        appControllers.NewFileController(deps.FileService, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())

	router.Use(cors.New(corsConfigFor(cfg)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRoutes(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

// corsConfigFor builds the CORS policy from the configured allow-list. The
// frontend sends the access token with credentialed requests, so credentials
// stay enabled.
func corsConfigFor(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return corsConfig
}
