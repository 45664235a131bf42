package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	User        *UserRepository
	Token       *TokenRepository
	Job         *JobRepository
	Application *ApplicationRepository
	Interview   *InterviewRepository
	Review      *ReviewRepository
	File        *FileRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Token:       NewTokenRepository(db),
		Job:         NewJobRepository(db),
		Application: NewApplicationRepository(db),
		Interview:   NewInterviewRepository(db),
		Review:      NewReviewRepository(db),
		File:        NewFileRepository(db),
	}
}
