package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email        string     `json:"email" db:"email" example:"intern@example.com"`                           // User's email address
	Password     string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName    string     `json:"firstName" db:"first_name" example:"John"`                                // User's first name
	LastName     string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	Phone        *string    `json:"phone,omitempty" db:"phone" example:"+15550001122"`                       // Contact phone number (nullable)
	Role         Role       `json:"role" db:"role" example:"INTERN"`                                         // User's role (INTERN, COMPANY or ADMIN)
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	AvatarFileID *int64     `json:"avatarFileId,omitempty" db:"avatar_file_id"`                              // File record for the avatar/logo (nullable)
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2026-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" example:"2026-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" example:"2026-01-02T15:30:00Z"`                // Timestamp when the user was last updated
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
