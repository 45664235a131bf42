package dto

import "github.com/internfinder/internfinder/internal/app/models"

// UserProfile aggregates base user info with the role-specific profile
type UserProfile struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role" example:"INTERN" enums:"INTERN,COMPANY,ADMIN"`
	IsActive  bool    `json:"isActive"`
	AvatarURL *string `json:"avatarUrl,omitempty"`

	// Role-specific profiles; exactly one is set for non-admin users
	Intern  *models.Intern  `json:"intern,omitempty"`
	Company *models.Company `json:"company,omitempty"`
}

// UpdateProfileRequest represents the shared profile fields any user may edit
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// UpdateInternProfileRequest represents intern-specific profile edits
type UpdateInternProfileRequest struct {
	Headline   *string             `json:"headline,omitempty"`
	Bio        *string             `json:"bio,omitempty"`
	Location   *string             `json:"location,omitempty"`
	Skills     []string            `json:"skills,omitempty"`
	Education  []models.Education  `json:"education,omitempty"`
	Experience []models.Experience `json:"experience,omitempty"`
}

// UpdateCompanyProfileRequest represents company-specific profile edits
type UpdateCompanyProfileRequest struct {
	CompanyName *string `json:"companyName,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" binding:"omitempty,url"`
	SizeBucket  *string `json:"sizeBucket,omitempty"`
	FoundedYear *int    `json:"foundedYear,omitempty" binding:"omitempty,min=1800,max=2100"`
	LinkedinURL *string `json:"linkedinUrl,omitempty" binding:"omitempty,url"`
	TwitterURL  *string `json:"twitterUrl,omitempty" binding:"omitempty,url"`
}
