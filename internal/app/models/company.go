package models

// Company defines the company profile based on the 'companies' table
type Company struct {
	ID          int64   `json:"id" db:"id" example:"1"`          // Unique identifier for the company record
	UserID      int64   `json:"userId" db:"user_id" example:"7"` // ID of the associated user account
	CompanyName string  `json:"companyName" db:"company_name" example:"Acme GmbH"`
	Industry    *string `json:"industry,omitempty" db:"industry" example:"Software"`
	Description *string `json:"description,omitempty" db:"description"`
	Website     *string `json:"website,omitempty" db:"website" example:"https://acme.example"`
	SizeBucket  *string `json:"sizeBucket,omitempty" db:"size_bucket" example:"11-50"` // Employee count bucket
	FoundedYear *int    `json:"foundedYear,omitempty" db:"founded_year" example:"2014"`
	LogoFileID  *int64  `json:"logoFileId,omitempty" db:"logo_file_id"`   // File record for the logo (nullable)
	CoverFileID *int64  `json:"coverFileId,omitempty" db:"cover_file_id"` // File record for the cover image (nullable)
	LinkedinURL *string `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	TwitterURL  *string `json:"twitterUrl,omitempty" db:"twitter_url"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
