package models

import "time"

// Intern defines the intern profile based on the 'interns' table
type Intern struct {
	ID           int64        `json:"id" db:"id" example:"1"`         // Unique identifier for the intern record
	UserID       int64        `json:"userId" db:"user_id" example:"5"` // ID of the associated user account
	Headline     *string      `json:"headline,omitempty" db:"headline" example:"CS student looking for a backend internship"`
	Bio          *string      `json:"bio,omitempty" db:"bio"`
	Location     *string      `json:"location,omitempty" db:"location" example:"Berlin"`
	Skills       []string     `json:"skills" db:"skills"` // Set of skill tags
	Education    []Education  `json:"education"`          // Education history, stored as jsonb
	Experience   []Experience `json:"experience"`         // Experience entries, stored as jsonb
	ResumeFileID *int64       `json:"resumeFileId,omitempty" db:"resume_file_id"` // File record for the uploaded resume (nullable)

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// Education is a single education history entry
type Education struct {
	Institution string     `json:"institution" example:"Technical University"`
	Degree      string     `json:"degree" example:"BSc"`
	Field       string     `json:"field" example:"Computer Science"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
}

// Experience is a single work experience entry
type Experience struct {
	Title       string     `json:"title" example:"Junior Developer"`
	Company     string     `json:"company" example:"Acme GmbH"`
	Location    string     `json:"location,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description,omitempty"`
}
