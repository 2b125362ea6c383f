package models

import (
	"time"
)

type ExperienceLevel string

const (
	ExperienceFresher ExperienceLevel = "fresher"
	ExperienceEntry   ExperienceLevel = "entry"
	ExperienceMid     ExperienceLevel = "mid"
	ExperienceSenior  ExperienceLevel = "senior"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

type JobType string

const (
	JobTypeInternship JobType = "internship"
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
)

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusReferred  ApplicationStatus = "referred"
	StatusInterview ApplicationStatus = "interview"
	StatusHired     ApplicationStatus = "hired"
	StatusRejected  ApplicationStatus = "rejected"
)

// Profile is the portal's user record, distinct from the identity
// provider's own user. Exactly one row per userId.
type Profile struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"userId"`

	FullName        string          `json:"fullName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	University      string          `json:"university"`
	GraduationYear  int             `json:"graduationYear"`
	Skills          []string        `gorm:"serializer:json" json:"skills"`
	ExperienceLevel ExperienceLevel `gorm:"default:'fresher'" json:"experienceLevel"`
	ResumeURL       *string         `json:"resumeUrl"`
	Points          int             `gorm:"default:0" json:"points"`
	Level           int             `gorm:"default:1" json:"level"`
	Role            Role            `gorm:"default:'user'" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Job struct {
	ID string `gorm:"primaryKey" json:"id"`

	Title          string   `gorm:"not null" json:"title"`
	Company        string   `gorm:"not null" json:"company"`
	Description    string   `gorm:"type:text" json:"description"`
	Requirements   []string `gorm:"serializer:json" json:"requirements"`
	SkillsRequired []string `gorm:"serializer:json" json:"skillsRequired"`
	Location       string   `json:"location"`
	JobType        JobType  `json:"jobType"`
	SalaryRange    string   `json:"salaryRange"`
	PostedBy       string   `gorm:"index" json:"postedBy"`
	IsActive       bool     `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Application joins a Profile and a Job. The composite unique index
// backs the one-application-per-(user, job) rule at the store, so a
// racing duplicate insert loses even when the advisory pre-check in
// the service passed.
type Application struct {
	ID     string `gorm:"primaryKey" json:"id"`
	JobID  string `gorm:"index;uniqueIndex:idx_applications_user_job;not null" json:"jobId"`
	UserID string `gorm:"index;uniqueIndex:idx_applications_user_job;not null" json:"userId"`

	Status      ApplicationStatus `gorm:"default:'applied'" json:"status"`
	MatchScore  *int              `json:"matchScore,omitempty"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ApplicationDetails is an Application enriched with its referenced
// Profile and Job for display. Either pointer may be nil when the
// referenced record has since been deleted; dangling references are
// tolerated, not repaired.
type ApplicationDetails struct {
	Application
	User *Profile `gorm:"-" json:"user,omitempty"`
	Job  *Job     `gorm:"-" json:"job,omitempty"`
}

// Achievement is a static catalog entry. There is no server-side
// awarding path; unlocks are read-only display data.
type Achievement struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	PointsReward     int       `json:"pointsReward"`
	RequirementType  string    `json:"requirementType"`
	RequirementValue int       `json:"requirementValue"`
	CreatedAt        time.Time `json:"createdAt"`
}

type UserAchievement struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"index;not null" json:"userId"`
	AchievementID string    `gorm:"not null" json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`

	Achievement *Achievement `gorm:"-" json:"achievement,omitempty"`
}

// Credential backs the local identity provider. Never serialized to
// clients.
type Credential struct {
	UserID       string `gorm:"primaryKey" json:"-"`
	Email        string `gorm:"uniqueIndex;not null" json:"-"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
