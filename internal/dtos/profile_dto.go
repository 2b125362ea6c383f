package dtos

type ProfileCreationRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`

	// Optional fields
	Phone           string   `json:"phone"`
	University      string   `json:"university"`
	GraduationYear  int      `json:"graduationYear"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel" binding:"omitempty,oneof=fresher entry mid senior"`
	ResumeURL       *string  `json:"resumeUrl"`
}

// ProfilePatch is the allow-list for PUT /profiles/:id. The original
// merged whatever keys the caller sent; typed patches close that gap.
type ProfilePatch struct {
	FullName        *string   `json:"fullName"`
	Email           *string   `json:"email" binding:"omitempty,email"`
	Phone           *string   `json:"phone"`
	University      *string   `json:"university"`
	GraduationYear  *int      `json:"graduationYear"`
	Skills          *[]string `json:"skills"`
	ExperienceLevel *string   `json:"experienceLevel" binding:"omitempty,oneof=fresher entry mid senior"`
	ResumeURL       *string   `json:"resumeUrl"`
	Points          *int      `json:"points" binding:"omitempty,gte=0"`
	Level           *int      `json:"level" binding:"omitempty,gte=1"`
	Role            *string   `json:"role" binding:"omitempty,oneof=user admin moderator"`
}
