package dtos

type JobCreationRequest struct {
	Title   string `json:"title" binding:"required"`
	Company string `json:"company" binding:"required"`
	JobType string `json:"jobType" binding:"required,oneof=internship full-time part-time contract"`

	// Optional fields
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
	SkillsRequired []string `json:"skillsRequired"`
	Location       string   `json:"location"`
	SalaryRange    string   `json:"salaryRange"`
	IsActive       *bool    `json:"isActive"` // defaults to true when omitted
}

// JobPatch is the allow-list for PUT /jobs/:id. Only non-nil fields
// are written; id, postedBy and createdAt can never be touched
// through a patch.
type JobPatch struct {
	Title          *string   `json:"title"`
	Company        *string   `json:"company"`
	Description    *string   `json:"description"`
	Requirements   *[]string `json:"requirements"`
	SkillsRequired *[]string `json:"skillsRequired"`
	Location       *string   `json:"location"`
	JobType        *string   `json:"jobType" binding:"omitempty,oneof=internship full-time part-time contract"`
	SalaryRange    *string   `json:"salaryRange"`
	IsActive       *bool     `json:"isActive"`
}
