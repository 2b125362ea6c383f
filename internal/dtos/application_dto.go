package dtos

type ApplicationCreationRequest struct {
	JobID string `json:"jobId" binding:"required"`

	// Optional fields
	CoverLetter string `json:"coverLetter"`
	MatchScore  *int   `json:"matchScore" binding:"omitempty,gte=0,lte=100"`
}

// ApplicationPatch is the allow-list for PUT /applications/:id.
// userId and jobId are immutable once applied.
type ApplicationPatch struct {
	Status      *string `json:"status" binding:"omitempty,oneof=applied reviewed referred interview hired rejected"`
	MatchScore  *int    `json:"matchScore" binding:"omitempty,gte=0,lte=100"`
	CoverLetter *string `json:"coverLetter"`
}
