package domain

// ResumeMatchRequest carries the raw resume and job posting texts.
type ResumeMatchRequest struct {
	Resume string
	Job    string
}

// ResumeMatchResult is the scored comparison of a resume against a posting.
// All fields are always populated; MatchScore stays within [0, 100].
type ResumeMatchResult struct {
	MatchScore   int    `json:"match_score"`
	Summary      string `json:"summary"`
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
}
