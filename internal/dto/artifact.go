package dto

import "encoding/json"

type UpdateResumeRequest struct {
	Title   string          `json:"title" validate:"max=200"`
	Content json.RawMessage `json:"content"`
}

type ResumeResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type ResumeListResponse struct {
	Resumes  []ResumeResponse `json:"resumes"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ResumeVersionResponse struct {
	ID        string          `json:"id"`
	Version   int             `json:"version"`
	Label     string          `json:"label,omitempty"`
	Content   json.RawMessage `json:"content"`
	CreatedAt string          `json:"created_at"`
}

type DocumentResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt string          `json:"created_at"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

type TailoredResumeResponse struct {
	ID           string          `json:"id"`
	BaseResumeID string          `json:"base_resume_id"`
	JobTitle     string          `json:"job_title,omitempty"`
	Company      string          `json:"company,omitempty"`
	Content      json.RawMessage `json:"content"`
	MatchNotes   json.RawMessage `json:"match_notes,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

type InterviewSessionResponse struct {
	ID         string          `json:"id"`
	TargetRole string          `json:"target_role"`
	Company    string          `json:"company,omitempty"`
	Questions  json.RawMessage `json:"questions"`
	CreatedAt  string          `json:"created_at"`
}

type InterviewListResponse struct {
	Sessions []InterviewSessionResponse `json:"sessions"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

type CommunicationReportResponse struct {
	ID        string          `json:"id"`
	Context   string          `json:"context,omitempty"`
	Content   json.RawMessage `json:"content"`
	CreatedAt string          `json:"created_at"`
}

type CommunicationReportListResponse struct {
	Reports  []CommunicationReportResponse `json:"reports"`
	Total    int64                         `json:"total"`
	Page     int                           `json:"page"`
	PageSize int                           `json:"page_size"`
}
