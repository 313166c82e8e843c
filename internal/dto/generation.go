package dto

import "encoding/json"

type GenerateResumeRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	ProfileText string `json:"profile_text" validate:"required,min=50,max=20000"`
	TargetRole  string `json:"target_role" validate:"required,max=200"`
}

type TailorResumeRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=50,max=20000"`
	JobTitle       string `json:"job_title" validate:"max=200"`
	Company        string `json:"company" validate:"max=200"`
}

type GenerateDocumentRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Background string `json:"background" validate:"required,min=30,max=20000"`
	// Target is the job description, program or opportunity the document
	// aims at, depending on the kind.
	Target string `json:"target" validate:"max=20000"`
	Tone   string `json:"tone" validate:"max=40"`
}

type InterviewPrepRequest struct {
	Background string `json:"background" validate:"required,min=30,max=20000"`
	TargetRole string `json:"target_role" validate:"required,max=200"`
	Company    string `json:"company" validate:"max=200"`
}

type ATSScoreRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=50,max=20000"`
	JobDescription string `json:"job_description" validate:"required,min=50,max=20000"`
}

type KeywordExtractRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=50,max=20000"`
}

type CommunicationAnalysisRequest struct {
	Text    string `json:"text" validate:"required,min=20,max=20000"`
	Context string `json:"context" validate:"max=200"`
}

// GenerationResponse is the common envelope for every metered operation:
// the artifact plus the authoritative balance after the debit.
type GenerationResponse struct {
	ArtifactID     string          `json:"artifact_id,omitempty"`
	Content        json.RawMessage `json:"content"`
	CreditsCharged int             `json:"credits_charged"`
	Balance        int             `json:"balance"`
	Replayed       bool            `json:"replayed,omitempty"`
}
