package prompts

import (
	"fmt"
	"strings"
)

// sanitize strips sentinel sequences from user text so delimited blocks
// cannot be terminated early by crafted input.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "<<<USER_DATA>>>", "")
	s = strings.ReplaceAll(s, "<<<END_USER_DATA>>>", "")
	return strings.TrimSpace(s)
}

// Structured output shapes shared with the services layer.

type ResumeContent struct {
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`

	Certifications []string    `json:"certifications,omitempty"`
	MatchNotes     *MatchNotes `json:"match_notes,omitempty"`
}

type ExperienceEntry struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Period  string   `json:"period"`
	Bullets []string `json:"bullets"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type MatchNotes struct {
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

type DocumentContent struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Highlights []string `json:"highlights"`
}

type InterviewPrepContent struct {
	Questions []InterviewQuestion `json:"questions"`
}

type InterviewQuestion struct {
	Question     string `json:"question"`
	Category     string `json:"category"`
	SampleAnswer string `json:"sample_answer"`
	Tips         string `json:"tips"`
}

type ATSScoreContent struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Recommendations []string `json:"recommendations"`
}

type KeywordContent struct {
	HardSkills     []string `json:"hard_skills"`
	SoftSkills     []string `json:"soft_skills"`
	Qualifications []string `json:"qualifications"`
	ActionVerbs    []string `json:"action_verbs"`
}

type CommunicationContent struct {
	Tone            string               `json:"tone"`
	ClarityScore    int                  `json:"clarity_score"`
	Issues          []CommunicationIssue `json:"issues"`
	OverallFeedback string               `json:"overall_feedback"`
}

type CommunicationIssue struct {
	Excerpt    string `json:"excerpt"`
	Problem    string `json:"problem"`
	Suggestion string `json:"suggestion"`
}

// Builders. Each returns the final prompt string for one operation.

func ResumeGenerate(profileText, targetRole string) string {
	return fmt.Sprintf(resumeGeneratePrompt,
		untrustedDataNotice, sanitize(profileText), sanitize(targetRole), jsonOnlyContract)
}

func ResumeTailor(resumeJSON, jobDescription string) string {
	return fmt.Sprintf(resumeTailorPrompt,
		untrustedDataNotice, sanitize(resumeJSON), sanitize(jobDescription), jsonOnlyContract)
}

func CoverLetter(background, jobDescription string) string {
	return fmt.Sprintf(coverLetterPrompt,
		untrustedDataNotice, sanitize(background), sanitize(jobDescription), jsonOnlyContract)
}

func SOP(background, targetProgram string) string {
	return fmt.Sprintf(sopPrompt,
		untrustedDataNotice, sanitize(background), sanitize(targetProgram), jsonOnlyContract)
}

func MotivationLetter(background, target string) string {
	return fmt.Sprintf(motivationLetterPrompt,
		untrustedDataNotice, sanitize(background), sanitize(target), jsonOnlyContract)
}

func StudyPlan(background, targetProgram string) string {
	return fmt.Sprintf(studyPlanPrompt,
		untrustedDataNotice, sanitize(background), sanitize(targetProgram), jsonOnlyContract)
}

func FinancialLetter(details, purpose string) string {
	return fmt.Sprintf(financialLetterPrompt,
		untrustedDataNotice, sanitize(details), sanitize(purpose), jsonOnlyContract)
}

func Bio(background, tone string) string {
	if strings.TrimSpace(tone) == "" {
		tone = "professional"
	}
	return fmt.Sprintf(bioPrompt,
		untrustedDataNotice, sanitize(background), sanitize(tone), jsonOnlyContract)
}

func InterviewPrep(background, targetRole, company string) string {
	if strings.TrimSpace(company) == "" {
		company = "not specified"
	}
	return fmt.Sprintf(interviewPrepPrompt,
		untrustedDataNotice, sanitize(background), sanitize(targetRole), sanitize(company), jsonOnlyContract)
}

func ATSScore(resumeText, jobDescription string) string {
	return fmt.Sprintf(atsScorePrompt,
		untrustedDataNotice, sanitize(resumeText), sanitize(jobDescription), jsonOnlyContract)
}

func KeywordExtract(jobDescription string) string {
	return fmt.Sprintf(keywordExtractPrompt,
		untrustedDataNotice, sanitize(jobDescription), jsonOnlyContract)
}

func CommunicationAnalysis(text, context string) string {
	if strings.TrimSpace(context) == "" {
		context = "professional correspondence"
	}
	return fmt.Sprintf(communicationAnalysisPrompt,
		untrustedDataNotice, sanitize(text), sanitize(context), jsonOnlyContract)
}
