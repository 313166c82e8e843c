package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// PlanType is the billing plan a user is on. TEAM and ENTERPRISE are
// unlimited: generation never checks or decrements their balance.
type PlanType string

const (
	PlanFree       PlanType = "FREE"
	PlanPro        PlanType = "PRO"
	PlanTeam       PlanType = "TEAM"
	PlanEnterprise PlanType = "ENTERPRISE"
)

func (p PlanType) Unlimited() bool {
	return p == PlanTeam || p == PlanEnterprise
}

// OperationKind names one metered generation operation. The closed set of
// kinds with their costs lives in the services operation table.
type OperationKind string

const (
	OpResumeGenerate        OperationKind = "resume_generate"
	OpResumeTailor          OperationKind = "resume_tailor"
	OpCoverLetter           OperationKind = "cover_letter"
	OpSOP                   OperationKind = "sop"
	OpMotivationLetter      OperationKind = "motivation_letter"
	OpStudyPlan             OperationKind = "study_plan"
	OpFinancialLetter       OperationKind = "financial_letter"
	OpBio                   OperationKind = "bio"
	OpInterviewPrep         OperationKind = "interview_prep"
	OpATSScore              OperationKind = "ats_score"
	OpCommunicationAnalysis OperationKind = "communication_analysis"
	OpKeywordExtract        OperationKind = "keyword_extract"
)

func (k OperationKind) Valid() bool {
	switch k {
	case OpResumeGenerate, OpResumeTailor, OpCoverLetter, OpSOP,
		OpMotivationLetter, OpStudyPlan, OpFinancialLetter, OpBio,
		OpInterviewPrep, OpATSScore, OpCommunicationAnalysis, OpKeywordExtract:
		return true
	default:
		return false
	}
}

// DocumentKind is the subset of operations producing a standalone Document.
type DocumentKind string

const (
	DocCoverLetter      DocumentKind = "cover_letter"
	DocSOP              DocumentKind = "sop"
	DocMotivationLetter DocumentKind = "motivation_letter"
	DocStudyPlan        DocumentKind = "study_plan"
	DocFinancialLetter  DocumentKind = "financial_letter"
	DocBio              DocumentKind = "bio"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case DocCoverLetter, DocSOP, DocMotivationLetter, DocStudyPlan,
		DocFinancialLetter, DocBio:
		return true
	default:
		return false
	}
}

// OperationKind maps a document kind onto its metered operation.
func (k DocumentKind) OperationKind() OperationKind {
	return OperationKind(k)
}

type CreditTransactionType string

const (
	TxSignupBonus CreditTransactionType = "SIGNUP_BONUS"
	TxReferral    CreditTransactionType = "REFERRAL"
	TxPurchase    CreditTransactionType = "PURCHASE"
	TxUsage       CreditTransactionType = "USAGE"
	TxAdjustment  CreditTransactionType = "ADJUSTMENT"
)
