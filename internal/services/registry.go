package services

import (
	"careercraft_backend/internal/email"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService       AuthService
	UserService       UserService
	CreditService     CreditService
	GenerationService GenerationService
	ResumeService     ResumeService
	DocumentService   DocumentService
	InterviewService  InterviewService
	AnalysisService   AnalysisService
	EmailService      email.Provider
}
