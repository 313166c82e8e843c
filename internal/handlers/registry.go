package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	CreditHandler    *CreditHandler
	BillingHandler   *BillingHandler
	ResumeHandler    *ResumeHandler
	DocumentHandler  *DocumentHandler
	InterviewHandler *InterviewHandler
	AnalysisHandler  *AnalysisHandler
	AdminHandler     *AdminHandler
}
