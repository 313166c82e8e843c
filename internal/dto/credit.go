package dto

type BalanceResponse struct {
	Balance        int    `json:"balance"`
	Plan           string `json:"plan"`
	Unlimited      bool   `json:"unlimited"`
	LifetimeEarned int    `json:"lifetime_earned"`
	LifetimeUsed   int    `json:"lifetime_used"`
}

type CreditTransactionResponse struct {
	ID            string `json:"id"`
	Amount        int    `json:"amount"`
	Type          string `json:"type"`
	Description   string `json:"description,omitempty"`
	OperationKind string `json:"operation_kind,omitempty"`
	BalanceAfter  int    `json:"balance_after"`
	CreatedAt     string `json:"created_at"`
}

type CreditHistoryResponse struct {
	Transactions []CreditTransactionResponse `json:"transactions"`
	Total        int64                       `json:"total"`
	Page         int                         `json:"page"`
	PageSize     int                         `json:"page_size"`
}

type AdjustCreditsRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	Amount      int    `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required,max=255"`
	Reference   string `json:"reference" validate:"max=120"`
}

// PurchaseWebhookRequest is the billing collaborator's credit grant.
// EventID deduplicates webhook redeliveries.
type PurchaseWebhookRequest struct {
	EventID string `json:"event_id" validate:"required,max=120"`
	UserID  string `json:"user_id" validate:"required,uuid"`
	Credits int    `json:"credits" validate:"required,gt=0"`
}
