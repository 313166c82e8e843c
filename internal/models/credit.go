package models

// CreditTransaction is the append-only ledger. Amount is signed: credits
// are positive, usage debits negative. The sum of a user's rows always
// equals their CreditBalance; rows are written in the same database
// transaction as the balance change they describe.
type CreditTransaction struct {
	BaseModel
	UserID        string                `gorm:"type:uuid;not null;index"`
	Amount        int                   `gorm:"not null"`
	Type          CreditTransactionType `gorm:"type:varchar(20);not null"`
	Description   string                `gorm:"type:varchar(255)"`
	OperationKind OperationKind         `gorm:"type:varchar(40)"`
	BalanceAfter  int                   `gorm:"not null"`

	// Reference deduplicates externally-driven credits (purchase webhook
	// event IDs, admin adjustment keys). Empty for usage rows.
	Reference string `gorm:"type:varchar(120);uniqueIndex:idx_credit_tx_reference,where:reference <> ''"`
}

// GenerationReceipt makes a generation request replay-safe. It is written
// in the same transaction as the artifact and the debit; a replayed
// request key returns the recorded artifact without charging again.
type GenerationReceipt struct {
	BaseModel
	UserID         string        `gorm:"type:uuid;not null;index"`
	RequestKey     string        `gorm:"type:varchar(120);not null;uniqueIndex"`
	OperationKind  OperationKind `gorm:"type:varchar(40);not null"`
	ArtifactID     string        `gorm:"type:uuid"`
	CreditsCharged int           `gorm:"not null"`
}
