package repositories

import (
	"errors"
	"time"

	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient credit balance")
	ErrDuplicateReference  = errors.New("duplicate transaction reference")
	ErrReceiptNotFound     = errors.New("generation receipt not found")
)

// CommitParams describes the final step of a paid generation: artifact,
// debit and receipt land in one database transaction.
type CommitParams struct {
	UserID      string
	Cost        int
	Unlimited   bool // TEAM/ENTERPRISE: skip the balance check, record a zero-amount row
	Kind        models.OperationKind
	Description string
	RequestKey  string // optional idempotency key
}

type CommitResult struct {
	ArtifactID   string
	BalanceAfter int
	Transaction  *models.CreditTransaction
}

// AuditRow is one user's ledger-vs-balance comparison.
type AuditRow struct {
	UserID  string
	Balance int
	Sum     int
}

type CreditRepository interface {
	GetBalance(userID string) (int, error)

	// Credit adds a positive amount and appends the ledger row atomically.
	// A non-empty reference deduplicates webhook replays.
	Credit(userID string, amount int, txType models.CreditTransactionType, description, reference string) (*models.CreditTransaction, error)

	// Adjust applies a signed admin adjustment. Negative adjustments are
	// guarded the same way as debits and never push the balance below zero.
	Adjust(userID string, amount int, description, reference string) (*models.CreditTransaction, error)

	// CommitGeneration runs persist, then the conditional debit, the ledger
	// row and the receipt inside one transaction. Any failure rolls back
	// everything, including the persisted artifact.
	CommitGeneration(params CommitParams, persist func(tx *gorm.DB) (string, error)) (*CommitResult, error)

	FindReceipt(userID, requestKey string) (*models.GenerationReceipt, error)

	History(userID string, limit, offset int) ([]models.CreditTransaction, int64, error)

	// AuditBalances compares each recently-active user's stored balance
	// against the sum of their ledger rows.
	AuditBalances(since time.Time) ([]AuditRow, error)
}

type CreditRepositoryImpl struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &CreditRepositoryImpl{db: db}
}

func (r *CreditRepositoryImpl) GetBalance(userID string) (int, error) {
	var user models.User
	err := r.db.Select("credit_balance").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.CreditBalance, nil
}

func (r *CreditRepositoryImpl) Credit(userID string, amount int, txType models.CreditTransactionType, description, reference string) (*models.CreditTransaction, error) {
	var row *models.CreditTransaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if reference != "" {
			var existing models.CreditTransaction
			err := tx.First(&existing, "reference = ?", reference).Error
			if err == nil {
				return ErrDuplicateReference
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"credit_balance":  gorm.Expr("credit_balance + ?", amount),
				"lifetime_earned": gorm.Expr("lifetime_earned + ?", amount),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		var user models.User
		if err := tx.Select("credit_balance").First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		row = &models.CreditTransaction{
			UserID:       userID,
			Amount:       amount,
			Type:         txType,
			Description:  description,
			BalanceAfter: user.CreditBalance,
			Reference:    reference,
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *CreditRepositoryImpl) Adjust(userID string, amount int, description, reference string) (*models.CreditTransaction, error) {
	if amount >= 0 {
		return r.Credit(userID, amount, models.TxAdjustment, description, reference)
	}

	var row *models.CreditTransaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if reference != "" {
			var existing models.CreditTransaction
			err := tx.First(&existing, "reference = ?", reference).Error
			if err == nil {
				return ErrDuplicateReference
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND credit_balance >= ?", userID, -amount).
			Update("credit_balance", gorm.Expr("credit_balance + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		var user models.User
		if err := tx.Select("credit_balance").First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		row = &models.CreditTransaction{
			UserID:       userID,
			Amount:       amount,
			Type:         models.TxAdjustment,
			Description:  description,
			BalanceAfter: user.CreditBalance,
			Reference:    reference,
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *CreditRepositoryImpl) CommitGeneration(p CommitParams, persist func(tx *gorm.DB) (string, error)) (*CommitResult, error) {
	var out CommitResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		artifactID, err := persist(tx)
		if err != nil {
			return err
		}
		out.ArtifactID = artifactID

		amount := 0
		if !p.Unlimited && p.Cost > 0 {
			// Conditional decrement: concurrent requests race on the same
			// balance, and the WHERE clause lets only one of them win.
			result := tx.Model(&models.User{}).
				Where("id = ? AND credit_balance >= ?", p.UserID, p.Cost).
				Updates(map[string]interface{}{
					"credit_balance": gorm.Expr("credit_balance - ?", p.Cost),
					"lifetime_used":  gorm.Expr("lifetime_used + ?", p.Cost),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientBalance
			}
			amount = -p.Cost
		}

		var user models.User
		if err := tx.Select("credit_balance").First(&user, "id = ?", p.UserID).Error; err != nil {
			return err
		}
		out.BalanceAfter = user.CreditBalance

		row := &models.CreditTransaction{
			UserID:        p.UserID,
			Amount:        amount,
			Type:          models.TxUsage,
			Description:   p.Description,
			OperationKind: p.Kind,
			BalanceAfter:  user.CreditBalance,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		out.Transaction = row

		if p.RequestKey != "" {
			receipt := &models.GenerationReceipt{
				UserID:         p.UserID,
				RequestKey:     p.RequestKey,
				OperationKind:  p.Kind,
				ArtifactID:     artifactID,
				CreditsCharged: -amount,
			}
			if err := tx.Create(receipt).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CreditRepositoryImpl) FindReceipt(userID, requestKey string) (*models.GenerationReceipt, error) {
	var receipt models.GenerationReceipt
	err := r.db.First(&receipt, "user_id = ? AND request_key = ?", userID, requestKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *CreditRepositoryImpl) History(userID string, limit, offset int) ([]models.CreditTransaction, int64, error) {
	var rows []models.CreditTransaction
	var total int64

	query := r.db.Model(&models.CreditTransaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (r *CreditRepositoryImpl) AuditBalances(since time.Time) ([]AuditRow, error) {
	var rows []AuditRow
	err := r.db.Raw(`
		SELECT u.id AS user_id,
		       u.credit_balance AS balance,
		       COALESCE(SUM(t.amount), 0) AS sum
		FROM users u
		LEFT JOIN credit_transactions t ON t.user_id = u.id
		WHERE u.updated_at >= ?
		GROUP BY u.id, u.credit_balance`, since).Scan(&rows).Error
	return rows, err
}
