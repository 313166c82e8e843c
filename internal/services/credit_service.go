package services

import (
	"errors"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/repositories"
	"careercraft_backend/pkg/apperrors"
)

// CreditService exposes the ledger to handlers: balance reads, history,
// webhook credits and admin adjustments. Debits happen only inside the
// generation commit, never here.
type CreditService interface {
	GetBalance(userID string) (*dto.BalanceResponse, error)
	GetHistory(userID string, page, pageSize int) (*dto.CreditHistoryResponse, error)
	GrantSignupBonus(userID string, amount int) error
	GrantReferralBonus(referrerID, newUserID string, amount int) error
	CreditPurchase(userID string, credits int, eventID string) (*dto.BalanceResponse, error)
	AdminAdjust(req *dto.AdjustCreditsRequest) (*dto.CreditTransactionResponse, error)
}

type CreditServiceImpl struct {
	userRepo   repositories.UserRepository
	creditRepo repositories.CreditRepository
}

func NewCreditService(userRepo repositories.UserRepository, creditRepo repositories.CreditRepository) CreditService {
	return &CreditServiceImpl{
		userRepo:   userRepo,
		creditRepo: creditRepo,
	}
}

func (s *CreditServiceImpl) GetBalance(userID string) (*dto.BalanceResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.BalanceResponse{
		Balance:        user.CreditBalance,
		Plan:           string(user.Plan),
		Unlimited:      user.Plan.Unlimited(),
		LifetimeEarned: user.LifetimeEarned,
		LifetimeUsed:   user.LifetimeUsed,
	}, nil
}

func (s *CreditServiceImpl) GetHistory(userID string, page, pageSize int) (*dto.CreditHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.creditRepo.History(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.CreditHistoryResponse{
		Transactions: make([]dto.CreditTransactionResponse, 0, len(rows)),
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	}
	for _, row := range rows {
		out.Transactions = append(out.Transactions, toTransactionResponse(&row))
	}
	return out, nil
}

func (s *CreditServiceImpl) GrantSignupBonus(userID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	_, err := s.creditRepo.Credit(userID, amount, models.TxSignupBonus, "Signup bonus", "signup:"+userID)
	if err != nil && !errors.Is(err, repositories.ErrDuplicateReference) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CreditServiceImpl) GrantReferralBonus(referrerID, newUserID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	_, err := s.creditRepo.Credit(referrerID, amount, models.TxReferral, "Referral bonus", "referral:"+newUserID)
	if err != nil && !errors.Is(err, repositories.ErrDuplicateReference) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CreditServiceImpl) CreditPurchase(userID string, credits int, eventID string) (*dto.BalanceResponse, error) {
	if credits <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	_, err := s.creditRepo.Credit(userID, credits, models.TxPurchase, "Credit purchase", "purchase:"+eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			// Webhook redelivery: already credited, report current state.
			return s.GetBalance(userID)
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetBalance(userID)
}

func (s *CreditServiceImpl) AdminAdjust(req *dto.AdjustCreditsRequest) (*dto.CreditTransactionResponse, error) {
	row, err := s.creditRepo.Adjust(req.UserID, req.Amount, req.Description, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrInsufficientBalance):
			balance, _ := s.creditRepo.GetBalance(req.UserID)
			return nil, apperrors.ErrInsufficientCredits(-req.Amount, balance)
		case errors.Is(err, repositories.ErrDuplicateReference):
			return nil, apperrors.ErrDuplicateReference
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	resp := toTransactionResponse(row)
	return &resp, nil
}

func toTransactionResponse(row *models.CreditTransaction) dto.CreditTransactionResponse {
	return dto.CreditTransactionResponse{
		ID:            row.ID,
		Amount:        row.Amount,
		Type:          string(row.Type),
		Description:   row.Description,
		OperationKind: string(row.OperationKind),
		BalanceAfter:  row.BalanceAfter,
		CreatedAt:     row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
