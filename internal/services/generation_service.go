package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careercraft_backend/internal/email"
	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/logger"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/repositories"
	"careercraft_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ExecuteRequest describes one metered generation. The caller builds the
// prompt and supplies closures for parsing the model output and persisting
// the artifact; Execute owns the lifecycle around them.
type ExecuteRequest struct {
	UserID     string
	Kind       models.OperationKind
	RequestKey string // optional idempotency key from the client
	Prompt     string

	// Parse validates the raw model output and returns the canonical
	// artifact content.
	Parse func(raw string) (json.RawMessage, error)

	// Persist stores the artifact inside the commit transaction and
	// returns its ID. Nil for operations that produce no artifact.
	Persist func(tx *gorm.DB, content json.RawMessage) (string, error)
}

type ExecuteResult struct {
	ArtifactID     string
	Content        json.RawMessage
	CreditsCharged int
	Balance        int
	Replayed       bool
}

// GenerationService is the single choke point every metered operation
// passes through: pre-check, provider call, parse, then artifact + debit +
// receipt in one database transaction.
type GenerationService interface {
	Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error)
}

type GenerationServiceImpl struct {
	userRepo   repositories.UserRepository
	creditRepo repositories.CreditRepository
	client     genai.Client
	emails     email.Provider
	opsEmail   string
	timeout    time.Duration
}

func NewGenerationService(
	userRepo repositories.UserRepository,
	creditRepo repositories.CreditRepository,
	client genai.Client,
	emails email.Provider,
	opsEmail string,
	timeout time.Duration,
) GenerationService {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &GenerationServiceImpl{
		userRepo:   userRepo,
		creditRepo: creditRepo,
		client:     client,
		emails:     emails,
		opsEmail:   opsEmail,
		timeout:    timeout,
	}
}

func (s *GenerationServiceImpl) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	op, ok := OperationByKind(req.Kind)
	if !ok {
		return nil, apperrors.ErrInvalidOperation("generation", "Unknown operation kind")
	}

	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	unlimited := user.Plan.Unlimited()

	// Replay: a recorded receipt means this request already charged and
	// persisted. Return the recorded artifact without touching the ledger.
	if req.RequestKey != "" {
		receipt, err := s.creditRepo.FindReceipt(req.UserID, req.RequestKey)
		if err == nil {
			// A key is bound to the operation it first committed; replaying
			// it under another kind must not leak that artifact.
			if receipt.OperationKind != req.Kind {
				return nil, apperrors.ErrConflict(errors.New("idempotency key reuse"),
					"generation", "Idempotency key was already used for a different operation")
			}
			balance, berr := s.creditRepo.GetBalance(req.UserID)
			if berr != nil {
				return nil, apperrors.InternalError(berr)
			}
			return &ExecuteResult{
				ArtifactID:     receipt.ArtifactID,
				CreditsCharged: receipt.CreditsCharged,
				Balance:        balance,
				Replayed:       true,
			}, nil
		}
		if !errors.Is(err, repositories.ErrReceiptNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	// Advisory pre-check. The authoritative check is the conditional
	// decrement at commit; this one just rejects cheaply before spending
	// provider budget.
	if !unlimited && op.Cost > 0 {
		balance, err := s.creditRepo.GetBalance(req.UserID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if balance < op.Cost {
			return nil, apperrors.ErrInsufficientCredits(op.Cost, balance)
		}
	}

	// The provider call runs detached from request cancellation: once we
	// may be paying for model output, a dropped client connection must not
	// discard it. The configured timeout still bounds the call.
	genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	raw, err := s.client.Generate(genCtx, op.Profile, req.Prompt)
	if err != nil {
		logger.CtxWithError(ctx, "generation call failed", err, "kind", string(req.Kind))
		return nil, apperrors.ErrGenerationFailed(err)
	}

	content, err := req.Parse(raw)
	if err != nil {
		logger.CtxWithError(ctx, "model output rejected", err, "kind", string(req.Kind))
		return nil, apperrors.ErrMalformedResponse(err)
	}

	persist := req.Persist
	if persist == nil {
		persist = func(tx *gorm.DB, content json.RawMessage) (string, error) {
			return "", nil
		}
	}

	commit, err := s.creditRepo.CommitGeneration(repositories.CommitParams{
		UserID:      req.UserID,
		Cost:        op.Cost,
		Unlimited:   unlimited,
		Kind:        req.Kind,
		Description: fmt.Sprintf("%s generation", req.Kind),
		RequestKey:  req.RequestKey,
	}, func(tx *gorm.DB) (string, error) {
		return persist(tx, content)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			// A concurrent request won the race between pre-check and
			// commit. Nothing was persisted or charged.
			balance, berr := s.creditRepo.GetBalance(req.UserID)
			if berr != nil {
				balance = 0
			}
			return nil, apperrors.ErrInsufficientCredits(op.Cost, balance)
		}
		s.alertPersistenceIncident(ctx, req, err)
		return nil, apperrors.ErrPersistenceIncident(err)
	}

	charged := 0
	if commit.Transaction != nil {
		charged = -commit.Transaction.Amount
	}

	return &ExecuteResult{
		ArtifactID:     commit.ArtifactID,
		Content:        content,
		CreditsCharged: charged,
		Balance:        commit.BalanceAfter,
	}, nil
}

// alertPersistenceIncident notifies operations that provider value was
// consumed without delivery: the model answered but the artifact could
// not be stored. The user is never charged in this case.
func (s *GenerationServiceImpl) alertPersistenceIncident(ctx context.Context, req ExecuteRequest, cause error) {
	logger.CtxWithError(ctx, "persistence incident", cause,
		"kind", string(req.Kind), "user_id", req.UserID)

	if s.emails == nil || s.opsEmail == "" {
		return
	}

	msg := &email.Email{
		To:      []string{s.opsEmail},
		Subject: fmt.Sprintf("[careercraft] persistence incident: %s", req.Kind),
		Body: fmt.Sprintf(
			"A generated artifact could not be stored.\n\nuser: %s\noperation: %s\nrequest key: %s\nerror: %v\n",
			req.UserID, req.Kind, req.RequestKey, cause),
	}
	if err := s.emails.Send(msg); err != nil {
		logger.CtxWithError(ctx, "ops alert email failed", err)
	}
}
