package workers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careercraft_backend/internal/email"
	"careercraft_backend/internal/logger"
	"careercraft_backend/internal/repositories"
)

const (
	auditInterval = 6 * time.Hour
	auditWindow   = 7 * 24 * time.Hour
	cleanInterval = 24 * time.Hour
)

// LedgerWorker runs the background hygiene tasks: it audits stored credit
// balances against the ledger sum for recently active users, and purges
// expired refresh tokens. Drift is never auto-corrected, only reported.
type LedgerWorker struct {
	creditRepo repositories.CreditRepository
	userRepo   repositories.UserRepository
	emails     email.Provider
	opsEmail   string
}

func NewLedgerWorker(
	creditRepo repositories.CreditRepository,
	userRepo repositories.UserRepository,
	emails email.Provider,
	opsEmail string,
) *LedgerWorker {
	return &LedgerWorker{
		creditRepo: creditRepo,
		userRepo:   userRepo,
		emails:     emails,
		opsEmail:   opsEmail,
	}
}

func (w *LedgerWorker) Start(ctx context.Context) {
	go w.auditLoop(ctx)
	go w.cleanLoop(ctx)
}

func (w *LedgerWorker) auditLoop(ctx context.Context) {
	ticker := time.NewTicker(auditInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("ledger", "audit loop stopped", nil)
			return
		case <-ticker.C:
			w.runAudit(ctx)
		}
	}
}

func (w *LedgerWorker) runAudit(ctx context.Context) {
	rows, err := w.creditRepo.AuditBalances(time.Now().Add(-auditWindow))
	if err != nil {
		logger.CtxWithError(ctx, "ledger audit query failed", err)
		return
	}

	var drifted []repositories.AuditRow
	for _, row := range rows {
		if row.Balance != row.Sum {
			drifted = append(drifted, row)
			logger.CtxError(ctx, "ledger drift detected",
				"user_id", row.UserID,
				"balance", row.Balance,
				"ledger_sum", row.Sum,
			)
		}
	}

	if len(drifted) == 0 {
		logger.Info("ledger audit clean", "worker", "ledger", "users_checked", len(rows))
		return
	}

	w.alertDrift(ctx, drifted)
}

func (w *LedgerWorker) alertDrift(ctx context.Context, drifted []repositories.AuditRow) {
	if w.emails == nil || w.opsEmail == "" {
		return
	}

	var b strings.Builder
	b.WriteString("Stored credit balances disagree with the transaction ledger.\n\n")
	for _, row := range drifted {
		fmt.Fprintf(&b, "user %s: balance=%d ledger_sum=%d\n", row.UserID, row.Balance, row.Sum)
	}

	msg := &email.Email{
		To:      []string{w.opsEmail},
		Subject: fmt.Sprintf("[careercraft] ledger drift: %d user(s)", len(drifted)),
		Body:    b.String(),
	}
	if err := w.emails.Send(msg); err != nil {
		logger.CtxWithError(ctx, "ledger drift alert email failed", err)
	}
}

func (w *LedgerWorker) cleanLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("ledger", "token cleanup stopped", nil)
			return
		case <-ticker.C:
			if err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
				logger.CtxWithError(ctx, "refresh token cleanup failed", err)
			}
		}
	}
}
