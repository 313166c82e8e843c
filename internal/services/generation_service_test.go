package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"careercraft_backend/internal/email"
	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/models"
	"careercraft_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

type genFixture struct {
	store   *fakeStore
	users   *fakeUserRepo
	credits *fakeCreditRepo
	client  *fakeGenClient
	emails  *email.MockProvider
	svc     GenerationService
}

func newGenFixture(t *testing.T) *genFixture {
	t.Helper()
	store := newFakeStore()
	users := &fakeUserRepo{store: store}
	credits := &fakeCreditRepo{store: store}
	client := &fakeGenClient{response: `{"ok":true}`}
	emails := email.NewMockProvider()
	svc := NewGenerationService(users, credits, client, emails, "ops@example.com", 5*time.Second)
	return &genFixture{store: store, users: users, credits: credits, client: client, emails: emails, svc: svc}
}

func passthroughParse(raw string) (json.RawMessage, error) {
	return json.RawMessage(raw), nil
}

func persistCounter(store *fakeStore, count *int) func(tx *gorm.DB, content json.RawMessage) (string, error) {
	return func(tx *gorm.DB, content json.RawMessage) (string, error) {
		*count++
		return store.genID(), nil
	}
}

func TestExecute_SuccessDebitsAndPersists(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)

	persisted := 0
	result, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:  "u1",
		Kind:    models.OpResumeGenerate, // cost 2
		Prompt:  "p",
		Parse:   passthroughParse,
		Persist: persistCounter(f.store, &persisted),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, persisted)
	assert.NotEmpty(t, result.ArtifactID)
	assert.Equal(t, 2, result.CreditsCharged)
	assert.Equal(t, 8, result.Balance)
	assert.Equal(t, 8, f.store.users["u1"].CreditBalance)
	assert.Equal(t, -2, f.store.ledgerSum("u1"))
}

func TestExecute_InsufficientBalanceRejectsBeforeProviderCall(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 1)

	persisted := 0
	_, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:  "u1",
		Kind:    models.OpResumeGenerate, // cost 2
		Prompt:  "p",
		Parse:   passthroughParse,
		Persist: persistCounter(f.store, &persisted),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInsufficientCredits, appErr.Code)

	assert.Equal(t, 0, f.client.callCount(), "no provider budget spent on a rejected request")
	assert.Equal(t, 0, persisted)
	assert.Equal(t, 1, f.store.users["u1"].CreditBalance)
	assert.Empty(t, f.store.txs)
}

func TestExecute_BalanceExactlyAtCostPasses(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 2)

	persisted := 0
	result, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:  "u1",
		Kind:    models.OpResumeGenerate, // cost 2
		Prompt:  "p",
		Parse:   passthroughParse,
		Persist: persistCounter(f.store, &persisted),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Balance)
}

func TestExecute_GenerationFailureNeverCharges(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)
	f.client.err = errors.New("provider exploded")

	persisted := 0
	_, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:  "u1",
		Kind:    models.OpCoverLetter,
		Prompt:  "p",
		Parse:   passthroughParse,
		Persist: persistCounter(f.store, &persisted),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)

	assert.Equal(t, 0, persisted)
	assert.Equal(t, 10, f.store.users["u1"].CreditBalance)
	assert.Empty(t, f.store.txs)
}

func TestExecute_MalformedOutputNeverCharges(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)
	f.client.response = "here is some chatty prose, no JSON at all"

	persisted := 0
	_, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID: "u1",
		Kind:   models.OpCoverLetter,
		Prompt: "p",
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured[map[string]string](raw, nil)
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
		Persist: persistCounter(f.store, &persisted),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMalformedResponse, appErr.Code)

	assert.Equal(t, 0, persisted)
	assert.Equal(t, 10, f.store.users["u1"].CreditBalance)
	assert.Empty(t, f.store.txs)
}

func TestExecute_UnlimitedPlanSkipsDebitRecordsUsage(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanEnterprise, 0)

	persisted := 0
	result, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:  "u1",
		Kind:    models.OpSOP, // cost 3
		Prompt:  "p",
		Parse:   passthroughParse,
		Persist: persistCounter(f.store, &persisted),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, persisted)
	assert.Equal(t, 0, result.CreditsCharged)
	assert.Equal(t, 0, f.store.users["u1"].CreditBalance)

	require.Len(t, f.store.txs, 1)
	assert.Equal(t, 0, f.store.txs[0].Amount)
	assert.Equal(t, models.TxUsage, f.store.txs[0].Type)
	assert.Equal(t, models.OpSOP, f.store.txs[0].OperationKind)
}

func TestExecute_FreeOperationRecordsZeroUsage(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 0)

	result, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID: "u1",
		Kind:   models.OpATSScore, // cost 0, no artifact
		Prompt: "p",
		Parse:  passthroughParse,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.CreditsCharged)
	assert.Empty(t, result.ArtifactID)
	require.Len(t, f.store.txs, 1)
	assert.Equal(t, 0, f.store.txs[0].Amount)
}

func TestExecute_PersistenceFailureNoChargeAlertsOps(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)

	_, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID: "u1",
		Kind:   models.OpResumeGenerate,
		Prompt: "p",
		Parse:  passthroughParse,
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			return "", errors.New("disk on fire")
		},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodePersistenceIncident, appErr.Code)

	assert.Equal(t, 10, f.store.users["u1"].CreditBalance)
	assert.Empty(t, f.store.txs)
	require.Len(t, f.emails.Sent, 1)
	assert.Contains(t, f.emails.Sent[0].Subject, "persistence incident")
}

func TestExecute_IdempotentReplayDoesNotChargeTwice(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)

	persisted := 0
	req := ExecuteRequest{
		UserID:     "u1",
		Kind:       models.OpResumeGenerate,
		RequestKey: "req-abc",
		Prompt:     "p",
		Parse:      passthroughParse,
		Persist:    persistCounter(f.store, &persisted),
	}

	first, err := f.svc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 8, first.Balance)
	assert.Equal(t, 1, f.client.callCount())

	second, err := f.svc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.ArtifactID, second.ArtifactID)
	assert.Equal(t, first.CreditsCharged, second.CreditsCharged)
	assert.Equal(t, 8, second.Balance, "replay never re-debits")
	assert.Equal(t, 1, f.client.callCount(), "replay never re-calls the provider")
	assert.Equal(t, 1, persisted)
	assert.Len(t, f.store.txs, 1)
}

func TestExecute_IdempotencyKeyBoundToOneOperation(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)

	first, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:     "u1",
		Kind:       models.OpResumeGenerate,
		RequestKey: "req-abc",
		Prompt:     "p",
		Parse:      passthroughParse,
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			return f.store.genID(), nil
		},
	})
	require.NoError(t, err)

	// Reusing the key under a different kind must not replay the other
	// operation's artifact.
	_, err = f.svc.Execute(context.Background(), ExecuteRequest{
		UserID:     "u1",
		Kind:       models.OpCoverLetter,
		RequestKey: "req-abc",
		Prompt:     "p",
		Parse:      passthroughParse,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	assert.Equal(t, 1, f.client.callCount())
	assert.Len(t, f.store.txs, 1)
	assert.Equal(t, first.Balance, f.store.users["u1"].CreditBalance)
}

func TestExecute_ConcurrentRequestsOnlyOneWins(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 2) // room for exactly one cost-2 debit

	const workers = 5
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := f.svc.Execute(context.Background(), ExecuteRequest{
				UserID: "u1",
				Kind:   models.OpResumeGenerate, // cost 2
				Prompt: "p",
				Parse:  passthroughParse,
				Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
					return f.store.genID(), nil
				},
			})
			results[idx] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	rejections := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInsufficientCredits, appErr.Code)
		rejections++
	}

	assert.Equal(t, 1, successes, "exactly one concurrent request may debit the last credits")
	assert.Equal(t, workers-1, rejections)
	assert.Equal(t, 0, f.store.users["u1"].CreditBalance)
	assert.Equal(t, -2, f.store.ledgerSum("u1"), "ledger matches the single debit")
}

func TestExecute_UnknownOperationKind(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 10)

	_, err := f.svc.Execute(context.Background(), ExecuteRequest{
		UserID: "u1",
		Kind:   models.OperationKind("mystery_op"),
		Prompt: "p",
		Parse:  passthroughParse,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
	assert.Equal(t, 0, f.client.callCount())
}

func TestExecute_LedgerSumAlwaysMatchesBalance(t *testing.T) {
	f := newGenFixture(t)
	f.store.addUser("u1", models.PlanFree, 0)

	// Earn, spend, and check the invariant at every step.
	_, err := f.credits.Credit("u1", 10, models.TxSignupBonus, "Signup bonus", "signup:u1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Execute(context.Background(), ExecuteRequest{
			UserID: "u1",
			Kind:   models.OpBio, // cost 1
			Prompt: "p",
			Parse:  passthroughParse,
			Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
				return f.store.genID(), nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, f.store.users["u1"].CreditBalance, f.store.ledgerSum("u1"))
	}

	assert.Equal(t, 7, f.store.users["u1"].CreditBalance)
}
