package services

import (
	"testing"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/models"
	"careercraft_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreditFixture(t *testing.T) (*fakeStore, CreditService) {
	t.Helper()
	store := newFakeStore()
	users := &fakeUserRepo{store: store}
	credits := &fakeCreditRepo{store: store}
	return store, NewCreditService(users, credits)
}

func TestGetBalance(t *testing.T) {
	store, svc := newCreditFixture(t)
	user := store.addUser("u1", models.PlanPro, 42)
	user.LifetimeEarned = 50
	user.LifetimeUsed = 8

	resp, err := svc.GetBalance("u1")
	require.NoError(t, err)
	assert.Equal(t, 42, resp.Balance)
	assert.Equal(t, "PRO", resp.Plan)
	assert.False(t, resp.Unlimited)
	assert.Equal(t, 50, resp.LifetimeEarned)
	assert.Equal(t, 8, resp.LifetimeUsed)
}

func TestGetBalance_UnlimitedPlan(t *testing.T) {
	store, svc := newCreditFixture(t)
	store.addUser("u1", models.PlanTeam, 0)

	resp, err := svc.GetBalance("u1")
	require.NoError(t, err)
	assert.True(t, resp.Unlimited)
}

func TestCreditPurchase_IdempotentByEventID(t *testing.T) {
	store, svc := newCreditFixture(t)
	store.addUser("u1", models.PlanFree, 0)

	first, err := svc.CreditPurchase("u1", 25, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 25, first.Balance)

	// Webhook redelivery with the same event id credits nothing more.
	second, err := svc.CreditPurchase("u1", 25, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 25, second.Balance)
	assert.Equal(t, 25, store.ledgerSum("u1"))
}

func TestCreditPurchase_RejectsNonPositive(t *testing.T) {
	store, svc := newCreditFixture(t)
	store.addUser("u1", models.PlanFree, 0)

	_, err := svc.CreditPurchase("u1", 0, "evt-2")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestGrantSignupBonus_OncePerUser(t *testing.T) {
	store, svc := newCreditFixture(t)
	store.addUser("u1", models.PlanFree, 0)

	require.NoError(t, svc.GrantSignupBonus("u1", 10))
	require.NoError(t, svc.GrantSignupBonus("u1", 10), "duplicate grant is a no-op")

	assert.Equal(t, 10, store.users["u1"].CreditBalance)
	assert.Equal(t, 10, store.ledgerSum("u1"))
}

func TestAdminAdjust_NegativeBoundedByBalance(t *testing.T) {
	store, svc := newCreditFixture(t)
	store.addUser("u1", models.PlanFree, 5)

	_, err := svc.AdminAdjust(&dto.AdjustCreditsRequest{
		UserID: "u1", Amount: -10, Description: "clawback",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInsufficientCredits, appErr.Code)
	assert.Equal(t, 5, store.users["u1"].CreditBalance)

	row, err := svc.AdminAdjust(&dto.AdjustCreditsRequest{
		UserID: "u1", Amount: -3, Description: "clawback",
	})
	require.NoError(t, err)
	assert.Equal(t, -3, row.Amount)
	assert.Equal(t, 2, row.BalanceAfter)
}

func TestGetHistory_Paginates(t *testing.T) {
	store, svc := newCreditFixture(t)
	store.addUser("u1", models.PlanFree, 0)

	for i := 0; i < 5; i++ {
		_, err := (&fakeCreditRepo{store: store}).Credit("u1", 1, models.TxAdjustment, "drip", "")
		require.NoError(t, err)
	}

	page, err := svc.GetHistory("u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Transactions, 2)
}
