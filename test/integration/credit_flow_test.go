package integration

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"careercraft_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceAndHistory(t *testing.T) {
	ts := helpers.NewTestServer(t)

	email := helpers.UniqueEmail("balance")
	user := helpers.CreateUser(t, ts.DB, email, "strongpass1", 7)
	token := helpers.Login(t, ts, email, "strongpass1")

	resp := ts.DoRequest(t, http.MethodGet, "/api/v1/credits/balance", nil, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var balance struct {
		Balance   int    `json:"balance"`
		Plan      string `json:"plan"`
		Unlimited bool   `json:"unlimited"`
	}
	helpers.DecodeBody(t, resp, &balance)
	assert.Equal(t, 7, balance.Balance)
	assert.Equal(t, "FREE", balance.Plan)
	assert.False(t, balance.Unlimited)

	resp = ts.DoRequest(t, http.MethodGet, "/api/v1/credits/history", nil, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history struct {
		Transactions []struct {
			Amount int `json:"amount"`
		} `json:"transactions"`
		Page int `json:"page"`
	}
	helpers.DecodeBody(t, resp, &history)
	assert.Equal(t, 1, history.Page)

	_ = user
}

func TestGenerationRejectedWhenBalanceTooLow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	email := helpers.UniqueEmail("broke")
	helpers.CreateUser(t, ts.DB, email, "strongpass1", 0)
	token := helpers.Login(t, ts, email, "strongpass1")

	// The pre-check runs before any provider call, so a zero balance is
	// rejected without external traffic.
	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/resumes/generate", map[string]string{
		"title":        "My Resume",
		"profile_text": "Ten years of backend engineering across payments and infrastructure teams.",
		"target_role":  "Staff Engineer",
	}, token, nil)
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	helpers.DecodeBody(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_CREDITS", body.Error.Code)
}

func TestPurchaseWebhookCreditsAndDeduplicates(t *testing.T) {
	ts := helpers.NewTestServer(t)

	secret := os.Getenv("BILLING_WEBHOOK_SECRET")
	if secret == "" {
		t.Skip("BILLING_WEBHOOK_SECRET not set, skipping webhook test")
	}

	email := helpers.UniqueEmail("purchase")
	user := helpers.CreateUser(t, ts.DB, email, "strongpass1", 0)

	eventID := fmt.Sprintf("evt-%d", time.Now().UnixNano())
	payload := map[string]interface{}{
		"event_id": eventID,
		"user_id":  user.ID,
		"credits":  25,
	}
	headers := map[string]string{"X-Webhook-Secret": secret}

	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/billing/webhook", payload, "", headers)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var balance struct {
		Balance int `json:"balance"`
	}
	helpers.DecodeBody(t, resp, &balance)
	assert.Equal(t, 25, balance.Balance)

	// Redelivery of the same event must not credit twice.
	resp = ts.DoRequest(t, http.MethodPost, "/api/v1/billing/webhook", payload, "", headers)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	helpers.DecodeBody(t, resp, &balance)
	assert.Equal(t, 25, balance.Balance)
}

func TestPurchaseWebhookRejectsBadSecret(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/billing/webhook", map[string]interface{}{
		"event_id": "evt-bad-secret",
		"user_id":  "00000000-0000-0000-0000-000000000000",
		"credits":  10,
	}, "", map[string]string{"X-Webhook-Secret": "wrong"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminAdjustCredits(t *testing.T) {
	ts := helpers.NewTestServer(t)

	adminEmail := helpers.UniqueEmail("admin")
	admin := helpers.CreateUser(t, ts.DB, adminEmail, "strongpass1", 0)
	helpers.PromoteAdmin(t, ts.DB, admin.ID)
	adminToken := helpers.Login(t, ts, adminEmail, "strongpass1")

	userEmail := helpers.UniqueEmail("target")
	user := helpers.CreateUser(t, ts.DB, userEmail, "strongpass1", 3)

	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/admin/credits/adjust", map[string]interface{}{
		"user_id":     user.ID,
		"amount":      5,
		"description": "Support goodwill",
	}, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tx struct {
		Amount       int `json:"amount"`
		BalanceAfter int `json:"balance_after"`
	}
	helpers.DecodeBody(t, resp, &tx)
	assert.Equal(t, 5, tx.Amount)
	assert.Equal(t, 8, tx.BalanceAfter)

	// A plain user must not reach the admin group.
	userToken := helpers.Login(t, ts, userEmail, "strongpass1")
	resp = ts.DoRequest(t, http.MethodPost, "/api/v1/admin/credits/adjust", map[string]interface{}{
		"user_id":     user.ID,
		"amount":      5,
		"description": "Should be rejected",
	}, userToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
