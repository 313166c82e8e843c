package integration

import (
	"net/http"
	"testing"

	"careercraft_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndProfile(t *testing.T) {
	ts := helpers.NewTestServer(t)

	email := helpers.UniqueEmail("auth")
	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     email,
		"password":  "strongpass1",
		"full_name": "Registration Test",
	}, "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			ID            string `json:"id"`
			Email         string `json:"email"`
			CreditBalance int    `json:"credit_balance"`
			ReferralCode  string `json:"referral_code"`
		} `json:"user"`
	}
	helpers.DecodeBody(t, resp, &registered)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, email, registered.User.Email)
	assert.NotEmpty(t, registered.User.ReferralCode)
	assert.Greater(t, registered.User.CreditBalance, 0, "signup bonus should be granted")

	token := helpers.Login(t, ts, email, "strongpass1")

	resp = ts.DoRequest(t, http.MethodGet, "/api/v1/users/me", nil, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Email string `json:"email"`
	}
	helpers.DecodeBody(t, resp, &profile)
	assert.Equal(t, email, profile.Email)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp := ts.DoRequest(t, http.MethodGet, "/api/v1/credits/balance", nil, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    helpers.UniqueEmail("weak"),
		"password": "short",
	}, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
