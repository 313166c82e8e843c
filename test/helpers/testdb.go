package helpers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"careercraft_backend/internal/auth"
	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a user directly, hashing the given plain password.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, balance int) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  hash,
		FullName:      "Test User",
		Role:          models.UserRoleUser,
		Status:        models.UserStatusActive,
		Plan:          models.PlanFree,
		CreditBalance: balance,
		ReferralCode:  fmt.Sprintf("T%d", time.Now().UnixNano()%1e9),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// PromoteAdmin flips a user to the admin role.
func PromoteAdmin(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	err := db.Model(&models.User{}).Where("id = ?", userID).Update("role", models.UserRoleAdmin).Error
	if err != nil {
		t.Fatalf("failed to promote user to admin: %v", err)
	}
}

// Login authenticates via the API and returns the access token.
func Login(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	resp := ts.DoRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed for %s: status %d", email, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	DecodeBody(t, resp, &body)
	return body.AccessToken
}

// UniqueEmail returns an email unlikely to collide across test runs.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@test.local", prefix, time.Now().UnixNano())
}
