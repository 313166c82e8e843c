package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"careercraft_backend/internal/auth"
	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/logger"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/repositories"
	"careercraft_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	RefreshTTL    time.Duration
	SignupBonus   int
	ReferralBonus int
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	credits  CreditService
	cfg      AuthConfig
}

func NewAuthService(userRepo repositories.UserRepository, credits CreditService, cfg AuthConfig) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		credits:  credits,
		cfg:      cfg,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	var referrer *models.User
	if req.ReferralCode != "" {
		found, err := s.userRepo.FindByReferralCode(strings.ToUpper(req.ReferralCode))
		if err == nil {
			referrer = found
		}
		// Unknown referral codes are ignored, not rejected.
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
		Plan:         models.PlanFree,
		ReferralCode: newReferralCode(),
	}
	if referrer != nil {
		user.ReferredBy = referrer.ID
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.credits.GrantSignupBonus(user.ID, s.cfg.SignupBonus); err != nil {
		logger.WithError(err).Warn("signup bonus grant failed", "user_id", user.ID)
	}
	if referrer != nil {
		if err := s.credits.GrantReferralBonus(referrer.ID, user.ID, s.cfg.ReferralBonus); err != nil {
			logger.WithError(err).Warn("referral bonus grant failed", "referrer_id", referrer.ID)
		}
	}

	// Re-read so the response reflects the bonus balance.
	fresh, err := s.userRepo.FindByID(user.ID)
	if err == nil {
		user = fresh
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the old refresh token is single-use.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role), s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

func newReferralCode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          string(user.Role),
		Plan:          string(user.Plan),
		CreditBalance: user.CreditBalance,
		ReferralCode:  user.ReferralCode,
		CreatedAt:     user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
