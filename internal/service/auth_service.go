package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/auth"
	"github.com/bruinrecruit/recruitment-service/internal/config"
	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	minPassword int
	logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       users,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost:  cfg.BcryptCost,
		minPassword: cfg.MinPasswordLength,
		logger:      logger,
	}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email        string
	Password     string
	ConfPassword string
}

// Register creates a standard, active account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if len(input.Password) < s.minPassword {
		return nil, errorutil.NewBadRequest(fmt.Sprintf("Password must be at least %d characters", s.minPassword))
	}
	if input.Password != input.ConfPassword {
		return nil, errorutil.NewBadRequest("Passwords do not match")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, errorutil.NewBadRequest(fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		AccessType:   domain.AccessTypeStandard,
		State:        domain.UserStateActive,
	}
	if err := domain.Validate(user); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errorutil.NewBadRequest("An account with that email already exists")
		}
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", time.Time{}, errorutil.NewBadRequest("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, errorutil.NewUnauthorized("Invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, "", time.Time{}, errorutil.NewUnauthorized("Invalid email or password")
	}
	if user.IsBlocked() {
		return nil, "", time.Time{}, errorutil.NewForbidden("This account has been blocked")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
