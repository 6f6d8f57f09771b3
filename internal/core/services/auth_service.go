package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/platform/config"
	"github.com/SscSPs/document_reception_app/internal/utils"
)

// authService issues and verifies access tokens.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
		now:      time.Now,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (*portssvc.LoginResult, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.CheckPasswordHash(password, utils.DummyPasswordHash())
			s.GetLogger(ctx).Warn("Login failed: unknown user", slog.String("username", username))
			return nil, apperrors.NewUnauthorizedError("invalid username or password")
		}
		s.LogError(ctx, err, "Failed to look up user for login", slog.String("username", username))
		return nil, wrapRepoErr(err, "failed to sign in")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.GetLogger(ctx).Warn("Login failed: bad password", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}
	if !user.IsActive {
		s.GetLogger(ctx).Warn("Login failed: account disabled", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError("account is disabled")
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.Username, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to issue access token", err)
	}

	s.LogInfo(ctx, "User signed in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &portssvc.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate re-reads the user on every call so that role changes and
// deactivation take effect before the token expires.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("user no longer exists")
		}
		s.LogError(ctx, err, "Failed to load user for token", slog.String("user_id", claims.Subject))
		return nil, wrapRepoErr(err, "failed to authenticate")
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("account is disabled")
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return apperrors.NewValidationFailedError("new password is too short")
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user not found")
		}
		return wrapRepoErr(err, "failed to load user")
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.NewValidationFailedError("current password is incorrect")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password", slog.String("user_id", userID))
		return apperrors.NewAppError(500, "failed to change password", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to store password", slog.String("user_id", userID))
		return wrapRepoErr(err, "failed to change password")
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}
