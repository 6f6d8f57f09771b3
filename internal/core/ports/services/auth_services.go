package services

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// LoginResult is returned by a successful sign-in.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthSvcFacade defines credential and token operations.
type AuthSvcFacade interface {
	// Login verifies credentials and issues an access token. Disabled accounts are rejected.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Authenticate resolves an access token to the current, active user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)

	// ChangePassword replaces the caller's password after verifying the current one.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
