package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID, active or not.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username, active or not.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves users ordered by username.
	ListUsers(ctx context.Context, includeInactive bool) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error

	// SetUserActive enables or soft-disables a user.
	SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, updatedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
