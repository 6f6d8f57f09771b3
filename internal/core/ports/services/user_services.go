package services

import (
	"context"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all users. ADMIN only.
	ListUsers(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data. ADMIN only.
type UserWriterSvc interface {
	CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeactivateUser soft-disables a user.
	DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
