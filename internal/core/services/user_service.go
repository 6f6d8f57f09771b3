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
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo       portsrepo.UserRepositoryFacade
	departmentRepo portsrepo.DepartmentReader
	now            func() time.Time
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(userRepo portsrepo.UserRepositoryFacade, departmentRepo portsrepo.DepartmentReader) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		now:            time.Now,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		return nil, wrapRepoErr(err, "failed to get user")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.User, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListUsers(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, wrapRepoErr(err, "failed to list users")
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.NewValidationFailedError("role must be one of GENERAL, SENIOR, ADMIN")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, apperrors.NewValidationFailedError("password is too short")
	}
	departmentID := normalizeOptionalID(req.DepartmentID)
	if err := s.checkDepartment(ctx, departmentID); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflictError("username is already taken")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, wrapRepoErr(err, "failed to create user")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to create user", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         role,
		DepartmentID: departmentID,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actor.UserID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, wrapRepoErr(err, "failed to create user")
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			return nil, apperrors.NewValidationFailedError("role must be one of GENERAL, SENIOR, ADMIN")
		}
		if userID == actor.UserID && role != user.Role {
			return nil, apperrors.NewValidationFailedError("you cannot change your own role")
		}
		user.Role = role
	}
	if req.DepartmentID != nil {
		user.DepartmentID = normalizeOptionalID(req.DepartmentID)
		if err := s.checkDepartment(ctx, user.DepartmentID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if userID == actor.UserID && !*req.IsActive {
			return nil, apperrors.NewValidationFailedError("you cannot deactivate your own account")
		}
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if len(*req.Password) < utils.MinPasswordLength {
			return nil, apperrors.NewValidationFailedError("password is too short")
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to update user", err)
		}
		user.PasswordHash = hash
	}

	user.Touch(actor.UserID, s.now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, wrapRepoErr(err, "failed to update user")
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return err
	}
	if userID == actor.UserID {
		return apperrors.NewValidationFailedError("you cannot deactivate your own account")
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.SetUserActive(ctx, userID, false, actor.UserID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user", slog.String("user_id", userID))
		return wrapRepoErr(err, "failed to deactivate user")
	}
	s.LogInfo(ctx, "User deactivated", slog.String("user_id", userID))
	return nil
}

func (s *userService) checkDepartment(ctx context.Context, departmentID *string) error {
	if departmentID == nil {
		return nil
	}
	dept, err := s.departmentRepo.FindDepartmentByID(ctx, *departmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("departmentID does not reference an existing department")
		}
		return wrapRepoErr(err, "failed to load department")
	}
	if !dept.IsActive {
		return apperrors.NewValidationFailedError("department is inactive")
	}
	return nil
}

// normalizeOptionalID maps blank IDs to nil.
func normalizeOptionalID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}
