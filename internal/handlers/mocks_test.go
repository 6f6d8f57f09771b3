package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/utils"
	"github.com/stretchr/testify/mock"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testJWTIssuer = "drs-test"
)

func stringPtr(s string) *string {
	return &s
}

// --- Mock AuthService ---
// Authenticate validates real HS256 tokens and resolves the subject from users.
type MockAuthService struct {
	mock.Mock
	users map[string]*domain.User
}

func newMockAuthService() *MockAuthService {
	return &MockAuthService{users: map[string]*domain.User{}}
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LoginResult), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := utils.ParseAndValidateJWT(token, testJWTSecret, testJWTIssuer)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	user, ok := m.users[claims.Subject]
	if !ok || !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("account is disabled")
	}
	return user, nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, actor domain.Actor, params dto.ListNotificationsParams) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationService) GetNotification(ctx context.Context, actor domain.Actor, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, actor, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) ListHistory(ctx context.Context, actor domain.Actor, notificationID string) ([]domain.NotificationHistory, error) {
	args := m.Called(ctx, actor, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationHistory), args.Error(1)
}

func (m *MockNotificationService) CreateNotification(ctx context.Context, actor domain.Actor, req dto.CreateNotificationRequest) (*domain.Notification, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) UpdateNotification(ctx context.Context, actor domain.Actor, notificationID string, req dto.UpdateNotificationRequest) (*domain.Notification, error) {
	args := m.Called(ctx, actor, notificationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) ChangeStatus(ctx context.Context, actor domain.Actor, notificationID string, req dto.ChangeStatusRequest) (*domain.Notification, error) {
	args := m.Called(ctx, actor, notificationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) DeleteNotification(ctx context.Context, actor domain.Actor, notificationID string) error {
	args := m.Called(ctx, actor, notificationID)
	return args.Error(0)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Mock InspectionService ---
type MockInspectionService struct {
	mock.Mock
}

func (m *MockInspectionService) ListInspections(ctx context.Context, actor domain.Actor, notificationID string) ([]domain.Inspection, error) {
	args := m.Called(ctx, actor, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inspection), args.Error(1)
}

func (m *MockInspectionService) GetInspection(ctx context.Context, actor domain.Actor, inspectionID string) (*domain.Inspection, error) {
	args := m.Called(ctx, actor, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

func (m *MockInspectionService) CreateInspection(ctx context.Context, actor domain.Actor, req dto.CreateInspectionRequest) (*domain.Inspection, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

func (m *MockInspectionService) UpdateInspection(ctx context.Context, actor domain.Actor, inspectionID string, req dto.UpdateInspectionRequest) (*domain.Inspection, error) {
	args := m.Called(ctx, actor, inspectionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

func (m *MockInspectionService) DeleteInspection(ctx context.Context, actor domain.Actor, inspectionID string) error {
	args := m.Called(ctx, actor, inspectionID)
	return args.Error(0)
}

var _ portssvc.InspectionSvcFacade = (*MockInspectionService)(nil)

// --- Mock DepartmentService ---
type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) ListDepartments(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.Department, error) {
	args := m.Called(ctx, actor, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentService) CreateDepartment(ctx context.Context, actor domain.Actor, req dto.CreateDepartmentRequest) (*domain.Department, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentService) UpdateDepartment(ctx context.Context, actor domain.Actor, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error) {
	args := m.Called(ctx, actor, departmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentService) DeactivateDepartment(ctx context.Context, actor domain.Actor, departmentID string) error {
	args := m.Called(ctx, actor, departmentID)
	return args.Error(0)
}

var _ portssvc.DepartmentSvcFacade = (*MockDepartmentService)(nil)

// --- Mock NotificationTypeService ---
type MockNotificationTypeService struct {
	mock.Mock
}

func (m *MockNotificationTypeService) ListNotificationTypes(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.NotificationType, error) {
	args := m.Called(ctx, actor, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationType), args.Error(1)
}

func (m *MockNotificationTypeService) CreateNotificationType(ctx context.Context, actor domain.Actor, req dto.CreateNotificationTypeRequest) (*domain.NotificationType, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationType), args.Error(1)
}

func (m *MockNotificationTypeService) UpdateNotificationType(ctx context.Context, actor domain.Actor, notificationTypeID string, req dto.UpdateNotificationTypeRequest) (*domain.NotificationType, error) {
	args := m.Called(ctx, actor, notificationTypeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationType), args.Error(1)
}

func (m *MockNotificationTypeService) DeactivateNotificationType(ctx context.Context, actor domain.Actor, notificationTypeID string) error {
	args := m.Called(ctx, actor, notificationTypeID)
	return args.Error(0)
}

func (m *MockNotificationTypeService) ListWorkflowTemplates(ctx context.Context, actor domain.Actor) ([]domain.WorkflowTemplate, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowTemplate), args.Error(1)
}

func (m *MockNotificationTypeService) CreateWorkflowTemplate(ctx context.Context, actor domain.Actor, req dto.CreateWorkflowTemplateRequest) (*domain.WorkflowTemplate, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowTemplate), args.Error(1)
}

var _ portssvc.NotificationTypeSvcFacade = (*MockNotificationTypeService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.User, error) {
	args := m.Called(ctx, actor, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// newTestUser registers an active user with the auth mock and returns it.
func (m *MockAuthService) newTestUser(userID string, role domain.Role, departmentID *string) *domain.User {
	now := time.Now()
	user := &domain.User{
		UserID:       userID,
		Username:     userID,
		DisplayName:  "User " + userID,
		Role:         role,
		DepartmentID: departmentID,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	m.users[userID] = user
	return user
}
