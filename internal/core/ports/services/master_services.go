package services

import (
	"context"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/dto"
)

// DepartmentSvcFacade manages departments. Listing active departments is open
// to every role; everything else requires ADMIN.
type DepartmentSvcFacade interface {
	ListDepartments(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, actor domain.Actor, req dto.CreateDepartmentRequest) (*domain.Department, error)
	UpdateDepartment(ctx context.Context, actor domain.Actor, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error)
	DeactivateDepartment(ctx context.Context, actor domain.Actor, departmentID string) error
}

// NotificationTypeSvcFacade manages notification types and workflow templates.
type NotificationTypeSvcFacade interface {
	ListNotificationTypes(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.NotificationType, error)
	CreateNotificationType(ctx context.Context, actor domain.Actor, req dto.CreateNotificationTypeRequest) (*domain.NotificationType, error)
	UpdateNotificationType(ctx context.Context, actor domain.Actor, notificationTypeID string, req dto.UpdateNotificationTypeRequest) (*domain.NotificationType, error)
	DeactivateNotificationType(ctx context.Context, actor domain.Actor, notificationTypeID string) error

	ListWorkflowTemplates(ctx context.Context, actor domain.Actor) ([]domain.WorkflowTemplate, error)
	CreateWorkflowTemplate(ctx context.Context, actor domain.Actor, req dto.CreateWorkflowTemplateRequest) (*domain.WorkflowTemplate, error)
}
