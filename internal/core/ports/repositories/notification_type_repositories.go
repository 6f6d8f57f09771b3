package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// NotificationTypeReader defines read operations for notification types and workflow templates
type NotificationTypeReader interface {
	FindNotificationTypeByID(ctx context.Context, notificationTypeID string) (*domain.NotificationType, error)
	ListNotificationTypes(ctx context.Context, includeInactive bool) ([]domain.NotificationType, error)
	FindWorkflowTemplateByID(ctx context.Context, workflowTemplateID string) (*domain.WorkflowTemplate, error)
	ListWorkflowTemplates(ctx context.Context) ([]domain.WorkflowTemplate, error)
}

// NotificationTypeWriter defines write operations for notification types and workflow templates
type NotificationTypeWriter interface {
	SaveNotificationType(ctx context.Context, notificationType domain.NotificationType) error
	UpdateNotificationType(ctx context.Context, notificationType domain.NotificationType) error
	SetNotificationTypeActive(ctx context.Context, notificationTypeID string, active bool, updatedBy string, updatedAt time.Time) error
	SaveWorkflowTemplate(ctx context.Context, template domain.WorkflowTemplate) error
}

// NotificationTypeRepositoryFacade combines all notification type repository interfaces
type NotificationTypeRepositoryFacade interface {
	NotificationTypeReader
	NotificationTypeWriter
}
