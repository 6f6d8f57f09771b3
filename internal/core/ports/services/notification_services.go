package services

import (
	"context"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/dto"
)

// NotificationReaderSvc defines read operations on notifications and their ledger
type NotificationReaderSvc interface {
	// ListNotifications returns one page of notifications visible to actor and the total count.
	ListNotifications(ctx context.Context, actor domain.Actor, params dto.ListNotificationsParams) ([]domain.Notification, int64, error)
	GetNotification(ctx context.Context, actor domain.Actor, notificationID string) (*domain.Notification, error)
	ListHistory(ctx context.Context, actor domain.Actor, notificationID string) ([]domain.NotificationHistory, error)
}

// NotificationWriterSvc defines lifecycle operations on notifications
type NotificationWriterSvc interface {
	CreateNotification(ctx context.Context, actor domain.Actor, req dto.CreateNotificationRequest) (*domain.Notification, error)

	// UpdateNotification changes non-status fields. It never appends history.
	UpdateNotification(ctx context.Context, actor domain.Actor, notificationID string, req dto.UpdateNotificationRequest) (*domain.Notification, error)

	// ChangeStatus moves the notification to a new status and records the transition.
	ChangeStatus(ctx context.Context, actor domain.Actor, notificationID string, req dto.ChangeStatusRequest) (*domain.Notification, error)

	// DeleteNotification removes the notification with its history and inspections.
	DeleteNotification(ctx context.Context, actor domain.Actor, notificationID string) error
}

// NotificationSvcFacade combines all notification service interfaces
type NotificationSvcFacade interface {
	NotificationReaderSvc
	NotificationWriterSvc
}

// InspectionSvcFacade defines operations on inspections of a notification
type InspectionSvcFacade interface {
	ListInspections(ctx context.Context, actor domain.Actor, notificationID string) ([]domain.Inspection, error)
	GetInspection(ctx context.Context, actor domain.Actor, inspectionID string) (*domain.Inspection, error)
	CreateInspection(ctx context.Context, actor domain.Actor, req dto.CreateInspectionRequest) (*domain.Inspection, error)
	UpdateInspection(ctx context.Context, actor domain.Actor, inspectionID string, req dto.UpdateInspectionRequest) (*domain.Inspection, error)
	DeleteInspection(ctx context.Context, actor domain.Actor, inspectionID string) error
}
