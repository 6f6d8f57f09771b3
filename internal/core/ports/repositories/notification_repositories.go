package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// NotificationReader defines read operations for notifications and their history
type NotificationReader interface {
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)

	// ListNotifications returns one page of matches and the total match count.
	ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, int64, error)

	// ListHistoryByNotification returns history entries newest first.
	ListHistoryByNotification(ctx context.Context, notificationID string) ([]domain.NotificationHistory, error)
}

// NotificationTxRepository is the set of writes available inside a notification
// unit of work. All calls share one database transaction.
type NotificationTxRepository interface {
	// FindNotificationForUpdate loads the notification and locks its row until the transaction ends.
	FindNotificationForUpdate(ctx context.Context, notificationID string) (*domain.Notification, error)
	SaveNotification(ctx context.Context, notification domain.Notification) error
	UpdateNotification(ctx context.Context, notification domain.Notification) error
	UpdateNotificationStatus(ctx context.Context, notificationID, status, updatedBy string, updatedAt time.Time) error
	DeleteNotification(ctx context.Context, notificationID string) error

	// AppendHistory inserts a ledger entry and returns it as stored. The stored
	// ChangedAt never precedes the latest existing entry of the notification.
	AppendHistory(ctx context.Context, entry domain.NotificationHistory) (domain.NotificationHistory, error)
	DeleteHistoryByNotification(ctx context.Context, notificationID string) error
	DeleteInspectionsByNotification(ctx context.Context, notificationID string) error
}

// NotificationUnitOfWork runs fn inside a single transaction, committing when
// fn returns nil and rolling back otherwise.
type NotificationUnitOfWork interface {
	WithinTx(ctx context.Context, fn func(tx NotificationTxRepository) error) error
}

// NotificationRepositoryFacade combines all notification repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationUnitOfWork
}
