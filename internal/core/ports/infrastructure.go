package ports

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// Cache keys for master data listings.
const (
	CacheKeyActiveDepartments       = "master:departments:active"
	CacheKeyActiveNotificationTypes = "master:notification_types:active"
	CacheKeyWorkflowTemplates       = "master:workflow_templates"
)

// MasterDataCache is a best-effort read cache for master data listings.
// Get reports false on a miss or any backend failure.
type MasterDataCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// NotificationEventPublisher emits notification lifecycle events after commit.
type NotificationEventPublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
	Close() error
}
