package domain

import "time"

// NotificationEventType names a lifecycle event.
type NotificationEventType string

const (
	EventNotificationCreated       NotificationEventType = "notification.created"
	EventNotificationStatusChanged NotificationEventType = "notification.status_changed"
	EventNotificationDeleted       NotificationEventType = "notification.deleted"
)

// NotificationEvent describes a committed lifecycle change.
type NotificationEvent struct {
	Type                   NotificationEventType `json:"type"`
	NotificationID         string                `json:"notificationID"`
	ReceivingDepartmentID  string                `json:"receivingDepartmentID"`
	ProcessingDepartmentID string                `json:"processingDepartmentID"`
	StatusFrom             *string               `json:"statusFrom,omitempty"`
	StatusTo               string                `json:"statusTo,omitempty"`
	ActorID                string                `json:"actorID"`
	OccurredAt             time.Time             `json:"occurredAt"`
}
