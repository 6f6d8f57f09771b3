package domain

import (
	"encoding/json"
	"time"
)

// Notification is a submitted administrative request tracked through review.
// CurrentStatus always equals the StatusTo of the latest history entry.
type Notification struct {
	NotificationID         string          `json:"notificationID" db:"notification_id"`
	NotificationTypeID     string          `json:"notificationTypeID" db:"notification_type_id"`
	NotificationDate       time.Time       `json:"notificationDate" db:"notification_date"`
	ReceivingDepartmentID  string          `json:"receivingDepartmentID" db:"receiving_department_id"`
	ProcessingDepartmentID string          `json:"processingDepartmentID" db:"processing_department_id"`
	PropertyName           *string         `json:"propertyName" db:"property_name"`
	Content                *string         `json:"content" db:"content"`
	AdditionalData         json.RawMessage `json:"additionalData" db:"additional_data"`
	CompletionDate         *time.Time      `json:"completionDate" db:"completion_date"`
	CurrentStatus          string          `json:"currentStatus" db:"current_status"`
	AuditFields
}

// NotificationFilter narrows a notification listing. ScopeDepartmentID is set
// by the service for department-scoped callers and matches either anchor.
type NotificationFilter struct {
	Status            *string
	DepartmentID      *string
	ScopeDepartmentID *string
	FromDate          *time.Time
	ToDate            *time.Time
	Keyword           *string
	Limit             int
	Offset            int
}

// NotificationPatch carries the generic, non-status fields of an update.
// Nil fields are left untouched.
type NotificationPatch struct {
	NotificationTypeID     *string
	NotificationDate       *time.Time
	ReceivingDepartmentID  *string
	ProcessingDepartmentID *string
	PropertyName           *string
	Content                *string
	AdditionalData         json.RawMessage
	CompletionDate         *time.Time
	CurrentStatus          *string
}

// Apply copies the set fields onto n. CurrentStatus is ignored.
func (p NotificationPatch) Apply(n *Notification) {
	if p.NotificationTypeID != nil {
		n.NotificationTypeID = *p.NotificationTypeID
	}
	if p.NotificationDate != nil {
		n.NotificationDate = *p.NotificationDate
	}
	if p.ReceivingDepartmentID != nil {
		n.ReceivingDepartmentID = *p.ReceivingDepartmentID
	}
	if p.ProcessingDepartmentID != nil {
		n.ProcessingDepartmentID = *p.ProcessingDepartmentID
	}
	if p.PropertyName != nil {
		n.PropertyName = p.PropertyName
	}
	if p.Content != nil {
		n.Content = p.Content
	}
	if p.AdditionalData != nil {
		n.AdditionalData = p.AdditionalData
	}
	if p.CompletionDate != nil {
		n.CompletionDate = p.CompletionDate
	}
}
