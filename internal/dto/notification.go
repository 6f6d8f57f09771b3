package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// CreateNotificationRequest defines data for submitting a notification.
type CreateNotificationRequest struct {
	NotificationTypeID     string          `json:"notificationTypeID" binding:"required,notblank"`
	NotificationDate       string          `json:"notificationDate" binding:"required,datetime=2006-01-02"`
	ReceivingDepartmentID  string          `json:"receivingDepartmentID" binding:"required,notblank"`
	ProcessingDepartmentID string          `json:"processingDepartmentID" binding:"required,notblank"`
	PropertyName           *string         `json:"propertyName" binding:"omitempty,max=200"`
	Content                *string         `json:"content"`
	AdditionalData         json.RawMessage `json:"additionalData" swaggertype:"object"`
	CompletionDate         *string         `json:"completionDate" binding:"omitempty,datetime=2006-01-02"`
	CurrentStatus          string          `json:"currentStatus" binding:"required,notblank,max=50"`
}

// UpdateNotificationRequest defines the generic, non-status fields of a notification.
// CurrentStatus is accepted only when it equals the stored status.
type UpdateNotificationRequest struct {
	NotificationTypeID     *string         `json:"notificationTypeID" binding:"omitempty,notblank"`
	NotificationDate       *string         `json:"notificationDate" binding:"omitempty,datetime=2006-01-02"`
	ReceivingDepartmentID  *string         `json:"receivingDepartmentID" binding:"omitempty,notblank"`
	ProcessingDepartmentID *string         `json:"processingDepartmentID" binding:"omitempty,notblank"`
	PropertyName           *string         `json:"propertyName" binding:"omitempty,max=200"`
	Content                *string         `json:"content"`
	AdditionalData         json.RawMessage `json:"additionalData" swaggertype:"object"`
	CompletionDate         *string         `json:"completionDate" binding:"omitempty,datetime=2006-01-02"`
	CurrentStatus          *string         `json:"currentStatus"`
}

// ChangeStatusRequest moves a notification to a new status.
type ChangeStatusRequest struct {
	Status  string  `json:"status" binding:"required,notblank,max=50"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	Page         int    `form:"page,default=1" binding:"min=1"`
	Limit        int    `form:"limit,default=20" binding:"min=1,max=100"`
	Status       string `form:"status"`
	DepartmentID string `form:"departmentID"`
	FromDate     string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate       string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Keyword      string `form:"keyword" binding:"max=100"`
}

// NotificationResponse defines data returned for a notification.
type NotificationResponse struct {
	NotificationID         string          `json:"notificationID"`
	NotificationTypeID     string          `json:"notificationTypeID"`
	NotificationDate       string          `json:"notificationDate"`
	ReceivingDepartmentID  string          `json:"receivingDepartmentID"`
	ProcessingDepartmentID string          `json:"processingDepartmentID"`
	PropertyName           *string         `json:"propertyName"`
	Content                *string         `json:"content"`
	AdditionalData         json.RawMessage `json:"additionalData" swaggertype:"object"`
	CompletionDate         *string         `json:"completionDate"`
	CurrentStatus          string          `json:"currentStatus"`
	CreatedBy              string          `json:"createdBy"`
	UpdatedBy              string          `json:"updatedBy"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// ToNotificationResponse converts domain.Notification to DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID:         n.NotificationID,
		NotificationTypeID:     n.NotificationTypeID,
		NotificationDate:       FormatDate(n.NotificationDate),
		ReceivingDepartmentID:  n.ReceivingDepartmentID,
		ProcessingDepartmentID: n.ProcessingDepartmentID,
		PropertyName:           n.PropertyName,
		Content:                n.Content,
		AdditionalData:         n.AdditionalData,
		CompletionDate:         FormatOptionalDate(n.CompletionDate),
		CurrentStatus:          n.CurrentStatus,
		CreatedBy:              n.CreatedBy,
		UpdatedBy:              n.LastUpdatedBy,
		CreatedAt:              n.CreatedAt,
		UpdatedAt:              n.LastUpdatedAt,
	}
}

// ToNotificationResponses converts a slice of domain.Notification to DTOs.
func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(ns))
	for i := range ns {
		out[i] = ToNotificationResponse(&ns[i])
	}
	return out
}

// HistoryResponse defines data returned for a history entry.
type HistoryResponse struct {
	HistoryID      string    `json:"historyID"`
	NotificationID string    `json:"notificationID"`
	StatusFrom     *string   `json:"statusFrom"`
	StatusTo       string    `json:"statusTo"`
	ChangedBy      string    `json:"changedBy"`
	Comment        *string   `json:"comment"`
	ChangedAt      time.Time `json:"changedAt"`
}

// ToHistoryResponses converts ledger entries to DTOs.
func ToHistoryResponses(hs []domain.NotificationHistory) []HistoryResponse {
	out := make([]HistoryResponse, len(hs))
	for i, h := range hs {
		out[i] = HistoryResponse{
			HistoryID:      h.HistoryID,
			NotificationID: h.NotificationID,
			StatusFrom:     h.StatusFrom,
			StatusTo:       h.StatusTo,
			ChangedBy:      h.ChangedBy,
			Comment:        h.Comment,
			ChangedAt:      h.ChangedAt,
		}
	}
	return out
}
