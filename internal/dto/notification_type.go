package dto

import (
	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// CreateNotificationTypeRequest defines data for creating a notification type.
type CreateNotificationTypeRequest struct {
	Code                   string  `json:"code" binding:"required,notblank,max=50"`
	Name                   string  `json:"name" binding:"required,notblank,max=100"`
	Description            *string `json:"description"`
	ParentGroupID          *string `json:"parentGroupID"`
	HasInspection          bool    `json:"hasInspection"`
	HasContentField        bool    `json:"hasContentField"`
	RequiresAdditionalData bool    `json:"requiresAdditionalData"`
	WorkflowTemplateID     *string `json:"workflowTemplateID"`
	SortOrder              int     `json:"sortOrder" binding:"min=0"`
}

// UpdateNotificationTypeRequest defines the mutable notification type fields.
type UpdateNotificationTypeRequest struct {
	Code                   *string `json:"code" binding:"omitempty,notblank,max=50"`
	Name                   *string `json:"name" binding:"omitempty,notblank,max=100"`
	Description            *string `json:"description"`
	ParentGroupID          *string `json:"parentGroupID"`
	HasInspection          *bool   `json:"hasInspection"`
	HasContentField        *bool   `json:"hasContentField"`
	RequiresAdditionalData *bool   `json:"requiresAdditionalData"`
	WorkflowTemplateID     *string `json:"workflowTemplateID"`
	SortOrder              *int    `json:"sortOrder" binding:"omitempty,min=0"`
	IsActive               *bool   `json:"isActive"`
}

// NotificationTypeResponse defines data returned for a notification type.
type NotificationTypeResponse struct {
	NotificationTypeID     string  `json:"notificationTypeID"`
	Code                   string  `json:"code"`
	Name                   string  `json:"name"`
	Description            *string `json:"description"`
	ParentGroupID          *string `json:"parentGroupID"`
	HasInspection          bool    `json:"hasInspection"`
	HasContentField        bool    `json:"hasContentField"`
	RequiresAdditionalData bool    `json:"requiresAdditionalData"`
	WorkflowTemplateID     *string `json:"workflowTemplateID"`
	IsActive               bool    `json:"isActive"`
	SortOrder              int     `json:"sortOrder"`
}

// ToNotificationTypeResponse converts domain.NotificationType to DTO.
func ToNotificationTypeResponse(t *domain.NotificationType) NotificationTypeResponse {
	return NotificationTypeResponse{
		NotificationTypeID:     t.NotificationTypeID,
		Code:                   t.Code,
		Name:                   t.Name,
		Description:            t.Description,
		ParentGroupID:          t.ParentGroupID,
		HasInspection:          t.HasInspection,
		HasContentField:        t.HasContentField,
		RequiresAdditionalData: t.RequiresAdditionalData,
		WorkflowTemplateID:     t.WorkflowTemplateID,
		IsActive:               t.IsActive,
		SortOrder:              t.SortOrder,
	}
}

// ToNotificationTypeResponses converts a slice of domain.NotificationType to DTOs.
func ToNotificationTypeResponses(ts []domain.NotificationType) []NotificationTypeResponse {
	out := make([]NotificationTypeResponse, len(ts))
	for i := range ts {
		out[i] = ToNotificationTypeResponse(&ts[i])
	}
	return out
}

// CreateWorkflowTemplateRequest defines an advisory status list.
type CreateWorkflowTemplateRequest struct {
	Name     string   `json:"name" binding:"required,notblank,max=100"`
	Statuses []string `json:"statuses" binding:"required,min=1,dive,notblank,max=50"`
}

// WorkflowTemplateResponse defines data returned for a workflow template.
type WorkflowTemplateResponse struct {
	WorkflowTemplateID string   `json:"workflowTemplateID"`
	Name               string   `json:"name"`
	Statuses           []string `json:"statuses"`
}

// ToWorkflowTemplateResponse converts domain.WorkflowTemplate to DTO.
func ToWorkflowTemplateResponse(w *domain.WorkflowTemplate) WorkflowTemplateResponse {
	return WorkflowTemplateResponse{
		WorkflowTemplateID: w.WorkflowTemplateID,
		Name:               w.Name,
		Statuses:           w.Statuses,
	}
}

// ToWorkflowTemplateResponses converts a slice of domain.WorkflowTemplate to DTOs.
func ToWorkflowTemplateResponses(ws []domain.WorkflowTemplate) []WorkflowTemplateResponse {
	out := make([]WorkflowTemplateResponse, len(ws))
	for i := range ws {
		out[i] = ToWorkflowTemplateResponse(&ws[i])
	}
	return out
}
