package dto

import (
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// CreateInspectionRequest schedules an inspection for a notification.
type CreateInspectionRequest struct {
	NotificationID         string     `json:"notificationID" binding:"required,notblank"`
	InspectionDate         string     `json:"inspectionDate" binding:"required,datetime=2006-01-02"`
	InspectionDepartmentID string     `json:"inspectionDepartmentID" binding:"required,notblank"`
	InspectionType         *string    `json:"inspectionType" binding:"omitempty,max=50"`
	Status                 *string    `json:"status" binding:"omitempty,notblank,max=50"`
	Result                 *string    `json:"result" binding:"omitempty,max=50"`
	Notes                  *string    `json:"notes"`
	InspectedBy            *string    `json:"inspectedBy"`
	InspectedAt            *time.Time `json:"inspectedAt"`
}

// UpdateInspectionRequest defines the mutable inspection fields.
type UpdateInspectionRequest struct {
	InspectionDate         *string    `json:"inspectionDate" binding:"omitempty,datetime=2006-01-02"`
	InspectionDepartmentID *string    `json:"inspectionDepartmentID" binding:"omitempty,notblank"`
	InspectionType         *string    `json:"inspectionType" binding:"omitempty,max=50"`
	Status                 *string    `json:"status" binding:"omitempty,notblank,max=50"`
	Result                 *string    `json:"result" binding:"omitempty,max=50"`
	Notes                  *string    `json:"notes"`
	InspectedBy            *string    `json:"inspectedBy"`
	InspectedAt            *time.Time `json:"inspectedAt"`
}

// InspectionResponse defines data returned for an inspection.
type InspectionResponse struct {
	InspectionID           string     `json:"inspectionID"`
	NotificationID         string     `json:"notificationID"`
	InspectionDate         string     `json:"inspectionDate"`
	InspectionDepartmentID string     `json:"inspectionDepartmentID"`
	InspectionType         *string    `json:"inspectionType"`
	Status                 string     `json:"status"`
	Result                 *string    `json:"result"`
	Notes                  *string    `json:"notes"`
	InspectedBy            *string    `json:"inspectedBy"`
	InspectedAt            *time.Time `json:"inspectedAt"`
	CreatedBy              string     `json:"createdBy"`
	UpdatedBy              string     `json:"updatedBy"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// ToInspectionResponse converts domain.Inspection to DTO.
func ToInspectionResponse(i *domain.Inspection) InspectionResponse {
	return InspectionResponse{
		InspectionID:           i.InspectionID,
		NotificationID:         i.NotificationID,
		InspectionDate:         FormatDate(i.InspectionDate),
		InspectionDepartmentID: i.InspectionDepartmentID,
		InspectionType:         i.InspectionType,
		Status:                 i.Status,
		Result:                 i.Result,
		Notes:                  i.Notes,
		InspectedBy:            i.InspectedBy,
		InspectedAt:            i.InspectedAt,
		CreatedBy:              i.CreatedBy,
		UpdatedBy:              i.LastUpdatedBy,
		CreatedAt:              i.CreatedAt,
		UpdatedAt:              i.LastUpdatedAt,
	}
}

// ToInspectionResponses converts a slice of domain.Inspection to DTOs.
func ToInspectionResponses(is []domain.Inspection) []InspectionResponse {
	out := make([]InspectionResponse, len(is))
	for i := range is {
		out[i] = ToInspectionResponse(&is[i])
	}
	return out
}
