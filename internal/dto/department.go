package dto

import (
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// CreateDepartmentRequest defines data for creating a department.
type CreateDepartmentRequest struct {
	Code      string  `json:"code" binding:"required,notblank,max=50"`
	Name      string  `json:"name" binding:"required,notblank,max=100"`
	ParentID  *string `json:"parentID"`
	SortOrder int     `json:"sortOrder" binding:"min=0"`
}

// UpdateDepartmentRequest defines the mutable department fields.
type UpdateDepartmentRequest struct {
	Code      *string `json:"code" binding:"omitempty,notblank,max=50"`
	Name      *string `json:"name" binding:"omitempty,notblank,max=100"`
	ParentID  *string `json:"parentID"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,min=0"`
	IsActive  *bool   `json:"isActive"`
}

// DepartmentResponse defines data returned for a department.
type DepartmentResponse struct {
	DepartmentID string    `json:"departmentID"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ParentID     *string   `json:"parentID"`
	IsActive     bool      `json:"isActive"`
	SortOrder    int       `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToDepartmentResponse converts domain.Department to DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Code:         d.Code,
		Name:         d.Name,
		ParentID:     d.ParentID,
		IsActive:     d.IsActive,
		SortOrder:    d.SortOrder,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.LastUpdatedAt,
	}
}

// ToDepartmentResponses converts a slice of domain.Department to DTOs.
func ToDepartmentResponses(ds []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, len(ds))
	for i := range ds {
		out[i] = ToDepartmentResponse(&ds[i])
	}
	return out
}
