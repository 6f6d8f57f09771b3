package dto

import (
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// CreateUserRequest defines the data for creating a user account.
type CreateUserRequest struct {
	Username     string  `json:"username" binding:"required,notblank,min=3,max=50"`
	Password     string  `json:"password" binding:"required,min=6,max=128"`
	DisplayName  string  `json:"displayName" binding:"required,notblank,max=100"`
	Role         string  `json:"role" binding:"required,role"`
	DepartmentID *string `json:"departmentID"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
// An empty DepartmentID clears the assignment.
type UpdateUserRequest struct {
	DisplayName  *string `json:"displayName" binding:"omitempty,notblank,max=100"`
	Role         *string `json:"role" binding:"omitempty,role"`
	DepartmentID *string `json:"departmentID"`
	Password     *string `json:"password" binding:"omitempty,min=6,max=128"`
	IsActive     *bool   `json:"isActive"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID       string      `json:"userID"`
	Username     string      `json:"username"`
	DisplayName  string      `json:"displayName"`
	Role         domain.Role `json:"role"`
	DepartmentID *string     `json:"departmentID"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.LastUpdatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to DTOs.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
