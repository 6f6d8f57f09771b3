package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// DepartmentReader defines read operations for departments
type DepartmentReader interface {
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments returns departments ordered by sort order, then code.
	ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error)
}

// DepartmentWriter defines write operations for departments
type DepartmentWriter interface {
	SaveDepartment(ctx context.Context, department domain.Department) error
	UpdateDepartment(ctx context.Context, department domain.Department) error
	SetDepartmentActive(ctx context.Context, departmentID string, active bool, updatedBy string, updatedAt time.Time) error
}

// DepartmentRepositoryFacade combines all department-related repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
}
