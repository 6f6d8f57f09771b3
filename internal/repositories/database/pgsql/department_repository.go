package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDepartmentRepository struct {
	BaseRepository
}

func newPgxDepartmentRepository(pool *pgxpool.Pool) portsrepo.DepartmentRepositoryFacade {
	return &PgxDepartmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

const departmentSelectQuery = `
SELECT
	d.department_id, d.code, d.name, d.parent_id, d.is_active, d.sort_order,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
FROM departments d
`

func (r *PgxDepartmentRepository) getDepartments(ctx context.Context, filterQuery string, args ...any) ([]domain.Department, error) {
	rows, err := r.Pool.Query(ctx, departmentSelectQuery+filterQuery, args...)
	return collect[domain.Department](rows, err, "departments")
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	return first(r.getDepartments(ctx, `WHERE d.department_id = $1`, departmentID))
}

func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	return r.getDepartments(ctx, `WHERE ($1 OR d.is_active) ORDER BY d.sort_order, d.code`, includeInactive)
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	query := `
		INSERT INTO departments (
			department_id, code, name, parent_id, is_active, sort_order,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		department.Code,
		department.Name,
		department.ParentID,
		department.IsActive,
		department.SortOrder,
		department.CreatedAt,
		department.CreatedBy,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "department code "+department.Code+" already exists", "parent department does not exist", "failed to save department")
	}
	return nil
}

func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	query := `
		UPDATE departments
		SET code = $1, name = $2, parent_id = $3, is_active = $4, sort_order = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE department_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		department.Code,
		department.Name,
		department.ParentID,
		department.IsActive,
		department.SortOrder,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
		department.DepartmentID,
	)
	if err != nil {
		return mapWriteError(err, "department code "+department.Code+" already exists", "parent department does not exist", "failed to update department")
	}
	return expectRow(tag)
}

func (r *PgxDepartmentRepository) SetDepartmentActive(ctx context.Context, departmentID string, active bool, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE departments SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE department_id = $4;
	`, active, updatedAt, updatedBy, departmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update department status", err)
	}
	return expectRow(tag)
}
