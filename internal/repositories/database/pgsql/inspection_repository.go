package pgsql

import (
	"context"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInspectionRepository struct {
	BaseRepository
}

func newPgxInspectionRepository(pool *pgxpool.Pool) portsrepo.InspectionRepositoryFacade {
	return &PgxInspectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InspectionRepositoryFacade = (*PgxInspectionRepository)(nil)

const inspectionSelectQuery = `
SELECT
	i.inspection_id, i.notification_id, i.inspection_date, i.inspection_department_id,
	i.inspection_type, i.status, i.result, i.notes, i.inspected_by, i.inspected_at,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM inspections i
`

func (r *PgxInspectionRepository) getInspections(ctx context.Context, filterQuery string, args ...any) ([]domain.Inspection, error) {
	rows, err := r.Pool.Query(ctx, inspectionSelectQuery+filterQuery, args...)
	return collect[domain.Inspection](rows, err, "inspections")
}

func (r *PgxInspectionRepository) FindInspectionByID(ctx context.Context, inspectionID string) (*domain.Inspection, error) {
	return first(r.getInspections(ctx, `WHERE i.inspection_id = $1`, inspectionID))
}

func (r *PgxInspectionRepository) ListInspectionsByNotification(ctx context.Context, notificationID string) ([]domain.Inspection, error) {
	return r.getInspections(ctx, `WHERE i.notification_id = $1 ORDER BY i.inspection_date, i.created_at`, notificationID)
}

func (r *PgxInspectionRepository) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	query := `
		INSERT INTO inspections (
			inspection_id, notification_id, inspection_date, inspection_department_id,
			inspection_type, status, result, notes, inspected_by, inspected_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		inspection.InspectionID,
		inspection.NotificationID,
		inspection.InspectionDate,
		inspection.InspectionDepartmentID,
		inspection.InspectionType,
		inspection.Status,
		inspection.Result,
		inspection.Notes,
		inspection.InspectedBy,
		inspection.InspectedAt,
		inspection.CreatedAt,
		inspection.CreatedBy,
		inspection.LastUpdatedAt,
		inspection.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "inspection already exists", "inspection references an unknown notification, department or user", "failed to save inspection")
	}
	return nil
}

func (r *PgxInspectionRepository) UpdateInspection(ctx context.Context, inspection domain.Inspection) error {
	query := `
		UPDATE inspections
		SET inspection_date = $1, inspection_department_id = $2, inspection_type = $3, status = $4,
			result = $5, notes = $6, inspected_by = $7, inspected_at = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE inspection_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		inspection.InspectionDate,
		inspection.InspectionDepartmentID,
		inspection.InspectionType,
		inspection.Status,
		inspection.Result,
		inspection.Notes,
		inspection.InspectedBy,
		inspection.InspectedAt,
		inspection.LastUpdatedAt,
		inspection.LastUpdatedBy,
		inspection.InspectionID,
	)
	if err != nil {
		return mapWriteError(err, "inspection already exists", "inspection references an unknown department or user", "failed to update inspection")
	}
	return expectRow(tag)
}

func (r *PgxInspectionRepository) DeleteInspection(ctx context.Context, inspectionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM inspections WHERE inspection_id = $1;`, inspectionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete inspection", err)
	}
	return expectRow(tag)
}
