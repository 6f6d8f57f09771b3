package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationTypeRepository struct {
	BaseRepository
}

func newPgxNotificationTypeRepository(pool *pgxpool.Pool) portsrepo.NotificationTypeRepositoryFacade {
	return &PgxNotificationTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationTypeRepositoryFacade = (*PgxNotificationTypeRepository)(nil)

const notificationTypeSelectQuery = `
SELECT
	t.notification_type_id, t.code, t.name, t.description, t.parent_group_id,
	t.has_inspection, t.has_content_field, t.requires_additional_data, t.workflow_template_id,
	t.is_active, t.sort_order,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM notification_types t
`

const workflowTemplateSelectQuery = `
SELECT
	w.workflow_template_id, w.name, w.statuses,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workflow_templates w
`

func (r *PgxNotificationTypeRepository) getTypes(ctx context.Context, filterQuery string, args ...any) ([]domain.NotificationType, error) {
	rows, err := r.Pool.Query(ctx, notificationTypeSelectQuery+filterQuery, args...)
	return collect[domain.NotificationType](rows, err, "notification types")
}

func (r *PgxNotificationTypeRepository) getTemplates(ctx context.Context, filterQuery string, args ...any) ([]domain.WorkflowTemplate, error) {
	rows, err := r.Pool.Query(ctx, workflowTemplateSelectQuery+filterQuery, args...)
	return collect[domain.WorkflowTemplate](rows, err, "workflow templates")
}

func (r *PgxNotificationTypeRepository) FindNotificationTypeByID(ctx context.Context, notificationTypeID string) (*domain.NotificationType, error) {
	return first(r.getTypes(ctx, `WHERE t.notification_type_id = $1`, notificationTypeID))
}

func (r *PgxNotificationTypeRepository) ListNotificationTypes(ctx context.Context, includeInactive bool) ([]domain.NotificationType, error) {
	return r.getTypes(ctx, `WHERE ($1 OR t.is_active) ORDER BY t.sort_order, t.code`, includeInactive)
}

func (r *PgxNotificationTypeRepository) FindWorkflowTemplateByID(ctx context.Context, workflowTemplateID string) (*domain.WorkflowTemplate, error) {
	return first(r.getTemplates(ctx, `WHERE w.workflow_template_id = $1`, workflowTemplateID))
}

func (r *PgxNotificationTypeRepository) ListWorkflowTemplates(ctx context.Context) ([]domain.WorkflowTemplate, error) {
	return r.getTemplates(ctx, `ORDER BY w.name`)
}

func (r *PgxNotificationTypeRepository) SaveNotificationType(ctx context.Context, nt domain.NotificationType) error {
	query := `
		INSERT INTO notification_types (
			notification_type_id, code, name, description, parent_group_id,
			has_inspection, has_content_field, requires_additional_data, workflow_template_id,
			is_active, sort_order, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		nt.NotificationTypeID,
		nt.Code,
		nt.Name,
		nt.Description,
		nt.ParentGroupID,
		nt.HasInspection,
		nt.HasContentField,
		nt.RequiresAdditionalData,
		nt.WorkflowTemplateID,
		nt.IsActive,
		nt.SortOrder,
		nt.CreatedAt,
		nt.CreatedBy,
		nt.LastUpdatedAt,
		nt.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "notification type code "+nt.Code+" already exists", "workflow template does not exist", "failed to save notification type")
	}
	return nil
}

func (r *PgxNotificationTypeRepository) UpdateNotificationType(ctx context.Context, nt domain.NotificationType) error {
	query := `
		UPDATE notification_types
		SET code = $1, name = $2, description = $3, parent_group_id = $4,
			has_inspection = $5, has_content_field = $6, requires_additional_data = $7,
			workflow_template_id = $8, is_active = $9, sort_order = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE notification_type_id = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		nt.Code,
		nt.Name,
		nt.Description,
		nt.ParentGroupID,
		nt.HasInspection,
		nt.HasContentField,
		nt.RequiresAdditionalData,
		nt.WorkflowTemplateID,
		nt.IsActive,
		nt.SortOrder,
		nt.LastUpdatedAt,
		nt.LastUpdatedBy,
		nt.NotificationTypeID,
	)
	if err != nil {
		return mapWriteError(err, "notification type code "+nt.Code+" already exists", "workflow template does not exist", "failed to update notification type")
	}
	return expectRow(tag)
}

func (r *PgxNotificationTypeRepository) SetNotificationTypeActive(ctx context.Context, notificationTypeID string, active bool, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE notification_types SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE notification_type_id = $4;
	`, active, updatedAt, updatedBy, notificationTypeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update notification type status", err)
	}
	return expectRow(tag)
}

func (r *PgxNotificationTypeRepository) SaveWorkflowTemplate(ctx context.Context, tpl domain.WorkflowTemplate) error {
	query := `
		INSERT INTO workflow_templates (
			workflow_template_id, name, statuses, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		tpl.WorkflowTemplateID,
		tpl.Name,
		tpl.Statuses,
		tpl.CreatedAt,
		tpl.CreatedBy,
		tpl.LastUpdatedAt,
		tpl.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "workflow template already exists", "invalid workflow template reference", "failed to save workflow template")
	}
	return nil
}
