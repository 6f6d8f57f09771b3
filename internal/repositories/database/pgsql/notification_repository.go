package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `
	n.notification_id, n.notification_type_id, n.notification_date,
	n.receiving_department_id, n.processing_department_id,
	n.property_name, n.content, n.additional_data, n.completion_date, n.current_status,
	n.created_at, n.created_by, n.last_updated_at, n.last_updated_by
`

const historyColumns = `history_id, notification_id, status_from, status_to, changed_by, comment, changed_at`

func findNotification(ctx context.Context, q querier, notificationID string, forUpdate bool) (*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications n WHERE n.notification_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, notificationID)
	return first(collect[domain.Notification](rows, err, "notifications"))
}

func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	return findNotification(ctx, r.Pool, notificationID, false)
}

// buildNotificationWhere renders filter as a WHERE clause and its arguments.
func buildNotificationWhere(filter domain.NotificationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, values ...any) {
		for _, v := range values {
			args = append(args, v)
			cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		conds = append(conds, cond)
	}

	if filter.ScopeDepartmentID != nil {
		add("(n.receiving_department_id = ? OR n.processing_department_id = ?)", *filter.ScopeDepartmentID, *filter.ScopeDepartmentID)
	}
	if filter.DepartmentID != nil {
		add("(n.receiving_department_id = ? OR n.processing_department_id = ?)", *filter.DepartmentID, *filter.DepartmentID)
	}
	if filter.Status != nil {
		add("n.current_status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		add("n.notification_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		add("n.notification_date <= ?", *filter.ToDate)
	}
	if filter.Keyword != nil {
		pattern := "%" + escapeLike(*filter.Keyword) + "%"
		add("(n.property_name ILIKE ? OR n.content ILIKE ?)", pattern, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, int64, error) {
	where, args := buildNotificationWhere(filter)

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications n`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count notifications", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM notifications n%s
		ORDER BY n.notification_date DESC, n.created_at DESC, n.notification_id
		LIMIT $%d OFFSET $%d`, notificationColumns, where, len(args)+1, len(args)+2)
	rows, err := r.Pool.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	notifications, err := collect[domain.Notification](rows, err, "notifications")
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *PgxNotificationRepository) ListHistoryByNotification(ctx context.Context, notificationID string) ([]domain.NotificationHistory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+historyColumns+`
		FROM notification_history
		WHERE notification_id = $1
		ORDER BY changed_at DESC, seq DESC`, notificationID)
	return collect[domain.NotificationHistory](rows, err, "notification history")
}

// WithinTx runs fn in a single database transaction.
func (r *PgxNotificationRepository) WithinTx(ctx context.Context, fn func(tx portsrepo.NotificationTxRepository) error) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return fn(&pgxNotificationTx{tx: tx})
	})
}

// pgxNotificationTx implements the writes of a notification unit of work on one pgx.Tx.
type pgxNotificationTx struct {
	tx pgx.Tx
}

var _ portsrepo.NotificationTxRepository = (*pgxNotificationTx)(nil)

func (t *pgxNotificationTx) FindNotificationForUpdate(ctx context.Context, notificationID string) (*domain.Notification, error) {
	return findNotification(ctx, t.tx, notificationID, true)
}

func (t *pgxNotificationTx) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, notification_type_id, notification_date,
			receiving_department_id, processing_department_id,
			property_name, content, additional_data, completion_date, current_status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := t.tx.Exec(ctx, query,
		n.NotificationID,
		n.NotificationTypeID,
		n.NotificationDate,
		n.ReceivingDepartmentID,
		n.ProcessingDepartmentID,
		n.PropertyName,
		n.Content,
		nullableJSON(n.AdditionalData),
		n.CompletionDate,
		n.CurrentStatus,
		n.CreatedAt,
		n.CreatedBy,
		n.LastUpdatedAt,
		n.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "notification already exists", "notification references an unknown type, department or user", "failed to save notification")
	}
	return nil
}

// UpdateNotification writes the generic fields. current_status is left alone.
func (t *pgxNotificationTx) UpdateNotification(ctx context.Context, n domain.Notification) error {
	query := `
		UPDATE notifications
		SET notification_type_id = $1, notification_date = $2,
			receiving_department_id = $3, processing_department_id = $4,
			property_name = $5, content = $6, additional_data = $7, completion_date = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE notification_id = $11;
	`
	tag, err := t.tx.Exec(ctx, query,
		n.NotificationTypeID,
		n.NotificationDate,
		n.ReceivingDepartmentID,
		n.ProcessingDepartmentID,
		n.PropertyName,
		n.Content,
		nullableJSON(n.AdditionalData),
		n.CompletionDate,
		n.LastUpdatedAt,
		n.LastUpdatedBy,
		n.NotificationID,
	)
	if err != nil {
		return mapWriteError(err, "notification already exists", "notification references an unknown type or department", "failed to update notification")
	}
	return expectRow(tag)
}

func (t *pgxNotificationTx) UpdateNotificationStatus(ctx context.Context, notificationID, status, updatedBy string, updatedAt time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE notifications SET current_status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE notification_id = $4;
	`, status, updatedAt, updatedBy, notificationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update notification status", err)
	}
	return expectRow(tag)
}

func (t *pgxNotificationTx) DeleteNotification(ctx context.Context, notificationID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM notifications WHERE notification_id = $1;`, notificationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete notification", err)
	}
	return expectRow(tag)
}

// AppendHistory clamps changed_at to the latest existing entry so the ledger
// stays ordered even if the clock steps backwards.
func (t *pgxNotificationTx) AppendHistory(ctx context.Context, entry domain.NotificationHistory) (domain.NotificationHistory, error) {
	query := `
		INSERT INTO notification_history (
			history_id, notification_id, status_from, status_to, changed_by, comment, changed_at
		)
		SELECT $1, $2, $3, $4, $5, $6,
			GREATEST($7::timestamptz, COALESCE(
				(SELECT MAX(h.changed_at) FROM notification_history h WHERE h.notification_id = $2),
				$7::timestamptz))
		RETURNING ` + historyColumns
	rows, err := t.tx.Query(ctx, query,
		entry.HistoryID,
		entry.NotificationID,
		entry.StatusFrom,
		entry.StatusTo,
		entry.ChangedBy,
		entry.Comment,
		entry.ChangedAt,
	)
	if err != nil {
		return domain.NotificationHistory{}, mapWriteError(err, "history entry already exists", "history references an unknown notification or user", "failed to append history")
	}
	stored, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.NotificationHistory])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotificationHistory{}, apperrors.NewAppError(500, "history insert returned no row", err)
		}
		return domain.NotificationHistory{}, mapWriteError(err, "history entry already exists", "history references an unknown notification or user", "failed to append history")
	}
	return stored, nil
}

func (t *pgxNotificationTx) DeleteHistoryByNotification(ctx context.Context, notificationID string) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM notification_history WHERE notification_id = $1;`, notificationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete notification history", err)
	}
	return nil
}

func (t *pgxNotificationTx) DeleteInspectionsByNotification(ctx context.Context, notificationID string) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM inspections WHERE notification_id = $1;`, notificationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete inspections", err)
	}
	return nil
}
