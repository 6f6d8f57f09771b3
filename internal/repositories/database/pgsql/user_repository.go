package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	u.user_id, u.username, u.password_hash, u.display_name, u.role, u.department_id, u.is_active,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
FROM users u
`

func (r *PgxUserRepository) getUsers(ctx context.Context, filterQuery string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+filterQuery, args...)
	return collect[domain.User](rows, err, "users")
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return first(r.getUsers(ctx, `WHERE u.user_id = $1`, userID))
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return first(r.getUsers(ctx, `WHERE u.username = $1`, username))
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, includeInactive bool) ([]domain.User, error) {
	return r.getUsers(ctx, `WHERE ($1 OR u.is_active) ORDER BY u.username`, includeInactive)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, username, password_hash, display_name, role, department_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.DepartmentID,
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "username "+user.Username+" already exists", "department does not exist", "failed to save user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET display_name = $1, role = $2, department_id = $3, is_active = $4, password_hash = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.DisplayName,
		user.Role,
		user.DepartmentID,
		user.IsActive,
		user.PasswordHash,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.UserID,
	)
	if err != nil {
		return mapWriteError(err, "username already exists", "department does not exist", "failed to update user")
	}
	return expectRow(tag)
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $3;
	`, passwordHash, updatedAt, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update password", err)
	}
	return expectRow(tag)
}

func (r *PgxUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4;
	`, active, updatedAt, updatedBy, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user status", err)
	}
	return expectRow(tag)
}
