package pgsql

import (
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:             newPgxUserRepository(dbPool),
		DepartmentRepo:       newPgxDepartmentRepository(dbPool),
		NotificationTypeRepo: newPgxNotificationTypeRepository(dbPool),
		NotificationRepo:     newPgxNotificationRepository(dbPool),
		InspectionRepo:       newPgxInspectionRepository(dbPool),
	}
}
