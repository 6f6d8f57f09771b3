package services

import (
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache and publisher must be non-nil; pass the no-op adapters when the backing
// infrastructure is not configured.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	cache ports.MasterDataCache,
	publisher ports.NotificationEventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo, repos.DepartmentRepo)

	container.Department = NewDepartmentService(
		repos.DepartmentRepo,
		WithMasterDataCache(cache, cfg.MasterCacheTTL),
	)
	container.NotificationType = NewNotificationTypeService(
		repos.NotificationTypeRepo,
		WithMasterDataCache(cache, cfg.MasterCacheTTL),
	)

	container.Notification = NewNotificationService(
		repos.NotificationRepo,
		repos.NotificationTypeRepo,
		repos.DepartmentRepo,
		WithEventPublisher(publisher),
	)
	container.Inspection = NewInspectionService(
		repos.InspectionRepo,
		repos.NotificationRepo,
		repos.NotificationTypeRepo,
		repos.DepartmentRepo,
	)

	return container
}
