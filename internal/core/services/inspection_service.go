package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/google/uuid"
)

// inspectionService implements the InspectionSvcFacade interface. Access to an
// inspection follows access to its parent notification.
type inspectionService struct {
	BaseService
	inspectionRepo       portsrepo.InspectionRepositoryFacade
	notificationRepo     portsrepo.NotificationReader
	notificationTypeRepo portsrepo.NotificationTypeReader
	departmentRepo       portsrepo.DepartmentReader
	now                  func() time.Time
}

// NewInspectionService creates a new inspection service with the provided dependencies
func NewInspectionService(
	inspectionRepo portsrepo.InspectionRepositoryFacade,
	notificationRepo portsrepo.NotificationReader,
	notificationTypeRepo portsrepo.NotificationTypeReader,
	departmentRepo portsrepo.DepartmentReader,
) portssvc.InspectionSvcFacade {
	return &inspectionService{
		inspectionRepo:       inspectionRepo,
		notificationRepo:     notificationRepo,
		notificationTypeRepo: notificationTypeRepo,
		departmentRepo:       departmentRepo,
		now:                  time.Now,
	}
}

var _ portssvc.InspectionSvcFacade = (*inspectionService)(nil)

func (s *inspectionService) ListInspections(ctx context.Context, actor domain.Actor, notificationID string) ([]domain.Inspection, error) {
	n, err := s.parent(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpReadInspection, n); err != nil {
		return nil, err
	}
	inspections, err := s.inspectionRepo.ListInspectionsByNotification(ctx, notificationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inspections", slog.String("notification_id", notificationID))
		return nil, wrapRepoErr(err, "failed to list inspections")
	}
	if inspections == nil {
		inspections = []domain.Inspection{}
	}
	return inspections, nil
}

func (s *inspectionService) GetInspection(ctx context.Context, actor domain.Actor, inspectionID string) (*domain.Inspection, error) {
	inspection, err := s.find(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	n, err := s.parent(ctx, inspection.NotificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpReadInspection, n); err != nil {
		return nil, err
	}
	return inspection, nil
}

func (s *inspectionService) CreateInspection(ctx context.Context, actor domain.Actor, req dto.CreateInspectionRequest) (*domain.Inspection, error) {
	inspectionDate, err := dto.ParseDate("inspectionDate", req.InspectionDate)
	if err != nil {
		return nil, err
	}

	n, err := s.notificationRepo.FindNotificationByID(ctx, req.NotificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("notificationID does not reference an existing notification")
		}
		return nil, wrapRepoErr(err, "failed to load notification")
	}
	if err := s.Authorize(ctx, actor, OpWriteInspection, n); err != nil {
		return nil, err
	}

	nt, err := s.notificationTypeRepo.FindNotificationTypeByID(ctx, n.NotificationTypeID)
	if err != nil {
		return nil, wrapRepoErr(err, "failed to load notification type")
	}
	if !nt.HasInspection {
		return nil, apperrors.NewValidationFailedError("this notification type does not support inspections")
	}
	if err := s.checkDepartment(ctx, req.InspectionDepartmentID); err != nil {
		return nil, err
	}

	status := domain.DefaultInspectionStatus
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status = strings.TrimSpace(*req.Status)
	}

	inspection := domain.Inspection{
		InspectionID:           uuid.NewString(),
		NotificationID:         n.NotificationID,
		InspectionDate:         inspectionDate,
		InspectionDepartmentID: req.InspectionDepartmentID,
		InspectionType:         req.InspectionType,
		Status:                 status,
		Result:                 req.Result,
		Notes:                  req.Notes,
		InspectedBy:            normalizeOptionalID(req.InspectedBy),
		InspectedAt:            req.InspectedAt,
		AuditFields:            domain.NewAuditFields(actor.UserID, s.now()),
	}
	if err := s.inspectionRepo.SaveInspection(ctx, inspection); err != nil {
		s.LogError(ctx, err, "Failed to save inspection", slog.String("notification_id", n.NotificationID))
		return nil, wrapRepoErr(err, "failed to create inspection")
	}

	s.LogInfo(ctx, "Inspection scheduled",
		slog.String("inspection_id", inspection.InspectionID),
		slog.String("notification_id", n.NotificationID))
	return &inspection, nil
}

func (s *inspectionService) UpdateInspection(ctx context.Context, actor domain.Actor, inspectionID string, req dto.UpdateInspectionRequest) (*domain.Inspection, error) {
	inspection, err := s.find(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	n, err := s.parent(ctx, inspection.NotificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpWriteInspection, n); err != nil {
		return nil, err
	}

	if req.InspectionDate != nil {
		d, err := dto.ParseDate("inspectionDate", *req.InspectionDate)
		if err != nil {
			return nil, err
		}
		inspection.InspectionDate = d
	}
	if req.InspectionDepartmentID != nil {
		if err := s.checkDepartment(ctx, *req.InspectionDepartmentID); err != nil {
			return nil, err
		}
		inspection.InspectionDepartmentID = *req.InspectionDepartmentID
	}
	if req.InspectionType != nil {
		inspection.InspectionType = req.InspectionType
	}
	if req.Status != nil {
		inspection.Status = strings.TrimSpace(*req.Status)
	}
	if req.Result != nil {
		inspection.Result = req.Result
	}
	if req.Notes != nil {
		inspection.Notes = req.Notes
	}
	if req.InspectedBy != nil {
		inspection.InspectedBy = normalizeOptionalID(req.InspectedBy)
	}
	if req.InspectedAt != nil {
		inspection.InspectedAt = req.InspectedAt
	}

	inspection.Touch(actor.UserID, s.now())
	if err := s.inspectionRepo.UpdateInspection(ctx, *inspection); err != nil {
		s.LogError(ctx, err, "Failed to update inspection", slog.String("inspection_id", inspectionID))
		return nil, wrapRepoErr(err, "failed to update inspection")
	}
	return inspection, nil
}

func (s *inspectionService) DeleteInspection(ctx context.Context, actor domain.Actor, inspectionID string) error {
	inspection, err := s.find(ctx, inspectionID)
	if err != nil {
		return err
	}
	n, err := s.parent(ctx, inspection.NotificationID)
	if err != nil {
		return err
	}
	if err := s.Authorize(ctx, actor, OpWriteInspection, n); err != nil {
		return err
	}
	if err := s.inspectionRepo.DeleteInspection(ctx, inspectionID); err != nil {
		s.LogError(ctx, err, "Failed to delete inspection", slog.String("inspection_id", inspectionID))
		return wrapRepoErr(err, "failed to delete inspection")
	}
	s.LogInfo(ctx, "Inspection deleted", slog.String("inspection_id", inspectionID))
	return nil
}

func (s *inspectionService) find(ctx context.Context, inspectionID string) (*domain.Inspection, error) {
	inspection, err := s.inspectionRepo.FindInspectionByID(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("inspection not found")
		}
		return nil, wrapRepoErr(err, "failed to load inspection")
	}
	return inspection, nil
}

func (s *inspectionService) parent(ctx context.Context, notificationID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("notification not found")
		}
		return nil, wrapRepoErr(err, "failed to load notification")
	}
	return n, nil
}

func (s *inspectionService) checkDepartment(ctx context.Context, departmentID string) error {
	if _, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("inspectionDepartmentID does not reference an existing department")
		}
		return wrapRepoErr(err, "failed to load department")
	}
	return nil
}
