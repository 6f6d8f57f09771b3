package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/google/uuid"
)

// notificationTypeService implements the NotificationTypeSvcFacade interface
type notificationTypeService struct {
	BaseService
	typeRepo portsrepo.NotificationTypeRepositoryFacade
	opts     masterOptions
}

// NewNotificationTypeService creates a new notification type service with the provided options
func NewNotificationTypeService(typeRepo portsrepo.NotificationTypeRepositoryFacade, options ...MasterServiceOption) portssvc.NotificationTypeSvcFacade {
	return &notificationTypeService{
		typeRepo: typeRepo,
		opts:     newMasterOptions(options),
	}
}

var _ portssvc.NotificationTypeSvcFacade = (*notificationTypeService)(nil)

func (s *notificationTypeService) ListNotificationTypes(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.NotificationType, error) {
	if err := s.Authorize(ctx, actor, OpReadMasterData, nil); err != nil {
		return nil, err
	}
	if includeInactive && actor.Role.Satisfies(domain.RoleAdmin) {
		types, err := s.typeRepo.ListNotificationTypes(ctx, true)
		if err != nil {
			s.LogError(ctx, err, "Failed to list notification types")
			return nil, wrapRepoErr(err, "failed to list notification types")
		}
		if types == nil {
			types = []domain.NotificationType{}
		}
		return types, nil
	}

	types, err := cachedList(ctx, s.opts, ports.CacheKeyActiveNotificationTypes, func() ([]domain.NotificationType, error) {
		return s.typeRepo.ListNotificationTypes(ctx, false)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list notification types")
		return nil, wrapRepoErr(err, "failed to list notification types")
	}
	return types, nil
}

func (s *notificationTypeService) CreateNotificationType(ctx context.Context, actor domain.Actor, req dto.CreateNotificationTypeRequest) (*domain.NotificationType, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	templateID := normalizeOptionalID(req.WorkflowTemplateID)
	if err := s.checkTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	nt := domain.NotificationType{
		NotificationTypeID:     uuid.NewString(),
		Code:                   strings.TrimSpace(req.Code),
		Name:                   strings.TrimSpace(req.Name),
		Description:            req.Description,
		ParentGroupID:          normalizeOptionalID(req.ParentGroupID),
		HasInspection:          req.HasInspection,
		HasContentField:        req.HasContentField,
		RequiresAdditionalData: req.RequiresAdditionalData,
		WorkflowTemplateID:     templateID,
		IsActive:               true,
		SortOrder:              req.SortOrder,
		AuditFields:            domain.NewAuditFields(actor.UserID, s.opts.now()),
	}
	if err := s.typeRepo.SaveNotificationType(ctx, nt); err != nil {
		s.LogError(ctx, err, "Failed to save notification type", slog.String("code", nt.Code))
		return nil, wrapRepoErr(err, "failed to create notification type")
	}

	s.opts.invalidate(ctx, ports.CacheKeyActiveNotificationTypes)
	s.LogInfo(ctx, "Notification type created", slog.String("notification_type_id", nt.NotificationTypeID))
	return &nt, nil
}

func (s *notificationTypeService) UpdateNotificationType(ctx context.Context, actor domain.Actor, notificationTypeID string, req dto.UpdateNotificationTypeRequest) (*domain.NotificationType, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	nt, err := s.find(ctx, notificationTypeID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		nt.Code = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil {
		nt.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		nt.Description = req.Description
	}
	if req.ParentGroupID != nil {
		nt.ParentGroupID = normalizeOptionalID(req.ParentGroupID)
	}
	if req.HasInspection != nil {
		nt.HasInspection = *req.HasInspection
	}
	if req.HasContentField != nil {
		nt.HasContentField = *req.HasContentField
	}
	if req.RequiresAdditionalData != nil {
		nt.RequiresAdditionalData = *req.RequiresAdditionalData
	}
	if req.WorkflowTemplateID != nil {
		nt.WorkflowTemplateID = normalizeOptionalID(req.WorkflowTemplateID)
		if err := s.checkTemplate(ctx, nt.WorkflowTemplateID); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		nt.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		nt.IsActive = *req.IsActive
	}

	nt.Touch(actor.UserID, s.opts.now())
	if err := s.typeRepo.UpdateNotificationType(ctx, *nt); err != nil {
		s.LogError(ctx, err, "Failed to update notification type", slog.String("notification_type_id", notificationTypeID))
		return nil, wrapRepoErr(err, "failed to update notification type")
	}

	s.opts.invalidate(ctx, ports.CacheKeyActiveNotificationTypes)
	return nt, nil
}

func (s *notificationTypeService) DeactivateNotificationType(ctx context.Context, actor domain.Actor, notificationTypeID string) error {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return err
	}
	if _, err := s.find(ctx, notificationTypeID); err != nil {
		return err
	}
	if err := s.typeRepo.SetNotificationTypeActive(ctx, notificationTypeID, false, actor.UserID, s.opts.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate notification type", slog.String("notification_type_id", notificationTypeID))
		return wrapRepoErr(err, "failed to deactivate notification type")
	}
	s.opts.invalidate(ctx, ports.CacheKeyActiveNotificationTypes)
	return nil
}

func (s *notificationTypeService) ListWorkflowTemplates(ctx context.Context, actor domain.Actor) ([]domain.WorkflowTemplate, error) {
	if err := s.Authorize(ctx, actor, OpReadMasterData, nil); err != nil {
		return nil, err
	}
	templates, err := cachedList(ctx, s.opts, ports.CacheKeyWorkflowTemplates, func() ([]domain.WorkflowTemplate, error) {
		return s.typeRepo.ListWorkflowTemplates(ctx)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list workflow templates")
		return nil, wrapRepoErr(err, "failed to list workflow templates")
	}
	return templates, nil
}

func (s *notificationTypeService) CreateWorkflowTemplate(ctx context.Context, actor domain.Actor, req dto.CreateWorkflowTemplateRequest) (*domain.WorkflowTemplate, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	statuses := make([]string, 0, len(req.Statuses))
	for _, st := range req.Statuses {
		st = strings.TrimSpace(st)
		if st == "" {
			return nil, apperrors.NewValidationFailedError("statuses must not contain blank names")
		}
		statuses = append(statuses, st)
	}
	if len(statuses) == 0 {
		return nil, apperrors.NewValidationFailedError("statuses must not be empty")
	}

	tpl := domain.WorkflowTemplate{
		WorkflowTemplateID: uuid.NewString(),
		Name:               strings.TrimSpace(req.Name),
		Statuses:           statuses,
		AuditFields:        domain.NewAuditFields(actor.UserID, s.opts.now()),
	}
	if err := s.typeRepo.SaveWorkflowTemplate(ctx, tpl); err != nil {
		s.LogError(ctx, err, "Failed to save workflow template")
		return nil, wrapRepoErr(err, "failed to create workflow template")
	}

	s.opts.invalidate(ctx, ports.CacheKeyWorkflowTemplates)
	return &tpl, nil
}

func (s *notificationTypeService) find(ctx context.Context, notificationTypeID string) (*domain.NotificationType, error) {
	nt, err := s.typeRepo.FindNotificationTypeByID(ctx, notificationTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("notification type not found")
		}
		return nil, wrapRepoErr(err, "failed to load notification type")
	}
	return nt, nil
}

func (s *notificationTypeService) checkTemplate(ctx context.Context, templateID *string) error {
	if templateID == nil {
		return nil
	}
	if _, err := s.typeRepo.FindWorkflowTemplateByID(ctx, *templateID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("workflowTemplateID does not reference an existing template")
		}
		return wrapRepoErr(err, "failed to load workflow template")
	}
	return nil
}
