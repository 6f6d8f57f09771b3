package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/platform/metrics"
	"github.com/SscSPs/document_reception_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// notificationService implements the notification lifecycle and its ledger.
type notificationService struct {
	BaseService
	notificationRepo     portsrepo.NotificationRepositoryFacade
	notificationTypeRepo portsrepo.NotificationTypeReader
	departmentRepo       portsrepo.DepartmentReader
	publisher            ports.NotificationEventPublisher
	now                  func() time.Time
}

// NotificationServiceOption is a functional option for configuring the notification service
type NotificationServiceOption func(*notificationService)

// WithEventPublisher publishes lifecycle events after each committed change.
func WithEventPublisher(p ports.NotificationEventPublisher) NotificationServiceOption {
	return func(s *notificationService) {
		s.publisher = p
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) NotificationServiceOption {
	return func(s *notificationService) {
		s.now = now
	}
}

// NewNotificationService creates a new notification service with the provided options
func NewNotificationService(
	notificationRepo portsrepo.NotificationRepositoryFacade,
	notificationTypeRepo portsrepo.NotificationTypeReader,
	departmentRepo portsrepo.DepartmentReader,
	options ...NotificationServiceOption,
) portssvc.NotificationSvcFacade {
	svc := &notificationService{
		notificationRepo:     notificationRepo,
		notificationTypeRepo: notificationTypeRepo,
		departmentRepo:       departmentRepo,
		now:                  time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListNotifications(ctx context.Context, actor domain.Actor, params dto.ListNotificationsParams) ([]domain.Notification, int64, error) {
	filter, err := buildNotificationFilter(params)
	if err != nil {
		return nil, 0, err
	}
	if err := s.Authorize(ctx, actor, OpListNotifications, nil); err != nil {
		return nil, 0, err
	}

	scope, visible := ListScope(actor)
	if !visible {
		return []domain.Notification{}, 0, nil
	}
	filter.ScopeDepartmentID = scope

	notifications, total, err := s.notificationRepo.ListNotifications(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", actor.UserID))
		return nil, 0, wrapRepoErr(err, "failed to list notifications")
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, total, nil
}

func buildNotificationFilter(params dto.ListNotificationsParams) (domain.NotificationFilter, error) {
	page := pagination.Normalize(params.Page, params.Limit)
	filter := domain.NotificationFilter{
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if v := strings.TrimSpace(params.Status); v != "" {
		filter.Status = &v
	}
	if v := strings.TrimSpace(params.DepartmentID); v != "" {
		filter.DepartmentID = &v
	}
	if v := strings.TrimSpace(params.Keyword); v != "" {
		filter.Keyword = &v
	}
	var err error
	if filter.FromDate, err = dto.ParseOptionalDate("fromDate", &params.FromDate); err != nil {
		return filter, err
	}
	if filter.ToDate, err = dto.ParseOptionalDate("toDate", &params.ToDate); err != nil {
		return filter, err
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return filter, apperrors.NewValidationFailedError("toDate must not be before fromDate")
	}
	return filter, nil
}

func (s *notificationService) GetNotification(ctx context.Context, actor domain.Actor, notificationID string) (*domain.Notification, error) {
	n, err := s.findNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpReadNotification, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) ListHistory(ctx context.Context, actor domain.Actor, notificationID string) ([]domain.NotificationHistory, error) {
	n, err := s.findNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpReadNotification, n); err != nil {
		return nil, err
	}

	entries, err := s.notificationRepo.ListHistoryByNotification(ctx, notificationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notification history", slog.String("notification_id", notificationID))
		return nil, wrapRepoErr(err, "failed to list notification history")
	}
	if entries == nil {
		entries = []domain.NotificationHistory{}
	}
	return entries, nil
}

func (s *notificationService) CreateNotification(ctx context.Context, actor domain.Actor, req dto.CreateNotificationRequest) (*domain.Notification, error) {
	notificationDate, err := dto.ParseDate("notificationDate", req.NotificationDate)
	if err != nil {
		return nil, err
	}
	completionDate, err := dto.ParseOptionalDate("completionDate", req.CompletionDate)
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(req.CurrentStatus)
	if status == "" {
		return nil, apperrors.NewValidationFailedError("currentStatus is required")
	}
	additionalData, err := normalizeAdditionalData(req.AdditionalData)
	if err != nil {
		return nil, err
	}

	now := s.now()
	n := domain.Notification{
		NotificationID:         uuid.NewString(),
		NotificationTypeID:     req.NotificationTypeID,
		NotificationDate:       notificationDate,
		ReceivingDepartmentID:  req.ReceivingDepartmentID,
		ProcessingDepartmentID: req.ProcessingDepartmentID,
		PropertyName:           req.PropertyName,
		Content:                req.Content,
		AdditionalData:         additionalData,
		CompletionDate:         completionDate,
		CurrentStatus:          status,
		AuditFields:            domain.NewAuditFields(actor.UserID, now),
	}

	if err := s.validateReferences(ctx, &n); err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpCreateNotification, &n); err != nil {
		return nil, err
	}

	comment := domain.InitialHistoryComment
	err = s.notificationRepo.WithinTx(ctx, func(tx portsrepo.NotificationTxRepository) error {
		if err := tx.SaveNotification(ctx, n); err != nil {
			return err
		}
		_, err := tx.AppendHistory(ctx, domain.NotificationHistory{
			HistoryID:      uuid.NewString(),
			NotificationID: n.NotificationID,
			StatusFrom:     nil,
			StatusTo:       n.CurrentStatus,
			ChangedBy:      actor.UserID,
			Comment:        &comment,
			ChangedAt:      now,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create notification", slog.String("user_id", actor.UserID))
		return nil, wrapRepoErr(err, "failed to create notification")
	}

	s.LogInfo(ctx, "Notification created", slog.String("notification_id", n.NotificationID), slog.String("status", n.CurrentStatus))
	s.emit(ctx, domain.EventNotificationCreated, &n, nil, actor.UserID, now)
	return &n, nil
}

func (s *notificationService) UpdateNotification(ctx context.Context, actor domain.Actor, notificationID string, req dto.UpdateNotificationRequest) (*domain.Notification, error) {
	patch, err := buildNotificationPatch(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.findNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpUpdateNotification, existing); err != nil {
		return nil, err
	}
	if patch.CurrentStatus != nil && strings.TrimSpace(*patch.CurrentStatus) != existing.CurrentStatus {
		return nil, apperrors.NewValidationFailedError("currentStatus cannot be changed here; use the status endpoint")
	}

	updated := *existing
	patch.Apply(&updated)
	if err := s.validateReferences(ctx, &updated); err != nil {
		return nil, err
	}
	// The edited notification must stay within the caller's reach.
	if err := s.Authorize(ctx, actor, OpUpdateNotification, &updated); err != nil {
		return nil, err
	}

	now := s.now()
	updated.Touch(actor.UserID, now)
	err = s.notificationRepo.WithinTx(ctx, func(tx portsrepo.NotificationTxRepository) error {
		locked, err := tx.FindNotificationForUpdate(ctx, notificationID)
		if err != nil {
			return err
		}
		// status may have moved since the first read
		updated.CurrentStatus = locked.CurrentStatus
		return tx.UpdateNotification(ctx, updated)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update notification", slog.String("notification_id", notificationID))
		return nil, wrapRepoErr(err, "failed to update notification")
	}

	s.LogInfo(ctx, "Notification updated", slog.String("notification_id", notificationID))
	return &updated, nil
}

func buildNotificationPatch(req dto.UpdateNotificationRequest) (domain.NotificationPatch, error) {
	patch := domain.NotificationPatch{
		NotificationTypeID:     req.NotificationTypeID,
		ReceivingDepartmentID:  req.ReceivingDepartmentID,
		ProcessingDepartmentID: req.ProcessingDepartmentID,
		PropertyName:           req.PropertyName,
		Content:                req.Content,
		AdditionalData:         req.AdditionalData,
		CurrentStatus:          req.CurrentStatus,
	}
	if req.NotificationDate != nil {
		d, err := dto.ParseDate("notificationDate", *req.NotificationDate)
		if err != nil {
			return patch, err
		}
		patch.NotificationDate = &d
	}
	completion, err := dto.ParseOptionalDate("completionDate", req.CompletionDate)
	if err != nil {
		return patch, err
	}
	patch.CompletionDate = completion
	additionalData, err := normalizeAdditionalData(req.AdditionalData)
	if err != nil {
		return patch, err
	}
	patch.AdditionalData = additionalData
	return patch, nil
}

func (s *notificationService) ChangeStatus(ctx context.Context, actor domain.Actor, notificationID string, req dto.ChangeStatusRequest) (*domain.Notification, error) {
	newStatus := strings.TrimSpace(req.Status)
	if newStatus == "" {
		return nil, apperrors.NewValidationFailedError("status is required")
	}

	n, err := s.findNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, actor, OpChangeStatus, n); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		updated    domain.Notification
		statusFrom string
	)
	err = s.notificationRepo.WithinTx(ctx, func(tx portsrepo.NotificationTxRepository) error {
		locked, err := tx.FindNotificationForUpdate(ctx, notificationID)
		if err != nil {
			return err
		}
		statusFrom = locked.CurrentStatus
		if err := tx.UpdateNotificationStatus(ctx, notificationID, newStatus, actor.UserID, now); err != nil {
			return err
		}
		if _, err := tx.AppendHistory(ctx, domain.NotificationHistory{
			HistoryID:      uuid.NewString(),
			NotificationID: notificationID,
			StatusFrom:     &statusFrom,
			StatusTo:       newStatus,
			ChangedBy:      actor.UserID,
			Comment:        req.Comment,
			ChangedAt:      now,
		}); err != nil {
			return err
		}
		updated = *locked
		updated.CurrentStatus = newStatus
		updated.Touch(actor.UserID, now)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change notification status", slog.String("notification_id", notificationID))
		return nil, wrapRepoErr(err, "failed to change notification status")
	}

	s.LogInfo(ctx, "Notification status changed",
		slog.String("notification_id", notificationID),
		slog.String("status_from", statusFrom),
		slog.String("status_to", newStatus))
	s.emit(ctx, domain.EventNotificationStatusChanged, &updated, &statusFrom, actor.UserID, now)
	return &updated, nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, actor domain.Actor, notificationID string) error {
	n, err := s.findNotification(ctx, notificationID)
	if err != nil {
		return err
	}
	if err := s.Authorize(ctx, actor, OpDeleteNotification, n); err != nil {
		return err
	}

	err = s.notificationRepo.WithinTx(ctx, func(tx portsrepo.NotificationTxRepository) error {
		if _, err := tx.FindNotificationForUpdate(ctx, notificationID); err != nil {
			return err
		}
		if err := tx.DeleteInspectionsByNotification(ctx, notificationID); err != nil {
			return err
		}
		if err := tx.DeleteHistoryByNotification(ctx, notificationID); err != nil {
			return err
		}
		return tx.DeleteNotification(ctx, notificationID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete notification", slog.String("notification_id", notificationID))
		return wrapRepoErr(err, "failed to delete notification")
	}

	s.LogInfo(ctx, "Notification deleted", slog.String("notification_id", notificationID))
	s.emit(ctx, domain.EventNotificationDeleted, n, nil, actor.UserID, s.now())
	return nil
}

func (s *notificationService) findNotification(ctx context.Context, notificationID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("notification not found")
		}
		s.LogError(ctx, err, "Failed to load notification", slog.String("notification_id", notificationID))
		return nil, wrapRepoErr(err, "failed to load notification")
	}
	return n, nil
}

// validateReferences checks that the type and both departments exist and are usable.
func (s *notificationService) validateReferences(ctx context.Context, n *domain.Notification) error {
	nt, err := s.notificationTypeRepo.FindNotificationTypeByID(ctx, n.NotificationTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("notification type does not exist")
		}
		return wrapRepoErr(err, "failed to load notification type")
	}
	if !nt.IsActive {
		return apperrors.NewValidationFailedError("notification type is inactive")
	}
	if nt.RequiresAdditionalData && len(n.AdditionalData) == 0 {
		return apperrors.NewValidationFailedError("additionalData is required for this notification type")
	}

	refs := []struct{ field, id string }{
		{"receivingDepartmentID", n.ReceivingDepartmentID},
		{"processingDepartmentID", n.ProcessingDepartmentID},
	}
	for _, ref := range refs {
		if _, err := s.departmentRepo.FindDepartmentByID(ctx, ref.id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError(fmt.Sprintf("%s does not reference an existing department", ref.field))
			}
			return wrapRepoErr(err, "failed to load department")
		}
	}
	return nil
}

// normalizeAdditionalData treats an empty or JSON null payload as absent.
func normalizeAdditionalData(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, apperrors.NewValidationFailedError("additionalData must be valid JSON")
	}
	return trimmed, nil
}

// emit counts the change and hands it to the publisher. Failures are logged only;
// the change is already committed.
func (s *notificationService) emit(ctx context.Context, eventType domain.NotificationEventType, n *domain.Notification, statusFrom *string, actorID string, at time.Time) {
	metrics.NotificationEventsTotal.WithLabelValues(string(eventType)).Inc()
	if s.publisher == nil {
		return
	}
	event := domain.NotificationEvent{
		Type:                   eventType,
		NotificationID:         n.NotificationID,
		ReceivingDepartmentID:  n.ReceivingDepartmentID,
		ProcessingDepartmentID: n.ProcessingDepartmentID,
		StatusFrom:             statusFrom,
		StatusTo:               n.CurrentStatus,
		ActorID:                actorID,
		OccurredAt:             at,
	}
	if eventType == domain.EventNotificationDeleted {
		event.StatusTo = ""
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish notification event",
			slog.String("notification_id", n.NotificationID),
			slog.String("event", string(eventType)))
	}
}
