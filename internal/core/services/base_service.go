package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/SscSPs/document_reception_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// Authorize applies the access policy, logging and counting denials.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, op Operation, target *domain.Notification) error {
	err := Authorize(actor, op, target)
	if err != nil {
		metrics.AuthorizationDenialsTotal.WithLabelValues(string(op), string(actor.Role)).Inc()
		s.GetLogger(ctx).Warn("Access denied",
			slog.String("operation", string(op)),
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)),
			slog.String("reason", apperrors.MessageOf(err, "forbidden")))
	}
	return err
}

// wrapRepoErr passes application errors through and wraps everything else.
func wrapRepoErr(err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	for _, sentinel := range []error{apperrors.ErrNotFound, apperrors.ErrDuplicate, apperrors.ErrValidation} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return apperrors.NewAppError(500, msg, err)
}
