package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden    = "FORBIDDEN"
	codeNotFound     = "NOT_FOUND"
	codeValidation   = "VALIDATION_ERROR"
	codeConflict     = "CONFLICT"
	codeInternal     = "INTERNAL_ERROR"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponse(code, message))
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, what string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	respondError(c, http.StatusBadRequest, codeValidation, "Invalid request: "+err.Error())
}

// handleServiceError maps a service error onto the error envelope.
// Storage failures are logged and never echoed to the client.
func handleServiceError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn(action+": unauthorized", slog.String("error", err.Error()))
		respondError(c, http.StatusUnauthorized, codeUnauthorized, apperrors.MessageOf(err, "Unauthorized"))
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn(action+": forbidden", slog.String("error", err.Error()))
		respondError(c, http.StatusForbidden, codeForbidden, apperrors.MessageOf(err, "Forbidden"))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(action+": not found", slog.String("error", err.Error()))
		respondError(c, http.StatusNotFound, codeNotFound, apperrors.MessageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn(action+": conflict", slog.String("error", err.Error()))
		respondError(c, http.StatusConflict, codeConflict, apperrors.MessageOf(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(action+": validation failed", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, codeValidation, apperrors.MessageOf(err, "Invalid request"))
	default:
		logger.Error(action+" failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, codeInternal, "Internal server error")
	}
}

// requireActor returns the authenticated caller or writes a 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Current user not found in context")
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "Unauthorized")
		return domain.Actor{}, false
	}
	return actor, true
}
