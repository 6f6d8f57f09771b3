package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/SscSPs/document_reception_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles HTTP requests for notifications and their history.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
	inspectionService   portssvc.InspectionSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade, is portssvc.InspectionSvcFacade) *notificationHandler {
	return &notificationHandler{
		notificationService: ns,
		inspectionService:   is,
	}
}

// RegisterNotificationRoutes registers routes related to notifications.
func RegisterNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade, inspectionService portssvc.InspectionSvcFacade) {
	h := newNotificationHandler(notificationService, inspectionService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("", h.createNotification)
		notifications.GET("/:id", h.getNotification)
		notifications.PUT("/:id", h.updateNotification)
		notifications.DELETE("/:id", h.deleteNotification)
		notifications.PUT("/:id/status", h.changeStatus)
		notifications.GET("/:id/history", h.listHistory)
		notifications.GET("/:id/inspections", h.listInspections)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Lists notifications visible to the caller. GENERAL users only see their own department.
// @Tags notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "Current status"
// @Param departmentID query string false "Receiving or processing department"
// @Param fromDate query string false "Notification date from (YYYY-MM-DD)"
// @Param toDate query string false "Notification date to (YYYY-MM-DD)"
// @Param keyword query string false "Matches property name or content"
// @Success 200 {object} dto.SuccessResponse{data=dto.PageResponse[dto.NotificationResponse]}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "list notifications query", err)
		return
	}

	items, total, err := h.notificationService.ListNotifications(c.Request.Context(), actor, params)
	if err != nil {
		handleServiceError(c, err, "List notifications")
		return
	}

	respondOK(c, dto.PageResponse[dto.NotificationResponse]{
		Items:      dto.ToNotificationResponses(items),
		Pagination: pagination.NewMeta(total, pagination.Normalize(params.Page, params.Limit)),
	})
}

// createNotification godoc
// @Summary Create a notification
// @Description Registers a received notification and records its initial status.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body dto.CreateNotificationRequest true "Notification details"
// @Success 201 {object} dto.SuccessResponse{data=dto.NotificationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Departments outside the caller's scope"
// @Security BearerAuth
// @Router /notifications [post]
func (h *notificationHandler) createNotification(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create notification request", err)
		return
	}

	n, err := h.notificationService.CreateNotification(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Create notification")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Notification created", slog.String("notification_id", n.NotificationID))
	respondCreated(c, dto.ToNotificationResponse(n))
}

// getNotification godoc
// @Summary Get a notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.NotificationResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id} [get]
func (h *notificationHandler) getNotification(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	n, err := h.notificationService.GetNotification(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Get notification")
		return
	}
	respondOK(c, dto.ToNotificationResponse(n))
}

// updateNotification godoc
// @Summary Update a notification
// @Description Updates non-status fields. Status changes must use the status endpoint.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param notification body dto.UpdateNotificationRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.NotificationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id} [put]
func (h *notificationHandler) updateNotification(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update notification request", err)
		return
	}

	n, err := h.notificationService.UpdateNotification(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "Update notification")
		return
	}
	respondOK(c, dto.ToNotificationResponse(n))
}

// deleteNotification godoc
// @Summary Delete a notification
// @Description Removes the notification with its history and inspections. ADMIN only.
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *notificationHandler) deleteNotification(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.notificationService.DeleteNotification(c.Request.Context(), actor, c.Param("id")); err != nil {
		handleServiceError(c, err, "Delete notification")
		return
	}
	c.Status(http.StatusNoContent)
}

// changeStatus godoc
// @Summary Change notification status
// @Description Moves the notification to a new status and appends a history entry. SENIOR or above.
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param status body dto.ChangeStatusRequest true "New status and optional comment"
// @Success 200 {object} dto.SuccessResponse{data=dto.NotificationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/status [put]
func (h *notificationHandler) changeStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "change status request", err)
		return
	}

	n, err := h.notificationService.ChangeStatus(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "Change notification status")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Notification status changed",
		slog.String("notification_id", n.NotificationID), slog.String("status", n.CurrentStatus))
	respondOK(c, dto.ToNotificationResponse(n))
}

// listHistory godoc
// @Summary List notification history
// @Description Returns status transitions, newest first.
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.HistoryResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/history [get]
func (h *notificationHandler) listHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	history, err := h.notificationService.ListHistory(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "List notification history")
		return
	}
	respondOK(c, dto.ToHistoryResponses(history))
}

// listInspections godoc
// @Summary List inspections of a notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.InspectionResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/inspections [get]
func (h *notificationHandler) listInspections(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	inspections, err := h.inspectionService.ListInspections(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "List inspections")
		return
	}
	respondOK(c, dto.ToInspectionResponses(inspections))
}
