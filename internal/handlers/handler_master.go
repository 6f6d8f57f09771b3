package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// masterHandler serves master data: departments, notification types,
// workflow templates and users.
type masterHandler struct {
	departmentService       portssvc.DepartmentSvcFacade
	notificationTypeService portssvc.NotificationTypeSvcFacade
	userService             portssvc.UserSvcFacade
}

type includeInactiveQuery struct {
	IncludeInactive bool `form:"includeInactive"`
}

// RegisterMasterRoutes registers the /master routes.
func RegisterMasterRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentSvcFacade, notificationTypeService portssvc.NotificationTypeSvcFacade, userService portssvc.UserSvcFacade) {
	h := &masterHandler{
		departmentService:       departmentService,
		notificationTypeService: notificationTypeService,
		userService:             userService,
	}

	master := rg.Group("/master")
	{
		master.GET("/departments", h.listDepartments)
		master.POST("/departments", h.createDepartment)
		master.PUT("/departments/:id", h.updateDepartment)
		master.DELETE("/departments/:id", h.deactivateDepartment)

		master.GET("/notification-types", h.listNotificationTypes)
		master.POST("/notification-types", h.createNotificationType)
		master.PUT("/notification-types/:id", h.updateNotificationType)
		master.DELETE("/notification-types/:id", h.deactivateNotificationType)

		master.GET("/workflow-templates", h.listWorkflowTemplates)
		master.POST("/workflow-templates", h.createWorkflowTemplate)

		master.GET("/users", h.listUsers)
		master.POST("/users", h.createUser)
		master.PUT("/users/:id", h.updateUser)
		master.DELETE("/users/:id", h.deactivateUser)
	}
}

func bindIncludeInactive(c *gin.Context) (bool, bool) {
	var q includeInactiveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, "includeInactive query", err)
		return false, false
	}
	return q.IncludeInactive, true
}

// listDepartments godoc
// @Summary List departments
// @Description Active departments in sort order. ADMIN may include inactive ones.
// @Tags master
// @Produce json
// @Param includeInactive query bool false "Include inactive (ADMIN only)"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.DepartmentResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/departments [get]
func (h *masterHandler) listDepartments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	includeInactive, ok := bindIncludeInactive(c)
	if !ok {
		return
	}
	departments, err := h.departmentService.ListDepartments(c.Request.Context(), actor, includeInactive)
	if err != nil {
		handleServiceError(c, err, "List departments")
		return
	}
	respondOK(c, dto.ToDepartmentResponses(departments))
}

// createDepartment godoc
// @Summary Create a department
// @Tags master
// @Accept json
// @Produce json
// @Param department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.SuccessResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/departments [post]
func (h *masterHandler) createDepartment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create department request", err)
		return
	}
	department, err := h.departmentService.CreateDepartment(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Create department")
		return
	}
	respondCreated(c, dto.ToDepartmentResponse(department))
}

// updateDepartment godoc
// @Summary Update a department
// @Tags master
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param department body dto.UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/departments/{id} [put]
func (h *masterHandler) updateDepartment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update department request", err)
		return
	}
	department, err := h.departmentService.UpdateDepartment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "Update department")
		return
	}
	respondOK(c, dto.ToDepartmentResponse(department))
}

// deactivateDepartment godoc
// @Summary Deactivate a department
// @Tags master
// @Param id path string true "Department ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/departments/{id} [delete]
func (h *masterHandler) deactivateDepartment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.departmentService.DeactivateDepartment(c.Request.Context(), actor, c.Param("id")); err != nil {
		handleServiceError(c, err, "Deactivate department")
		return
	}
	c.Status(http.StatusNoContent)
}

// listNotificationTypes godoc
// @Summary List notification types
// @Tags master
// @Produce json
// @Param includeInactive query bool false "Include inactive (ADMIN only)"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.NotificationTypeResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/notification-types [get]
func (h *masterHandler) listNotificationTypes(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	includeInactive, ok := bindIncludeInactive(c)
	if !ok {
		return
	}
	types, err := h.notificationTypeService.ListNotificationTypes(c.Request.Context(), actor, includeInactive)
	if err != nil {
		handleServiceError(c, err, "List notification types")
		return
	}
	respondOK(c, dto.ToNotificationTypeResponses(types))
}

// createNotificationType godoc
// @Summary Create a notification type
// @Tags master
// @Accept json
// @Produce json
// @Param notificationType body dto.CreateNotificationTypeRequest true "Notification type details"
// @Success 201 {object} dto.SuccessResponse{data=dto.NotificationTypeResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/notification-types [post]
func (h *masterHandler) createNotificationType(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateNotificationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create notification type request", err)
		return
	}
	nt, err := h.notificationTypeService.CreateNotificationType(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Create notification type")
		return
	}
	respondCreated(c, dto.ToNotificationTypeResponse(nt))
}

// updateNotificationType godoc
// @Summary Update a notification type
// @Tags master
// @Accept json
// @Produce json
// @Param id path string true "Notification type ID"
// @Param notificationType body dto.UpdateNotificationTypeRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.NotificationTypeResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/notification-types/{id} [put]
func (h *masterHandler) updateNotificationType(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateNotificationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update notification type request", err)
		return
	}
	nt, err := h.notificationTypeService.UpdateNotificationType(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "Update notification type")
		return
	}
	respondOK(c, dto.ToNotificationTypeResponse(nt))
}

// deactivateNotificationType godoc
// @Summary Deactivate a notification type
// @Tags master
// @Param id path string true "Notification type ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/notification-types/{id} [delete]
func (h *masterHandler) deactivateNotificationType(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.notificationTypeService.DeactivateNotificationType(c.Request.Context(), actor, c.Param("id")); err != nil {
		handleServiceError(c, err, "Deactivate notification type")
		return
	}
	c.Status(http.StatusNoContent)
}

// listWorkflowTemplates godoc
// @Summary List workflow templates
// @Tags master
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]dto.WorkflowTemplateResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/workflow-templates [get]
func (h *masterHandler) listWorkflowTemplates(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	templates, err := h.notificationTypeService.ListWorkflowTemplates(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err, "List workflow templates")
		return
	}
	respondOK(c, dto.ToWorkflowTemplateResponses(templates))
}

// createWorkflowTemplate godoc
// @Summary Create a workflow template
// @Tags master
// @Accept json
// @Produce json
// @Param template body dto.CreateWorkflowTemplateRequest true "Template name and statuses"
// @Success 201 {object} dto.SuccessResponse{data=dto.WorkflowTemplateResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/workflow-templates [post]
func (h *masterHandler) createWorkflowTemplate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateWorkflowTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create workflow template request", err)
		return
	}
	tpl, err := h.notificationTypeService.CreateWorkflowTemplate(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Create workflow template")
		return
	}
	respondCreated(c, dto.ToWorkflowTemplateResponse(tpl))
}
