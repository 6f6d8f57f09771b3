package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type inspectionHandler struct {
	inspectionService portssvc.InspectionSvcFacade
}

func newInspectionHandler(is portssvc.InspectionSvcFacade) *inspectionHandler {
	return &inspectionHandler{inspectionService: is}
}

// RegisterInspectionRoutes registers routes related to inspections.
func RegisterInspectionRoutes(rg *gin.RouterGroup, inspectionService portssvc.InspectionSvcFacade) {
	h := newInspectionHandler(inspectionService)

	inspections := rg.Group("/inspections")
	{
		inspections.POST("", h.createInspection)
		inspections.GET("/:id", h.getInspection)
		inspections.PUT("/:id", h.updateInspection)
		inspections.DELETE("/:id", h.deleteInspection)
	}
}

// createInspection godoc
// @Summary Create an inspection
// @Description Schedules an inspection for a notification whose type requires one. SENIOR or above.
// @Tags inspections
// @Accept json
// @Produce json
// @Param inspection body dto.CreateInspectionRequest true "Inspection details"
// @Success 201 {object} dto.SuccessResponse{data=dto.InspectionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /inspections [post]
func (h *inspectionHandler) createInspection(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create inspection request", err)
		return
	}

	inspection, err := h.inspectionService.CreateInspection(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Create inspection")
		return
	}
	respondCreated(c, dto.ToInspectionResponse(inspection))
}

// getInspection godoc
// @Summary Get an inspection
// @Tags inspections
// @Produce json
// @Param id path string true "Inspection ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.InspectionResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /inspections/{id} [get]
func (h *inspectionHandler) getInspection(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	inspection, err := h.inspectionService.GetInspection(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Get inspection")
		return
	}
	respondOK(c, dto.ToInspectionResponse(inspection))
}

// updateInspection godoc
// @Summary Update an inspection
// @Tags inspections
// @Accept json
// @Produce json
// @Param id path string true "Inspection ID"
// @Param inspection body dto.UpdateInspectionRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.InspectionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /inspections/{id} [put]
func (h *inspectionHandler) updateInspection(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update inspection request", err)
		return
	}

	inspection, err := h.inspectionService.UpdateInspection(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "Update inspection")
		return
	}
	respondOK(c, dto.ToInspectionResponse(inspection))
}

// deleteInspection godoc
// @Summary Delete an inspection
// @Tags inspections
// @Param id path string true "Inspection ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /inspections/{id} [delete]
func (h *inspectionHandler) deleteInspection(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.inspectionService.DeleteInspection(c.Request.Context(), actor, c.Param("id")); err != nil {
		handleServiceError(c, err, "Delete inspection")
		return
	}
	c.Status(http.StatusNoContent)
}
