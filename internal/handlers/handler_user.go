package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// listUsers godoc
// @Summary List users
// @Description ADMIN only.
// @Tags master
// @Produce json
// @Param includeInactive query bool false "Include disabled accounts"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/users [get]
func (h *masterHandler) listUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	includeInactive, ok := bindIncludeInactive(c)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), actor, includeInactive)
	if err != nil {
		handleServiceError(c, err, "List users")
		return
	}
	respondOK(c, dto.ToUserResponses(users))
}

// createUser godoc
// @Summary Create a user
// @Description ADMIN only.
// @Tags master
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Security BearerAuth
// @Router /master/users [post]
func (h *masterHandler) createUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "create user request", err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Create user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User created",
		slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	respondCreated(c, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description ADMIN only. Administrators cannot change their own role or disable themselves.
// @Tags master
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/users/{id} [put]
func (h *masterHandler) updateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update user request", err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "Update user")
		return
	}
	respondOK(c, dto.ToUserResponse(user))
}

// deactivateUser godoc
// @Summary Disable a user
// @Description ADMIN only. Users are soft-disabled.
// @Tags master
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /master/users/{id} [delete]
func (h *masterHandler) deactivateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.userService.DeactivateUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		handleServiceError(c, err, "Deactivate user")
		return
	}
	c.Status(http.StatusNoContent)
}
