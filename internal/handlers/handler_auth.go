package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles sign-in and the caller's own account.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// RegisterAuthRoutes registers the public login route on public and the
// authenticated account routes on protected. loginLimiter may be nil.
func RegisterAuthRoutes(public, protected *gin.RouterGroup, authService portssvc.AuthSvcFacade, loginLimiter gin.HandlerFunc) {
	h := newAuthHandler(authService)

	login := []gin.HandlerFunc{h.login}
	if loginLimiter != nil {
		login = append([]gin.HandlerFunc{loginLimiter}, login...)
	}
	public.POST("/auth/login", login...)

	auth := protected.Group("/auth")
	{
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.me)
		auth.PUT("/password", h.changePassword)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token with the user profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.SuccessResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or disabled account"
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "login request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err, "Login")
		return
	}

	logger.Info("User logged in", slog.String("user_id", result.User.UserID))
	respondOK(c, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.ToUserResponse(result.User),
	})
}

// logout godoc
// @Summary User logout
// @Description Acknowledges a logout. Tokens are stateless and expire on their own.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.MessageResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	respondOK(c, dto.MessageResponse{Message: "logged out"})
}

// me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "Unauthorized")
		return
	}
	respondOK(c, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change password
// @Description Replaces the caller's password after verifying the current one.
// @Tags auth
// @Accept json
// @Produce json
// @Param password body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/password [put]
func (h *authHandler) changePassword(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "change password request", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actor.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(c, err, "Change password")
		return
	}
	respondOK(c, dto.MessageResponse{Message: "password updated"})
}
