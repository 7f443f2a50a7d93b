package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/auth"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Login handles admin login.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, admin, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewLoginResponse(token, admin))
}

// ChangeUsername renames the authenticated admin.
// PUT /api/v1/auth/username
func (h *AuthHandler) ChangeUsername(c *gin.Context) {
	var req dto.ChangeUsernameRequest
	if !h.BindJSON(c, &req) {
		return
	}

	adminID, ok := h.currentAdminID(c)
	if !ok {
		return
	}

	if err := h.service.ChangeUsername(c.Request.Context(), adminID, req.Username); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "username updated")
}

// ChangePassword rotates the authenticated admin's password.
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	adminID, ok := h.currentAdminID(c)
	if !ok {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password updated")
}

func (h *AuthHandler) currentAdminID(c *gin.Context) (id.ID, bool) {
	adminID, err := id.Parse(h.GetUserID(c))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("invalid token subject"))
		return id.Nil(), false
	}
	return adminID, true
}
