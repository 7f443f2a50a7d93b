package dto

import (
	"time"

	"github.com/Iqbalshah786/inventory/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangeUsernameRequest for renaming the admin account.
type ChangeUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// ChangePasswordRequest for rotating the admin password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// --- Response DTOs ---

// LoginResponse returns the signed token and admin identity.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     AdminInfo `json:"admin"`
}

// AdminInfo represents the admin in API responses.
type AdminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NewLoginResponse builds the login payload from the issued token.
func NewLoginResponse(token string, admin *auth.Admin) *LoginResponse {
	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: time.Now().Add(auth.DefaultTokenTTL),
		Admin: AdminInfo{
			ID:       admin.ID.String(),
			Username: admin.Username,
		},
	}
}
