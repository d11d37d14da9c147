package dto

import "github.com/yigit/schoolhub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@school.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest carries the refresh token when it is not sent as a cookie
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterRequest creates a login account of any role
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email" example:"teacher@school.edu"`
	Password string      `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	Role     models.Role `json:"role" binding:"required,oneof=super_admin admin principal teacher student parent accountant librarian receptionist" example:"teacher"`
}

// ChangePasswordRequest changes the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=20"`
}

// AuthResponse is returned by login and refresh
type AuthResponse struct {
	Success      bool         `json:"success" example:"true"`
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	ExpiresIn    int          `json:"expiresIn" example:"900"`
}

// UserResponse wraps a single user
type UserResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}
