package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/application/identity"
)

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the request body for sign-up
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email,max=254"`
	Password     string `json:"password" binding:"required,min=8,max=128"`
	DisplayName  string `json:"display_name" binding:"required,min=1,max=100"`
	ReferralCode string `json:"referral_code" binding:"omitempty,max=32"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke too
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
}

// LoginResponse represents the response body for successful login,
// registration and refresh
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

func toAuthUser(u identity.UserInfo) AuthUserResponse {
	return AuthUserResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role}
}

func toLoginResponse(r *identity.LoginResult) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken:           r.AccessToken,
			RefreshToken:          r.RefreshToken,
			AccessTokenExpiresAt:  r.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
			TokenType:             r.TokenType,
		},
		User: toAuthUser(r.User),
	}
}
