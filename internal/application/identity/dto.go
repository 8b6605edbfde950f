package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for sign-up
type RegisterInput struct {
	Email        string
	Password     string
	DisplayName  string
	ReferralCode string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login or registration
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID       uuid.UUID
	TokenJTI     string
	TokenTTL     time.Duration // remaining lifetime of the access token
	RefreshToken string        // optional, revoked as well when present
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}
