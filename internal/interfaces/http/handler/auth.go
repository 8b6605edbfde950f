package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/application/identity"
	"github.com/tokenestate/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @ID           registerAuth
// @Summary      Create an investor account
// @Description  Signs up with e-mail and password. A referral code links the new account to its inviter.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Sign-up details"
// @Success      201 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		DisplayName:  req.DisplayName,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toLoginResponse(result))
}

// Login godoc
// @ID           loginAuth
// @Summary      User login
// @Description  Authenticate with e-mail and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLoginResponse(result))
}

// RefreshToken godoc
// @ID           refreshTokenAuth
// @Summary      Refresh access token
// @Description  Exchanges a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), identity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLoginResponse(result))
}

// Logout godoc
// @ID           logoutAuth
// @Summary      Logout
// @Description  Revokes the presented access token and, when given, the refresh token
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        request body LogoutRequest false "Refresh token to revoke"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req LogoutRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	input := identity.LogoutInput{UserID: userID, RefreshToken: req.RefreshToken}
	if claims := middleware.GetJWTClaims(c); claims != nil {
		input.TokenJTI = claims.ID
		input.TokenTTL = claims.GetRemainingTTL()
	}
	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetCurrentUser godoc
// @ID           getCurrentUserAuth
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[AuthUserResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	info, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAuthUser(*info))
}

// ChangePassword godoc
// @ID           changePasswordAuth
// @Summary      Change password
// @Description  Changes the caller's password and invalidates every previously issued token
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
