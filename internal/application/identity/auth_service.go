package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/auth"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// ReferralLinker attaches a new account to the referral it signed up with
type ReferralLinker interface {
	LinkSignup(ctx context.Context, code string, inviteeID uuid.UUID) error
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles registration and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	referrals  ReferralLinker
	publisher  shared.EventPublisher
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// SetReferralLinker wires referral tracking into sign-up
func (s *AuthService) SetReferralLinker(l ReferralLinker) { s.referrals = l }

// SetEventPublisher sets the publisher for user events
func (s *AuthService) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// Register creates an investor account and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	log := logger.Enrich(ctx, s.logger)

	user, err := identity.NewUser(input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, err
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}
	user.ReferralCode = input.ReferralCode

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
		log.Warn("Failed to publish user events", zap.Error(err))
	}

	if input.ReferralCode != "" && s.referrals != nil {
		// a stale or unknown code must not block sign-up
		if err := s.referrals.LinkSignup(ctx, input.ReferralCode, user.ID); err != nil {
			log.Warn("Referral code not applied",
				zap.String("referral_code", input.ReferralCode),
				zap.Error(err))
		}
	}

	log.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	log := logger.Enrich(ctx, s.logger)

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			identity.CompareDummyPassword(input.Password)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			log.Error("Failed to update user after login failure", zap.Error(err))
		}
		if locked {
			log.Warn("Account locked after too many failed attempts",
				zap.String("user_id", user.ID.String()),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, errInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the tokens are valid either way
		log.Error("Failed to update user after successful login", zap.Error(err))
	}
	log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return result, nil
}

// RefreshToken rotates the token pair. The presented refresh token is
// revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		}
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			return err
		}
	}
	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				return err
			}
		}
	}
	logger.Enrich(ctx, s.logger).Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password and revokes older sessions
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.jwtService.GetAccessTokenExpiration()); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to revoke sessions after password change", zap.Error(err))
	}
	return shared.PublishAndClear(ctx, s.publisher, user)
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*LoginResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, DisplayName: u.Name(), Role: string(u.Role)}
}
