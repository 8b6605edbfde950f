package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/auth"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

type MockReferralLinker struct {
	mock.Mock
}

func (m *MockReferralLinker) LinkSignup(ctx context.Context, code string, inviteeID uuid.UUID) error {
	return m.Called(ctx, code, inviteeID).Error(0)
}

func newTestAuthService(repo *testutil.MockUserRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})
	bl := auth.NewInMemoryTokenBlacklist()
	cfg := AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: time.Minute}
	return NewAuthService(repo, jwtSvc, bl, cfg, zap.NewNop()), bl
}

func newUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("ana@example.com", "Password123", "Ana")
	require.NoError(t, err)
	u.ClearDomainEvents()
	return u
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and links referral", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		linker := new(MockReferralLinker)
		svc, _ := newTestAuthService(repo)
		svc.SetReferralLinker(linker)

		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		linker.On("LinkSignup", ctx, "ABCDEFGH", mock.AnythingOfType("uuid.UUID")).Return(nil)

		res, err := svc.Register(ctx, RegisterInput{Email: "Ana@Example.com", Password: "Password123", ReferralCode: "ABCDEFGH"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, "INVESTOR", res.User.Role)
		repo.AssertExpectations(t)
		linker.AssertExpectations(t)
	})

	t.Run("unknown referral code does not block sign-up", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		linker := new(MockReferralLinker)
		svc, _ := newTestAuthService(repo)
		svc.SetReferralLinker(linker)

		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)
		linker.On("LinkSignup", ctx, "NOPE", mock.Anything).Return(shared.ErrNotFound)

		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "Password123", ReferralCode: "NOPE"})
		assert.NoError(t, err)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc, _ := newTestAuthService(repo)
		repo.On("ExistsByEmail", ctx, "ana@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "Password123"})
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "EMAIL_TAKEN", de.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := newUser(t)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		res, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "Password123", IP: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, res.User.ID)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc, _ := newTestAuthService(repo)
		repo.On("FindByEmail", ctx, "x@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "x@example.com", Password: "Password123"})
		assert.ErrorIs(t, err, errInvalidCredentials)
	})

	t.Run("locks after repeated failures", func(t *testing.T) {
		repo := new(testutil.MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := newUser(t)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		for i := 0; i < 2; i++ {
			_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
			assert.ErrorIs(t, err, errInvalidCredentials)
		}
		_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "ACCOUNT_LOCKED", de.Code)

		_, err = svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "Password123"})
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "ACCOUNT_LOCKED", de.Code)
	})
}

func TestAuthService_RefreshRotates(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockUserRepository)
	svc, _ := newTestAuthService(repo)
	user := newUser(t)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	first, err := svc.issue(user)
	require.NoError(t, err)

	second, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: first.RefreshToken})
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "TOKEN_REVOKED", de.Code, "a rotated refresh token cannot be replayed")
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockUserRepository)
	svc, bl := newTestAuthService(repo)
	user := newUser(t)

	pair, err := svc.issue(user)
	require.NoError(t, err)
	claims, err := svc.jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, LogoutInput{
		UserID:       user.ID,
		TokenJTI:     claims.ID,
		TokenTTL:     claims.GetRemainingTTL(),
		RefreshToken: pair.RefreshToken,
	}))

	revoked, err := bl.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	assert.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockUserRepository)
	svc, bl := newTestAuthService(repo)
	user := newUser(t)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	require.NoError(t, svc.ChangePassword(ctx, ChangePasswordInput{UserID: user.ID, OldPassword: "Password123", NewPassword: "Password456"}))
	assert.True(t, user.VerifyPassword("Password456"))

	invalid, err := bl.IsUserTokenInvalidated(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, invalid)
}
