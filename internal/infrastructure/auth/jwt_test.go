package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
}

func newTestSubject() Subject {
	return Subject{UserID: uuid.New(), Email: "ana@example.com", Role: "INVESTOR"}
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})
	assert.Equal(t, []byte("test-secret"), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(newTestSubject())

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	sub := newTestSubject()
	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	id, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, sub.UserID, id)
	assert.Equal(t, sub.Email, claims.Email)
	assert.Equal(t, "INVESTOR", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.GetRemainingTTL(), 14*time.Minute)
	assert.False(t, claims.GetIssuedAtTime().IsZero())
}

func TestValidateToken_WrongType(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestSubject())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "different secret fails signature check")

	shared := NewJWTService(config.JWTConfig{Secret: "same-secret-for-both-token-kinds!", Issuer: "i", AccessTokenExpiration: time.Minute, RefreshTokenExpiration: time.Hour})
	pair, err = shared.GenerateTokenPair(newTestSubject())
	require.NoError(t, err)
	_, err = shared.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "i", AccessTokenExpiration: -time.Minute, RefreshTokenExpiration: time.Hour})
	pair, err := svc.GenerateTokenPair(newTestSubject())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newTestJWTService()

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "not.a.jwt" }},
		{"wrong issuer", func() string {
			other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else", AccessTokenExpiration: time.Minute})
			pair, _ := other.GenerateTokenPair(newTestSubject())
			return pair.AccessToken
		}},
		{"none algorithm", func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.NewString(), TokenType: TokenTypeAccess})
			s, _ := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token())
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateToken_MissingUserID(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		RegisteredClaims: svc.registered(uuid.New(), time.Now(), time.Minute),
		TokenType:        TokenTypeAccess,
	}
	s, err := sign(claims, svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(s)
	assert.ErrorIs(t, err, ErrMissingUserID)
}
