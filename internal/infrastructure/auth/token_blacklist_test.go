package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/auth"
)

func newRedisBlacklist(t *testing.T) (*auth.RedisTokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewRedisTokenBlacklist(client), mr
}

func TestRedisTokenBlacklist_JTI(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	revoked, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry expires with the token")
}

func TestRedisTokenBlacklist_ZeroTTLIsNoop(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	require.NoError(t, bl.AddToBlacklist(context.Background(), "expired", 0))
	assert.False(t, mr.Exists("token:blacklist:jti:expired"))
}

func TestRedisTokenBlacklist_UserInvalidation(t *testing.T) {
	bl, _ := newRedisBlacklist(t)
	ctx := context.Background()

	issued := time.Now().Add(-time.Hour)
	invalid, err := bl.IsUserTokenInvalidated(ctx, "user-1", issued)
	require.NoError(t, err)
	assert.False(t, invalid)

	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	invalid, err = bl.IsUserTokenInvalidated(ctx, "user-1", issued)
	require.NoError(t, err)
	assert.True(t, invalid)

	invalid, err = bl.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, invalid)
}

func TestRedisTokenBlacklist_ConnectionError(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	mr.Close()

	_, err := bl.IsBlacklisted(context.Background(), "jti")
	assert.Error(t, err)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Hour))
	require.NoError(t, bl.AddToBlacklist(ctx, "short", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	revoked, _ := bl.IsBlacklisted(ctx, "jti-1")
	assert.True(t, revoked)
	revoked, _ = bl.IsBlacklisted(ctx, "short")
	assert.False(t, revoked)

	issued := time.Now().Add(-time.Minute)
	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "u", time.Hour))
	invalid, _ := bl.IsUserTokenInvalidated(ctx, "u", issued)
	assert.True(t, invalid)
	invalid, _ = bl.IsUserTokenInvalidated(ctx, "other", issued)
	assert.False(t, invalid)
}
