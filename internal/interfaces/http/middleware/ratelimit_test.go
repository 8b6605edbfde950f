package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

func newStoppedLimiter(t *testing.T, rps float64, burst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(rps, burst, time.Minute)
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows burst then blocks", func(t *testing.T) {
		limiter := newStoppedLimiter(t, 0.001, 3)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("client1"), "request %d should be allowed", i+1)
		}
		assert.False(t, limiter.Allow("client1"))
		assert.Equal(t, 0, limiter.Remaining("client1"))
	})

	t.Run("separate buckets per client", func(t *testing.T) {
		limiter := newStoppedLimiter(t, 0.001, 1)

		assert.True(t, limiter.Allow("clientA"))
		assert.False(t, limiter.Allow("clientA"))
		assert.True(t, limiter.Allow("clientB"))
		assert.Equal(t, 1, limiter.Remaining("unknown"))
	})

	t.Run("refills over time", func(t *testing.T) {
		limiter := newStoppedLimiter(t, 1, 1)
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("client3"))
		assert.False(t, limiter.Allow("client3"))

		now = now.Add(time.Second)
		assert.True(t, limiter.Allow("client3"))
	})

	t.Run("sweep evicts idle buckets", func(t *testing.T) {
		limiter := newStoppedLimiter(t, 1, 1)
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		limiter.Allow("idle")
		now = now.Add(30 * time.Second)
		limiter.Allow("active")
		now = now.Add(45 * time.Second)
		limiter.sweep()

		assert.Equal(t, 1, limiter.Len())
	})

	t.Run("concurrent access", func(t *testing.T) {
		limiter := newStoppedLimiter(t, 0.001, 100)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, allowed)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		limiter := NewRateLimiter(1, 1, time.Minute)
		limiter.Stop()
		limiter.Stop()
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := newStoppedLimiter(t, 0.001, 2)

	router := gin.New()
	router.Use(RequestID(), RateLimit(limiter, nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		rec := serve(router, http.MethodGet, "/test", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := serve(router, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	info := decodeError(t, rec)
	assert.Equal(t, dto.ErrCodeRateLimited, info.Code)
	assert.NotEmpty(t, info.RequestID)
}

func TestClientKey(t *testing.T) {
	router := gin.New()
	router.GET("/anon", func(c *gin.Context) {
		assert.Equal(t, "ip:192.0.2.1", ClientKey(c))
	})
	router.GET("/user", func(c *gin.Context) {
		c.Set(JWTUserIDKey, "u-1")
		assert.Equal(t, "user:u-1", ClientKey(c))
	})

	for _, path := range []string{"/anon", "/user"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}
