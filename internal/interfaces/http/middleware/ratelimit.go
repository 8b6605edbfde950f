package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing rps sustained requests per
// second with bursts of up to burst. Buckets idle for longer than idleTTL
// are evicted by a background sweep until Stop is called.
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.idleTTL)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// Stop ends the background sweep
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

// Allow consumes one token from key's bucket
func (rl *RateLimiter) Allow(key string) bool {
	return rl.get(key).AllowN(rl.now(), 1)
}

// Remaining returns the whole tokens left in key's bucket
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	rl.mu.Unlock()
	if !ok {
		return rl.burst
	}
	return int(math.Max(0, math.Floor(v.limiter.TokensAt(rl.now()))))
}

// Len reports how many buckets are tracked
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// ClientKey buckets authenticated callers by user and anonymous ones by IP
func ClientKey(c *gin.Context) string {
	if id := GetJWTUserID(c); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}

// RateLimit returns a rate limiting middleware keyed by ClientKey
func RateLimit(limiter *RateLimiter, log *zap.Logger) gin.HandlerFunc {
	return RateLimitByKey(limiter, ClientKey, log)
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		key := keyFunc(c)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))

		if !limiter.Allow(key) {
			log.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited, "Too many requests. Please try again later.", c.GetString(RequestIDKey)))
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
