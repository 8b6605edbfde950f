package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records request count, latency and in-flight gauge per
// route pattern. Unmatched routes collapse into one series so random
// paths cannot blow up label cardinality.
func HTTPMetrics(m *telemetry.PrometheusMetrics, skipPaths ...string) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		done := m.RequestStarted()
		defer done()

		c.Next()

		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
