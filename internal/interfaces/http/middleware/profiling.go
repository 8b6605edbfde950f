package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// ProfilingLabels tags CPU samples taken while a request is served with
// its method, route pattern and API area, so flame graphs can be filtered
// per endpoint. Mount it only when continuous profiling is enabled.
func ProfilingLabels() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := pyroscope.Labels(
			"http_method", c.Request.Method,
			"http_route", route,
			"api_area", apiArea(route),
		)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// apiArea returns the first segment after /api/v1, e.g. "liquidity"
func apiArea(route string) string {
	rest, ok := strings.CutPrefix(route, "/api/v1/")
	if !ok {
		return "system"
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "system"
	}
	return rest
}
