package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
)

func scrapeMetrics(t *testing.T, m *telemetry.PrometheusMetrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHTTPMetrics(t *testing.T) {
	m := telemetry.NewPrometheusMetrics()

	router := gin.New()
	router.Use(HTTPMetrics(m, "/metrics"))
	router.GET("/api/v1/properties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	serve(router, http.MethodGet, "/api/v1/properties/one", "")
	serve(router, http.MethodGet, "/api/v1/properties/two", "")
	serve(router, http.MethodGet, "/does/not/exist", "")
	serve(router, http.MethodGet, "/metrics", "")

	body := scrapeMetrics(t, m)
	assert.Contains(t, body, `tokenestate_http_requests_total{method="GET",route="/api/v1/properties/:id",status="200"} 2`)
	assert.Contains(t, body, `tokenestate_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.NotContains(t, body, `route="/metrics"`)
	assert.Contains(t, body, "tokenestate_http_inflight_requests 0")
}

func TestHTTPMetrics_NilMetrics(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", "").Code)
}
