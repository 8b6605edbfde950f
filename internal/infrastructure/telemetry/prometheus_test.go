package telemetry_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
)

func scrape(t *testing.T, m *telemetry.PrometheusMetrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPrometheusMetrics_HTTP(t *testing.T) {
	m := telemetry.NewPrometheusMetrics()

	done := m.RequestStarted()
	m.ObserveHTTP(http.MethodGet, "/api/v1/properties/:id", http.StatusOK, 15*time.Millisecond)
	done()
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `tokenestate_http_requests_total{method="GET",route="/api/v1/properties/:id",status="200"} 1`)
	assert.Contains(t, body, `tokenestate_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "tokenestate_http_inflight_requests 0")
	assert.Contains(t, body, "go_goroutines")
}

func TestPrometheusMetrics_Jobs(t *testing.T) {
	m := telemetry.NewPrometheusMetrics()

	var obs telemetry.MultiObserver = []interface {
		ObserveJob(string, int, time.Duration, error)
	}{m, nil}
	obs.ObserveJob("accreditation-expiry", 4, time.Second, nil)
	obs.ObserveJob("accreditation-expiry", 0, time.Second, errors.New("boom"))

	body := scrape(t, m)
	assert.Contains(t, body, `tokenestate_scheduler_job_runs_total{job="accreditation-expiry",outcome="success"} 1`)
	assert.Contains(t, body, `tokenestate_scheduler_job_runs_total{job="accreditation-expiry",outcome="failure"} 1`)
	assert.Contains(t, body, `tokenestate_scheduler_job_affected_total{job="accreditation-expiry"} 4`)
}

func TestPrometheusMetrics_FuncCollectors(t *testing.T) {
	m := telemetry.NewPrometheusMetrics()

	clients := 3.0
	require.NoError(t, m.RegisterGauge("realtime", "clients", "Connected clients.", func() float64 { return clients }))
	require.NoError(t, m.RegisterCounter("events", "published_total", "Events published.", func() float64 { return 7 }))
	assert.Error(t, m.RegisterGauge("realtime", "clients", "dup", func() float64 { return 0 }), "duplicate registration")

	clients = 5
	count, err := testutil.GatherAndCount(m.Registry(), "tokenestate_realtime_clients", "tokenestate_events_published_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Contains(t, scrape(t, m), "tokenestate_realtime_clients 5")
}

func TestPrometheusMetrics_RegisterDB(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := telemetry.NewPrometheusMetrics()
	require.NoError(t, m.RegisterDB(db, "tokenestate"))
	assert.Contains(t, scrape(t, m), `go_sql_max_open_connections{db_name="tokenestate"}`)
}
