package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap/zapcore"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), config.TelemetryConfig{Enabled: false}, nil)
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Meter("test"))
	assert.NotNil(t, p.Tracer("test"))
	assert.Nil(t, p.LogCore(zapcore.InfoLevel))
	p.EnableSpanProfiles()
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Contains(t, telemetry.Sampler(1).Description(), "AlwaysOn")
	assert.Contains(t, telemetry.Sampler(0).Description(), "AlwaysOff")
	assert.Contains(t, telemetry.Sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestStartProfiler(t *testing.T) {
	p, err := telemetry.StartProfiler(config.TelemetryConfig{ProfilingEnabled: false}, nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())

	_, err = telemetry.StartProfiler(config.TelemetryConfig{ProfilingEnabled: true, ServiceName: "svc"}, nil)
	assert.Error(t, err, "endpoint is required")

	_, err = telemetry.StartProfiler(config.TelemetryConfig{ProfilingEnabled: true, ProfilingEndpoint: "http://localhost:4040"}, nil)
	assert.Error(t, err, "service name is required")
}

func TestInstrumentDB_DisabledIsNoop(t *testing.T) {
	assert.NoError(t, telemetry.InstrumentDB(nil, config.TelemetryConfig{Enabled: false}, "tokenestate", nil))
	assert.NoError(t, telemetry.InstrumentDB(nil, config.TelemetryConfig{Enabled: true, DBTraceEnabled: false}, "tokenestate", nil))
}
