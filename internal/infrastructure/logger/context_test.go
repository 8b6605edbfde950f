package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestL_AddsCorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-1")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	L(ctx).Info("hello")

	entry := recorded.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
