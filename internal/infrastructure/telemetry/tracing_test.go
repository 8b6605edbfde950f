package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)
	id := uuid.New()

	ctx, span := telemetry.StartServiceSpan(context.Background(), "liquidity", "request_redemption",
		telemetry.SpanAttrInvestmentID, id,
		telemetry.SpanAttrTokens, int64(10),
		42, "ignored non-string key",
	)
	assert.NotEmpty(t, telemetry.GetTraceID(ctx))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "liquidity.request_redemption", spans[0].Name())
	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, id.String(), attrs[telemetry.SpanAttrInvestmentID].AsString())
	assert.Equal(t, int64(10), attrs[telemetry.SpanAttrTokens].AsInt64())
	assert.Len(t, attrs, 2)
}

func TestEnd_RecordsError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "prediction", "stake")
	telemetry.End(span, errors.New("market closed"))

	_, ok := telemetry.StartServiceSpan(context.Background(), "prediction", "quote")
	telemetry.End(ok, nil)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "market closed", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
}

func TestSetAttributes_OddPairs(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "svc", "op")
	telemetry.SetAttributes(span, "a", true, "b", 1.5, "dangling")
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	assert.True(t, attrs["a"].AsBool())
	assert.Equal(t, 1.5, attrs["b"].AsFloat64())
	assert.NotContains(t, attrs, "dangling")

	telemetry.SetAttributes(nil, "x", 1)
	telemetry.RecordError(nil, errors.New("ignored"))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, telemetry.GetTraceID(context.Background()))
}
