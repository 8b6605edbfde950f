package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for application spans
const TracerName = "tokenestate-backend"

// Span attribute keys
const (
	SpanAttrPropertyID   = "property_id"
	SpanAttrInvestmentID = "investment_id"
	SpanAttrRedemptionID = "redemption_id"
	SpanAttrMarketID     = "market_id"
	SpanAttrInvestorID   = "investor_id"
	SpanAttrTokens       = "tokens"
	SpanAttrAmount       = "amount"
)

// StartServiceSpan starts an internal span named "{service}.{method}".
// Attributes are given as alternating key/value pairs.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "liquidity", "request_redemption",
//	    telemetry.SpanAttrInvestmentID, id.String())
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, keyValues ...any) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx,
		service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attributes(keyValues)...),
	)
}

// SetAttributes adds key/value pairs to span
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil {
		return
	}
	span.SetAttributes(attributes(keyValues)...)
}

// RecordError marks span as failed
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// End records err, if any, and ends span. Use it with a named error return:
//
//	defer func() { telemetry.End(span, err) }()
func End(span trace.Span, err error) {
	RecordError(span, err)
	span.End()
}

// GetTraceID returns the active trace id or ""
func GetTraceID(ctx context.Context) string {
	id := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if !id.IsValid() {
		return ""
	}
	return id.String()
}

func attributes(keyValues []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
