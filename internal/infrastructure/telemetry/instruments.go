package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when instruments are requested without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Counter wraps a monotonically increasing int64 instrument
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a counter
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Add increments the counter by value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by one
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram wraps a float64 distribution instrument
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a histogram, with explicit buckets when given
func NewHistogram(meter metric.Meter, name, description, unit string, buckets ...float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	h, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", name, err)
	}
	return &Histogram{histogram: h}, nil
}

// Record adds a sample
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// RecordDuration adds a duration sample in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// Attribute keys shared by platform metrics
var (
	AttrFeeTier          = attribute.Key("fee_tier")
	AttrRedemptionStatus = attribute.Key("redemption_status")
	AttrInvestmentStatus = attribute.Key("investment_status")
	AttrMarketSide       = attribute.Key("market_side")
	AttrJob              = attribute.Key("job")
	AttrOutcome          = attribute.Key("outcome")
)

// Bucket boundaries
var (
	// AmountBuckets cover payouts and stakes in whole currency units
	AmountBuckets = []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000, 500000}
	// JobDurationBuckets cover scheduled job runs in seconds
	JobDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300}
)
