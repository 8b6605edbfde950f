// Package telemetry wires OpenTelemetry traces, metrics and logs, Prometheus
// scraping and Pyroscope profiling.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ServiceVersion is reported on every resource
	ServiceVersion = "1.0.0"

	metricExportInterval = 60 * time.Second
	shutdownTimeout      = 10 * time.Second
)

// Provider owns the OpenTelemetry SDK providers. When telemetry is disabled
// every accessor falls back to the global no-op implementation.
type Provider struct {
	cfg    config.TelemetryConfig
	logger *zap.Logger

	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
	logs    *sdklog.LoggerProvider
}

// Setup initialises exporters for traces, metrics and logs
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		logger.Info("Telemetry disabled, using no-op providers")
		return p, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
		logOpts = append(logOpts, otlploggrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	p.traces = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(p.traces)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricExporter, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	p.metrics = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricExportInterval))),
	)
	otel.SetMeterProvider(p.metrics)

	logExporter, err := otlploggrpc.New(ctx, logOpts...)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}
	p.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	global.SetLoggerProvider(p.logs)

	logger.Info("OpenTelemetry initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName))
	return p, nil
}

// Sampler maps a ratio to a sampler; 1 samples everything and 0 nothing
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Enabled reports whether exporters are running
func (p *Provider) Enabled() bool { return p.traces != nil }

// Meter returns a named meter
func (p *Provider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if p.metrics == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return p.metrics.Meter(name, opts...)
}

// Tracer returns a named tracer
func (p *Provider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if p.traces == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return p.traces.Tracer(name, opts...)
}

// LogCore returns a zap core that forwards records at or above minLevel to
// the OTLP log exporter, or nil when telemetry is disabled. Pass it to
// logger.New as an extra core.
func (p *Provider) LogCore(minLevel zapcore.Level) zapcore.Core {
	if p.logs == nil {
		return nil
	}
	return &levelCore{
		Core:     otelzap.NewCore(p.cfg.ServiceName, otelzap.WithLoggerProvider(p.logs)),
		minLevel: minLevel,
	}
}

// EnableSpanProfiles links CPU profiles to spans. Call it after the
// profiler has started.
func (p *Provider) EnableSpanProfiles() {
	if p.traces == nil {
		return
	}
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(p.traces))
	p.logger.Info("Span profiles enabled")
}

// Shutdown flushes and stops every provider
func (p *Provider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if p.traces != nil {
		errs = append(errs, p.traces.Shutdown(ctx))
	}
	if p.metrics != nil {
		errs = append(errs, p.metrics.Shutdown(ctx))
	}
	if p.logs != nil {
		errs = append(errs, p.logs.Shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	return nil
}

// levelCore drops records below minLevel before they reach the bridge
type levelCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}
