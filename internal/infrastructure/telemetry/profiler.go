package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DefaultProfileTypes are collected when profiling is on
var DefaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Profiler wraps the Pyroscope profiler lifecycle
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	mu       sync.Mutex
	stopped  bool
}

// StartProfiler starts continuous profiling when cfg.ProfilingEnabled.
// A disabled profiler is returned as a no-op.
func StartProfiler(cfg config.TelemetryConfig, logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Profiler{logger: logger}
	if !cfg.ProfilingEnabled {
		return p, nil
	}
	if cfg.ProfilingEndpoint == "" {
		return nil, fmt.Errorf("profiler endpoint is required when profiling is enabled")
	}
	if cfg.ServiceName == "" {
		return nil, fmt.Errorf("service name is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ProfilingEndpoint,
		Logger:          pyroscopeLogger{logger: logger.Named("pyroscope")},
		Tags:            tags,
		ProfileTypes:    DefaultProfileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler
	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ProfilingEndpoint),
		zap.String("application_name", cfg.ServiceName))
	return p, nil
}

// Enabled reports whether profiles are being collected
func (p *Profiler) Enabled() bool { return p.profiler != nil }

// Stop flushes and stops profiling; it is safe to call more than once
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true
	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

type pyroscopeLogger struct {
	logger *zap.Logger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.logger.Sugar().Infof(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.logger.Sugar().Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.logger.Sugar().Errorf(format, args...) }
