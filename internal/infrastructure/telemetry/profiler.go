package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// Profiling label keys. Values must stay low cardinality.
const (
	ProfilingLabelRoute  = "route"
	ProfilingLabelMethod = "method"
	ProfilingLabelKind   = "kind"
)

// Profiler owns a running Pyroscope session.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
}

// NewProfiler starts continuous profiling when enabled
func NewProfiler(s Settings, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !s.ProfilingEnabled {
		return p, nil
	}
	if s.ProfilingAddress == "" {
		return nil, errors.New("profiler server address is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}

	prof, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: s.ServiceName,
		ServerAddress:   s.ProfilingAddress,
		Logger:          pyroscopeLogger{logger.Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = prof
	logger.Info("continuous profiling enabled", zap.String("server_address", s.ProfilingAddress))
	return p, nil
}

// IsEnabled reports whether profiles are being collected
func (p *Profiler) IsEnabled() bool {
	return p != nil && p.profiler != nil
}

// Stop flushes and stops the profiler
func (p *Profiler) Stop() error {
	if !p.IsEnabled() {
		return nil
	}
	return p.profiler.Stop()
}

// WithProfilingLabels runs fn with labels attached to its goroutine's samples.
// Empty values are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	args := make([]string, 0, len(labels)*2)
	for k, v := range labels {
		if v != "" {
			args = append(args, k, v)
		}
	}
	if len(args) == 0 {
		fn(ctx)
		return
	}
	pprof.Do(ctx, pprof.Labels(args...), fn)
}

type pyroscopeLogger struct {
	*zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.SugaredLogger.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.SugaredLogger.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.SugaredLogger.Errorf(format, args...) }
