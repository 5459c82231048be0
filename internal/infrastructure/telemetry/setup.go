package telemetry

import (
	"context"
	"errors"

	"github.com/freightdocs/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Settings is the telemetry section of the service configuration.
type Settings = config.TelemetryConfig

// Telemetry groups every provider started for the process.
type Telemetry struct {
	Profiler *Profiler
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
}

// Setup starts the profiler first so span profiles can attach to it, then the
// tracer, meter and log providers. Each disabled part is a no-op.
func Setup(ctx context.Context, s Settings, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{}
	var err error

	if t.Profiler, err = NewProfiler(s, logger); err != nil {
		return nil, err
	}
	if t.Tracer, err = NewTracerProvider(ctx, s, t.Profiler.IsEnabled(), logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if t.Meter, err = NewMeterProvider(ctx, s, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if t.Logs, err = NewLoggerProvider(ctx, s, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	return t, nil
}

// Shutdown flushes the providers in reverse start order.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	return errors.Join(errs...)
}
