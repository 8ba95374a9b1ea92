package observability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config is the telemetry section of a service configuration.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ConfigDefaults returns the telemetry defaults keyed under section, for
// config.WithDefaults. Keys absent from every source take these values; an
// explicit sample_rate of 0 disables sampling.
func ConfigDefaults(section string) map[string]any {
	return map[string]any{
		section + ".endpoint":    "localhost:4318",
		section + ".insecure":    true,
		section + ".sample_rate": 1.0,
		section + ".interval":    15 * time.Second,
	}
}

// ShutdownFunc flushes and stops the providers created by Setup.
type ShutdownFunc func(ctx context.Context) error

// Setup initializes tracing and metrics from cfg. When telemetry is disabled
// it returns a no-op shutdown and nil metrics.
func Setup(ctx context.Context, cfg Config, serviceName, version, environment string) (ShutdownFunc, *FlowMetrics, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil, nil
	}

	tp, err := InitTracer(ctx, TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		SampleRate:     cfg.SampleRate,
	})
	if err != nil {
		return nil, nil, err
	}

	mp, err := InitMeter(ctx, MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		Interval:       cfg.Interval,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}

	metrics, err := NewFlowMetrics(mp.Meter(defaultTracerName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("creating flow metrics: %w", err)
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return shutdown, metrics, nil
}
