package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/syncflow/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// FlowMetrics holds the instruments recorded during flow dispatch.
type FlowMetrics struct {
	dispatchTotal    metric.Int64Counter
	dispatchDuration metric.Float64Histogram
	routeTotal       metric.Int64Counter
	errorTotal       metric.Int64Counter
}

// NewFlowMetrics creates flow instruments on the given meter.
func NewFlowMetrics(meter metric.Meter) (*FlowMetrics, error) {
	dispatchTotal, err := meter.Int64Counter("flow.dispatch.total",
		metric.WithDescription("Node evaluations by kind and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flow.dispatch.total counter: %w", err)
	}

	dispatchDuration, err := meter.Float64Histogram("flow.dispatch.duration",
		metric.WithDescription("Duration of a single node evaluation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flow.dispatch.duration histogram: %w", err)
	}

	routeTotal, err := meter.Int64Counter("flow.route.total",
		metric.WithDescription("Values routed into classifier sub-pipelines by label"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flow.route.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("flow.error.total",
		metric.WithDescription("Dispatch failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flow.error.total counter: %w", err)
	}

	return &FlowMetrics{
		dispatchTotal:    dispatchTotal,
		dispatchDuration: dispatchDuration,
		routeTotal:       routeTotal,
		errorTotal:       errorTotal,
	}, nil
}

// RecordDispatch records one node evaluation.
func (m *FlowMetrics) RecordDispatch(ctx context.Context, flow, kind, outcome string, duration time.Duration) {
	m.dispatchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
	m.dispatchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("kind", kind),
	))
}

// RecordRoute records a value routed into the sub-pipeline of label.
func (m *FlowMetrics) RecordRoute(ctx context.Context, flow, label string) {
	m.routeTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("label", label),
	))
}

// RecordError records a dispatch failure by error code.
func (m *FlowMetrics) RecordError(ctx context.Context, flow, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("code", code),
	))
}
