// Package observability provides OpenTelemetry tracing and metrics for
// flow dispatch.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("flowdemo"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("flowdemo"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewFlowMetrics(observability.Meter("flowdemo"))
//	f := flow.New[int](flow.WithMetrics(metrics), flow.WithTracing("flow"))
//
// Setup wires both from a single Config and returns one shutdown function.
package observability
