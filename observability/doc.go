// Package observability wires OpenTelemetry tracing and metrics for
// instrumented streams.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("juicer"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("juicer")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewStreamMetrics(observability.Meter("juicer"))
//
// The stream package records through these instruments via its WithMetrics
// and WithTracing operators.
package observability
