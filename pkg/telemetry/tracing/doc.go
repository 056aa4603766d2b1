// Package tracing provides OpenTelemetry distributed tracing for Hyperion.
//
// # Overview
//
// The tracing package implements W3C Trace Context propagation, span
// creation, and trace export over OTLP gRPC. Each evaluation produces a
// small span tree covering the pipeline stages.
//
// # Span Hierarchy
//
//	decision.evaluate
//	├── decision.embed
//	├── decision.transform
//	├── decision.classify
//	├── decision.watch
//	└── decision.commit
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all traces (development/debugging)
//   - never: Sample no traces (tracing disabled)
//   - ratio: Sample a percentage of traces (production)
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "decision.evaluate")
//	defer span.End()
//
// Span attributes never carry raw entity keys, only realm labels, decision
// names, and dimensions.
package tracing
