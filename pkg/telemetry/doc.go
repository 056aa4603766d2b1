// Package telemetry provides observability for Hyperion.
//
// # Components
//
//   - logging: Structured logging with entity-key hashing
//   - metrics: Prometheus metrics collection
//   - tracing: OpenTelemetry distributed tracing
//
// # Usage
//
//	// Get logger
//	logger, _ := logging.New(logging.Config{Level: "info", Format: "json"})
//	logger.Info("decision committed", "decision", "ALLOW", "omega", 0.92)
//
//	// Record metrics
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordEvaluation("ALLOW", "ALLOW", 0.92, "spectral", duration)
//
//	// Create span
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing)
//	ctx, span := tracer.Start(ctx, "decision.evaluate")
//	defer span.End()
//
// # Entity-key protection
//
// Raw entity keys identify agents and sessions under governance. With
// hashing enabled, log output carries only short stable digests of them;
// metrics carry no entity keys at all (label cardinality stays bounded by
// construction).
package telemetry
