// Package metrics provides Prometheus metrics collection for Hyperion.
//
// # Overview
//
// The metrics package implements Prometheus metrics for the decision
// pipeline: decision counts, Omega score distributions, weakest-lock
// tallies, watcher signal distributions, state-store occupancy, and ledger
// append health. The Collector is the single recording surface; the engine
// never touches prometheus types directly.
//
// # Metrics
//
//   - decisions_total{decision, ledger_outcome}
//   - omega_score (histogram over configurable buckets)
//   - weakest_lock_total{lock}
//   - evaluation_duration_seconds
//   - watcher_signal{watcher}
//   - missing_signals_total{watcher}
//   - state_entities, state_evictions_total
//   - ledger_appends_total{status}
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordEvaluation("DENY", "EXILE", 0.12, "pqc", duration)
//	http.Handle("/metrics", collector.Handler())
//
// # Cardinality
//
// Every label in this package is drawn from a closed set (four decisions,
// five locks, three watchers, two statuses), so cardinality is bounded by
// construction and no limiter is needed. Entity keys are deliberately never
// used as labels.
package metrics
