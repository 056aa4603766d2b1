// Package decision implements the governance decision engine: the pipeline
// that turns a raw context vector into an ALLOW, QUARANTINE, or DENY
// decision with an EXILE escalation ledger outcome.
//
// # Pipeline
//
// Each evaluation runs embed, gyrovector transform, realm classification,
// watcher observation, triadic blend, harmonic wall, and the five-factor
// Omega gate, in that order. Stateless stages run without shared state; the
// per-entity watcher state is acquired from the store for the duration of
// the evaluation and committed atomically at the end.
//
// # Decisions and outcomes
//
// The decision field is always derived from Omega and the two thresholds.
// The ledger outcome additionally reflects exile escalation: an entity that
// accumulates the configured number of consecutive DENY decisions within the
// rolling window is exiled, and stays exiled until explicitly reinstated.
// The exile roster can be persisted to SQLite so stickiness survives
// restarts.
//
// # Failure policy
//
// The engine fails closed. A geometry or classification error produces a
// DENY envelope with zeroed factors and exactly the same field set as every
// other response, so an external observer cannot tell which check failed.
// The cause is logged internally. Ledger write failures never block or
// change a decision.
package decision
