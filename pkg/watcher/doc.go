// Package watcher implements the three independent risk estimators that feed
// the Omega gate, together with the per-entity state they depend on.
//
// # Watchers
//
// Each evaluation produces three scalar signals, all risk-oriented
// (higher = worse, range [0,1]):
//
//   - fast: instantaneous anomaly from the current embedded point alone
//   - memory: exponentially-decayed suspicion over the entity's history
//   - governance: policy-rule violations observed this evaluation
//
// The combined triadic distance d_tri is a weighted quadratic mean of the
// three. A watcher that cannot produce a signal defaults to 1.0 (maximum
// risk) and the omission is reported as a MissingSignalError: logged, never
// silently zeroed.
//
// # Sign Conventions
//
// Everything in this package is risk-oriented. Blend is the single point
// where the risk domain is converted to the safety domain consumed by the
// gate: triadic_from_rings = 1 - d_tri. Do not invert signs anywhere else;
// a second inversion silently turns high-risk entities into high-safety ones.
//
// # State Model
//
// WatcherState is the only mutable resource in the decision core. The Store
// keys state by entity, creates it on first observation, and evicts it after
// an idle timeout. Acquire hands out a deep copy under a per-key lock;
// mutations are committed all-or-nothing at release, so an abandoned
// evaluation leaves no half-updated suspicion counters behind. Evaluations
// for different entities never contend.
package watcher
