// Package gate implements the final safety gating for an evaluation: the
// harmonic wall cost barrier and the five-factor multiplicative Omega gate.
//
// # Harmonic Wall
//
// H(d) = R^(d²) with decay base 0 < R < 1: exponential decay in the squared
// realm distance, NOT iterated/tower exponentiation. H(0)=1, H is strictly
// decreasing for d>0, and H ∈ (0,1]. The wall amplifies realm distance
// superlinearly: states far from their nearest trusted center contribute
// almost nothing to safety.
//
// # Omega Gate
//
// Five independent lock factors, each safety-oriented in [0,1]:
// pqc, harm, drift, triadic, spectral. Omega is their product, a pure
// multiplicative AND. Any single factor at exactly 0 forces Omega to 0, so
// the gate is fail-closed by construction. The weakest lock is the
// minimum-valued factor, ties broken by the fixed priority order
// pqc > harm > drift > triadic > spectral.
//
// Factors is a fixed five-field struct and the gate folds over a fixed-size
// array of named locks: omitting a factor is a compile error, not a silent
// runtime default.
package gate
