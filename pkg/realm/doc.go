// Package realm assigns embedded points to trust realms.
//
// A realm is a fixed labeled center in the Poincaré ball. The classifier
// returns the nearest center under the hyperbolic metric together with the
// distance to it; that distance feeds the harmonic wall downstream.
//
// Centers are loaded once at startup from configuration and treated as
// immutable for the lifetime of a snapshot. Reload swaps the whole snapshot
// atomically (driven by the config file watcher), so an in-flight evaluation
// always sees a consistent center set.
//
// Ties are broken deterministically: the lowest-index realm wins.
package realm
