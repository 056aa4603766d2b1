// Package geometry implements the curved-space math underlying Hyperion's
// governance decisions: embedding of raw context vectors into the open unit
// ball, the hyperbolic (Poincaré ball) distance, and the gyrovector
// translation used to apply deterministic state shifts.
//
// # Architecture
//
// The package has three computational pieces built on a shared Vector type:
//
//  1. Embedder - maps a real-valued context vector into the open unit ball
//     via a tanh radial map (‖result‖ < 1-epsBall always holds)
//  2. Metric - the invariant hyperbolic distance between two embedded points
//  3. Gyro - Möbius addition composed with a deterministic rotation
//
// # Numerical Safety
//
// Two epsilons govern all computations:
//
//   - epsBall: points with norm at or above 1-epsBall are rejected with
//     OutOfBallError (callers treat this as maximal distance, fail-closed)
//   - epsDiv: denominators are floored at epsDiv to avoid singularities;
//     vectors with norm below epsDiv embed to the origin
//
// Every operation is a pure function: identical inputs produce bit-identical
// outputs. There is no hidden randomness and no wall-clock dependence.
//
// # Basic Usage
//
//	emb := geometry.NewEmbedder(1.0, 1e-9, 1e-12)
//	p, err := emb.Embed([]float64{0.3, -0.2, 0.5})
//	if err != nil {
//	    // non-finite input, fail closed
//	}
//
//	m := geometry.NewMetric(1e-9, 1e-12)
//	d, err := m.Distance(p, q)
package geometry
