package geometry

import "math"

// Metric computes the invariant hyperbolic distance on the open unit ball:
//
//	d_H(u,v) = arcosh(1 + 2‖u−v‖² / ((1−‖u‖²)(1−‖v‖²)))
//
// The distance satisfies the metric axioms (non-negativity, identity of
// indiscernibles, symmetry, triangle inequality) for all points strictly
// inside the ball, and grows without bound as either point approaches the
// boundary.
type Metric struct {
	epsBall float64
	epsDiv  float64
}

// NewMetric creates a Metric with ball margin epsBall and division floor epsDiv.
func NewMetric(epsBall, epsDiv float64) *Metric {
	return &Metric{epsBall: epsBall, epsDiv: epsDiv}
}

// Distance returns d_H(u,v). Either point at or above the 1-epsBall boundary
// yields an OutOfBallError; callers treat that as maximal distance rather
// than propagating a crash.
func (m *Metric) Distance(u, v Vector) (float64, error) {
	if err := checkBall(u, m.epsBall); err != nil {
		return 0, err
	}
	if err := checkBall(v, m.epsBall); err != nil {
		return 0, err
	}

	diffSq := u.Sub(v).NormSq()
	if diffSq == 0 {
		// identity of indiscernibles, exact
		return 0, nil
	}

	denom := (1 - u.NormSq()) * (1 - v.NormSq())
	if denom < m.epsDiv {
		denom = m.epsDiv
	}

	arg := 1 + 2*diffSq/denom
	return math.Acosh(arg), nil
}

// MaxDistance is the conservative stand-in distance used when Distance fails
// the ball check. It exceeds any distance reachable between valid points for
// practical epsilon choices, pushing the harmonic wall toward zero.
const MaxDistance = 1e6
