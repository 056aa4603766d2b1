package gate

import "math"

// Wall is the harmonic cost barrier applied to realm distance before gating.
type Wall struct {
	lnR         float64
	frictionCap float64
}

// NewWall creates a Wall with decay base R (0 < R < 1) and a cap on the
// derived friction multiplier. Config validation guarantees the range of R;
// the constructor does not re-check it.
func NewWall(r, frictionCap float64) *Wall {
	return &Wall{lnR: math.Log(r), frictionCap: frictionCap}
}

// Cost returns H(d) = R^(d²), computed as exp(d²·ln R). For d=0 the result
// is exactly 1. Negative d is treated as its magnitude (distance semantics).
func (w *Wall) Cost(d float64) float64 {
	if d == 0 {
		return 1
	}
	h := math.Exp(d * d * w.lnR)
	if h > 1 {
		h = 1
	}
	return h
}

// Friction derives the friction multiplier from the wall cost: 1/H, clamped
// to [1, frictionCap]. Callers use it to throttle or delay, never to alter
// the decision itself.
func (w *Wall) Friction(cost float64) float64 {
	if cost <= 0 {
		return w.frictionCap
	}
	f := 1 / cost
	if f < 1 {
		f = 1
	}
	if f > w.frictionCap {
		f = w.frictionCap
	}
	return f
}
