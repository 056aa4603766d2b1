package geometry

import "math"

// Embedder maps raw context vectors into the open unit ball. The radial map
// r = tanh(alpha·‖x‖) compresses arbitrary finite norms into [0,1); the
// result is additionally clamped strictly below 1-epsBall so downstream
// divisions by (1-‖u‖²) stay well away from zero.
type Embedder struct {
	alpha   float64
	epsBall float64
	epsDiv  float64
}

// NewEmbedder creates an Embedder with embedding scale alpha (alpha > 0),
// ball margin epsBall, and division floor epsDiv.
func NewEmbedder(alpha, epsBall, epsDiv float64) *Embedder {
	return &Embedder{alpha: alpha, epsBall: epsBall, epsDiv: epsDiv}
}

// Embed maps the context vector x into the open unit ball.
//
// The zero vector (and any vector with ‖x‖ < epsDiv) embeds to the origin.
// That is a defined fallback, not an error. Non-finite or empty input returns
// a DegenerateInputError; callers fail closed.
func (e *Embedder) Embed(x Vector) (Vector, error) {
	if len(x) == 0 {
		return nil, NewDegenerateInputError("empty vector")
	}
	if !x.IsFinite() {
		return nil, NewDegenerateInputError("non-finite component")
	}

	norm := x.Norm()
	if norm < e.epsDiv {
		// origin fallback
		return make(Vector, len(x)), nil
	}

	r := math.Tanh(e.alpha * norm)
	limit := 1 - e.epsBall
	if r >= limit {
		r = math.Nextafter(limit, 0)
	}

	u := x.Scale(r / norm)
	// the per-component rounding in Scale can push the norm back up to or
	// past the limit; pull strictly inside before returning
	if u.Norm() >= limit {
		u = u.Scale(limit / u.Norm() * (1 - 1e-12))
	}
	return u, nil
}

// CheckBall verifies the open-ball invariant for an already embedded point.
// It returns OutOfBallError when ‖u‖ ≥ 1-epsBall.
func (e *Embedder) CheckBall(u Vector) error {
	return checkBall(u, e.epsBall)
}

func checkBall(u Vector, epsBall float64) error {
	norm := u.Norm()
	limit := 1 - epsBall
	if norm >= limit {
		return NewOutOfBallError(norm, limit)
	}
	return nil
}
