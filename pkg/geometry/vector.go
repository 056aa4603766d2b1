package geometry

import "math"

// Vector is a real-valued vector of fixed dimension. Raw context vectors and
// embedded points share this representation; embedded points additionally
// satisfy the open-ball invariant enforced by Embedder.
type Vector []float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Dot returns the Euclidean inner product ⟨v,w⟩.
// Vectors of mismatched dimension are truncated to the shorter length.
func (v Vector) Dot(w Vector) float64 {
	n := len(v)
	if len(w) < n {
		n = len(w)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += v[i] * w[i]
	}
	return sum
}

// Norm returns the Euclidean norm ‖v‖.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// NormSq returns the squared Euclidean norm ‖v‖².
func (v Vector) NormSq() float64 {
	return v.Dot(v)
}

// Sub returns v - w as a new vector.
func (v Vector) Sub(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Add returns v + w as a new vector.
func (v Vector) Add(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Scale returns s·v as a new vector.
func (v Vector) Scale(s float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = s * v[i]
	}
	return out
}

// IsFinite reports whether every component is a finite number.
// NaN or ±Inf in a context vector is a degenerate input.
func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Equal reports whether v and w have the same dimension and identical
// components. Exact comparison is intentional: idempotence guarantees are
// bit-for-bit.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}
