package geometry

import "math"

// Gyro applies the deterministic gyrovector translation used to shift
// embedded points: Möbius addition by a fixed translation vector ("breathing")
// composed with a rotation through a fixed angle ("phase").
//
// Möbius addition is non-commutative but forms a gyrogroup; both the addition
// and the rotation preserve the open ball, so any input strictly inside the
// ball maps strictly inside the ball. Identical inputs always produce
// identical outputs.
type Gyro struct {
	breathing float64 // magnitude of the translation vector
	phase     float64 // rotation angle in radians
	epsDiv    float64
}

// NewGyro creates a Gyro with the given breathing magnitude and phase angle.
func NewGyro(breathing, phase, epsDiv float64) *Gyro {
	return &Gyro{breathing: breathing, phase: phase, epsDiv: epsDiv}
}

// MobiusAdd returns a ⊕ u:
//
//	a ⊕ u = ((1+2⟨a,u⟩+‖u‖²)a + (1−‖a‖²)u) / (1+2⟨a,u⟩+‖a‖²‖u‖²)
//
// For ‖a‖,‖u‖ < 1 the result stays inside the ball.
func (g *Gyro) MobiusAdd(a, u Vector) Vector {
	au := a.Dot(u)
	aSq := a.NormSq()
	uSq := u.NormSq()

	denom := 1 + 2*au + aSq*uSq
	if math.Abs(denom) < g.epsDiv {
		denom = g.epsDiv
	}

	num := a.Scale(1 + 2*au + uSq).Add(u.Scale(1 - aSq))
	return num.Scale(1 / denom)
}

// Rotate applies a Givens rotation through the phase angle on each
// consecutive coordinate pair (0,1), (2,3), ... An odd trailing coordinate is
// left unchanged. Rotations are isometries, so ball containment is preserved
// exactly.
func (g *Gyro) Rotate(u Vector) Vector {
	out := u.Clone()
	cos := math.Cos(g.phase)
	sin := math.Sin(g.phase)
	for i := 0; i+1 < len(out); i += 2 {
		x, y := out[i], out[i+1]
		out[i] = cos*x - sin*y
		out[i+1] = sin*x + cos*y
	}
	return out
}

// Transform applies the full translation to an embedded point: Möbius
// addition by the breathing vector followed by the phase rotation. The
// breathing vector points along the first coordinate axis with magnitude
// clamped below 1 so the translation itself is a valid ball point.
func (g *Gyro) Transform(u Vector) Vector {
	if len(u) == 0 {
		return u
	}

	a := make(Vector, len(u))
	b := g.breathing
	if b >= 1 {
		b = 1 - 1e-9
	}
	if b <= -1 {
		b = -1 + 1e-9
	}
	a[0] = b

	return g.Rotate(g.MobiusAdd(a, u))
}
