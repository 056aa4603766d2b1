package gate

// Lock identifies one of the five Omega lock factors. The declaration order
// is the fixed priority order used for weakest-lock tie-breaking.
type Lock int

const (
	LockPQC Lock = iota
	LockHarm
	LockDrift
	LockTriadic
	LockSpectral
)

// lockNames maps locks to their wire names.
var lockNames = [...]string{
	LockPQC:      "pqc",
	LockHarm:     "harm",
	LockDrift:    "drift",
	LockTriadic:  "triadic",
	LockSpectral: "spectral",
}

// String returns the lock's wire name.
func (l Lock) String() string {
	if l < 0 || int(l) >= len(lockNames) {
		return "unknown"
	}
	return lockNames[l]
}

// Factors holds the five lock factors for one evaluation, each
// safety-oriented in [0,1]. The struct is fixed-size on purpose: a new lock
// factor must be added here, to the array fold below, and to the wire
// format; there is no way to leave one out silently.
type Factors struct {
	PQC      float64 `json:"pqc"`
	Harm     float64 `json:"harm"`
	Drift    float64 `json:"drift"`
	Triadic  float64 `json:"triadic"`
	Spectral float64 `json:"spectral"`
}

// array returns the factors in priority order.
func (f Factors) array() [5]float64 {
	return [5]float64{f.PQC, f.Harm, f.Drift, f.Triadic, f.Spectral}
}

// Clamp returns a copy with every factor clamped to [0,1].
func (f Factors) Clamp() Factors {
	return Factors{
		PQC:      clamp01(f.PQC),
		Harm:     clamp01(f.Harm),
		Drift:    clamp01(f.Drift),
		Triadic:  clamp01(f.Triadic),
		Spectral: clamp01(f.Spectral),
	}
}

// Omega folds the five factors into the multiplicative gate score. Any
// factor at exactly 0 annihilates the product: the gate is an AND, not a
// weighted average.
func (f Factors) Omega() float64 {
	omega := 1.0
	for _, v := range f.array() {
		omega *= clamp01(v)
	}
	return omega
}

// WeakestLock returns the minimum-valued factor. Ties break to the earlier
// lock in the fixed priority order (strict less-than keeps the first
// minimum encountered).
func (f Factors) WeakestLock() Lock {
	vals := f.array()
	weakest := LockPQC
	for l := LockHarm; l <= LockSpectral; l++ {
		if vals[l] < vals[weakest] {
			weakest = l
		}
	}
	return weakest
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
