package gate

import "math"

// spectralVarianceFloor is the variance below which a signal history is
// treated as a flat line, which is perfectly coherent.
const spectralVarianceFloor = 1e-12

// SpectralCoherence scores how self-consistent an entity's recent fast-signal
// history is in [0,1]. It is the independent frequency-domain style check
// behind the spectral lock: a steady or smoothly varying signal scores near
// 1, while an erratic sign-flipping signal scores near 0.
//
// The score is derived from the lag-1 autocorrelation ρ of the history,
// mapped through (1+ρ)/2. Histories shorter than three samples carry no
// frequency information and score 1 (a fresh entity is not penalized for
// having no history). The computation is deterministic.
func SpectralCoherence(history []float64) float64 {
	n := len(history)
	if n < 3 {
		return 1
	}

	var mean float64
	for _, v := range history {
		mean += v
	}
	mean /= float64(n)

	var variance, covariance float64
	for i, v := range history {
		d := v - mean
		variance += d * d
		if i+1 < n {
			covariance += d * (history[i+1] - mean)
		}
	}

	if variance < spectralVarianceFloor {
		// flat line
		return 1
	}

	rho := covariance / variance
	if math.IsNaN(rho) {
		return 0
	}
	return clamp01((1 + rho) / 2)
}
