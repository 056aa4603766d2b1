package watcher

// Blend converts the risk-oriented triadic distance into the safety-oriented
// triadic stability factor consumed by the Omega gate.
//
// This is the ONLY place where the sign convention flips. Watchers and d_tri
// are risk-oriented (higher = worse); everything returned here is
// safety-oriented (higher = better). Inverting again anywhere downstream
// reintroduces the double-inversion bug this type exists to prevent.
type Blend struct {
	// FromRings is the direct inversion of the triadic distance.
	FromRings float64 `json:"from_rings"`

	// FromSheaf is the cross-watcher consistency over the recent window.
	FromSheaf float64 `json:"from_sheaf"`

	// Stable is the product FromSheaf·FromRings, bounded in [0,1].
	Stable float64 `json:"stable"`
}

// BlendSignals computes the triadic stability from an observation.
//
// FromRings = clamp01(1 - d_tri). FromSheaf measures how much the three
// watchers agree with each other over the recent triple window: for each
// triple the spread is max-min of the three signals; the sheaf score is one
// minus the mean spread. Watchers in perfect agreement give 1; maximally
// disagreeing watchers give 0.
func BlendSignals(obs Observation) Blend {
	rings := clamp01(1 - obs.Signals.DTri)

	sheaf := 1.0
	if len(obs.Triples) > 0 {
		var total float64
		for _, tr := range obs.Triples {
			total += spread(tr)
		}
		sheaf = clamp01(1 - total/float64(len(obs.Triples)))
	}

	return Blend{
		FromRings: rings,
		FromSheaf: sheaf,
		Stable:    clamp01(sheaf * rings),
	}
}

// spread is max-min over the three watcher signals of a triple.
func spread(s Signals) float64 {
	lo, hi := s.Fast, s.Fast
	for _, v := range []float64{s.Memory, s.Governance} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}
