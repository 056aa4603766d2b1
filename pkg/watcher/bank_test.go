package watcher

import (
	"math"
	"testing"
	"time"

	"mercator-hq/hyperion/pkg/geometry"
	"mercator-hq/hyperion/pkg/realm"
)

func testBankConfig() Config {
	return Config{
		MemoryDecay: 0.8,
		HistorySize: 16,
		SheafWindow: 8,
		Weights:     [3]float64{1, 1, 1},
	}
}

func testBank(rules []Rule) *Bank {
	return NewBank(geometry.NewMetric(1e-9, 1e-12), testBankConfig(), rules)
}

func TestObserve_FastSignalIsRadial(t *testing.T) {
	b := testBank(nil)
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name  string
		point geometry.Vector
		want  float64
	}{
		{name: "origin", point: geometry.Vector{0, 0}, want: 0},
		{name: "mid ball", point: geometry.Vector{0.3, 0.4}, want: 0.5},
		{name: "near boundary", point: geometry.Vector{0.9, 0}, want: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := b.Observe(&State{}, tt.point, realm.Assignment{}, nil, now)
			if math.Abs(obs.Signals.Fast-tt.want) > 1e-12 {
				t.Errorf("fast = %g, want %g", obs.Signals.Fast, tt.want)
			}
			if len(obs.Missing) != 0 {
				t.Errorf("unexpected missing signals: %v", obs.Missing)
			}
		})
	}
}

func TestObserve_MemoryDecays(t *testing.T) {
	b := testBank(nil)
	st := &State{}
	now := time.Unix(1700000000, 0)

	// first observation: suspicion starts at the fast signal
	obs := b.Observe(st, geometry.Vector{0.5, 0}, realm.Assignment{}, nil, now)
	if math.Abs(obs.Signals.Memory-0.5) > 1e-12 {
		t.Fatalf("fresh memory = %g, want 0.5", obs.Signals.Memory)
	}

	// second observation at the origin: 0.8*0.5 + 0.2*0 = 0.4
	obs = b.Observe(st, geometry.Vector{0, 0}, realm.Assignment{}, nil, now.Add(time.Second))
	if math.Abs(obs.Signals.Memory-0.4) > 1e-12 {
		t.Fatalf("decayed memory = %g, want 0.4", obs.Signals.Memory)
	}
}

func TestObserve_GovernanceRules(t *testing.T) {
	rules := []Rule{
		{Name: "norm-cap", Kind: RuleNormCeiling, Limit: 0.6, Severity: 0.5},
		{Name: "no-hostile", Kind: RuleRealmDenylist, Realms: []string{"hostile"}, Severity: 0.7},
		{Name: "tool-abuse", Kind: RuleExternal, Severity: 0.4},
	}
	b := testBank(rules)
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name       string
		point      geometry.Vector
		asn        realm.Assignment
		violations []string
		want       float64
	}{
		{
			name:  "nothing triggered",
			point: geometry.Vector{0.1, 0},
			asn:   realm.Assignment{Label: "trusted"},
			want:  0,
		},
		{
			name:  "norm ceiling only",
			point: geometry.Vector{0.7, 0},
			asn:   realm.Assignment{Label: "trusted"},
			want:  0.5,
		},
		{
			name:  "denylisted realm only",
			point: geometry.Vector{0.1, 0},
			asn:   realm.Assignment{Label: "hostile"},
			want:  0.7,
		},
		{
			name:       "external violation only",
			point:      geometry.Vector{0.1, 0},
			asn:        realm.Assignment{Label: "trusted"},
			violations: []string{"tool-abuse"},
			want:       0.4,
		},
		{
			name:       "all three clamp to 1",
			point:      geometry.Vector{0.8, 0},
			asn:        realm.Assignment{Label: "hostile"},
			violations: []string{"tool-abuse"},
			want:       1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := b.Observe(&State{}, tt.point, tt.asn, tt.violations, now)
			if math.Abs(obs.Signals.Governance-tt.want) > 1e-12 {
				t.Errorf("governance = %g, want %g", obs.Signals.Governance, tt.want)
			}
		})
	}
}

func TestObserve_TriadicQuadraticMean(t *testing.T) {
	b := testBank([]Rule{
		{Name: "pinned", Kind: RuleExternal, Severity: 0.9},
	})
	now := time.Unix(1700000000, 0)

	// fast = 0.6, memory = 0.6 (fresh), governance = 0.9
	obs := b.Observe(&State{}, geometry.Vector{0.6, 0}, realm.Assignment{}, []string{"pinned"}, now)

	want := math.Sqrt((0.6*0.6 + 0.6*0.6 + 0.9*0.9) / 3)
	if math.Abs(obs.Signals.DTri-want) > 1e-12 {
		t.Errorf("d_tri = %g, want %g", obs.Signals.DTri, want)
	}
}

func TestObserve_MissingSignalDefaultsToMaxRisk(t *testing.T) {
	// decay outside (0,1) makes the memory watcher unavailable
	cfg := testBankConfig()
	cfg.MemoryDecay = 0
	b := NewBank(geometry.NewMetric(1e-9, 1e-12), cfg, nil)

	obs := b.Observe(&State{}, geometry.Vector{0.2, 0}, realm.Assignment{}, nil, time.Now())

	if obs.Signals.Memory != 1.0 {
		t.Errorf("missing memory signal = %g, want 1.0 (maximum risk)", obs.Signals.Memory)
	}
	if len(obs.Missing) != 1 || obs.Missing[0].Watcher != "memory" {
		t.Errorf("missing = %v, want single memory entry", obs.Missing)
	}
}

func TestObserve_DriftDistance(t *testing.T) {
	b := testBank(nil)
	st := &State{}
	now := time.Unix(1700000000, 0)

	obs := b.Observe(st, geometry.Vector{0.1, 0}, realm.Assignment{}, nil, now)
	if obs.Drift != 0 {
		t.Fatalf("fresh entity drift = %g, want 0", obs.Drift)
	}

	obs = b.Observe(st, geometry.Vector{0.4, 0}, realm.Assignment{}, nil, now.Add(time.Second))
	want, err := geometry.NewMetric(1e-9, 1e-12).Distance(
		geometry.Vector{0.1, 0}, geometry.Vector{0.4, 0})
	if err != nil {
		t.Fatalf("Distance error: %v", err)
	}
	if math.Abs(obs.Drift-want) > 1e-12 {
		t.Errorf("drift = %g, want %g", obs.Drift, want)
	}
}

func TestObserve_HistoryBounded(t *testing.T) {
	cfg := testBankConfig()
	cfg.HistorySize = 4
	cfg.SheafWindow = 3
	b := NewBank(geometry.NewMetric(1e-9, 1e-12), cfg, nil)
	st := &State{}
	now := time.Unix(1700000000, 0)

	for i := 0; i < 10; i++ {
		b.Observe(st, geometry.Vector{0.1, 0}, realm.Assignment{}, nil, now.Add(time.Duration(i)*time.Second))
	}

	if len(st.History) != 4 {
		t.Errorf("history length = %d, want 4", len(st.History))
	}
	if len(st.Triples) != 3 {
		t.Errorf("triples length = %d, want 3", len(st.Triples))
	}
}

func TestObserve_FreshStateIsReproducible(t *testing.T) {
	b := testBank(nil)
	now := time.Unix(1700000000, 0)
	point := geometry.Vector{0.37, -0.21}

	obs1 := b.Observe(&State{}, point, realm.Assignment{}, nil, now)
	obs2 := b.Observe(&State{}, point, realm.Assignment{}, nil, now)

	if obs1.Signals != obs2.Signals {
		t.Errorf("fresh-state signals differ: %+v vs %+v", obs1.Signals, obs2.Signals)
	}
}
