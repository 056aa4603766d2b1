package gate

import "testing"

func TestSpectralCoherence(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		wantLo  float64
		wantHi  float64
	}{
		{name: "empty history", history: nil, wantLo: 1, wantHi: 1},
		{name: "single sample", history: []float64{0.5}, wantLo: 1, wantHi: 1},
		{name: "two samples", history: []float64{0.1, 0.9}, wantLo: 1, wantHi: 1},
		{name: "flat line", history: []float64{0.4, 0.4, 0.4, 0.4}, wantLo: 1, wantHi: 1},
		{
			name:    "smooth ramp is coherent",
			history: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8},
			wantLo:  0.7,
			wantHi:  1,
		},
		{
			name:    "alternating signal is incoherent",
			history: []float64{0.9, 0.1, 0.9, 0.1, 0.9, 0.1, 0.9, 0.1},
			wantLo:  0,
			wantHi:  0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpectralCoherence(tt.history)
			if got < tt.wantLo || got > tt.wantHi {
				t.Errorf("SpectralCoherence = %g, want in [%g,%g]", got, tt.wantLo, tt.wantHi)
			}
			if got < 0 || got > 1 {
				t.Errorf("SpectralCoherence = %g outside [0,1]", got)
			}
		})
	}
}

func TestSpectralCoherence_Deterministic(t *testing.T) {
	history := []float64{0.2, 0.5, 0.3, 0.8, 0.1, 0.6}
	a := SpectralCoherence(history)
	b := SpectralCoherence(history)
	if a != b {
		t.Errorf("coherence not deterministic: %g vs %g", a, b)
	}
}
