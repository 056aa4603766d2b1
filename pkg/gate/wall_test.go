package gate

import (
	"math"
	"testing"
)

func TestWall_ZeroDistanceIsExactlyOne(t *testing.T) {
	w := NewWall(0.9, 100)
	if got := w.Cost(0); got != 1.0 {
		t.Errorf("H(0) = %g, want exactly 1.0", got)
	}
}

func TestWall_QuadraticExponentDecay(t *testing.T) {
	// H(d) = R^(d²): R=0.9, d=3 → 0.9^9, the literal formula, not a tower.
	w := NewWall(0.9, 1e9)

	want := math.Pow(0.9, 9)
	got := w.Cost(3)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("H(3) = %.15g, want 0.9^9 = %.15g", got, want)
	}
	if math.Abs(got-0.387420489) > 1e-9 {
		t.Errorf("H(3) = %g, want ≈ 0.387420489", got)
	}
}

func TestWall_StrictlyDecreasing(t *testing.T) {
	for _, r := range []float64{0.1, 0.5, 0.9, 0.99} {
		w := NewWall(r, 1e9)
		prev := w.Cost(0)
		for d := 0.1; d < 10; d += 0.1 {
			h := w.Cost(d)
			if h >= prev {
				t.Fatalf("R=%g: H(%g)=%g not below H(prev)=%g", r, d, h, prev)
			}
			if h <= 0 || h > 1 {
				t.Fatalf("R=%g: H(%g)=%g outside (0,1]", r, d, h)
			}
			prev = h
		}
	}
}

func TestWall_Friction(t *testing.T) {
	w := NewWall(0.9, 10)

	tests := []struct {
		name string
		cost float64
		want float64
	}{
		{name: "no cost no friction", cost: 1.0, want: 1.0},
		{name: "inverse of cost", cost: 0.5, want: 2.0},
		{name: "clamped at cap", cost: 0.001, want: 10},
		{name: "zero cost hits cap", cost: 0, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Friction(tt.cost); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Friction(%g) = %g, want %g", tt.cost, got, tt.want)
			}
		})
	}
}

func TestWall_NegativeDistanceUsesMagnitude(t *testing.T) {
	w := NewWall(0.5, 100)
	if got, want := w.Cost(-2), w.Cost(2); got != want {
		t.Errorf("H(-2) = %g, H(2) = %g, want equal", got, want)
	}
}
