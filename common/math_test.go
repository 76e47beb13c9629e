package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi_stays", math.Pi, math.Pi},
		{"over_pi", 1.5 * math.Pi, -0.5 * math.Pi},
		{"under_neg_pi", -1.5 * math.Pi, 0.5 * math.Pi},
		{"many_turns", 6.5 * math.Pi, 0.5 * math.Pi},
		{"huge", 1e300, math.Remainder(1e300, 2*math.Pi)},
		{"pos_inf", math.Inf(1), 0},
		{"neg_inf", math.Inf(-1), 0},
		{"nan", math.NaN(), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("WrapAngle(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestSafeDirFloorsDistance(t *testing.T) {
	dir, dist := SafeDir(cp.Vector{X: 10, Y: 10}, cp.Vector{X: 10, Y: 10})
	if dist != MinDistance {
		t.Fatalf("expected floored distance %v, got %v", MinDistance, dist)
	}
	if math.IsNaN(dir.X) || math.IsNaN(dir.Y) {
		t.Fatalf("direction must not be NaN, got %v", dir)
	}

	dir, dist = SafeDir(cp.Vector{}, cp.Vector{X: 3, Y: 4})
	if math.Abs(dist-5) > 1e-9 || math.Abs(dir.X-0.6) > 1e-9 || math.Abs(dir.Y-0.8) > 1e-9 {
		t.Fatalf("unexpected dir=%v dist=%v", dir, dist)
	}
}

func TestSeqRandWraps(t *testing.T) {
	r := &SeqRand{Values: []float64{0.1, 0.9}}
	got := []float64{r.Float64(), r.Float64(), r.Float64()}
	if got[0] != 0.1 || got[1] != 0.9 || got[2] != 0.1 {
		t.Fatalf("unexpected sequence %v", got)
	}
	if got := RandRange(r, 10, 20); math.Abs(got-19) > 1e-9 {
		t.Fatalf("RandRange should scale the draw into range")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 8; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}
