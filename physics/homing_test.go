package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
)

func TestTurnTowardBoundedAndSpeedPreserving(t *testing.T) {
	vel := cp.Vector{X: 190}
	got := TurnToward(vel, cp.Vector{}, cp.Vector{Y: 100}, 1.8, 0.1)
	if math.Abs(got.Length()-190) > 1e-9 {
		t.Fatalf("speed changed: %v", got.Length())
	}
	if ang := math.Atan2(got.Y, got.X); math.Abs(ang-0.18) > 1e-9 {
		t.Fatalf("expected a 0.18 rad turn, got %v", ang)
	}
}

func TestHomingReorientsWithinPiOverRate(t *testing.T) {
	cases := []struct {
		name string
		rate float64
		dt   float64
	}{
		{"duelist_rate", 1.8, 1000.0 / 60},
		{"queen_rate", 1.6, 1000.0 / 60},
		{"coarse_dt", 2.5, 33},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := cp.Vector{}
			vel := cp.Vector{X: 190}
			// Far away so the missile's own displacement barely moves the bearing.
			target := cp.Vector{X: -1e7}
			limit := math.Pi / c.rate * 1000

			elapsed := 0.0
			for elapsed <= limit+2*c.dt {
				sec := c.dt / 1000
				vel = TurnToward(vel, pos, target, c.rate, sec)
				pos = pos.Add(vel.Mult(sec))
				elapsed += c.dt

				bearing := math.Atan2(target.Y-pos.Y, target.X-pos.X)
				if math.Abs(common.WrapAngle(bearing-math.Atan2(vel.Y, vel.X))) < 1e-3 {
					break
				}
			}
			if elapsed < limit-c.dt || elapsed > limit+c.dt {
				t.Fatalf("reoriented after %vms, want %vms ±%v", elapsed, limit, c.dt)
			}
		})
	}
}

func TestLead(t *testing.T) {
	got := Lead(cp.Vector{}, cp.Vector{X: 300}, cp.Vector{Y: 100}, 150)
	if got.Distance(cp.Vector{X: 300, Y: 200}) > 1e-9 {
		t.Fatalf("unexpected lead point %v", got)
	}
	if got := Lead(cp.Vector{}, cp.Vector{X: 5}, cp.Vector{Y: 1}, 0); got.X != 5 || got.Y != 0 {
		t.Fatalf("zero speed should aim at the current position, got %v", got)
	}
}
