package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
)

func TestSteerArrive(t *testing.T) {
	cases := []struct {
		name    string
		pos     cp.Vector
		vel     cp.Vector
		target  cp.Vector
		wantVel cp.Vector
	}{
		{
			name:    "within_one_unit_is_noop",
			pos:     cp.Vector{X: 100, Y: 100},
			vel:     cp.Vector{X: 3, Y: 4},
			target:  cp.Vector{X: 100.5, Y: 100},
			wantVel: cp.Vector{X: 3, Y: 4},
		},
		{
			name:   "force_clamped",
			pos:    cp.Vector{},
			target: cp.Vector{X: 500},
			// desired 200, clamped to force 100, over 1s
			wantVel: cp.Vector{X: 100},
		},
		{
			name:    "already_at_desired",
			pos:     cp.Vector{},
			vel:     cp.Vector{Y: 200},
			target:  cp.Vector{Y: 500},
			wantVel: cp.Vector{Y: 200},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &component.Body{Pos: c.pos, Vel: c.vel, MaxSpeed: 200, MaxForce: 100}
			SteerArrive(b, c.target, 1000)
			if b.Vel.Distance(c.wantVel) > 1e-9 {
				t.Fatalf("got vel %v, want %v", b.Vel, c.wantVel)
			}
		})
	}
}

func TestSteerFleePointsAway(t *testing.T) {
	b := &component.Body{Pos: cp.Vector{X: 10}, MaxSpeed: 300, MaxForce: 1000}
	SteerFlee(b, cp.Vector{}, 100)
	if b.Vel.X <= 0 || math.Abs(b.Vel.Y) > 1e-9 {
		t.Fatalf("expected thrust along +x, got %v", b.Vel)
	}
}
