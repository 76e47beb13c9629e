package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs/component"
)

func TestIntegrateSpeedClamp(t *testing.T) {
	r := common.NewRand(7)
	for i := 0; i < 200; i++ {
		b := &component.Body{
			Vel:      cp.Vector{X: common.RandRange(r, -5000, 5000), Y: common.RandRange(r, -5000, 5000)},
			Drag:     common.RandRange(r, 0.9, 1),
			MaxSpeed: common.RandRange(r, 50, 800),
		}
		Integrate(b, common.RandRange(r, 1, 50))
		if got := b.Vel.Length(); got > b.MaxSpeed+1e-9 {
			t.Fatalf("speed %v exceeds max %v", got, b.MaxSpeed)
		}
	}
}

func TestIntegrateDragNeverAmplifies(t *testing.T) {
	cases := []struct {
		name string
		drag float64
	}{
		{"typical", 0.98},
		{"no_drag", 1},
		{"above_one_is_clamped", 1.5},
		{"negative_is_clamped", -0.2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &component.Body{Vel: cp.Vector{X: 100, Y: -60}, Drag: c.drag}
			before := b.Vel.Length()
			Integrate(b, 16)
			if after := b.Vel.Length(); after > before+1e-9 {
				t.Fatalf("drag %v amplified speed %v -> %v", c.drag, before, after)
			}
		})
	}
}

func TestIntegrateMovesThenDecays(t *testing.T) {
	b := &component.Body{Pos: cp.Vector{X: 10, Y: 10}, Vel: cp.Vector{X: 100}, Drag: 0.5}
	Integrate(b, 1000)
	if math.Abs(b.Pos.X-110) > 1e-9 {
		t.Fatalf("expected position to use pre-drag velocity, got %v", b.Pos.X)
	}
	want := 100 * math.Pow(0.5, 60)
	if want < Deadband {
		want = 0
	}
	if math.Abs(b.Vel.X-want) > 1e-9 {
		t.Fatalf("expected vel %v, got %v", want, b.Vel.X)
	}
}

func TestIntegrateDeadband(t *testing.T) {
	b := &component.Body{Vel: cp.Vector{X: 0.4, Y: -0.45}, Drag: 1}
	Integrate(b, 16)
	if b.Vel.X != 0 || b.Vel.Y != 0 {
		t.Fatalf("expected creep to be zeroed, got %v", b.Vel)
	}
}

func TestClampToBounds(t *testing.T) {
	cases := []struct {
		name    string
		pos     cp.Vector
		vel     cp.Vector
		wantPos cp.Vector
		wantVel cp.Vector
	}{
		{"inside", cp.Vector{X: 50, Y: 50}, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 50, Y: 50}, cp.Vector{X: 10, Y: 10}},
		{"left", cp.Vector{X: -5, Y: 50}, cp.Vector{X: -100, Y: 0}, cp.Vector{X: 10, Y: 50}, cp.Vector{X: 30, Y: 0}},
		{"bottom_right", cp.Vector{X: 300, Y: 400}, cp.Vector{X: 50, Y: 20}, cp.Vector{X: 190, Y: 90}, cp.Vector{X: -15, Y: -6}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &component.Body{Pos: c.pos, Vel: c.vel}
			ClampToBounds(b, 10, 10, 200, 100)
			if b.Pos.Distance(c.wantPos) > 1e-9 || b.Vel.Distance(c.wantVel) > 1e-9 {
				t.Fatalf("got pos=%v vel=%v, want pos=%v vel=%v", b.Pos, b.Vel, c.wantPos, c.wantVel)
			}
		})
	}
}

func TestBounceRestitution(t *testing.T) {
	pos := cp.Vector{X: -3, Y: 50}
	vel := cp.Vector{X: -900, Y: 10}
	if !Bounce(&pos, &vel, 20, 960, 720, 0.6) {
		t.Fatalf("expected a wall hit")
	}
	if pos.X != 20 || math.Abs(vel.X-540) > 1e-9 || vel.Y != 10 {
		t.Fatalf("unexpected bounce pos=%v vel=%v", pos, vel)
	}
}

func TestNilBodyIsNoop(t *testing.T) {
	ApplyThrust(nil, cp.Vector{X: 1}, 16)
	Integrate(nil, 16)
	ClampToBounds(nil, 1, 1, 10, 10)
	SteerArrive(nil, cp.Vector{}, 16)
	Brake(nil, 0.5, 1, 0.016)
}
