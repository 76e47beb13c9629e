package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs/component"
)

// SteerArrive thrusts toward target: desired velocity is MaxSpeed along the
// direction to target, and the correction is clamped to MaxForce. Within one
// unit of target it does nothing.
func SteerArrive(b *component.Body, target cp.Vector, dt float64) {
	if b == nil {
		return
	}
	d := target.Sub(b.Pos)
	dist := d.Length()
	if dist < common.MinDistance {
		return
	}
	steer(b, d.Mult(1/dist), dt)
}

// SteerFlee is the mirror of SteerArrive: full speed directly away from from.
func SteerFlee(b *component.Body, from cp.Vector, dt float64) {
	if b == nil {
		return
	}
	d := b.Pos.Sub(from)
	dist := d.Length()
	if dist < common.MinDistance {
		return
	}
	steer(b, d.Mult(1/dist), dt)
}

func steer(b *component.Body, dir cp.Vector, dt float64) {
	desired := dir.Mult(b.MaxSpeed)
	force := desired.Sub(b.Vel)
	if b.MaxForce >= 0 && force.LengthSq() > b.MaxForce*b.MaxForce {
		force = force.Mult(b.MaxForce / force.Length())
	}
	ApplyThrust(b, force, dt)
}
