// Package physics is the kinematic layer shared by the player, enemies and
// bosses: thrust, drag, speed clamp, soft field bounds and steering.
// All dt parameters are milliseconds.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
)

const (
	// DragBaseline is the frame rate drag factors are calibrated against.
	DragBaseline = 60
	// Deadband zeroes velocity components slower than this (units/s).
	Deadband = 0.5
	// WallDamping is applied to a velocity component reflected by ClampToBounds.
	WallDamping = 0.3
)

// ApplyThrust adds a*dt to the body velocity. Bounding a is the caller's job.
func ApplyThrust(b *component.Body, a cp.Vector, dt float64) {
	if b == nil {
		return
	}
	b.Vel = b.Vel.Add(a.Mult(dt / 1000))
}

// Integrate moves the body along its velocity, then decays the velocity with
// frame-rate independent drag, snaps tiny components to zero and clamps speed.
func Integrate(b *component.Body, dt float64) {
	if b == nil {
		return
	}
	sec := dt / 1000
	b.Pos = b.Pos.Add(b.Vel.Mult(sec))

	drag := clampDrag(b.Drag)
	b.Vel = b.Vel.Mult(math.Pow(drag, sec*DragBaseline))
	b.Vel = deadband(b.Vel, Deadband)

	if b.MaxSpeed > 0 && b.Vel.LengthSq() > b.MaxSpeed*b.MaxSpeed {
		b.Vel = b.Vel.Mult(b.MaxSpeed / b.Vel.Length())
	}
}

// ClampToBounds keeps the body inside [halfW, w-halfW] x [halfH, h-halfH].
// A clamped axis has its velocity inverted and damped.
func ClampToBounds(b *component.Body, halfW, halfH, w, h float64) {
	if b == nil {
		return
	}
	if b.Pos.X < halfW {
		b.Pos.X = halfW
		b.Vel.X *= -WallDamping
	} else if b.Pos.X > w-halfW {
		b.Pos.X = w - halfW
		b.Vel.X *= -WallDamping
	}
	if b.Pos.Y < halfH {
		b.Pos.Y = halfH
		b.Vel.Y *= -WallDamping
	} else if b.Pos.Y > h-halfH {
		b.Pos.Y = h - halfH
		b.Vel.Y *= -WallDamping
	}
}

// Brake decays velocity by factor per 60Hz frame and zeroes components slower
// than dead. It does not move the body.
func Brake(b *component.Body, factor, dead, sec float64) {
	if b == nil {
		return
	}
	b.Vel = deadband(b.Vel.Mult(math.Pow(factor, sec*DragBaseline)), dead)
}

// Move advances the body by its velocity without drag.
func Move(b *component.Body, sec float64) {
	if b == nil {
		return
	}
	b.Pos = b.Pos.Add(b.Vel.Mult(sec))
}

// Bounce keeps pos inside the field inset by r. A velocity component hitting
// a wall is pointed back inward and scaled by restitution.
func Bounce(pos, vel *cp.Vector, r, w, h, restitution float64) bool {
	if pos == nil || vel == nil {
		return false
	}
	hit := false
	if pos.X < r {
		pos.X = r
		vel.X = math.Abs(vel.X) * restitution
		hit = true
	} else if pos.X > w-r {
		pos.X = w - r
		vel.X = -math.Abs(vel.X) * restitution
		hit = true
	}
	if pos.Y < r {
		pos.Y = r
		vel.Y = math.Abs(vel.Y) * restitution
		hit = true
	} else if pos.Y > h-r {
		pos.Y = h - r
		vel.Y = -math.Abs(vel.Y) * restitution
		hit = true
	}
	return hit
}

// ClampPos keeps pos inside the field inset by r without touching velocity.
func ClampPos(pos *cp.Vector, r, w, h float64) {
	if pos == nil {
		return
	}
	pos.X = math.Min(math.Max(pos.X, r), w-r)
	pos.Y = math.Min(math.Max(pos.Y, r), h-r)
}

func deadband(v cp.Vector, dead float64) cp.Vector {
	if math.Abs(v.X) < dead {
		v.X = 0
	}
	if math.Abs(v.Y) < dead {
		v.Y = 0
	}
	return v
}

// clampDrag keeps drag in [0, 1] so it can only ever pull toward zero.
func clampDrag(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}
