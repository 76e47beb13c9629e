package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/physics"
)

// PlayerSystem turns PlayerInput.Thrust into movement and runs down
// invulnerability frames.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem { return &PlayerSystem{} }

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.BodyComponent.Kind(), component.PlayerInputComponent.Kind(), func(e ecs.Entity, p *component.Player, body *component.Body, in *component.PlayerInput) {
		if !p.Alive {
			body.Vel = cp.Vector{}
			return
		}
		if p.IFrames > 0 {
			p.IFrames -= a.Dt
			if p.IFrames < 0 {
				p.IFrames = 0
			}
		}

		thrust := in.Thrust
		if thrust.LengthSq() > 1 {
			thrust = thrust.Normalize()
		}
		physics.ApplyThrust(body, thrust.Mult(p.Accel), a.Dt)
		physics.Integrate(body, a.Dt)

		r := 0.0
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			r = col.Radius
		}
		physics.ClampToBounds(body, r, r, a.Width, a.Height)
	})
}
