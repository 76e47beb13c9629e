package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/physics"
)

// ProjectileSystem advances every projectile and shockwave. Hostile homing
// missiles turn toward the player while tracking. Projectiles leave their
// pool when their life runs out or they cross the padded field edge.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem { return &ProjectileSystem{} }

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()
	dt := a.Dt
	sec := dt / 1000
	player := entity.Player(w)

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, p *component.Projectile, body *component.Body) {
		if p.Faction == component.FactionHostile && p.Homing && p.Tracking && player.Alive {
			body.Vel = physics.TurnToward(body.Vel, body.Pos, player.Pos, p.TurnRate, sec)
		}
		physics.Move(body, sec)

		if p.Life > 0 {
			p.Life -= dt
			if p.Life <= 0 {
				ecs.DestroyEntity(w, e)
				return
			}
		}
		if !a.Bounds(p.CullPad).ContainsVect(body.Pos) {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach(w, component.ShockwaveComponent.Kind(), func(e ecs.Entity, sw *component.Shockwave) {
		if sw.Delay > 0 {
			sw.Delay -= dt
			return
		}
		sw.Timer += dt
		if sw.Duration <= 0 || sw.Timer >= sw.Duration {
			ecs.DestroyEntity(w, e)
			return
		}
		sw.Radius = sw.MaxRadius * sw.Timer / sw.Duration
	})
}
