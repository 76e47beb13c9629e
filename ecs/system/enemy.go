package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/physics"
)

// EnemySystem steers regular enemies at the player. Frozen enemies hold
// still; the berserk countdown keeps running regardless.
type EnemySystem struct{}

func NewEnemySystem() *EnemySystem { return &EnemySystem{} }

func (s *EnemySystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()
	player := entity.Player(w)
	frozen := a.Frozen()

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, body *component.Body) {
		if enemy.BerserkMs > 0 {
			enemy.BerserkMs -= a.Dt
			if enemy.BerserkMs <= 0 {
				enemy.BerserkMs = 0
				body.MaxSpeed = enemy.NormalMaxSpeed
			}
		}
		if frozen {
			return
		}

		physics.SteerArrive(body, player.Pos, a.Dt)
		physics.Integrate(body, a.Dt)
		r := a.Enemies.Radius
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			r = col.Radius
		}
		physics.ClampToBounds(body, r, r, a.Width, a.Height)
	})
}
