package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// ExplosionSystem grows blasts to their max radius and removes them.
type ExplosionSystem struct{}

func NewExplosionSystem() *ExplosionSystem { return &ExplosionSystem{} }

func (s *ExplosionSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	dt := w.Arena().Dt
	ecs.ForEach(w, component.ExplosionComponent.Kind(), func(e ecs.Entity, ex *component.Explosion) {
		ex.Timer += dt
		if ex.Timer >= ex.Duration {
			ecs.DestroyEntity(w, e)
		}
	})
}
