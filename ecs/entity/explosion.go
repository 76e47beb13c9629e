package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

const (
	ExplosionMaxRadius = 70
	ExplosionMs        = 400
)

// TriggerExplosion starts the visual blast at pos. Damage, where there is
// any, is applied by the caller.
func TriggerExplosion(w *ecs.World, pos cp.Vector) ecs.Entity {
	if w == nil {
		return 0
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Pos: pos, Drag: 1})
	_ = ecs.Add(w, e, component.ExplosionComponent.Kind(), &component.Explosion{
		Duration:  ExplosionMs,
		MaxRadius: ExplosionMaxRadius,
	})
	w.Events().Push(ecs.Event{Type: ecs.EventExplosion, Data: pos})
	return e
}

// BlastEnemies kills every regular enemy within radius of pos, paying out
// score and orbs. It returns the number killed.
func BlastEnemies(w *ecs.World, pos cp.Vector, radius float64) int {
	killed := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, b *component.Body) {
		if b.Pos.DistanceSq(pos) <= radius*radius && KillEnemy(w, e, true) {
			killed++
		}
	})
	return killed
}
