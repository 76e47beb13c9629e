package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// TTLSystem runs down TTL components on the simulated clock and removes the
// entities that expire. Projectiles keep their own Life instead.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	a := w.Arena()
	if a == nil {
		return
	}

	var expired []ecs.Entity
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Ms -= a.Dt
		if ttl.Ms <= 0 {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		ecs.DestroyEntity(w, e)
	}
}
