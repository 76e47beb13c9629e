package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// NewEnemy creates a regular seeker at pos using the arena's enemy stats and
// current difficulty ramp.
func NewEnemy(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	a := w.Arena()
	if a == nil {
		return 0, fmt.Errorf("enemy: nil arena")
	}
	stats := a.Enemies
	ramp := a.EnemyRamp()

	e := ecs.CreateEntity(w)
	body := &component.Body{
		Pos:      pos,
		MaxForce: common.RandRange(a, stats.ForceMin, stats.ForceMax) * ramp,
		MaxSpeed: common.RandRange(a, stats.SpeedMin, stats.SpeedMax) * ramp,
		Drag:     common.RandRange(a, stats.DragMin, stats.DragMax),
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("enemy: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: stats.Radius}); err != nil {
		return 0, fmt.Errorf("enemy: add collider: %w", err)
	}
	hp := stats.HP
	if hp <= 0 {
		hp = 1
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: hp, Max: hp}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{NormalMaxSpeed: body.MaxSpeed}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}
	return e, nil
}

// SpawnEnemy is the fire-and-forget factory bosses use for minions.
func SpawnEnemy(w *ecs.World, pos cp.Vector) ecs.Entity {
	e, err := NewEnemy(w, pos)
	if err != nil {
		fmt.Printf("entity: spawn enemy: %v\n", err)
		return 0
	}
	return e
}

// EdgePosition picks a point just outside a random edge of the field.
func EdgePosition(a *ecs.Arena, margin float64) cp.Vector {
	if a == nil {
		return cp.Vector{}
	}
	side := int(a.Float64() * 4)
	along := a.Float64()
	switch side {
	case 0:
		return cp.Vector{X: along * a.Width, Y: -margin}
	case 1:
		return cp.Vector{X: a.Width + margin, Y: along * a.Height}
	case 2:
		return cp.Vector{X: along * a.Width, Y: a.Height + margin}
	default:
		return cp.Vector{X: -margin, Y: along * a.Height}
	}
}

// KillEnemy removes an enemy, optionally paying out its score and orb.
func KillEnemy(w *ecs.World, e ecs.Entity, payout bool) bool {
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok || !ecs.Has(w, e, component.EnemyComponent.Kind()) {
		return false
	}
	pos := body.Pos
	ecs.DestroyEntity(w, e)
	if payout {
		w.Arena().Score++
		DropOrb(w, pos)
	}
	return true
}

// Enemies returns every live regular enemy.
func Enemies(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy) {
		out = append(out, e)
	})
	return out
}
