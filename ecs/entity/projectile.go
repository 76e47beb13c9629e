package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// HazardSpec describes one hostile projectile.
type HazardSpec struct {
	Owner    ecs.Entity
	Pos      cp.Vector
	Vel      cp.Vector
	Radius   float64
	CullPad  float64
	Life     float64
	Homing   bool
	TurnRate float64
	Split    int
	Sniper   bool
	Linger   bool
}

// SpawnHazard appends a hostile projectile to its owner's pool. A zero Life
// is treated as immortal.
func SpawnHazard(w *ecs.World, spec HazardSpec) ecs.Entity {
	if w == nil {
		return 0
	}
	life := spec.Life
	if life == 0 {
		life = component.Immortal
	}
	return spawnProjectile(w, spec.Pos, spec.Vel, spec.Radius, &component.Projectile{
		Owner:      spec.Owner.Tag(),
		Faction:    component.FactionHostile,
		Damage:     1,
		Life:       life,
		Homing:     spec.Homing,
		Tracking:   spec.Homing,
		TurnRate:   spec.TurnRate,
		SplitCount: spec.Split,
		CullPad:    spec.CullPad,
		Sniper:     spec.Sniper,
		Linger:     spec.Linger,
	})
}

// ShotSpec describes one player bullet or missile.
type ShotSpec struct {
	Pos     cp.Vector
	Vel     cp.Vector
	Radius  float64
	CullPad float64
	Damage  int
	Missile bool
}

func SpawnPlayerShot(w *ecs.World, spec ShotSpec) ecs.Entity {
	if w == nil {
		return 0
	}
	dmg := spec.Damage
	if dmg <= 0 {
		dmg = 1
	}
	return spawnProjectile(w, spec.Pos, spec.Vel, spec.Radius, &component.Projectile{
		Faction: component.FactionPlayer,
		Damage:  dmg,
		Missile: spec.Missile,
		Life:    component.Immortal,
		CullPad: spec.CullPad,
	})
}

func spawnProjectile(w *ecs.World, pos, vel cp.Vector, radius float64, p *component.Projectile) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Pos: pos, Vel: vel, Drag: 1})
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius})
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), p)
	return e
}

// SpawnShockwave adds an expanding ring hazard at pos owned by owner.
func SpawnShockwave(w *ecs.World, owner ecs.Entity, pos cp.Vector, maxRadius, duration, delay float64) ecs.Entity {
	if w == nil {
		return 0
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Pos: pos, Drag: 1})
	_ = ecs.Add(w, e, component.ShockwaveComponent.Kind(), &component.Shockwave{
		Owner:     owner.Tag(),
		MaxRadius: maxRadius,
		Duration:  duration,
		Delay:     delay,
	})
	return e
}

// CountOwned returns the size of owner's projectile and shockwave pools.
func CountOwned(w *ecs.World, owner ecs.Entity) int {
	n := 0
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(_ ecs.Entity, p *component.Projectile) {
		if p.Faction == component.FactionHostile && owner.Owns(p.Owner) {
			n++
		}
	})
	ecs.ForEach(w, component.ShockwaveComponent.Kind(), func(_ ecs.Entity, s *component.Shockwave) {
		if owner.Owns(s.Owner) {
			n++
		}
	})
	return n
}

// Owned returns owner's live hostile projectiles.
func Owned(w *ecs.World, owner ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		if p.Faction == component.FactionHostile && owner.Owns(p.Owner) {
			out = append(out, e)
		}
	})
	return out
}

// ClearOwned empties owner's pools.
func ClearOwned(w *ecs.World, owner ecs.Entity) int {
	n := 0
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		if p.Faction == component.FactionHostile && owner.Owns(p.Owner) && ecs.DestroyEntity(w, e) {
			n++
		}
	})
	ecs.ForEach(w, component.ShockwaveComponent.Kind(), func(e ecs.Entity, s *component.Shockwave) {
		if owner.Owns(s.Owner) && ecs.DestroyEntity(w, e) {
			n++
		}
	})
	return n
}

// Ring returns count evenly spaced angles starting at start.
func Ring(count int, start float64) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = start + float64(i)/float64(count)*2*math.Pi
	}
	return out
}

// Spread returns count angles centered on base, step apart.
func Spread(base, step float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, count)
	mid := float64(count-1) / 2
	for i := range out {
		out[i] = base + (float64(i)-mid)*step
	}
	return out
}
