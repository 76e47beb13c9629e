package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

const (
	OrbRadius     = 6
	OrbLifeMs     = 12000
	OrbJitter     = 8
	OrbKick       = 25
	PowerupRadius = 14
	PowerupLifeMs = 15000
)

// DropOrb leaves an xp orb near pos with a small random kick.
func DropOrb(w *ecs.World, pos cp.Vector) ecs.Entity {
	a := w.Arena()
	if a == nil {
		return 0
	}
	at := cp.Vector{
		X: pos.X + common.RandRange(a, -OrbJitter, OrbJitter),
		Y: pos.Y + common.RandRange(a, -OrbJitter, OrbJitter),
	}
	vel := cp.Vector{
		X: common.RandRange(a, -OrbKick, OrbKick),
		Y: common.RandRange(a, -OrbKick, OrbKick),
	}
	return spawnPickup(w, component.PickupXP, at, vel, OrbRadius, OrbLifeMs)
}

// DropOrbRing scatters n orbs around center at angle 2πi/n and a random
// radius in [0.5r, 1.5r).
func DropOrbRing(w *ecs.World, center cp.Vector, n int, r float64) int {
	a := w.Arena()
	if a == nil {
		return 0
	}
	for i := 0; i < n; i++ {
		ang := float64(i) / float64(n) * 2 * math.Pi
		dist := r * (0.5 + a.Float64())
		DropOrb(w, center.Add(common.Heading(ang, dist)))
	}
	return n
}

func SpawnPowerup(w *ecs.World, kind component.PickupKind, pos cp.Vector) ecs.Entity {
	return spawnPickup(w, kind, pos, cp.Vector{}, PowerupRadius, PowerupLifeMs)
}

func spawnPickup(w *ecs.World, kind component.PickupKind, pos, vel cp.Vector, radius, life float64) ecs.Entity {
	if w == nil {
		return 0
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Pos: pos, Vel: vel, Drag: 0.9})
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius})
	_ = ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: kind})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Ms: life})
	return e
}

// CountPowerups returns how many powerups are on the field.
func CountPowerups(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
		if p.Powerup() {
			n++
		}
	})
	return n
}
