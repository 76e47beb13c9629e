package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/physics"
	"github.com/milk9111/bossrush/prefabs"
)

var DefaultPowerups = prefabs.PowerupSpec{
	FirstMs:    5000,
	IntervalMs: 1000,
	JitterMs:   5000,
	Margin:     60,
	Max:        3,
	FreezeMs:   4000,
	TrishotMs:  6000,
	MinigunMs:  5000,
	MissileMs:  8000,
}

// PowerupSystem counts down freeze and the timed fire modes, lets pickups
// drift to a stop and drops a random powerup every so often.
type PowerupSystem struct {
	cfg   prefabs.PowerupSpec
	timer float64
}

func NewPowerupSystem(cfg prefabs.PowerupSpec) *PowerupSystem {
	if cfg.Max <= 0 && cfg.IntervalMs <= 0 {
		cfg = DefaultPowerups
	}
	return &PowerupSystem{cfg: cfg, timer: cfg.FirstMs}
}

func (s *PowerupSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()
	dt := a.Dt

	if a.FreezeMs > 0 {
		a.FreezeMs -= dt
		if a.FreezeMs < 0 {
			a.FreezeMs = 0
		}
	}
	ecs.ForEach(w, component.PlayerWeaponComponent.Kind(), func(_ ecs.Entity, wpn *component.PlayerWeapon) {
		wpn.Trishot = countdown(wpn.Trishot, dt)
		wpn.Minigun = countdown(wpn.Minigun, dt)
		wpn.Missile = countdown(wpn.Missile, dt)
	})

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, _ *component.Pickup, body *component.Body) {
		physics.Integrate(body, dt)
	})

	if s.cfg.IntervalMs <= 0 {
		return
	}
	s.timer -= dt
	if s.timer > 0 {
		return
	}
	s.timer = s.cfg.IntervalMs + a.Float64()*s.cfg.JitterMs
	if entity.CountPowerups(w) >= s.cfg.Max {
		return
	}
	m := s.cfg.Margin
	pos := cp.Vector{
		X: common.RandRange(a, m, a.Width-m),
		Y: common.RandRange(a, m, a.Height-m),
	}
	kinds := component.PowerupKinds
	idx := int(a.Float64() * float64(len(kinds)))
	if idx >= len(kinds) {
		idx = len(kinds) - 1
	}
	entity.SpawnPowerup(w, kinds[idx], pos)
}

func countdown(ms, dt float64) float64 {
	if ms <= 0 {
		return 0
	}
	ms -= dt
	if ms < 0 {
		return 0
	}
	return ms
}

// Apply grants the effect of a collected pickup to the player.
func (s *PowerupSystem) Apply(w *ecs.World, kind component.PickupKind) {
	a := w.Arena()
	if a == nil {
		return
	}
	cfg := s.config()
	e := a.Player
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	wpn, _ := ecs.Get(w, e, component.PlayerWeaponComponent.Kind())

	switch kind {
	case component.PickupXP:
		a.XP++
	case component.PickupHealth:
		if p != nil && p.HP < p.MaxHP {
			p.HP++
		}
	case component.PickupTrishot:
		if wpn != nil {
			wpn.Trishot = cfg.TrishotMs
		}
	case component.PickupMinigun:
		if wpn != nil {
			wpn.Minigun = cfg.MinigunMs
		}
	case component.PickupMissile:
		if wpn != nil {
			wpn.Missile = cfg.MissileMs
		}
	case component.PickupFreeze:
		a.FreezeMs = cfg.FreezeMs
	case component.PickupNuke:
		for _, enemy := range entity.Enemies(w) {
			if ecs.DestroyEntity(w, enemy) {
				a.Score++
			}
		}
	case component.PickupShield:
		if p != nil {
			p.Shield = 1
		}
	}
	w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: kind})
}

func (s *PowerupSystem) config() prefabs.PowerupSpec {
	if s == nil {
		return DefaultPowerups
	}
	return s.cfg
}
