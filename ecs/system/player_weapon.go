package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/physics"
	"github.com/milk9111/bossrush/prefabs"
)

var DefaultPlayerWeapon = prefabs.PlayerWeaponSpec{
	FireMs:          1000,
	BulletSpeed:     350,
	BulletRadius:    2,
	BulletPad:       50,
	BulletOffset:    15,
	BulletInherit:   0.3,
	TrishotDeg:      15,
	MinigunFireMs:   120,
	MinigunJitter:   24,
	MinigunRecoil:   4000,
	MissileFireMs:   2000,
	MissileSpeed:    180,
	MissileRadius:   8,
	MissilePad:      50,
	MissileOffset:   15,
	MissileInherit:  0.2,
	MissileDamage:   5,
	MissileBlastRad: entity.ExplosionMaxRadius,
}

// PlayerWeaponSystem auto-fires toward PlayerInput.Aim while Fire is held.
// Active fire modes stack: trishot fans, minigun speeds up and jitters,
// missile swaps bullets for explosive rounds.
type PlayerWeaponSystem struct {
	cfg prefabs.PlayerWeaponSpec
}

func NewPlayerWeaponSystem(cfg prefabs.PlayerWeaponSpec) *PlayerWeaponSystem {
	if cfg.FireMs <= 0 {
		cfg = DefaultPlayerWeapon
	}
	return &PlayerWeaponSystem{cfg: cfg}
}

func (s *PlayerWeaponSystem) Config() prefabs.PlayerWeaponSpec {
	return s.cfg
}

func (s *PlayerWeaponSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.PlayerWeaponComponent.Kind(), component.PlayerInputComponent.Kind(), func(e ecs.Entity, p *component.Player, wpn *component.PlayerWeapon, in *component.PlayerInput) {
		if !p.Alive {
			return
		}
		body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
		if !ok {
			return
		}

		if wpn.FireTimer > 0 {
			wpn.FireTimer -= a.Dt
		}
		if !in.Fire || wpn.FireTimer > 0 {
			return
		}
		wpn.FireTimer = s.Interval(wpn)

		d := in.Aim.Sub(body.Pos)
		if d.Length() < common.MinDistance {
			return
		}
		base := math.Atan2(d.Y, d.X)

		offsets := []float64{0}
		switch {
		case wpn.Trishot > 0:
			step := deg(s.cfg.TrishotDeg)
			offsets = []float64{0, step, -step}
		case wpn.Minigun > 0:
			offsets = []float64{(a.Float64() - 0.5) * deg(s.cfg.MinigunJitter)}
		}
		for _, off := range offsets {
			s.shoot(w, body, wpn, base+off, wpn.Missile > 0)
		}

		if wpn.Minigun > 0 && s.cfg.MinigunRecoil > 0 {
			physics.ApplyThrust(body, cp.ForAngle(base).Mult(-s.cfg.MinigunRecoil), a.Dt)
		}
	})
}

// Fire intervals never drop below these, however many rapid fire upgrades
// stack up.
const (
	FireFloorMs    = 200
	MinigunFloorMs = 60
	MissileFloorMs = 400
)

// Interval is the ms until the next shot in the weapon's current fire mode.
func (s *PlayerWeaponSystem) Interval(wpn *component.PlayerWeapon) float64 {
	scale := 1 - wpn.FireRateBonus
	switch {
	case wpn.Minigun > 0:
		return math.Max(MinigunFloorMs, s.cfg.MinigunFireMs*scale)
	case wpn.Missile > 0:
		return math.Max(MissileFloorMs, s.cfg.MissileFireMs*scale)
	default:
		return math.Max(FireFloorMs, s.cfg.FireMs*scale)
	}
}

func (s *PlayerWeaponSystem) shoot(w *ecs.World, body *component.Body, wpn *component.PlayerWeapon, angle float64, missile bool) {
	dir := cp.ForAngle(angle)
	if missile {
		entity.SpawnPlayerShot(w, entity.ShotSpec{
			Pos:     body.Pos.Add(dir.Mult(s.cfg.MissileOffset)),
			Vel:     dir.Mult(s.cfg.MissileSpeed).Add(body.Vel.Mult(s.cfg.MissileInherit)),
			Radius:  s.cfg.MissileRadius,
			CullPad: s.cfg.MissilePad,
			Damage:  s.cfg.MissileDamage,
			Missile: true,
		})
		return
	}
	entity.SpawnPlayerShot(w, entity.ShotSpec{
		Pos:     body.Pos.Add(dir.Mult(s.cfg.BulletOffset)),
		Vel:     dir.Mult(s.cfg.BulletSpeed * (1 + wpn.BulletSpeedBonus)).Add(body.Vel.Mult(s.cfg.BulletInherit)),
		Radius:  s.cfg.BulletRadius + wpn.BulletSizeBonus,
		CullPad: s.cfg.BulletPad,
	})
}
