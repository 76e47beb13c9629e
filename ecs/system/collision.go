package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/prefabs"
)

const (
	// ShockwaveBand is added to the player radius when testing a ring edge.
	ShockwaveBand = 10

	HitIFramesMs    = 1000
	ShieldIFramesMs = 500

	// SplitScatter is how far split minions land from the impact point.
	SplitScatter = 12
)

// CollisionSystem resolves every overlap once per tick: player fire against
// enemies and bosses, then hostiles against the player, then pickups.
type CollisionSystem struct {
	bosses      *BossSystem
	powerups    *PowerupSystem
	blastRadius float64
}

func NewCollisionSystem(bosses *BossSystem, powerups *PowerupSystem, weapon prefabs.PlayerWeaponSpec) *CollisionSystem {
	blast := weapon.MissileBlastRad
	if blast <= 0 {
		blast = entity.ExplosionMaxRadius
	}
	return &CollisionSystem{bosses: bosses, powerups: powerups, blastRadius: blast}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	s.shotsVsEnemies(w)
	s.shotsVsBosses(w)
	s.hostilesVsPlayer(w)
	s.collectPickups(w)
}

type playerShot struct {
	e   ecs.Entity
	p   *component.Projectile
	pos cp.Vector
	r   float64
}

func playerShots(w *ecs.World) []playerShot {
	var out []playerShot
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, p *component.Projectile, body *component.Body) {
		if p.Faction != component.FactionPlayer {
			return
		}
		out = append(out, playerShot{e: e, p: p, pos: body.Pos, r: radiusOf(w, e)})
	})
	return out
}

func radiusOf(w *ecs.World, e ecs.Entity) float64 {
	if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		return col.Radius
	}
	return 0
}

func overlaps(a cp.Vector, ra float64, b cp.Vector, rb float64) bool {
	r := ra + rb
	return a.DistanceSq(b) <= r*r
}

// explode blasts every regular enemy near pos.
func (s *CollisionSystem) explode(w *ecs.World, pos cp.Vector) {
	entity.TriggerExplosion(w, pos)
	entity.BlastEnemies(w, pos, s.blastRadius)
}

func (s *CollisionSystem) shotsVsEnemies(w *ecs.World) {
	enemies := entity.Enemies(w)
	if len(enemies) == 0 {
		return
	}
	for _, shot := range playerShots(w) {
		for _, e := range enemies {
			if !ecs.IsAlive(w, e) {
				continue
			}
			body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
			if !ok || !overlaps(shot.pos, shot.r, body.Pos, radiusOf(w, e)) {
				continue
			}
			ecs.DestroyEntity(w, shot.e)
			if shot.p.Missile {
				s.explode(w, shot.pos)
				break
			}
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				hp.Current--
				if hp.Current > 0 {
					break
				}
			}
			entity.KillEnemy(w, e, true)
			break
		}
	}
}

func (s *CollisionSystem) shotsVsBosses(w *ecs.World) {
	for _, e := range s.bosses.Active(w) {
		boss, ok := ecs.Get(w, e, component.BossComponent.Kind())
		if !ok || !boss.Vulnerable() {
			continue
		}
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
		if body == nil || hp == nil {
			continue
		}
		r := radiusOf(w, e)
		for _, shot := range playerShots(w) {
			if !overlaps(shot.pos, shot.r, body.Pos, r) {
				continue
			}
			ecs.DestroyEntity(w, shot.e)
			if shot.p.Missile {
				s.explode(w, shot.pos)
			}
			hp.Current -= shot.p.Damage
			if hp.Current <= 0 {
				s.bosses.Defeat(w, e)
				break
			}
		}
	}
}

func (s *CollisionSystem) hostilesVsPlayer(w *ecs.World) {
	a := w.Arena()
	pe := a.Player
	p, ok := ecs.Get(w, pe, component.PlayerComponent.Kind())
	if !ok || !p.Alive || p.IFrames > 0 {
		return
	}
	view := entity.Player(w)
	pr := view.Radius

	for _, e := range s.bosses.Active(w) {
		boss, _ := ecs.Get(w, e, component.BossComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if boss == nil || body == nil || boss.Warning > 0 || !contactHurts(boss) {
			continue
		}
		if overlaps(view.Pos, pr, body.Pos, radiusOf(w, e)) {
			s.damagePlayer(w, p)
			return
		}
	}

	hit, split := false, false
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, proj *component.Projectile, body *component.Body) {
		if hit || split || proj.Faction != component.FactionHostile {
			return
		}
		if !overlaps(view.Pos, pr, body.Pos, radiusOf(w, e)) {
			return
		}
		pos := body.Pos
		ecs.DestroyEntity(w, e)
		if proj.SplitCount > 0 {
			for _, ang := range entity.Ring(proj.SplitCount, a.Float64()*math.Pi) {
				entity.SpawnEnemy(w, pos.Add(common.Heading(ang, SplitScatter)))
			}
			split = true
			return
		}
		hit = true
	})
	if hit {
		s.damagePlayer(w, p)
		return
	}
	// Fresh split minions sit on the player; they get their turn next tick.
	if split {
		return
	}

	ecs.ForEach2(w, component.ShockwaveComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, sw *component.Shockwave, body *component.Body) {
		if hit || !sw.Active() || sw.HasHit {
			return
		}
		d := view.Pos.Distance(body.Pos)
		if math.Abs(d-sw.Radius) <= pr+ShockwaveBand {
			sw.HasHit = true
			hit = true
		}
	})
	if hit {
		s.damagePlayer(w, p)
		return
	}

	for _, e := range s.bosses.Active(w) {
		boss, _ := ecs.Get(w, e, component.BossComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if boss == nil || body == nil || boss.Warning > 0 || !boss.Beam.Active {
			continue
		}
		if segmentDistance(view.Pos, body.Pos, boss.Beam.End(body.Pos)) <= boss.Beam.Width+pr {
			s.damagePlayer(w, p)
			return
		}
	}

	for _, e := range entity.Enemies(w) {
		body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
		if !ok || !overlaps(view.Pos, pr, body.Pos, radiusOf(w, e)) {
			continue
		}
		pos := body.Pos
		ecs.DestroyEntity(w, e)
		entity.DropOrb(w, pos)
		s.damagePlayer(w, p)
		return
	}
}

func contactHurts(b *component.Boss) bool {
	switch b.Contact {
	case component.ContactNever:
		return false
	case component.ContactRamming:
		return b.Ramming()
	default:
		return true
	}
}

// damagePlayer spends a shield charge if there is one, otherwise a hit point.
func (s *CollisionSystem) damagePlayer(w *ecs.World, p *component.Player) {
	absorbed := p.Shield > 0
	if absorbed {
		p.Shield = 0
		p.IFrames = ShieldIFramesMs
	} else {
		p.HP--
		p.IFrames = HitIFramesMs
	}
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Data: ecs.PlayerEvent{HP: p.HP, Absorbed: absorbed}})
	if p.HP <= 0 && p.Alive {
		p.HP = 0
		p.Alive = false
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Data: ecs.PlayerEvent{HP: 0}})
	}
}

func (s *CollisionSystem) collectPickups(w *ecs.World) {
	a := w.Arena()
	view := entity.Player(w)
	if !view.Alive {
		return
	}
	reach := view.Radius + a.PickupBonus
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, pk *component.Pickup, body *component.Body) {
		if !overlaps(view.Pos, reach, body.Pos, radiusOf(w, e)) {
			return
		}
		kind := pk.Kind
		ecs.DestroyEntity(w, e)
		s.powerups.Apply(w, kind)
	})
}

// segmentDistance is the distance from p to the segment ab.
func segmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := common.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Distance(a.Add(ab.Mult(t)))
}
