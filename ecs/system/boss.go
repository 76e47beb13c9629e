package system

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/physics"
	"github.com/milk9111/bossrush/prefabs"
)


// BossSystem runs every live boss through the shared encounter engine:
// warning, phase-2 latch, mode timer, actions, movement and weapons. Each
// boss kind only supplies a behavior.
type BossSystem struct {
	catalog map[component.BossKind]*BossDescriptor
	live    map[ecs.Entity]*bossRuntime
}

func NewBossSystem(specs []prefabs.BossSpec) (*BossSystem, error) {
	catalog, err := BuildCatalog(specs)
	if err != nil {
		return nil, err
	}
	return &BossSystem{catalog: catalog, live: make(map[ecs.Entity]*bossRuntime)}, nil
}

// Reload swaps the descriptor catalog. Live bosses keep the descriptor they
// spawned with.
func (s *BossSystem) Reload(specs []prefabs.BossSpec) error {
	if s == nil {
		return nil
	}
	catalog, err := BuildCatalog(specs)
	if err != nil {
		return err
	}
	s.catalog = catalog
	return nil
}

// Descriptor returns the current descriptor for kind.
func (s *BossSystem) Descriptor(kind component.BossKind) (*BossDescriptor, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.catalog[kind]
	return d, ok
}

// SpawnBoss places a fresh boss of kind in its warning state. A live boss of
// the same kind is removed first, without payout.
func (s *BossSystem) SpawnBoss(w *ecs.World, kind component.BossKind) ecs.Entity {
	if s == nil || w == nil {
		return 0
	}
	desc, ok := s.catalog[kind]
	if !ok {
		fmt.Printf("boss: no descriptor for %s\n", kind)
		return 0
	}
	if existing := s.Find(w, kind); existing != 0 {
		s.despawn(w, existing)
	}

	a := w.Arena()
	pos := cp.Vector{
		X: desc.Spawn.X * a.Width,
		Y: desc.Spawn.Y*a.Height + desc.Spawn.RadiusY*desc.Radius,
	}

	e := ecs.CreateEntity(w)
	body := &component.Body{Pos: pos, Drag: desc.Drag, MaxSpeed: desc.MaxSpeed, MaxForce: desc.MaxForce}
	_ = ecs.Add(w, e, component.BodyComponent.Kind(), body)
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: desc.Radius})
	hp := &component.Health{Current: desc.HP, Max: desc.HP}
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), hp)

	first := desc.Modes[0]
	boss := &component.Boss{
		Kind:      kind,
		Mode:      first.Name,
		ModeTimer: first.DurationMs,
		Warning:   desc.WarningMs,
		Shielded:  first.Shielded,
		Contact:   desc.Contact,
		Weapons:   make([]component.WeaponState, len(desc.Weapons)),
		Alpha:     1,
	}
	for i, ws := range desc.Weapons {
		boss.Weapons[i] = component.WeaponState{Timer: ws.InitialMs, Armed: true}
		if ws.InitialMs <= 0 {
			boss.Weapons[i].Timer = ws.IntervalMs
		}
	}
	_ = ecs.Add(w, e, component.BossComponent.Kind(), boss)

	rt := &bossRuntime{desc: desc, behavior: bossBehaviors[kind]()}
	s.live[e] = rt

	c := newBossCtx(w, e, rt, boss, body, hp)
	rt.behavior.spawn(c)
	w.Events().Push(ecs.Event{Type: ecs.EventBossSpawned, Data: c.event()})
	return e
}

// Find returns the live boss of kind, or 0.
func (s *BossSystem) Find(w *ecs.World, kind component.BossKind) ecs.Entity {
	var found ecs.Entity
	ecs.ForEach(w, component.BossComponent.Kind(), func(e ecs.Entity, b *component.Boss) {
		if found == 0 && b.Kind == kind && !b.Defeated {
			found = e
		}
	})
	return found
}

// Active returns every live boss entity in creation order.
func (s *BossSystem) Active(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.BossComponent.Kind(), func(e ecs.Entity, b *component.Boss) {
		if !b.Defeated {
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Alive reports whether any boss is on the field.
func (s *BossSystem) Alive(w *ecs.World) bool {
	return len(s.Active(w)) > 0
}

func (s *BossSystem) Update(w *ecs.World) {
	if s == nil || w == nil || w.Arena() == nil {
		return
	}
	s.prune(w)

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.BodyComponent.Kind(),
		component.HealthComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, body *component.Body, hp *component.Health) {
			rt := s.live[e]
			if rt == nil || boss.Defeated {
				return
			}
			s.step(newBossCtx(w, e, rt, boss, body, hp))
		})
}

func (s *BossSystem) step(c *bossCtx) {
	b := c.boss
	if b.Warning > 0 {
		b.Warning -= c.dt
		return
	}

	if !b.Phase2 && c.health.Current <= c.health.Max/2 {
		s.enterPhase2(c)
	}

	if b.ModeFlash > 0 {
		b.ModeFlash -= c.dt
		if b.ModeFlash < 0 {
			b.ModeFlash = 0
		}
	}

	s.tickMode(c)

	if b.Action != nil {
		s.runAction(c)
	} else {
		c.rt.behavior.move(c)
	}
	ageTrail(b, c.dt)

	s.tickWeapons(c)
}

func (s *BossSystem) enterPhase2(c *bossCtx) {
	c.boss.Phase2 = true
	if h, ok := c.rt.behavior.(phase2Enterer); ok {
		h.enterPhase2(c)
	}
	if len(c.desc.Phase2Modes) > 0 {
		c.switchMode(c.desc.Phase2Modes[0].Name)
	}
	c.w.Events().Push(ecs.Event{Type: ecs.EventPhase2, Data: c.event()})
}

// tickMode counts the mode timer down. The flip waits while an action is in
// flight; untimed modes only change when a behavior switches them.
func (s *BossSystem) tickMode(c *bossCtx) {
	mode, ok := c.desc.Mode(c.boss.Mode, c.boss.Phase2)
	if !ok || mode.DurationMs <= 0 {
		return
	}
	c.boss.ModeTimer -= c.dt
	if c.boss.ModeTimer > 0 || c.boss.Action != nil {
		return
	}
	c.switchMode(c.desc.NextMode(mode.Name, c.boss.Phase2).Name)
}

func (s *BossSystem) runAction(c *bossCtx) {
	act := c.boss.Action
	c.body.Pos = c.body.Pos.Add(act.Vel.Mult(c.moveSec))
	if act.Bounce > 0 {
		c.bounce(&act.Vel, act.Bounce)
	} else {
		physics.ClampPos(&c.body.Pos, c.radius(), c.arena.Width, c.arena.Height)
	}
	c.body.Vel = act.Vel
	if act.Trail {
		c.boss.Trail = append(c.boss.Trail, component.TrailPoint{Pos: c.body.Pos, Life: act.TrailMs})
	}

	act.Remaining -= c.dt
	if act.Remaining > 0 {
		return
	}
	c.boss.Action = nil
	c.body.Vel = act.Vel.Mult(act.EndScale)
	if h, ok := c.rt.behavior.(actionEnder); ok {
		h.actionEnded(c, act.Name)
	}
}

func ageTrail(b *component.Boss, dt float64) {
	if len(b.Trail) == 0 {
		return
	}
	kept := b.Trail[:0]
	for _, p := range b.Trail {
		p.Age += dt
		if p.Age <= p.Life {
			kept = append(kept, p)
		}
	}
	b.Trail = kept
}

func (s *BossSystem) tickWeapons(c *bossCtx) {
	b := c.boss
	pauser, _ := c.rt.behavior.(weaponPauser)
	aimer, _ := c.rt.behavior.(weaponAimer)

	for i, ws := range c.desc.Weapons {
		if i >= len(b.Weapons) {
			return
		}
		if !weaponActiveIn(ws, b.Mode) {
			continue
		}
		st := &b.Weapons[i]
		if !st.Armed {
			continue
		}
		if pauser != nil && pauser.paused(c, ws.Name) {
			continue
		}

		st.Timer -= c.dt
		if ws.TelegraphMs > 0 && !st.Aiming && st.Timer <= ws.TelegraphMs {
			st.Aiming = true
			st.Target = c.player.Pos
			if aimer != nil {
				c.weapon = st
				aimer.aim(c, ws.Name)
			}
		}
		if st.Timer > 0 {
			continue
		}

		c.weapon = st
		c.rt.behavior.fire(c, ws.Name)
		c.weapon = nil
		st.Aiming = false
		if ws.Once {
			st.Armed = false
			continue
		}
		st.Timer = c.desc.Interval(i, b.Phase2)
	}
}

// Defeat pays out and removes the boss: score, an orb ring, an explosion,
// its pools and the entity itself. It runs at most once per boss.
func (s *BossSystem) Defeat(w *ecs.World, e ecs.Entity) bool {
	if s == nil || w == nil {
		return false
	}
	rt := s.live[e]
	boss, ok := ecs.Get(w, e, component.BossComponent.Kind())
	if rt == nil || !ok || boss.Defeated {
		return false
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	if body == nil || hp == nil {
		return false
	}

	boss.Defeated = true
	hp.Current = 0
	c := newBossCtx(w, e, rt, boss, body, hp)

	a := w.Arena()
	a.Score += rt.desc.Score
	a.BossesDefeated++
	entity.DropOrbRing(w, body.Pos, rt.desc.Orbs, rt.desc.Radius)
	entity.TriggerExplosion(w, body.Pos)
	if h, ok := rt.behavior.(deathHook); ok {
		h.died(c)
	}

	evt := c.event()
	entity.ClearOwned(w, e)
	ecs.DestroyEntity(w, e)
	delete(s.live, e)
	w.Events().Push(ecs.Event{Type: ecs.EventBossDefeated, Data: evt})
	return true
}

// Clear removes every boss without payout.
func (s *BossSystem) Clear(w *ecs.World) {
	for _, e := range s.Active(w) {
		s.despawn(w, e)
	}
}

func (s *BossSystem) despawn(w *ecs.World, e ecs.Entity) {
	entity.ClearOwned(w, e)
	ecs.DestroyEntity(w, e)
	delete(s.live, e)
}

// prune forgets runtimes whose entity was destroyed elsewhere.
func (s *BossSystem) prune(w *ecs.World) {
	for e := range s.live {
		if !ecs.IsAlive(w, e) {
			delete(s.live, e)
		}
	}
}
