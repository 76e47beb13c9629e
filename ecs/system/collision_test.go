package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

func playerState(t *testing.T, w *ecs.World) *component.Player {
	t.Helper()
	p, ok := ecs.Get(w, w.Arena().Player, component.PlayerComponent.Kind())
	if !ok {
		t.Fatalf("no player")
	}
	return p
}

func TestHostileHitsPlayer(t *testing.T) {
	cases := []struct {
		name       string
		shield     int
		iframes    float64
		hp         int
		wantHP     int
		wantShield int
		wantIF     float64
		wantAlive  bool
	}{
		{"hp_damage", 0, 0, 3, 2, 0, HitIFramesMs, true},
		{"shield_absorbs", 1, 0, 3, 3, 0, ShieldIFramesMs, true},
		{"iframes_ignore", 0, 200, 3, 3, 0, 200, true},
		{"last_hit_kills", 0, 0, 1, 0, 0, HitIFramesMs, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := cp.Vector{X: 300, Y: 300}
			w, bosses := newBossWorld(t, pos)
			p := playerState(t, w)
			p.Shield, p.IFrames, p.HP = c.shield, c.iframes, c.hp

			entity.SpawnHazard(w, entity.HazardSpec{Pos: pos, Radius: 4})
			step(w, 16, NewCollisionSystem(bosses, nil, DefaultPlayerWeapon))

			if p.HP != c.wantHP || p.Shield != c.wantShield || p.IFrames != c.wantIF || p.Alive != c.wantAlive {
				t.Fatalf("got hp=%d shield=%d iframes=%v alive=%v", p.HP, p.Shield, p.IFrames, p.Alive)
			}
			died := drainTypes(w)[ecs.EventPlayerDied]
			if (died == 1) == c.wantAlive {
				t.Fatalf("player_died events = %d", died)
			}
		})
	}
}

func TestSplitMissileSpawnsEnemies(t *testing.T) {
	pos := cp.Vector{X: 300, Y: 300}
	w, bosses := newBossWorld(t, pos)
	p := playerState(t, w)
	missile := entity.SpawnHazard(w, entity.HazardSpec{Pos: pos, Radius: 5, Homing: true, Split: 2})

	step(w, 16, NewCollisionSystem(bosses, nil, DefaultPlayerWeapon))

	if ecs.IsAlive(w, missile) {
		t.Fatalf("split missile should be consumed")
	}
	if n := len(entity.Enemies(w)); n != 2 {
		t.Fatalf("enemies = %d, want 2", n)
	}
	if p.HP != 3 || p.IFrames != 0 {
		t.Fatalf("split missile must not damage: hp=%d iframes=%v", p.HP, p.IFrames)
	}
}

func TestShockwaveHitsOncePerRing(t *testing.T) {
	pos := cp.Vector{X: 300, Y: 300}
	w, bosses := newBossWorld(t, pos)
	p := playerState(t, w)
	sw := entity.SpawnShockwave(w, 0, cp.Vector{X: 200, Y: 300}, 200, 1000, 0)
	ring, _ := ecs.Get(w, sw, component.ShockwaveComponent.Kind())
	ring.Timer = 500
	ring.Radius = 100

	col := NewCollisionSystem(bosses, nil, DefaultPlayerWeapon)
	step(w, 16, col)
	if p.HP != 2 || !ring.HasHit {
		t.Fatalf("ring edge should hit: hp=%d hasHit=%v", p.HP, ring.HasHit)
	}

	p.IFrames = 0
	step(w, 16, col)
	if p.HP != 2 {
		t.Fatalf("a ring only hits once, hp=%d", p.HP)
	}
}

func TestDuelistOnlyHurtsWhileRamming(t *testing.T) {
	w, bosses := newBossWorld(t, cp.Vector{X: 300, Y: 300})
	p := playerState(t, w)
	e := bosses.SpawnBoss(w, component.BossDuelist)
	boss, body, _ := bossParts(t, w, e)
	boss.Warning = 0
	body.Pos = cp.Vector{X: 300, Y: 300}

	col := NewCollisionSystem(bosses, nil, DefaultPlayerWeapon)
	step(w, 16, col)
	if p.HP != 3 {
		t.Fatalf("idle duelist should not hurt on contact")
	}

	boss.Action = &component.BossAction{Name: "ramdash", Remaining: 400, Ram: true}
	step(w, 16, col)
	if p.HP != 2 {
		t.Fatalf("ramming duelist should hurt, hp=%d", p.HP)
	}
}

func TestBeamHitsAlongSegment(t *testing.T) {
	cases := []struct {
		name   string
		player cp.Vector
		hit    bool
	}{
		{"on_beam", cp.Vector{X: 600, Y: 305}, true},
		{"beside_beam", cp.Vector{X: 600, Y: 330}, false},
		{"past_the_end", cp.Vector{X: 950, Y: 300}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, bosses := newBossWorld(t, c.player)
			p := playerState(t, w)
			e := bosses.SpawnBoss(w, component.BossPhantom)
			boss, body, _ := bossParts(t, w, e)
			boss.Warning = 0
			body.Pos = cp.Vector{X: 200, Y: 300}
			boss.Beam = component.Beam{Active: true, Angle: 0, Length: 700, Width: 6}

			step(w, 16, NewCollisionSystem(bosses, nil, DefaultPlayerWeapon))
			if (p.HP < 3) != c.hit {
				t.Fatalf("hit=%v, want %v", p.HP < 3, c.hit)
			}
		})
	}
}

func TestEnemyContactDropsOrbWithoutScore(t *testing.T) {
	pos := cp.Vector{X: 300, Y: 300}
	w, bosses := newBossWorld(t, pos)
	p := playerState(t, w)
	e := entity.SpawnEnemy(w, pos)

	step(w, 16, NewCollisionSystem(bosses, nil, DefaultPlayerWeapon))

	if ecs.IsAlive(w, e) || p.HP != 2 {
		t.Fatalf("enemy alive=%v hp=%d", ecs.IsAlive(w, e), p.HP)
	}
	if w.Arena().Score != 0 {
		t.Fatalf("contact kill scored %d", w.Arena().Score)
	}
	// The orb lands on the player and is collected in the same pass.
	if w.Arena().XP != 1 {
		t.Fatalf("xp = %d, want 1", w.Arena().XP)
	}
}

func TestBulletKillsEnemyWithPayout(t *testing.T) {
	w, bosses := newBossWorld(t, cp.Vector{X: 800, Y: 600})
	pos := cp.Vector{X: 300, Y: 300}
	e := entity.SpawnEnemy(w, pos)
	hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	hp.Current = 1
	entity.SpawnPlayerShot(w, entity.ShotSpec{Pos: pos, Radius: 2, CullPad: 50})

	step(w, 16, NewCollisionSystem(bosses, nil, DefaultPlayerWeapon))

	if ecs.IsAlive(w, e) {
		t.Fatalf("enemy should die")
	}
	if w.Arena().Score != 1 {
		t.Fatalf("score = %d, want 1", w.Arena().Score)
	}
	if len(playerShots(w)) != 0 {
		t.Fatalf("bullet should be consumed")
	}
}

func TestPickupApply(t *testing.T) {
	w, bosses := newBossWorld(t, cp.Vector{X: 300, Y: 300})
	powerups := NewPowerupSystem(DefaultPowerups)
	p := playerState(t, w)
	a := w.Arena()

	p.HP = 2
	entity.SpawnPowerup(w, component.PickupHealth, cp.Vector{X: 300, Y: 300})
	step(w, 16, NewCollisionSystem(bosses, powerups, DefaultPlayerWeapon))
	if p.HP != 3 {
		t.Fatalf("health pickup: hp=%d", p.HP)
	}

	powerups.Apply(w, component.PickupHealth)
	if p.HP != p.MaxHP {
		t.Fatalf("health must cap at %d, got %d", p.MaxHP, p.HP)
	}

	powerups.Apply(w, component.PickupFreeze)
	if !a.Frozen() || a.FreezeMs != DefaultPowerups.FreezeMs {
		t.Fatalf("freeze = %v", a.FreezeMs)
	}

	entity.SpawnEnemy(w, cp.Vector{X: 100, Y: 100})
	entity.SpawnEnemy(w, cp.Vector{X: 150, Y: 100})
	score := a.Score
	powerups.Apply(w, component.PickupNuke)
	if len(entity.Enemies(w)) != 0 || a.Score != score+2 {
		t.Fatalf("nuke left %d enemies, score %d", len(entity.Enemies(w)), a.Score)
	}

	powerups.Apply(w, component.PickupShield)
	if p.Shield != 1 {
		t.Fatalf("shield = %d", p.Shield)
	}
}

func TestProjectileCulling(t *testing.T) {
	w, _ := newBossWorld(t, cp.Vector{X: 480, Y: 360})
	leaving := entity.SpawnHazard(w, entity.HazardSpec{Pos: cp.Vector{X: -52, Y: 300}, Vel: cp.Vector{X: -50}, Radius: 4, CullPad: 60})
	inside := entity.SpawnHazard(w, entity.HazardSpec{Pos: cp.Vector{X: 480, Y: 100}, Radius: 4, CullPad: 60})
	timed := entity.SpawnHazard(w, entity.HazardSpec{Pos: cp.Vector{X: 480, Y: 200}, Radius: 4, CullPad: 60, Life: 150})

	ps := NewProjectileSystem()
	step(w, 100, ps)
	if !ecs.IsAlive(w, leaving) || !ecs.IsAlive(w, timed) {
		t.Fatalf("projectiles culled too early")
	}
	step(w, 100, ps)
	if ecs.IsAlive(w, leaving) {
		t.Fatalf("projectile past the pad should be culled")
	}
	if ecs.IsAlive(w, timed) {
		t.Fatalf("expired projectile should be removed")
	}
	if !ecs.IsAlive(w, inside) {
		t.Fatalf("immortal projectile inside the field was removed")
	}
}

func TestShockwaveGrowsAfterDelay(t *testing.T) {
	w, _ := newBossWorld(t, cp.Vector{X: 480, Y: 360})
	e := entity.SpawnShockwave(w, 0, cp.Vector{X: 480, Y: 360}, 200, 1000, 200)
	sw, _ := ecs.Get(w, e, component.ShockwaveComponent.Kind())

	ps := NewProjectileSystem()
	step(w, 200, ps)
	if sw.Timer != 0 || sw.Radius != 0 {
		t.Fatalf("ring should not grow during its delay")
	}
	step(w, 500, ps)
	if sw.Radius != 100 {
		t.Fatalf("radius = %v, want 100", sw.Radius)
	}
	step(w, 500, ps)
	if ecs.IsAlive(w, e) {
		t.Fatalf("ring should be removed at full duration")
	}
}

func TestTTLExpiresPickups(t *testing.T) {
	w := ecs.NewWorld()
	e := entity.SpawnPowerup(w, component.PickupShield, cp.Vector{X: 100, Y: 100})
	ttl, _ := ecs.Get(w, e, component.TTLComponent.Kind())
	ttl.Ms = component.ExpireWarnMs + 500

	sys := NewTTLSystem()
	w.Arena().Dt = 400
	sys.Update(w)
	if ttl.Expiring() {
		t.Fatalf("%vms left should not warn yet", ttl.Ms)
	}
	sys.Update(w)
	if !ttl.Expiring() || !ecs.IsAlive(w, e) {
		t.Fatalf("%vms left should warn", ttl.Ms)
	}

	w.Arena().Dt = component.ExpireWarnMs
	sys.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("pickup should expire")
	}
}
