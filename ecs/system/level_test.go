package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

func progressOf(t *testing.T, w *ecs.World) *component.Progress {
	t.Helper()
	prog, ok := ecs.Get(w, w.Arena().Player, component.ProgressComponent.Kind())
	if !ok {
		t.Fatalf("player has no progress")
	}
	return prog
}

func TestLevelThresholds(t *testing.T) {
	cases := []struct {
		name   string
		xp     int
		level  int
		left   int
		toNext int
		ups    int
	}{
		{"short", 4, 1, 4, 5, 0},
		{"first_level", 5, 2, 0, 10, 1},
		{"carry_over", 7, 2, 2, 10, 1},
		{"two_levels", 15, 3, 0, 15, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _ := newBossWorld(t, cp.Vector{X: 480, Y: 360})
			w.Arena().XP = c.xp
			step(w, 16, NewLevelSystem(nil))

			prog := progressOf(t, w)
			if prog.Level != c.level || prog.XP != c.left || prog.ToNext != c.toNext {
				t.Fatalf("level %d xp %d next %d", prog.Level, prog.XP, prog.ToNext)
			}
			if len(prog.Taken) != c.ups || drainTypes(w)[ecs.EventLevelUp] != c.ups {
				t.Fatalf("upgrades taken = %v", prog.Taken)
			}

			// Already credited xp is not counted twice.
			step(w, 16, NewLevelSystem(nil))
			if progressOf(t, w).Level != c.level {
				t.Fatalf("level moved without new xp")
			}
		})
	}
}

func TestLevelUpOffersDistinctChoices(t *testing.T) {
	w, _ := newBossWorld(t, cp.Vector{X: 480, Y: 360})
	w.Arena().XP = 5

	var offered []component.Upgrade
	choose := func(_ *ecs.World, choices []component.Upgrade) int {
		offered = append(offered, choices...)
		return len(choices) - 1
	}
	step(w, 16, NewLevelSystem(choose))

	if len(offered) != UpgradeChoices {
		t.Fatalf("offered %v, want %d choices", offered, UpgradeChoices)
	}
	seen := map[component.Upgrade]bool{}
	for _, up := range offered {
		if seen[up] {
			t.Fatalf("duplicate choice in %v", offered)
		}
		seen[up] = true
	}
	prog := progressOf(t, w)
	if len(prog.Taken) != 1 || prog.Taken[0] != offered[len(offered)-1] {
		t.Fatalf("taken %v, offered %v", prog.Taken, offered)
	}
	if p := playerState(t, w); p.IFrames != LevelUpIFramesMs {
		t.Fatalf("iframes = %v, want %v", p.IFrames, float64(LevelUpIFramesMs))
	}
}

func TestReachUpgradeWidensPickup(t *testing.T) {
	pos := cp.Vector{X: 300, Y: 300}
	w, bosses := newBossWorld(t, pos)
	a := w.Arena()
	col := NewCollisionSystem(bosses, NewPowerupSystem(DefaultPowerups), DefaultPlayerWeapon)

	// Just outside plain reach: player radius + pickup radius + 8.
	gap := entity.DefaultPlayerConfig.Radius + entity.PowerupRadius + 8
	orb := entity.SpawnPowerup(w, component.PickupXP, pos.Add(cp.Vector{X: gap}))
	step(w, 16, col)
	if !ecs.IsAlive(w, orb) || a.XP != 0 {
		t.Fatalf("orb collected before the upgrade")
	}

	// The first shuffle draw puts reach in front; the rest leave it there.
	a.Rand = &common.SeqRand{Values: []float64{0, 0.999, 0.999, 0.999, 0.999, 0.999}}
	a.XP = component.XPPerLevel
	step(w, 16, NewLevelSystem(nil))
	if a.PickupBonus != PickupRadiusStep {
		t.Fatalf("pickup bonus = %v, want %v", a.PickupBonus, float64(PickupRadiusStep))
	}
	if prog := progressOf(t, w); len(prog.Taken) != 1 || prog.Taken[0] != component.UpgradePickupRadius {
		t.Fatalf("taken %v", prog.Taken)
	}

	step(w, 16, col)
	if ecs.IsAlive(w, orb) || a.XP != component.XPPerLevel+1 {
		t.Fatalf("orb should be collected with the wider reach: alive=%v xp=%d", ecs.IsAlive(w, orb), a.XP)
	}
}

func TestApplyUpgrade(t *testing.T) {
	cfg := entity.DefaultPlayerConfig
	cases := []struct {
		name  string
		up    component.Upgrade
		check func(t *testing.T, w *ecs.World)
	}{
		{"speed", component.UpgradeSpeed, func(t *testing.T, w *ecs.World) {
			body, _ := ecs.Get(w, w.Arena().Player, component.BodyComponent.Kind())
			p := playerState(t, w)
			if math.Abs(body.MaxSpeed-cfg.MaxSpeed*SpeedUpgrade) > 1e-9 || math.Abs(p.Accel-cfg.Accel*SpeedUpgrade) > 1e-9 {
				t.Fatalf("max speed %v accel %v", body.MaxSpeed, p.Accel)
			}
		}},
		{"control", component.UpgradeControl, func(t *testing.T, w *ecs.World) {
			body, _ := ecs.Get(w, w.Arena().Player, component.BodyComponent.Kind())
			p := playerState(t, w)
			if math.Abs(p.Accel-cfg.Accel*ControlUpgrade) > 1e-9 || body.MaxSpeed != cfg.MaxSpeed {
				t.Fatalf("accel %v max speed %v", p.Accel, body.MaxSpeed)
			}
		}},
		{"fire_rate", component.UpgradeFireRate, func(t *testing.T, w *ecs.World) {
			wpn, _ := ecs.Get(w, w.Arena().Player, component.PlayerWeaponComponent.Kind())
			got := NewPlayerWeaponSystem(DefaultPlayerWeapon).Interval(wpn)
			if want := DefaultPlayerWeapon.FireMs * (1 - FireRateUpgrade); math.Abs(got-want) > 1e-9 {
				t.Fatalf("interval = %v, want %v", got, want)
			}
		}},
		{"health", component.UpgradeHealth, func(t *testing.T, w *ecs.World) {
			p := playerState(t, w)
			if p.MaxHP != cfg.HP+1 || p.HP != cfg.HP+1 {
				t.Fatalf("hp %d/%d", p.HP, p.MaxHP)
			}
		}},
		{"pickup_radius", component.UpgradePickupRadius, func(t *testing.T, w *ecs.World) {
			if w.Arena().PickupBonus != PickupRadiusStep {
				t.Fatalf("pickup bonus = %v", w.Arena().PickupBonus)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _ := newBossWorld(t, cp.Vector{X: 480, Y: 360})
			ApplyUpgrade(w, c.up)
			c.check(t, w)
			if p := playerState(t, w); p.IFrames != LevelUpIFramesMs {
				t.Fatalf("iframes = %v", p.IFrames)
			}
		})
	}
}

func TestBulletUpgradesShapeShots(t *testing.T) {
	w, _ := newBossWorld(t, cp.Vector{X: 480, Y: 360})
	e := w.Arena().Player
	in, _ := ecs.Get(w, e, component.PlayerInputComponent.Kind())
	in.Fire = true
	in.Aim = cp.Vector{X: 480, Y: 100}
	ApplyUpgrade(w, component.UpgradeBulletSpeed)
	ApplyUpgrade(w, component.UpgradeBulletSize)

	step(w, 16, NewPlayerWeaponSystem(DefaultPlayerWeapon))

	shots := playerShots(w)
	if len(shots) != 1 {
		t.Fatalf("shots = %d", len(shots))
	}
	body, _ := ecs.Get(w, shots[0].e, component.BodyComponent.Kind())
	if want := DefaultPlayerWeapon.BulletSpeed * (1 + BulletSpeedUpgrade); math.Abs(body.Vel.Length()-want) > 1e-6 {
		t.Fatalf("bullet speed = %v, want %v", body.Vel.Length(), want)
	}
	if want := DefaultPlayerWeapon.BulletRadius + BulletSizeUpgrade; shots[0].r != want {
		t.Fatalf("bullet radius = %v, want %v", shots[0].r, want)
	}
}

func TestFireRateFloor(t *testing.T) {
	s := NewPlayerWeaponSystem(DefaultPlayerWeapon)
	cases := []struct {
		name string
		wpn  component.PlayerWeapon
		want float64
	}{
		{"base", component.PlayerWeapon{FireRateBonus: 0.95}, FireFloorMs},
		{"minigun", component.PlayerWeapon{FireRateBonus: 0.95, Minigun: 100}, MinigunFloorMs},
		{"missile", component.PlayerWeapon{FireRateBonus: 0.95, Missile: 100}, MissileFloorMs},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.Interval(&c.wpn); got != c.want {
				t.Fatalf("interval = %v, want %v", got, c.want)
			}
		})
	}
}
