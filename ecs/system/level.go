package system

import (
	"math"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// Upgrade effects and level-up knobs.
const (
	UpgradeChoices   = 3
	LevelUpIFramesMs = 2000

	SpeedUpgrade       = 1.15
	ControlUpgrade     = 1.25
	FireRateUpgrade    = 0.15
	BulletSizeUpgrade  = 1
	BulletSpeedUpgrade = 0.20
	PickupRadiusStep   = 15
)

// UpgradeChooser picks one of the offered upgrades by index. An index out of
// range falls back to the first choice.
type UpgradeChooser func(w *ecs.World, choices []component.Upgrade) int

// LevelSystem folds collected xp into the player's Progress. Each time the
// threshold is met the level goes up, three distinct upgrades are drawn and
// the chooser's pick is applied on the spot.
type LevelSystem struct {
	choose UpgradeChooser
}

func NewLevelSystem(choose UpgradeChooser) *LevelSystem {
	return &LevelSystem{choose: choose}
}

func (s *LevelSystem) Update(w *ecs.World) {
	if w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()
	prog, ok := ecs.Get(w, a.Player, component.ProgressComponent.Kind())
	if !ok {
		return
	}

	gained := a.XP - prog.Credited
	if gained <= 0 {
		return
	}
	prog.Credited = a.XP
	prog.XP += gained

	for prog.ToNext > 0 && prog.XP >= prog.ToNext {
		prog.XP -= prog.ToNext
		prog.Level++
		prog.ToNext = prog.Level * component.XPPerLevel

		choices := DrawUpgrades(a, UpgradeChoices)
		if len(choices) == 0 {
			continue
		}
		pick := 0
		if s.choose != nil {
			pick = s.choose(w, choices)
		}
		if pick < 0 || pick >= len(choices) {
			pick = 0
		}
		up := choices[pick]
		ApplyUpgrade(w, up)
		prog.Taken = append(prog.Taken, up)
		w.Events().Push(ecs.Event{Type: ecs.EventLevelUp, Data: ecs.LevelEvent{Level: prog.Level, Upgrade: up}})
	}
}

// DrawUpgrades shuffles the upgrade pool with the arena's random source and
// returns the first n.
func DrawUpgrades(a *ecs.Arena, n int) []component.Upgrade {
	pool := append([]component.Upgrade(nil), component.AllUpgrades...)
	for i := len(pool) - 1; i > 0; i-- {
		j := int(a.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		pool[i], pool[j] = pool[j], pool[i]
	}
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// ApplyUpgrade grants one upgrade to the player along with a short window
// of invulnerability.
func ApplyUpgrade(w *ecs.World, up component.Upgrade) {
	a := w.Arena()
	if a == nil {
		return
	}
	e := a.Player
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	wpn, _ := ecs.Get(w, e, component.PlayerWeaponComponent.Kind())

	switch up {
	case component.UpgradeSpeed:
		p.Accel *= SpeedUpgrade
		if body != nil {
			body.MaxSpeed *= SpeedUpgrade
			body.MaxForce *= SpeedUpgrade
		}
	case component.UpgradeControl:
		p.Accel *= ControlUpgrade
		if body != nil {
			body.MaxForce *= ControlUpgrade
		}
	case component.UpgradeFireRate:
		if wpn != nil {
			wpn.FireRateBonus += FireRateUpgrade
		}
	case component.UpgradeBulletSize:
		if wpn != nil {
			wpn.BulletSizeBonus += BulletSizeUpgrade
		}
	case component.UpgradeBulletSpeed:
		if wpn != nil {
			wpn.BulletSpeedBonus += BulletSpeedUpgrade
		}
	case component.UpgradeHealth:
		p.MaxHP++
		if p.HP < p.MaxHP {
			p.HP++
		}
	case component.UpgradePickupRadius:
		a.PickupBonus += PickupRadiusStep
	}
	p.IFrames = math.Max(p.IFrames, LevelUpIFramesMs)
}
