package sim

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// Autopilot drives the player for unattended runs. It dodges hostile shots,
// orbits its target between two standoff distances and steers away from the
// field edges. It fires at the nearest boss, or the nearest enemy when no
// boss is up.
type Autopilot struct {
	StandoffMin float64
	StandoffMax float64
	ThreatRange float64
	Margin      float64
}

func NewAutopilot() *Autopilot {
	return &Autopilot{
		StandoffMin: 200,
		StandoffMax: 340,
		ThreatRange: 150,
		Margin:      90,
	}
}

// upgradeRank orders the autopilot's level-up preferences, best first.
var upgradeRank = []component.Upgrade{
	component.UpgradeHealth,
	component.UpgradeFireRate,
	component.UpgradePickupRadius,
	component.UpgradeSpeed,
	component.UpgradeBulletSpeed,
	component.UpgradeControl,
	component.UpgradeBulletSize,
}

// ChooseUpgrade takes the offered upgrade ranked highest.
func (ap *Autopilot) ChooseUpgrade(_ *ecs.World, choices []component.Upgrade) int {
	for _, want := range upgradeRank {
		for i, up := range choices {
			if up == want {
				return i
			}
		}
	}
	return 0
}

// Drive writes the player's input for the next Tick.
func (ap *Autopilot) Drive(s *Simulation) {
	if ap == nil || s == nil {
		return
	}
	in := s.Input()
	if in == nil {
		return
	}
	w := s.World()
	me := entity.Player(w)
	if !me.Alive {
		*in = component.PlayerInput{}
		return
	}

	steer := ap.dodge(w, me.Pos)

	target, ok := ap.Target(s)
	in.Fire = ok
	if ok {
		in.Aim = target
		steer = steer.Add(ap.orbit(me.Pos, target))
	}

	steer = steer.Add(ap.edges(s.Arena(), me.Pos))
	if steer.LengthSq() > 1 {
		steer = steer.Normalize()
	}
	in.Thrust = steer
}

// Target picks what to shoot: the nearest boss past its warning, else the
// nearest regular enemy.
func (ap *Autopilot) Target(s *Simulation) (cp.Vector, bool) {
	w := s.World()
	me := entity.Player(w).Pos

	best, found := cp.Vector{}, false
	bestDist := math.MaxFloat64
	consider := func(pos cp.Vector) {
		if d := pos.DistanceSq(me); d < bestDist {
			best, bestDist, found = pos, d, true
		}
	}

	for _, e := range s.Bosses().Active(w) {
		boss, _ := ecs.Get(w, e, component.BossComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if boss == nil || body == nil || boss.Warning > 0 {
			continue
		}
		consider(body.Pos)
	}
	if found {
		return best, true
	}

	for _, e := range entity.Enemies(w) {
		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
			consider(body.Pos)
		}
	}
	return best, found
}

// dodge pushes away from nearby hostile shots and sidesteps across their
// line of flight.
func (ap *Autopilot) dodge(w *ecs.World, pos cp.Vector) cp.Vector {
	var steer cp.Vector
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, p *component.Projectile, body *component.Body) {
			if p.Faction == component.FactionPlayer {
				return
			}
			away := pos.Sub(body.Pos)
			dist := away.Length()
			if dist > ap.ThreatRange || dist < 1e-3 {
				return
			}
			dir := away.Mult(1 / dist)
			steer = steer.Add(dir.Mult(ap.ThreatRange / math.Max(dist, 1)))

			lateral := dir.Perp()
			sign := 1.0
			if body.Vel.Dot(lateral) > 0 {
				sign = -1
			}
			steer = steer.Add(lateral.Mult(0.5 * sign))
		})
	return steer
}

func (ap *Autopilot) orbit(pos, target cp.Vector) cp.Vector {
	away := pos.Sub(target)
	dist := away.Length()
	if dist < 1e-6 {
		away, dist = cp.Vector{X: 1}, 1
	}
	dir := away.Mult(1 / dist)
	switch {
	case dist < ap.StandoffMin:
		return dir.Mult(2)
	case dist > ap.StandoffMax:
		return dir.Neg().Add(dir.Perp().Mult(0.5))
	default:
		return dir.Perp()
	}
}

func (ap *Autopilot) edges(a *ecs.Arena, pos cp.Vector) cp.Vector {
	var steer cp.Vector
	m := ap.Margin
	if m <= 0 || a == nil {
		return steer
	}
	if pos.X < m {
		steer.X += (m - pos.X) / m
	}
	if pos.X > a.Width-m {
		steer.X -= (pos.X - (a.Width - m)) / m
	}
	if pos.Y < m {
		steer.Y += (m - pos.Y) / m
	}
	if pos.Y > a.Height-m {
		steer.Y -= (pos.Y - (a.Height - m)) / m
	}
	return steer.Mult(3)
}
