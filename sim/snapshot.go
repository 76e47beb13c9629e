package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// Snapshot is a read-only summary of one moment of the run.
type Snapshot struct {
	Seed           uint64
	Width          float64
	Height         float64
	Clock          float64
	Score          int
	XP             int
	Level          int
	LevelXP        int
	ToNext         int
	Upgrades       []component.Upgrade
	BossesDefeated int
	Stage          string
	Countdown      float64
	Frozen         bool
	PostBoss       bool
	Paused         bool

	Player PlayerSnapshot
	Bosses []BossSnapshot

	Enemies     int
	Hostiles    int
	PlayerShots int
	Shockwaves  int
	Pickups     int
}

type PlayerSnapshot struct {
	Pos     cp.Vector
	HP      int
	MaxHP   int
	Shield  int
	IFrames float64
	Alive   bool
}

type BossSnapshot struct {
	Entity   ecs.Entity
	Kind     component.BossKind
	Name     string
	Mode     string
	Pos      cp.Vector
	Radius   float64
	HP       int
	MaxHP    int
	Phase2   bool
	Shielded bool
	Warning  float64
	Pool     int
}

func (s *Simulation) Snapshot() Snapshot {
	a := s.w.Arena()
	snap := Snapshot{
		Seed:           s.seed,
		Width:          a.Width,
		Height:         a.Height,
		Clock:          a.Clock,
		Score:          a.Score,
		XP:             a.XP,
		BossesDefeated: a.BossesDefeated,
		Stage:          s.director.Stage().String(),
		Countdown:      s.director.Countdown(),
		Frozen:         a.Frozen(),
		PostBoss:       a.PostBoss,
		Paused:         s.paused,
		Enemies:        len(entity.Enemies(s.w)),
		Shockwaves:     ecs.Count(s.w, component.ShockwaveComponent.Kind()),
		Pickups:        ecs.Count(s.w, component.PickupComponent.Kind()),
	}

	if prog, ok := ecs.Get(s.w, a.Player, component.ProgressComponent.Kind()); ok {
		snap.Level = prog.Level
		snap.LevelXP = prog.XP
		snap.ToNext = prog.ToNext
		snap.Upgrades = append([]component.Upgrade(nil), prog.Taken...)
	}

	if p, ok := ecs.Get(s.w, a.Player, component.PlayerComponent.Kind()); ok {
		view := entity.Player(s.w)
		snap.Player = PlayerSnapshot{
			Pos:     view.Pos,
			HP:      p.HP,
			MaxHP:   p.MaxHP,
			Shield:  p.Shield,
			IFrames: p.IFrames,
			Alive:   p.Alive,
		}
	}

	ecs.ForEach(s.w, component.ProjectileComponent.Kind(), func(_ ecs.Entity, p *component.Projectile) {
		if p.Faction == component.FactionPlayer {
			snap.PlayerShots++
		} else {
			snap.Hostiles++
		}
	})

	for _, e := range s.bosses.Active(s.w) {
		boss, _ := ecs.Get(s.w, e, component.BossComponent.Kind())
		body, _ := ecs.Get(s.w, e, component.BodyComponent.Kind())
		hp, _ := ecs.Get(s.w, e, component.HealthComponent.Kind())
		if boss == nil || body == nil || hp == nil {
			continue
		}
		bs := BossSnapshot{
			Entity:   e,
			Kind:     boss.Kind,
			Name:     boss.Kind.String(),
			Mode:     boss.Mode,
			Pos:      body.Pos,
			HP:       hp.Current,
			MaxHP:    hp.Max,
			Phase2:   boss.Phase2,
			Shielded: boss.Shielded,
			Warning:  boss.Warning,
			Pool:     entity.CountOwned(s.w, e),
		}
		if d, ok := s.bosses.Descriptor(boss.Kind); ok {
			bs.Name = d.Name
			bs.Radius = d.Radius
		}
		snap.Bosses = append(snap.Bosses, bs)
	}
	return snap
}

// Report is the one-line run summary viewers print or copy.
func (s Snapshot) Report() string {
	status := "alive"
	if !s.Player.Alive {
		status = "dead"
	}
	return fmt.Sprintf(
		"bossrush seed=%d clock=%.1fs stage=%s score=%d xp=%d lvl=%d bosses=%d hp=%d/%d (%s)",
		s.Seed, s.Clock/1000, s.Stage, s.Score, s.XP, s.Level,
		s.BossesDefeated, s.Player.HP, s.Player.MaxHP, status,
	)
}
