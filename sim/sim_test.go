package sim

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/prefabs"
)

func newSim(t *testing.T, opts Options) *Simulation {
	t.Helper()
	opts.Logger = log.New(io.Discard, "", 0)
	s, err := New(opts)
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	return s
}

func invulnerable(s *Simulation) {
	p, _ := ecs.Get(s.World(), s.Arena().Player, component.PlayerComponent.Kind())
	p.IFrames = 1e12
}

func TestClockOnlyRunsWhilePlayerAlive(t *testing.T) {
	s := newSim(t, Options{Seed: 1})
	s.Tick(16)
	if s.Arena().Clock != 16 {
		t.Fatalf("clock = %v, want 16", s.Arena().Clock)
	}

	p, _ := ecs.Get(s.World(), s.Arena().Player, component.PlayerComponent.Kind())
	p.Alive = false
	s.Tick(16)
	if s.Arena().Clock != 16 {
		t.Fatalf("clock advanced with a dead player: %v", s.Arena().Clock)
	}
}

func TestPauseResumeDiscardsGap(t *testing.T) {
	s := newSim(t, Options{Seed: 1})

	if dt := s.Frame(1000); dt != 0 {
		t.Fatalf("first frame stepped %v", dt)
	}
	if dt := s.Frame(1016); dt != 16 {
		t.Fatalf("dt = %v, want 16", dt)
	}

	s.Pause()
	if dt := s.Frame(4000); dt != 0 || !s.Paused() {
		t.Fatalf("paused frame stepped %v", dt)
	}
	s.Resume(9000)
	if dt := s.Frame(9016); dt != 16 {
		t.Fatalf("dt after resume = %v, want 16", dt)
	}
	if s.Arena().Clock != 32 {
		t.Fatalf("clock = %v, want 32", s.Arena().Clock)
	}
}

func TestHunterArrivesOnSchedule(t *testing.T) {
	var spawned []ecs.BossEvent
	s := newSim(t, Options{Seed: 3, Sink: func(evt ecs.Event) {
		if evt.Type == ecs.EventBossSpawned {
			spawned = append(spawned, evt.Data.(ecs.BossEvent))
		}
	}})
	invulnerable(s)

	for s.Arena().Clock < 59984 {
		s.Tick(16)
	}
	if len(spawned) != 0 {
		t.Fatalf("boss spawned early at %v", s.Arena().Clock)
	}
	s.Tick(16)
	if len(spawned) != 1 || spawned[0].Kind != component.BossHunter {
		t.Fatalf("spawned = %v", spawned)
	}

	snap := s.Snapshot()
	if len(snap.Bosses) != 1 || snap.Bosses[0].Warning <= 0 {
		t.Fatalf("hunter should be in its warning: %+v", snap.Bosses)
	}
	if snap.Stage != "hunter" {
		t.Fatalf("stage = %s", snap.Stage)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() Snapshot {
		s := newSim(t, Options{Seed: 42})
		invulnerable(s)
		in := s.Input()
		in.Fire = true
		in.Aim = cp.Vector{X: 480, Y: 0}
		in.Thrust = cp.Vector{X: 1}
		for i := 0; i < 2000; i++ {
			s.Tick(16)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Enemies != b.Enemies || a.Hostiles != b.Hostiles || a.PlayerShots != b.PlayerShots {
		t.Fatalf("runs diverged: %+v vs %+v", a, b)
	}
	if a.Player.Pos != b.Player.Pos {
		t.Fatalf("player diverged: %v vs %v", a.Player.Pos, b.Player.Pos)
	}
	if a.Enemies+a.Score == 0 {
		t.Fatalf("spawner never ran")
	}
}

func TestScriptOption(t *testing.T) {
	newSim(t, Options{Seed: 1, Script: "director.tengo"})

	if _, err := New(Options{Seed: 1, Script: "missing.tengo", Logger: log.New(io.Discard, "", 0)}); err == nil {
		t.Fatalf("missing script should fail")
	}
}

func TestReloadBosses(t *testing.T) {
	s := newSim(t, Options{Seed: 1})
	specs, err := prefabs.LoadBossSpecs()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	specs[0].HP = 99
	if err := s.ReloadBosses(specs); err != nil {
		t.Fatalf("reload: %v", err)
	}
	d, _ := s.Bosses().Descriptor(component.BossHunter)
	if d.HP != 99 {
		t.Fatalf("hunter hp = %d, want 99", d.HP)
	}

	specs[0].HP = 0
	if err := s.ReloadBosses(specs); err == nil {
		t.Fatalf("invalid descriptor should be rejected")
	}
	d, _ = s.Bosses().Descriptor(component.BossHunter)
	if d.HP != 99 {
		t.Fatalf("failed reload must keep the old catalog")
	}
}

func TestReport(t *testing.T) {
	s := newSim(t, Options{Seed: 7})
	s.Tick(1500)
	got := s.Snapshot().Report()
	for _, want := range []string{"seed=7", "clock=1.5s", "stage=opening", "lvl=1", "(alive)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("report %q missing %q", got, want)
		}
	}
}

func TestAutopilotTargets(t *testing.T) {
	s := newSim(t, Options{Seed: 1})
	ap := NewAutopilot()

	ap.Drive(s)
	if s.Input().Fire {
		t.Fatalf("nothing to shoot at, should hold fire")
	}

	enemy := entity.SpawnEnemy(s.World(), cp.Vector{X: 100, Y: 100})
	ap.Drive(s)
	body, _ := ecs.Get(s.World(), enemy, component.BodyComponent.Kind())
	if !s.Input().Fire || s.Input().Aim != body.Pos {
		t.Fatalf("should aim at the enemy: %+v", s.Input())
	}

	e := s.Bosses().SpawnBoss(s.World(), component.BossHunter)
	boss, _ := ecs.Get(s.World(), e, component.BossComponent.Kind())
	ap.Drive(s)
	if s.Input().Aim != body.Pos {
		t.Fatalf("a boss in its warning is not a target yet")
	}

	boss.Warning = 0
	ap.Drive(s)
	bossBody, _ := ecs.Get(s.World(), e, component.BodyComponent.Kind())
	if s.Input().Aim != bossBody.Pos {
		t.Fatalf("boss should take priority over enemies")
	}
}

func TestAutopilotDodges(t *testing.T) {
	s := newSim(t, Options{Seed: 1})
	me := entity.Player(s.World()).Pos
	entity.SpawnHazard(s.World(), entity.HazardSpec{
		Pos:    me.Add(cp.Vector{X: 40}),
		Vel:    cp.Vector{X: -200},
		Radius: 6,
	})

	NewAutopilot().Drive(s)
	if s.Input().Thrust.X >= 0 {
		t.Fatalf("should move away from the shot, thrust %v", s.Input().Thrust)
	}
	if s.Input().Thrust.Length() > 1+1e-9 {
		t.Fatalf("thrust not clamped: %v", s.Input().Thrust)
	}
}

func TestAutopilotChoosesUpgrade(t *testing.T) {
	ap := NewAutopilot()
	cases := []struct {
		name    string
		choices []component.Upgrade
		want    int
	}{
		{"health_first", []component.Upgrade{component.UpgradeSpeed, component.UpgradeHealth, component.UpgradeControl}, 1},
		{"reach_over_speed", []component.Upgrade{component.UpgradeSpeed, component.UpgradeBulletSize, component.UpgradePickupRadius}, 2},
		{"empty", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ap.ChooseUpgrade(nil, c.choices); got != c.want {
				t.Fatalf("ChooseUpgrade = %d, want %d", got, c.want)
			}
		})
	}
}

func TestLevelUpThroughTick(t *testing.T) {
	ap := NewAutopilot()
	var offered []component.Upgrade
	s := newSim(t, Options{Seed: 3, ChooseUpgrade: func(w *ecs.World, choices []component.Upgrade) int {
		offered = append([]component.Upgrade(nil), choices...)
		return ap.ChooseUpgrade(w, choices)
	}})
	s.Arena().XP = component.XPPerLevel
	s.Tick(16)

	snap := s.Snapshot()
	if snap.Level != 2 || snap.ToNext != 2*component.XPPerLevel {
		t.Fatalf("level %d next %d", snap.Level, snap.ToNext)
	}
	if len(snap.Upgrades) != 1 || snap.Upgrades[0] != offered[ap.ChooseUpgrade(nil, offered)] {
		t.Fatalf("took %v from %v", snap.Upgrades, offered)
	}
}
