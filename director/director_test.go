package director

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/prefabs"
)

type harness struct {
	t      *testing.T
	w      *ecs.World
	d      *Director
	bosses *system.BossSystem
}

func newHarness(t *testing.T, seq Sequencer) *harness {
	t.Helper()
	specs, err := prefabs.LoadBossSpecs()
	if err != nil {
		t.Fatalf("load bosses: %v", err)
	}
	bosses, err := system.NewBossSystem(specs)
	if err != nil {
		t.Fatalf("boss system: %v", err)
	}
	w := ecs.NewWorld()
	if _, err := entity.NewPlayer(w, entity.DefaultPlayerConfig, cp.Vector{X: 480, Y: 360}); err != nil {
		t.Fatalf("player: %v", err)
	}
	d, err := New(bosses, Options{Sequencer: seq, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("director: %v", err)
	}
	return &harness{t: t, w: w, d: d, bosses: bosses}
}

// run advances only the director, in 1000ms steps.
func (h *harness) run(ms float64) {
	a := h.w.Arena()
	for elapsed := 0.0; elapsed < ms; elapsed += 1000 {
		a.Dt = 1000
		a.Clock += 1000
		h.d.Update(h.w)
		h.drain()
	}
}

func (h *harness) drain() {
	for _, evt := range h.w.Events().Drain() {
		h.d.HandleEvent(h.w, evt)
	}
}

func (h *harness) defeat(kind component.BossKind) {
	h.t.Helper()
	e := h.bosses.Find(h.w, kind)
	if e == 0 {
		h.t.Fatalf("%s is not alive (stage %s)", kind, h.d.Stage())
	}
	h.bosses.Defeat(h.w, e)
	h.drain()
}

func (h *harness) expectStage(want Stage) {
	h.t.Helper()
	if got := h.d.Stage(); got != want {
		h.t.Fatalf("stage = %s, want %s", got, want)
	}
}

func TestDirectorSequence(t *testing.T) {
	h := newHarness(t, nil)
	a := h.w.Arena()

	h.run(59000)
	h.expectStage(StageOpening)
	if h.bosses.Alive(h.w) {
		t.Fatalf("no boss before the first threshold")
	}
	h.run(1000)
	h.expectStage(StageHunter)

	h.defeat(component.BossHunter)
	h.expectStage(StageDuelistCountdown)
	if a.DifficultyOffset != a.Clock {
		t.Fatalf("offset = %v, want clock %v", a.DifficultyOffset, a.Clock)
	}
	if h.d.spawnTimer != DefaultSpawner.AfterBossMs {
		t.Fatalf("spawn timer = %v", h.d.spawnTimer)
	}

	h.run(DefaultDirector.DuelistDelayMs - 1000)
	h.expectStage(StageDuelistCountdown)
	h.run(1000)
	h.expectStage(StageDuelist)

	h.defeat(component.BossDuelist)
	h.expectStage(StageDualCountdown)
	if a.DifficultyOffset != a.Clock-DefaultDirector.DuelistRebaseMs {
		t.Fatalf("duelist rebase: offset %v clock %v", a.DifficultyOffset, a.Clock)
	}

	h.run(DefaultDirector.DualDelayMs)
	h.expectStage(StageDual)
	if !h.d.Dual() || len(h.bosses.Active(h.w)) != 2 {
		t.Fatalf("dual fight should field both bosses")
	}

	h.defeat(component.BossHunter)
	h.expectStage(StageDual)
	if a.PostBoss {
		t.Fatalf("post-boss latch set with the duelist still alive")
	}
	h.defeat(component.BossDuelist)
	h.expectStage(StageQueueCountdown)
	if !a.PostBoss {
		t.Fatalf("post-boss latch not set")
	}
	if a.DifficultyOffset != a.Clock-DefaultDirector.DualRebaseMs {
		t.Fatalf("dual rebase: offset %v clock %v", a.DifficultyOffset, a.Clock)
	}

	for _, name := range DefaultDirector.Queue {
		kind, _ := component.ParseBossKind(name)
		if h.d.Countdown() != DefaultDirector.QueueDelayMs {
			t.Fatalf("%s countdown = %v", name, h.d.Countdown())
		}
		h.run(DefaultDirector.QueueDelayMs)
		h.expectStage(StageQueue)
		h.defeat(kind)
		if a.DifficultyOffset != a.Clock {
			t.Fatalf("queue kill should rebase to the clock")
		}
	}
	h.expectStage(StageEndless)
	if got := h.d.Defeated(); len(got) != 5 || got[4] != "swarm_queen" {
		t.Fatalf("defeated = %v", got)
	}
}

func TestDirectorHoldsWhilePlayerDead(t *testing.T) {
	h := newHarness(t, nil)
	p, _ := ecs.Get(h.w, h.w.Arena().Player, component.PlayerComponent.Kind())
	p.Alive = false

	h.run(90000)
	if h.bosses.Alive(h.w) || len(entity.Enemies(h.w)) != 0 {
		t.Fatalf("nothing should spawn while the player is dead")
	}
}

func TestSpawnerPauses(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(h *harness)
		expect int
	}{
		{"spawns", func(*harness) {}, 1},
		{"frozen", func(h *harness) { h.w.Arena().FreezeMs = 5000 }, 0},
		{"boss_alive", func(h *harness) { h.bosses.SpawnBoss(h.w, component.BossFortress) }, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, nil)
			c.setup(h)
			h.d.spawnTimer = 500
			h.run(1000)
			if n := len(entity.Enemies(h.w)); n != c.expect {
				t.Fatalf("enemies = %d, want %d", n, c.expect)
			}
		})
	}
}

func TestSpawnInterval(t *testing.T) {
	h := newHarness(t, nil)
	a := h.w.Arena()
	a.Clock = 30000
	a.DifficultyOffset = 20000

	want := DefaultSpawner.BaseMs * math.Pow(DefaultSpawner.Ramp, 10)
	if got := h.d.Interval(a); math.Abs(got-want) > 1e-9 {
		t.Fatalf("interval = %v, want %v", got, want)
	}

	a.PostBoss = true
	want = DefaultSpawner.BaseMs * math.Pow(DefaultSpawner.Ramp, 30)
	if got := h.d.Interval(a); math.Abs(got-want) > 1e-9 {
		t.Fatalf("post-boss interval = %v, want %v", got, want)
	}

	a.DifficultyOffset = 40000
	if got := h.d.Interval(a); got != DefaultSpawner.BaseMs {
		t.Fatalf("negative elapsed should clamp to base, got %v", got)
	}
}

func TestQueueSequencer(t *testing.T) {
	names := []string{"fortress", "phantom"}
	cases := []struct {
		name     string
		repeat   bool
		defeated []string
		want     component.BossKind
		ok       bool
	}{
		{"first", false, nil, component.BossFortress, true},
		{"second", false, []string{"fortress"}, component.BossPhantom, true},
		{"exhausted", false, []string{"fortress", "phantom"}, component.BossNone, false},
		{"wraps", true, []string{"fortress", "phantom"}, component.BossFortress, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := NewQueueSequencer(names, 1234, c.repeat)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			kind, delay, ok := q.Next(c.defeated, 0)
			if kind != c.want || ok != c.ok {
				t.Fatalf("got %s ok=%v, want %s ok=%v", kind, ok, c.want, c.ok)
			}
			if ok && delay != 1234 {
				t.Fatalf("delay = %v", delay)
			}
		})
	}

	if _, err := NewQueueSequencer([]string{"dragon"}, 0, false); err == nil {
		t.Fatalf("unknown boss should be rejected")
	}
}

func TestRemainingWrapsWithRepeat(t *testing.T) {
	q, _ := NewQueueSequencer([]string{"fortress", "phantom", "sniper"}, 0, true)
	got := q.Remaining(4)
	want := []string{"phantom", "sniper", "fortress"}
	if len(got) != len(want) {
		t.Fatalf("remaining = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("remaining = %v, want %v", got, want)
		}
	}
}
