// Package director sequences the run: when each boss spawns, how the
// difficulty offset is rebased after each kill, and the regular enemy
// spawner that fills the gaps between bosses.
package director

import (
	"log"
	"math"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/prefabs"
)

type Stage int

const (
	StageOpening Stage = iota
	StageHunter
	StageDuelistCountdown
	StageDuelist
	StageDualCountdown
	StageDual
	StageQueueCountdown
	StageQueue
	StageEndless
)

var stageNames = [...]string{
	StageOpening:          "opening",
	StageHunter:           "hunter",
	StageDuelistCountdown: "duelist_countdown",
	StageDuelist:          "duelist",
	StageDualCountdown:    "dual_countdown",
	StageDual:             "dual",
	StageQueueCountdown:   "queue_countdown",
	StageQueue:            "queue",
	StageEndless:          "endless",
}

func (s Stage) String() string {
	if int(s) >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

var DefaultDirector = prefabs.DirectorSpec{
	FirstBossMs:     60000,
	DuelistDelayMs:  30000,
	DualDelayMs:     60000,
	QueueDelayMs:    20000,
	DuelistRebaseMs: 15000,
	DualRebaseMs:    20000,
	PostBossRate:    3,
	Queue:           []string{"fortress", "phantom", "sniper", "berserker", "swarm_queen"},
}

var DefaultSpawner = prefabs.SpawnerSpec{
	BaseMs:      2500,
	Ramp:        0.97,
	MinMs:       0,
	FirstMs:     1500,
	AfterBossMs: 2000,
	EdgeMargin:  120,
}

// Director is the meta state machine. It runs first in the scheduler and
// consumes boss_defeated events after each tick.
type Director struct {
	cfg     prefabs.DirectorSpec
	spawner prefabs.SpawnerSpec
	bosses  *system.BossSystem
	seq     Sequencer
	log     *log.Logger

	stage      Stage
	countdown  float64
	spawnTimer float64
	pending    component.BossKind
	dual       bool
	defeated   []string
}

type Options struct {
	Director prefabs.DirectorSpec
	Spawner  prefabs.SpawnerSpec
	// Sequencer overrides the queue built from Director.Queue.
	Sequencer Sequencer
	Logger    *log.Logger
}

func New(bosses *system.BossSystem, opts Options) (*Director, error) {
	cfg := opts.Director
	if cfg.FirstBossMs <= 0 {
		cfg = DefaultDirector
	}
	sp := opts.Spawner
	if sp.BaseMs <= 0 {
		sp = DefaultSpawner
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	seq := opts.Sequencer
	if seq == nil {
		q, err := NewQueueSequencer(cfg.Queue, cfg.QueueDelayMs, cfg.Repeat)
		if err != nil {
			return nil, err
		}
		seq = q
	}

	return &Director{
		cfg:        cfg,
		spawner:    sp,
		bosses:     bosses,
		seq:        seq,
		log:        logger,
		spawnTimer: sp.FirstMs,
	}, nil
}

func (d *Director) Stage() Stage {
	if d == nil {
		return StageOpening
	}
	return d.stage
}

// Countdown is the ms left before the next scheduled boss, or 0.
func (d *Director) Countdown() float64 {
	if d == nil {
		return 0
	}
	switch d.stage {
	case StageDuelistCountdown, StageDualCountdown, StageQueueCountdown:
		return math.Max(0, d.countdown)
	}
	return 0
}

// Dual reports whether the paired Hunter and Duelist fight has started.
func (d *Director) Dual() bool { return d != nil && d.dual }

// Defeated lists the queue bosses beaten so far.
func (d *Director) Defeated() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.defeated...)
}

func (d *Director) Update(w *ecs.World) {
	if d == nil || w == nil || w.Arena() == nil {
		return
	}
	a := w.Arena()
	if !entity.Player(w).Alive {
		return
	}
	if d.cfg.PostBossRate > 0 {
		a.PostBossRate = d.cfg.PostBossRate
	}

	if d.advance(w) {
		return
	}
	d.spawnRegular(w)
}

// advance ticks the boss schedule and reports whether a boss spawned.
func (d *Director) advance(w *ecs.World) bool {
	a := w.Arena()
	switch d.stage {
	case StageOpening:
		if a.Clock < d.cfg.FirstBossMs {
			return false
		}
		d.spawn(w, component.BossHunter)
		d.stage = StageHunter
		return true

	case StageDuelistCountdown:
		if !d.tick(a.Dt) {
			return false
		}
		d.spawn(w, component.BossDuelist)
		d.stage = StageDuelist
		return true

	case StageDualCountdown:
		if !d.tick(a.Dt) {
			return false
		}
		d.dual = true
		d.log.Printf("director: dual fight at %.0fms", a.Clock)
		d.spawn(w, component.BossHunter)
		d.spawn(w, component.BossDuelist)
		d.stage = StageDual
		return true

	case StageQueueCountdown:
		if !d.tick(a.Dt) {
			return false
		}
		d.spawn(w, d.pending)
		d.stage = StageQueue
		return true
	}
	return false
}

func (d *Director) tick(dt float64) bool {
	d.countdown -= dt
	return d.countdown <= 0
}

func (d *Director) spawn(w *ecs.World, kind component.BossKind) {
	if d.bosses.SpawnBoss(w, kind) == 0 {
		d.log.Printf("director: failed to spawn %s", kind)
		return
	}
	d.log.Printf("director: %s spawned at %.0fms", kind, w.Arena().Clock)
}

// spawnRegular runs the edge spawner. It holds while any boss is alive or
// enemies are frozen.
func (d *Director) spawnRegular(w *ecs.World) {
	a := w.Arena()
	if d.bosses.Alive(w) || a.Frozen() {
		return
	}
	d.spawnTimer -= a.Dt
	if d.spawnTimer > 0 {
		return
	}
	entity.SpawnEnemy(w, entity.EdgePosition(a, d.spawner.EdgeMargin))
	d.spawnTimer = d.Interval(a)
}

// Interval is the current regular spawn interval: base*ramp^elapsed.
func (d *Director) Interval(a *ecs.Arena) float64 {
	return math.Max(d.spawner.MinMs, d.spawner.BaseMs*math.Pow(d.spawner.Ramp, a.Elapsed()))
}

// HandleEvent reacts to boss_defeated; every other event is ignored.
func (d *Director) HandleEvent(w *ecs.World, evt ecs.Event) {
	if d == nil || w == nil || evt.Type != ecs.EventBossDefeated {
		return
	}
	be, ok := evt.Data.(ecs.BossEvent)
	if !ok {
		return
	}
	d.onDefeated(w, be.Kind)
}

func (d *Director) onDefeated(w *ecs.World, kind component.BossKind) {
	a := w.Arena()
	a.DifficultyOffset = a.Clock
	d.spawnTimer = d.spawner.AfterBossMs
	d.log.Printf("director: %s defeated at %.0fms", kind, a.Clock)

	switch d.stage {
	case StageHunter:
		if kind != component.BossHunter {
			return
		}
		d.stage = StageDuelistCountdown
		d.countdown = d.cfg.DuelistDelayMs

	case StageDuelist:
		if kind != component.BossDuelist {
			return
		}
		a.DifficultyOffset = a.Clock - d.cfg.DuelistRebaseMs
		d.stage = StageDualCountdown
		d.countdown = d.cfg.DualDelayMs

	case StageDual:
		if d.bosses.Alive(w) {
			return
		}
		a.PostBoss = true
		a.DifficultyOffset = a.Clock - d.cfg.DualRebaseMs
		d.log.Printf("director: post-boss ramp x%.0f", a.PostBossRate)
		d.queueNext(w)

	case StageQueue:
		if kind != d.pending {
			return
		}
		d.defeated = append(d.defeated, kind.String())
		d.queueNext(w)
	}
}

func (d *Director) queueNext(w *ecs.World) {
	kind, delay, ok := d.seq.Next(d.defeated, w.Arena().Clock)
	if !ok {
		d.stage = StageEndless
		d.log.Printf("director: queue exhausted after %d bosses, endless", len(d.defeated))
		return
	}
	d.pending = kind
	d.countdown = delay
	d.stage = StageQueueCountdown
	d.log.Printf("director: next %s in %.0fms", kind, delay)
}
