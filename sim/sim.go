// Package sim wires the world, the systems and the director into one
// deterministic step function. Given the same seed and dt sequence a run
// always plays out the same way.
package sim

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/director"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/prefabs"
)

// PlayerStart is where the player spawns, as a fraction of the field.
var PlayerStart = cp.Vector{X: 0.5, Y: 0.7}

type Options struct {
	Seed   uint64
	Logger *log.Logger
	// Bosses and Encounter are loaded from prefabs when nil.
	Bosses    []prefabs.BossSpec
	Encounter *prefabs.EncounterSpec
	// Script names a tengo sequencer under prefabs/scripts. It overrides
	// the encounter's director.script.
	Script string
	// Sink sees every event after the director has.
	Sink func(ecs.Event)
	// ChooseUpgrade picks the level-up reward; nil takes the first of the
	// shuffled choices.
	ChooseUpgrade system.UpgradeChooser
}

type Simulation struct {
	w        *ecs.World
	sched    *ecs.Scheduler
	director *director.Director
	bosses   *system.BossSystem
	log      *log.Logger
	sink     func(ecs.Event)
	seed     uint64

	paused  bool
	started bool
	last    float64
}

func New(opts Options) (*Simulation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	specs := opts.Bosses
	if specs == nil {
		loaded, err := prefabs.LoadBossSpecs()
		if err != nil {
			return nil, err
		}
		specs = loaded
	}
	enc := opts.Encounter
	if enc == nil {
		loaded, err := prefabs.LoadEncounterSpec()
		if err != nil {
			return nil, err
		}
		enc = loaded
	}

	bosses, err := system.NewBossSystem(specs)
	if err != nil {
		return nil, err
	}

	seq, err := sequencer(enc.Director, opts.Script)
	if err != nil {
		return nil, err
	}
	dir, err := director.New(bosses, director.Options{
		Director:  enc.Director,
		Spawner:   enc.Spawner,
		Sequencer: seq,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	width, height := enc.Field.Width, enc.Field.Height
	if width <= 0 || height <= 0 {
		width, height = ecs.DefaultFieldWidth, ecs.DefaultFieldHeight
	}
	arena := ecs.NewArena(width, height, common.NewRand(opts.Seed))
	arena.Enemies = enemyStats(enc.Enemies)
	if enc.Director.PostBossRate > 0 {
		arena.PostBossRate = enc.Director.PostBossRate
	}
	w.SetArena(arena)

	start := cp.Vector{X: PlayerStart.X * width, Y: PlayerStart.Y * height}
	if _, err := entity.NewPlayer(w, playerConfig(enc.Player), start); err != nil {
		return nil, err
	}

	powerups := system.NewPowerupSystem(enc.Powerups)
	sched := ecs.NewScheduler(
		dir,
		system.NewPlayerSystem(),
		system.NewPlayerWeaponSystem(enc.PlayerWeapon),
		system.NewEnemySystem(),
		bosses,
		system.NewProjectileSystem(),
		powerups,
		system.NewExplosionSystem(),
		system.NewTTLSystem(),
		system.NewCollisionSystem(bosses, powerups, enc.PlayerWeapon),
		system.NewLevelSystem(opts.ChooseUpgrade),
	)

	return &Simulation{
		w:        w,
		sched:    sched,
		director: dir,
		bosses:   bosses,
		log:      logger,
		sink:     opts.Sink,
		seed:     opts.Seed,
	}, nil
}

func sequencer(cfg prefabs.DirectorSpec, script string) (director.Sequencer, error) {
	if script == "" {
		script = cfg.Script
	}
	if script == "" {
		return nil, nil
	}
	queue := cfg.Queue
	delay := cfg.QueueDelayMs
	if len(queue) == 0 {
		queue, delay = director.DefaultDirector.Queue, director.DefaultDirector.QueueDelayMs
	}
	q, err := director.NewQueueSequencer(queue, delay, cfg.Repeat)
	if err != nil {
		return nil, err
	}
	return director.NewScriptSequencer(script, q)
}

func enemyStats(spec prefabs.EnemySpec) ecs.EnemyStats {
	if spec.Radius <= 0 {
		return ecs.DefaultEnemyStats
	}
	return ecs.EnemyStats{
		Radius:       spec.Radius,
		HP:           spec.HP,
		SpeedMin:     spec.SpeedMin,
		SpeedMax:     spec.SpeedMax,
		ForceMin:     spec.ForceMin,
		ForceMax:     spec.ForceMax,
		DragMin:      spec.DragMin,
		DragMax:      spec.DragMax,
		Ramp:         spec.Ramp,
		RampCap:      spec.RampCap,
		BerserkScale: spec.BerserkScale,
	}
}

func playerConfig(spec prefabs.PlayerSpec) entity.PlayerConfig {
	if spec.HP <= 0 {
		return entity.DefaultPlayerConfig
	}
	return entity.PlayerConfig{
		HP:       spec.HP,
		Radius:   spec.Radius,
		MaxSpeed: spec.MaxSpeed,
		Accel:    spec.Accel,
		Drag:     spec.Drag,
	}
}

func (s *Simulation) World() *ecs.World { return s.w }
func (s *Simulation) Director() *director.Director { return s.director }
func (s *Simulation) Bosses() *system.BossSystem { return s.bosses }
func (s *Simulation) Seed() uint64 { return s.seed }
func (s *Simulation) Arena() *ecs.Arena { return s.w.Arena() }

// Profile turns on per-system wall time accounting; see Timings.
func (s *Simulation) Profile(on bool) { s.sched.Profile(on) }

func (s *Simulation) Timings() []ecs.Timing { return s.sched.Timings() }

// Input is the player's control state. Whoever drives the player writes it
// before each Tick.
func (s *Simulation) Input() *component.PlayerInput {
	in, _ := ecs.Get(s.w, s.w.Arena().Player, component.PlayerInputComponent.Kind())
	return in
}

// Tick advances the whole world by dt ms. The clock only runs while the
// player is alive.
func (s *Simulation) Tick(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	a := s.w.Arena()
	a.Dt = dt
	alive := entity.Player(s.w).Alive
	if alive {
		a.Clock += dt
	}

	s.sched.Update(s.w)

	for _, evt := range s.w.Events().Drain() {
		s.director.HandleEvent(s.w, evt)
		if evt.Type == ecs.EventPlayerDied {
			s.log.Printf("sim: player died at %.0fms, score %d", a.Clock, a.Score)
		}
		if s.sink != nil {
			s.sink(evt)
		}
	}
}

// Frame drives Tick from a wall-clock timestamp in ms and returns the dt it
// stepped. The first frame and every paused frame only record the time.
func (s *Simulation) Frame(nowMs float64) float64 {
	if s == nil || s.paused {
		return 0
	}
	if !s.started {
		s.started = true
		s.last = nowMs
		return 0
	}
	dt := nowMs - s.last
	s.last = nowMs
	if dt <= 0 {
		return 0
	}
	s.Tick(dt)
	return dt
}

func (s *Simulation) Pause() {
	if s != nil {
		s.paused = true
	}
}

// Resume restarts Frame from nowMs so the paused gap is never stepped.
func (s *Simulation) Resume(nowMs float64) {
	if s == nil {
		return
	}
	s.paused = false
	s.started = true
	s.last = nowMs
}

func (s *Simulation) Paused() bool { return s != nil && s.paused }

// ReloadBosses swaps boss descriptors; bosses already on the field keep
// theirs.
func (s *Simulation) ReloadBosses(specs []prefabs.BossSpec) error {
	if err := s.bosses.Reload(specs); err != nil {
		return fmt.Errorf("sim: reload bosses: %w", err)
	}
	s.log.Printf("sim: reloaded %d boss descriptors", len(specs))
	return nil
}
