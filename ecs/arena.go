package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
)

const (
	DefaultFieldWidth  = 960
	DefaultFieldHeight = 720

	// FreezeMoveScale multiplies steering-driven movement while freeze is active.
	FreezeMoveScale = 0.3
)

// Arena is the per-world context: play field, simulated clock, the score and
// xp sinks, and the global modifiers every system reads.
type Arena struct {
	Width  float64
	Height float64

	// Clock is simulated ms; Dt is the current tick's ms.
	Clock float64
	Dt    float64

	Score int
	XP    int

	FreezeMs float64

	// DifficultyOffset rebases the enemy ramp; PostBoss triples its rate.
	DifficultyOffset float64
	PostBoss         bool
	PostBossRate     float64

	Player Entity
	// PickupBonus widens the player's pickup radius.
	PickupBonus float64

	BossesDefeated int

	Enemies EnemyStats

	Rand common.Rand
}

func NewArena(width, height float64, r common.Rand) *Arena {
	if r == nil {
		r = common.NewRand(1)
	}
	return &Arena{Width: width, Height: height, Rand: r, PostBossRate: 3, Enemies: DefaultEnemyStats}
}

// Frozen reports whether the freeze effect is active.
func (a *Arena) Frozen() bool {
	return a != nil && a.FreezeMs > 0
}

// MoveScale is the factor applied to movement dt this tick.
func (a *Arena) MoveScale() float64 {
	if a.Frozen() {
		return FreezeMoveScale
	}
	return 1
}

// Elapsed returns seconds since the difficulty offset, sped up once the
// post-boss latch is set.
func (a *Arena) Elapsed() float64 {
	if a == nil {
		return 0
	}
	sec := math.Max(0, a.Clock-a.DifficultyOffset) / 1000
	if a.PostBoss {
		rate := a.PostBossRate
		if rate <= 0 {
			rate = 3
		}
		sec *= rate
	}
	return sec
}

// Float64 draws from the arena's random source.
func (a *Arena) Float64() float64 {
	if a == nil || a.Rand == nil {
		return 0
	}
	return a.Rand.Float64()
}

// Bounds is the play field as a bounding box, grown by pad on every side.
func (a *Arena) Bounds(pad float64) cp.BB {
	if a == nil {
		return cp.BB{}
	}
	return cp.BB{L: -pad, B: -pad, R: a.Width + pad, T: a.Height + pad}
}

// Center returns the middle of the play field.
func (a *Arena) Center() cp.Vector {
	if a == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: a.Width / 2, Y: a.Height / 2}
}

// EnemyStats configures regular enemies. Speed and force are drawn from
// their ranges and scaled by Ramp^Elapsed(), capped at RampCap.
type EnemyStats struct {
	Radius   float64
	HP       int
	SpeedMin float64
	SpeedMax float64
	ForceMin float64
	ForceMax float64
	DragMin  float64
	DragMax  float64
	Ramp     float64
	RampCap  float64
	// BerserkScale multiplies max speed while enraged.
	BerserkScale float64
}

var DefaultEnemyStats = EnemyStats{
	Radius:       14,
	HP:           1,
	SpeedMin:     250,
	SpeedMax:     380,
	ForceMin:     250,
	ForceMax:     450,
	DragMin:      0.985,
	DragMax:      0.999,
	Ramp:         1.0125,
	RampCap:      3.5,
	BerserkScale: 2.2,
}

// EnemyRamp is the current speed/force multiplier for newly spawned enemies.
func (a *Arena) EnemyRamp() float64 {
	if a == nil {
		return 1
	}
	stats := a.Enemies
	if stats.Ramp <= 0 {
		return 1
	}
	m := math.Pow(stats.Ramp, a.Elapsed())
	if stats.RampCap > 0 && m > stats.RampCap {
		m = stats.RampCap
	}
	return m
}
