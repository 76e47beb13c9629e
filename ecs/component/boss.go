package component

import (
	"strings"

	"github.com/jakecoffman/cp"
)

type BossKind int

const (
	BossNone BossKind = iota
	BossHunter
	BossDuelist
	BossFortress
	BossPhantom
	BossSniper
	BossBerserker
	BossSwarmQueen
)

var bossKindNames = map[BossKind]string{
	BossHunter:     "hunter",
	BossDuelist:    "duelist",
	BossFortress:   "fortress",
	BossPhantom:    "phantom",
	BossSniper:     "sniper",
	BossBerserker:  "berserker",
	BossSwarmQueen: "swarm_queen",
}

func (k BossKind) String() string {
	if s, ok := bossKindNames[k]; ok {
		return s
	}
	return "none"
}

// ParseBossKind accepts the yaml names ("swarm_queen") case-insensitively.
func ParseBossKind(s string) (BossKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range bossKindNames {
		if name == s {
			return k, true
		}
	}
	return BossNone, false
}

// ContactRule says when a boss body damages the player on touch.
type ContactRule int

const (
	ContactAlways ContactRule = iota
	ContactRamming
	ContactNever
)

func ParseContactRule(s string) ContactRule {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ramming", "dash":
		return ContactRamming
	case "never", "none":
		return ContactNever
	default:
		return ContactAlways
	}
}

// Boss is the runtime state of one spawned boss. Descriptor data (modes,
// weapons, constants) lives with the boss system; this is what changes.
type Boss struct {
	Kind BossKind

	Mode      string
	ModeTimer float64
	// ModeFlash is the cosmetic flash countdown started by a mode flip.
	ModeFlash float64

	Phase2   bool
	Warning  float64
	Shielded bool
	Contact  ContactRule

	Weapons []WeaponState
	Action  *BossAction
	Trail   []TrailPoint
	Beam    Beam

	// Alpha is cosmetic only.
	Alpha float64

	Defeated bool
}

// WeaponState is one attack's countdown. Target is the aim locked when a
// telegraphed weapon started aiming.
type WeaponState struct {
	Timer  float64
	Aiming bool
	Armed  bool
	Target cp.Vector
}

// BossAction is a transient committed motion (dash, dodge) that overrides
// mode movement and defers mode flips until it ends.
type BossAction struct {
	Name      string
	Remaining float64
	Vel       cp.Vector
	// Bounce > 0 reflects off the field edges with that restitution; 0 clamps.
	Bounce float64
	// EndScale sets the body velocity to Vel*EndScale when the action ends.
	EndScale float64
	Ram      bool
	Trail    bool
	TrailMs  float64
}

// TrailPoint is a cosmetic afterimage; it is dropped once Age passes Life.
type TrailPoint struct {
	Pos  cp.Vector
	Age  float64
	Life float64
}

// Beam is a sweeping line hazard anchored at the boss.
type Beam struct {
	Active bool
	Angle  float64
	Length float64
	Width  float64
}

// End returns the far end of the beam from origin.
func (b Beam) End(origin cp.Vector) cp.Vector {
	return origin.Add(cp.ForAngle(b.Angle).Mult(b.Length))
}

// Vulnerable reports whether player fire can currently hurt the boss.
func (b *Boss) Vulnerable() bool {
	return b != nil && !b.Defeated && b.Warning <= 0 && !b.Shielded
}

// Ramming reports whether a ramming action is in flight.
func (b *Boss) Ramming() bool {
	return b != nil && b.Action != nil && b.Action.Ram
}

var BossComponent = NewComponent[Boss]()
