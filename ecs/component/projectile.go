package component

type Faction int

const (
	FactionPlayer Faction = iota
	FactionHostile
)

// Immortal marks a projectile that only leaves its pool by being culled.
const Immortal = -1

// Projectile is a moving circular hazard. Hostile projectiles belong to the
// pool of the boss entity in Owner.
type Projectile struct {
	Owner   uint64
	Faction Faction
	Damage  int
	// Missile marks player missiles, which explode on impact.
	Missile bool

	// Life is ms remaining; values <= 0 never expire.
	Life float64

	Homing   bool
	Tracking bool
	TurnRate float64

	// SplitCount enemies are spawned on impact instead of dealing damage.
	SplitCount int

	CullPad float64

	Sniper bool
	Linger bool
}

var ProjectileComponent = NewComponent[Projectile]()
