package component

type PickupKind string

const (
	PickupXP      PickupKind = "xp"
	PickupHealth  PickupKind = "health"
	PickupTrishot PickupKind = "trishot"
	PickupMinigun PickupKind = "minigun"
	PickupFreeze  PickupKind = "freeze"
	PickupNuke    PickupKind = "nuke"
	PickupMissile PickupKind = "missile"
	PickupShield  PickupKind = "shield"
)

// PowerupKinds lists the powerups the spawner draws from.
var PowerupKinds = []PickupKind{
	PickupHealth, PickupTrishot, PickupMinigun, PickupFreeze, PickupNuke, PickupMissile, PickupShield,
}

// Pickup is a collectible; XP orbs drift on Body.Vel and slow down.
type Pickup struct {
	Kind PickupKind
}

func (p *Pickup) Powerup() bool {
	return p != nil && p.Kind != PickupXP
}

var PickupComponent = NewComponent[Pickup]()
