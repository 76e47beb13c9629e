package component

import "github.com/jakecoffman/cp"

// Player is the shared-mutable player state. Movement writes Body; only the
// collision resolver writes HP, Shield, IFrames and Alive.
type Player struct {
	HP      int
	MaxHP   int
	Shield  int
	IFrames float64
	Alive   bool
	Accel   float64
}

// PlayerInput is written by whatever drives the player: the viewer's keyboard
// and mouse, or an autopilot. Thrust is a direction with length <= 1.
type PlayerInput struct {
	Thrust cp.Vector
	Aim    cp.Vector
	Fire   bool
}

// PlayerWeapon holds the auto-fire cadence and the timed fire modes granted
// by powerups (ms remaining; 0 means inactive). The bonuses come from
// level-up upgrades and never expire.
type PlayerWeapon struct {
	FireTimer float64
	Trishot   float64
	Minigun   float64
	Missile   float64

	// FireRateBonus is the fraction shaved off every fire interval.
	FireRateBonus float64
	// BulletSpeedBonus is the fraction added to bullet speed.
	BulletSpeedBonus float64
	BulletSizeBonus  float64
}

var PlayerComponent = NewComponent[Player]()
var PlayerInputComponent = NewComponent[PlayerInput]()
var PlayerWeaponComponent = NewComponent[PlayerWeapon]()
