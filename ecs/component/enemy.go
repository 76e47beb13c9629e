package component

// Enemy is a regular seeker. BerserkMs counts down an enrage; when it
// expires MaxSpeed is restored to NormalMaxSpeed.
type Enemy struct {
	BerserkMs      float64
	NormalMaxSpeed float64
}

func (e *Enemy) Berserk() bool {
	return e != nil && e.BerserkMs > 0
}

var EnemyComponent = NewComponent[Enemy]()
