package component

// Explosion is a cosmetic blast that grows to MaxRadius over Duration ms.
type Explosion struct {
	Timer     float64
	Duration  float64
	MaxRadius float64
}

func (e *Explosion) Radius() float64 {
	if e == nil || e.Duration <= 0 {
		return 0
	}
	t := e.Timer / e.Duration
	if t > 1 {
		t = 1
	}
	return e.MaxRadius * t
}

var ExplosionComponent = NewComponent[Explosion]()
