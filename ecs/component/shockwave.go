package component

// Shockwave is an expanding ring hazard centered on its Body. It waits out
// Delay, then grows to MaxRadius over Duration and is removed.
type Shockwave struct {
	Owner     uint64
	Radius    float64
	MaxRadius float64
	Timer     float64
	Duration  float64
	Delay     float64
	HasHit    bool
}

func (s *Shockwave) Active() bool {
	return s != nil && s.Delay <= 0 && s.Timer < s.Duration
}

var ShockwaveComponent = NewComponent[Shockwave]()
