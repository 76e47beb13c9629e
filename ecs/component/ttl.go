package component

// TTL removes its entity once Ms of simulated time have passed. Drops carry
// one so uncollected pickups do not pile up.
type TTL struct {
	Ms float64
}

// ExpireWarnMs is the window before expiry in which viewers blink a pickup.
const ExpireWarnMs = 2000

func (t *TTL) Expiring() bool {
	return t != nil && t.Ms > 0 && t.Ms <= ExpireWarnMs
}

var TTLComponent = NewComponent[TTL]()
