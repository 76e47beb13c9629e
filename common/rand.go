package common

import "math/rand/v2"

// Rand is the only source of randomness the simulation draws from. Fixing it
// (and the dt sequence) makes a run reproducible.
type Rand interface {
	Float64() float64
}

func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandRange draws uniformly from [lo, hi).
func RandRange(r Rand, lo, hi float64) float64 {
	if r == nil {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Sign returns -1 or 1 with equal odds.
func Sign(r Rand) float64 {
	if r != nil && r.Float64() < 0.5 {
		return -1
	}
	return 1
}

// SeqRand replays a fixed sequence of draws, wrapping at the end. Tests use it
// to pin random placement.
type SeqRand struct {
	Values []float64
	i      int
}

func (s *SeqRand) Float64() float64 {
	if s == nil || len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	return v
}
