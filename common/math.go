package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MinDistance is substituted for any distance shorter than one unit before a
// direction is normalized.
const MinDistance = 1.0

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle normalizes an angle to [-π, π]. Non-finite input maps to 0.
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	return math.Remainder(a, 2*math.Pi)
}

// SafeDir returns the unit vector from -> to and the distance between them.
// The distance is floored at MinDistance.
func SafeDir(from, to cp.Vector) (cp.Vector, float64) {
	d := to.Sub(from)
	dist := d.Length()
	if dist < MinDistance {
		dist = MinDistance
	}
	return d.Mult(1 / dist), dist
}

// Heading builds a vector of the given length pointing along angle.
func Heading(angle, length float64) cp.Vector {
	return cp.ForAngle(angle).Mult(length)
}
