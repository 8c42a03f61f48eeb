package geocontains

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	// Epsilon is the angular tolerance in radians.
	Epsilon = 1e-6
	// Epsilon2 is the squared tolerance. Arc excess and vertex coincidence
	// are second-order quantities and are compared against it.
	Epsilon2 = Epsilon * Epsilon

	halfPi    = math.Pi / 2
	quarterPi = math.Pi / 4
	tau       = 2 * math.Pi
)

// radians returns the longitude and latitude of p in radians.
func radians(p Point) (lambda, phi float64) {
	return p.Lon * math.Pi / 180, p.Lat * math.Pi / 180
}

// normalizeLongitude folds a longitude in radians back into [-π, π].
func normalizeLongitude(lambda float64) float64 {
	if math.Abs(lambda) <= math.Pi {
		return lambda
	}
	return sign(lambda) * (math.Mod(math.Abs(lambda)+math.Pi, tau) - math.Pi)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func unitVector(p Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
}

// distance returns the central angle between a and b in radians. The angle
// comes from atan2(|a×b|, a·b) and keeps full precision near 0 and π.
func distance(a, b Point) float64 {
	return unitVector(a).Distance(unitVector(b)).Radians()
}

