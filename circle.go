package geocontains

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/tidwall/geojson/geo"
)

const (
	// DefaultCirclePrecision is the bearing step, in degrees, between two
	// vertices of a circle.
	DefaultCirclePrecision = 6

	earthRadiusMeters = 6371e3
)

// Circle returns a polygon approximating the small circle of the given
// angular radius, in degrees, around center. The ring is clockwise so the
// polygon covers the cap around center; a negative radius reverses the ring
// and the polygon covers everything else. A non-positive precision uses
// DefaultCirclePrecision.
func Circle(center Point, radius, precision float64) Polygon {
	if precision <= 0 {
		precision = DefaultCirclePrecision
	}
	steps := int(math.Ceil(360 / precision))
	meters := math.Abs(radius) * math.Pi / 180 * earthRadiusMeters
	ring := make(Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		bearing := float64(i) * 360 / float64(steps)
		if radius < 0 {
			bearing = -bearing
		}
		lat, lon := geo.DestinationPoint(center.Lat, center.Lon, meters, bearing)
		ring = append(ring, Point{Lon: lon, Lat: lat})
	}
	ring = append(ring, ring[0])
	return Polygon{ring}
}

// Interpolate returns the point at fraction t of the great-circle arc from
// a to b. Values of t outside [0, 1] continue along the same great circle.
func Interpolate(a, b Point, t float64) Point {
	ll := s2.LatLngFromPoint(s2.Interpolate(t, unitVector(a), unitVector(b)))
	return Point{Lon: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()}
}
