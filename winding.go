package geocontains

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// winding accumulates, over one or more rings, what is needed to place a
// point relative to them:
//
//   - crossings: signed count of edges crossing the meridian arc that runs
//     from the point down to the south pole;
//   - turn: net change of longitude along the rings, ±2π for a ring that
//     circles a pole;
//   - excess: signed area term, positive for rings whose interior lies on
//     the right-hand side of travel.
//
// The south pole is enclosed if the rings turn eastward around it, or, when
// they do not turn around it at all, if the area term is negative. The point
// is on the other side of the boundary from the south pole when crossings is
// odd.
type winding struct {
	crossings int
	turn      float64
	excess    adder
}

func (w *winding) merge(o winding) {
	w.crossings += o.crossings
	w.turn += o.turn
	w.excess.merge(o.excess)
}

func (w winding) southPole(tol Tolerance) bool {
	return w.turn > tol.Epsilon ||
		(w.turn > -tol.Epsilon && w.excess.sum() < -tol.epsilon2())
}

func (w winding) encloses(tol Tolerance) bool {
	return w.southPole(tol) != (w.crossings&1 == 1)
}

type query struct {
	lambda float64
	phi    float64
	// normal of the meridian plane through the point.
	normal r3.Vector
}

func newQuery(p Point, tol Tolerance) query {
	lambda, phi := radians(p)
	lambda = normalizeLongitude(lambda)
	switch math.Sin(phi) {
	case 1:
		phi = halfPi + tol.Epsilon
	case -1:
		phi = -halfPi - tol.Epsilon
	}
	return query{
		lambda: lambda,
		phi:    phi,
		normal: r3.Vector{X: math.Sin(lambda), Y: -math.Cos(lambda)},
	}
}

type vertex struct {
	lambda float64
	// sin and cos of phi/2 + π/4, the colatitude-like angle of the
	// area term.
	sinPhi float64
	cosPhi float64
	xyz    r3.Vector
}

func makeVertex(p Point) vertex {
	lambda, phi := radians(p)
	half := phi/2 + quarterPi
	return vertex{
		lambda: normalizeLongitude(lambda),
		sinPhi: math.Sin(half),
		cosPhi: math.Cos(half),
		xyz:    s2.PointFromLatLng(s2.LatLng{Lat: s1.Angle(phi), Lng: s1.Angle(lambda)}).Vector,
	}
}

// openRing strips the closing vertex, if any.
func openRing(ring Ring) Ring {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}

// degenerate reports whether ring has fewer than three distinct vertices.
func degenerate(ring Ring) bool {
	if len(ring) < 3 {
		return true
	}
	a := ring[0]
	var b Point
	hasB := false
	for _, v := range ring[1:] {
		switch {
		case v == a:
		case !hasB:
			b, hasB = v, true
		case v != b:
			return false
		}
	}
	return true
}

// ringWinding walks the edges of an open ring, vertex i to vertex i+1 mod n.
// Degenerate rings contribute nothing.
func ringWinding(ring Ring, q query) (w winding) {
	ring = openRing(ring)
	if degenerate(ring) {
		return
	}
	v0 := makeVertex(ring[len(ring)-1])
	for _, p := range ring {
		v1 := makeVertex(p)
		delta := v1.lambda - v0.lambda
		sgn := 1.0
		if delta < 0 {
			sgn = -1
		}
		absDelta := sgn * delta
		antimeridian := absDelta > math.Pi
		k := v0.sinPhi * v1.sinPhi

		w.excess.add(math.Atan2(k*sgn*math.Sin(absDelta), v0.cosPhi*v1.cosPhi+k*math.Cos(absDelta)))
		if antimeridian {
			w.turn += delta - sgn*tau
		} else {
			w.turn += delta
		}

		// The edge straddles the point's meridian; find the latitude where it
		// crosses and count it when it lies below the point.
		if antimeridian != (v0.lambda >= q.lambda) != (v1.lambda >= q.lambda) {
			arc := v0.xyz.Cross(v1.xyz).Normalize()
			intersection := q.normal.Cross(arc).Normalize()
			eastward := antimeridian != (delta >= 0)
			phiArc := math.Asin(intersection.Z)
			if eastward {
				phiArc = -phiArc
			}
			if q.phi > phiArc || (q.phi == phiArc && (arc.X != 0 || arc.Y != 0)) {
				if eastward {
					w.crossings++
				} else {
					w.crossings--
				}
			}
		}
		v0 = v1
	}
	return w
}

func usableRing(ring Ring) bool {
	return !degenerate(openRing(ring))
}

func polygonContains(poly Polygon, p Point, tol Tolerance) bool {
	for _, ring := range poly {
		if usableRing(ring) && ringBoundary(ring, p, tol) {
			return true
		}
	}
	q := newQuery(p, tol)
	var w winding
	for _, ring := range poly {
		w.merge(ringWinding(ring, q))
	}
	return w.encloses(tol)
}

func multiPolygonContains(polys []Polygon, p Point, tol Tolerance) bool {
	for _, poly := range polys {
		if polygonContains(poly, p, tol) {
			return true
		}
	}
	return false
}

// RingContains reports whether a single ring encloses p or passes through
// it, using the default tolerance.
func RingContains(ring Ring, p Point) bool {
	return polygonContains(Polygon{ring}, p, DefaultOptions().Tolerance)
}

// adder is a compensated (Neumaier) running sum.
type adder struct {
	s, c float64
}

func (a *adder) add(x float64) {
	t := a.s + x
	if math.Abs(a.s) >= math.Abs(x) {
		a.c += (a.s - t) + x
	} else {
		a.c += (x - t) + a.s
	}
	a.s = t
}

func (a *adder) merge(o adder) {
	a.add(o.s)
	a.add(o.c)
}

func (a adder) sum() float64 {
	return a.s + a.c
}
