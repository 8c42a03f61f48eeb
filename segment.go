package geocontains

// onSegment reports whether p lies on the geodesic arc from a to b.
func onSegment(a, b, p Point, tol Tolerance) bool {
	ao := distance(a, p)
	if ao <= tol.Coincident {
		return true
	}
	bo := distance(b, p)
	if bo <= tol.Coincident {
		return true
	}
	return segmentContains(ao, bo, distance(a, b), tol)
}

// segmentContains treats an arc whose endpoints coincide as a point, held
// to the first-order epsilon like a Point geometry.
func segmentContains(ao, bo, ab float64, tol Tolerance) bool {
	if ab <= tol.Coincident {
		return ao <= tol.Epsilon
	}
	return onArc(ao, bo, ab, tol)
}

// onArc decides from the three sides of the triangle a, b, p whether p sits
// on the arc ab. A point past either endpoint has ao or bo greater than ab.
// The excess ao+bo-ab grows with the square of the cross-track offset, so it
// is held against epsilon squared scaled by the arc length. The (1-r²)
// factor shrinks the excess near the endpoints where it is dominated by the
// along-track component.
func onArc(ao, bo, ab float64, tol Tolerance) bool {
	if ab <= tol.Coincident || ao > ab || bo > ab {
		return false
	}
	r := (ao - bo) / ab
	return (ao+bo-ab)*(1-r*r) < tol.epsilon2()*ab
}

func pointContains(v, p Point, tol Tolerance) bool {
	return distance(v, p) <= tol.Epsilon
}

func multiPointContains(points []Point, p Point, tol Tolerance) bool {
	for _, v := range points {
		if pointContains(v, p, tol) {
			return true
		}
	}
	return false
}

// lineContains walks the vertices once, reusing the distance from the
// previous vertex as the first side of the next segment.
func lineContains(line []Point, p Point, tol Tolerance) bool {
	var ao float64
	for i := range line {
		bo := distance(line[i], p)
		if bo <= tol.Coincident {
			return true
		}
		if i > 0 && segmentContains(ao, bo, distance(line[i-1], line[i]), tol) {
			return true
		}
		ao = bo
	}
	return false
}

func multiLineContains(lines []LineString, p Point, tol Tolerance) bool {
	for _, line := range lines {
		if lineContains(line, p, tol) {
			return true
		}
	}
	return false
}

// ringBoundary reports whether p lies on any edge of ring, including the
// edge joining the last vertex back to the first.
func ringBoundary(ring Ring, p Point, tol Tolerance) bool {
	ring = openRing(ring)
	n := len(ring)
	if n == 0 {
		return false
	}
	if lineContains(ring, p, tol) {
		return true
	}
	return n > 1 && onSegment(ring[n-1], ring[0], p, tol)
}
