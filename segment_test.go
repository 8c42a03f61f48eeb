package geocontains

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	testCases := []struct {
		a, b Point
		want float64
	}{
		{a: Pt(0, 0), b: Pt(0, 0), want: 0},
		{a: Pt(0, 0), b: Pt(90, 0), want: math.Pi / 2},
		{a: Pt(0, 0), b: Pt(180, 0), want: math.Pi},
		{a: Pt(0, 90), b: Pt(0, -90), want: math.Pi},
		{a: Pt(10, 20), b: Pt(-170, -20), want: math.Pi},
		{a: Pt(0, 0), b: Pt(0, 1), want: math.Pi / 180},
	}
	for _, tc := range testCases {
		have := distance(tc.a, tc.b)
		if math.Abs(have-tc.want) > 1e-12 {
			t.Fatalf("distance(%v, %v) => have %v, want %v", tc.a, tc.b, have, tc.want)
		}
	}
	// tiny separations keep their relative precision
	have := distance(Pt(0, 0), Pt(1e-9, 0))
	assert.InEpsilon(t, 1e-9*math.Pi/180, have, 1e-6)
}

func TestOnSegment(t *testing.T) {
	tol := DefaultOptions().Tolerance
	testCases := []struct {
		name    string
		a, b, p Point
		want    bool
	}{
		{name: "start", a: Pt(0, 0), b: Pt(10, 0), p: Pt(0, 0), want: true},
		{name: "end", a: Pt(0, 0), b: Pt(10, 0), p: Pt(10, 0), want: true},
		{name: "equator middle", a: Pt(0, 0), b: Pt(10, 0), p: Pt(5, 0), want: true},
		{name: "beyond end", a: Pt(0, 0), b: Pt(10, 0), p: Pt(11, 0), want: false},
		{name: "before start", a: Pt(0, 0), b: Pt(10, 0), p: Pt(-1, 0), want: false},
		{name: "parallel is not a great circle", a: Pt(0, 45), b: Pt(90, 45), p: Pt(45, 45), want: false},
		{name: "meridian", a: Pt(30, -60), b: Pt(30, 60), p: Pt(30, 0), want: true},
		{name: "degenerate same point", a: Pt(3, 4), b: Pt(3, 4), p: Pt(3, 4), want: true},
		{name: "degenerate other point", a: Pt(3, 4), b: Pt(3, 4), p: Pt(3, 5), want: false},
	}
	for _, tc := range testCases {
		if have := onSegment(tc.a, tc.b, tc.p, tol); have != tc.want {
			t.Fatalf("%s: onSegment(%v, %v, %v) => have %v, want %v", tc.name, tc.a, tc.b, tc.p, have, tc.want)
		}
	}
}

func TestOnSegmentDegenerate(t *testing.T) {
	tol := DefaultOptions().Tolerance
	v := Pt(10, 10)
	near := Pt(10, 10+0.5e-6*180/math.Pi)
	far := Pt(10, 10+2e-6*180/math.Pi)
	if !onSegment(v, v, near, tol) {
		t.Fatalf("onSegment(%v, %v, %v) => have false, want true", v, v, near)
	}
	if onSegment(v, v, far, tol) {
		t.Fatalf("onSegment(%v, %v, %v) => have true, want false", v, v, far)
	}
	// a repeated vertex inside a line is a zero length segment
	line := LineString{Pt(0, 0), v, v, Pt(20, 0)}
	assert.True(t, lineContains(line, near, tol))
	assert.False(t, lineContains(line, far, tol))
}

func TestOnSegmentInterpolated(t *testing.T) {
	tol := DefaultOptions().Tolerance
	arcs := [][2]Point{
		{Pt(0, 0), Pt(1, 2)},
		{Pt(-170, 20), Pt(170, 30)},
		{Pt(-30, -50), Pt(100, 40)},
		{Pt(0, 89), Pt(180, 89)},
	}
	for _, arc := range arcs {
		a, b := arc[0], arc[1]
		for i := 0; i <= 10; i++ {
			ti := float64(i) / 10
			p := Interpolate(a, b, ti)
			if !onSegment(a, b, p, tol) {
				t.Fatalf("onSegment(%v, %v) => false for t=%v (%v)", a, b, ti, p)
			}
		}
		for _, ti := range []float64{-0.5, -0.1, 1.1, 1.5} {
			p := Interpolate(a, b, ti)
			if onSegment(a, b, p, tol) {
				t.Fatalf("onSegment(%v, %v) => true for t=%v (%v)", a, b, ti, p)
			}
		}
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	a, b := Pt(12, -7), Pt(-40, 33)
	assert.InDelta(t, a.Lon, Interpolate(a, b, 0).Lon, 1e-9)
	assert.InDelta(t, b.Lon, Interpolate(a, b, 1).Lon, 1e-9)
	assert.InDelta(t, b.Lat, Interpolate(a, b, 1).Lat, 1e-9)
	mid := Interpolate(Pt(0, 0), Pt(90, 0), 0.5)
	assert.InDelta(t, 45, mid.Lon, 1e-9)
	assert.InDelta(t, 0, mid.Lat, 1e-9)
}
