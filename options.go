package geocontains

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxDepth bounds the nesting of collections and features.
const DefaultMaxDepth = 64

var (
	ErrUnsupportedGeometry = errors.New("geocontains: unsupported geometry type")
	ErrMaxDepthExceeded    = errors.New("geocontains: maximum nesting depth exceeded")
	ErrInvalidTolerance    = errors.New("geocontains: invalid tolerance")
	ErrInvalidMaxDepth     = errors.New("geocontains: invalid maximum depth")
)

// UnsupportedGeometryError is returned for geometry values that are not one
// of the kinds declared by this package.
type UnsupportedGeometryError struct {
	Type string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("geocontains: unsupported geometry type %s", e.Type)
}

func (e *UnsupportedGeometryError) Unwrap() error {
	return ErrUnsupportedGeometry
}

// Tolerance holds the angular thresholds, in radians, shared by the segment
// and ring tests.
type Tolerance struct {
	// Epsilon is the cross-track tolerance of geodesic segments.
	Epsilon float64 `yaml:"epsilon"`
	// Coincident is the distance under which two points are equal.
	// Zero means Epsilon squared.
	Coincident float64 `yaml:"coincident"`
}

// Options configures a single containment query. The zero value uses
// Epsilon and DefaultMaxDepth.
type Options struct {
	Tolerance Tolerance
	MaxDepth  int
}

func DefaultOptions() Options {
	return Options{
		Tolerance: Tolerance{Epsilon: Epsilon, Coincident: Epsilon2},
		MaxDepth:  DefaultMaxDepth,
	}
}

func (o Options) normalize() (Options, error) {
	eps := o.Tolerance.Epsilon
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return o, fmt.Errorf("%w: epsilon %v", ErrInvalidTolerance, eps)
	}
	if eps == 0 {
		o.Tolerance.Epsilon = Epsilon
	}
	co := o.Tolerance.Coincident
	if math.IsNaN(co) || math.IsInf(co, 0) || co < 0 {
		return o, fmt.Errorf("%w: coincident %v", ErrInvalidTolerance, co)
	}
	if co == 0 {
		o.Tolerance.Coincident = o.Tolerance.Epsilon * o.Tolerance.Epsilon
	}
	switch {
	case o.MaxDepth < 0:
		return o, fmt.Errorf("%w: %d", ErrInvalidMaxDepth, o.MaxDepth)
	case o.MaxDepth == 0:
		o.MaxDepth = DefaultMaxDepth
	}
	return o, nil
}

func (t Tolerance) epsilon2() float64 {
	return t.Epsilon * t.Epsilon
}
