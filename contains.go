package geocontains

import "fmt"

// Contains reports whether g contains p using the default tolerance and
// depth limit. A nil geometry contains nothing. Geometry values of a type
// not declared by this package yield an *UnsupportedGeometryError.
func Contains(g Geometry, p Point) (bool, error) {
	return ContainsWith(g, p, DefaultOptions())
}

// ContainsWith is Contains with explicit options. Zero fields of opts take
// their defaults.
//
// The structure of g is checked before any coordinate is looked at, so an
// unsupported member anywhere in g fails the query even when an earlier
// member already contains p.
func ContainsWith(g Geometry, p Point, opts Options) (bool, error) {
	opts, err := opts.normalize()
	if err != nil {
		return false, err
	}
	if err := check(g, opts.MaxDepth, 0); err != nil {
		return false, err
	}
	return contains(g, p, opts.Tolerance), nil
}

// MustContains is like Contains but panics on error.
func MustContains(g Geometry, p Point) bool {
	ok, err := Contains(g, p)
	if err != nil {
		panic(err)
	}
	return ok
}

// Check walks g and reports the first member of an unsupported type or
// nesting deeper than maxDepth (zero means DefaultMaxDepth). Coordinates
// and ring shapes are not inspected.
func Check(g Geometry, maxDepth int) error {
	opts, err := Options{MaxDepth: maxDepth}.normalize()
	if err != nil {
		return err
	}
	return check(g, opts.MaxDepth, 0)
}

func check(g Geometry, maxDepth, depth int) error {
	switch geom := g.(type) {
	case nil, Sphere, Point, MultiPoint, LineString, MultiLineString, Polygon, MultiPolygon:
		return nil
	case GeometryCollection:
		if depth >= maxDepth {
			return ErrMaxDepthExceeded
		}
		for _, child := range geom {
			if err := check(child, maxDepth, depth+1); err != nil {
				return err
			}
		}
		return nil
	case Feature:
		if depth >= maxDepth {
			return ErrMaxDepthExceeded
		}
		return check(geom.Geometry, maxDepth, depth+1)
	case FeatureCollection:
		if depth >= maxDepth {
			return ErrMaxDepthExceeded
		}
		for _, feature := range geom {
			if err := check(feature, maxDepth, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return &UnsupportedGeometryError{Type: fmt.Sprintf("%T", g)}
	}
}

// contains expects g to have passed check.
func contains(g Geometry, p Point, tol Tolerance) bool {
	switch geom := g.(type) {
	case Sphere:
		return true
	case Point:
		return pointContains(geom, p, tol)
	case MultiPoint:
		return multiPointContains(geom, p, tol)
	case LineString:
		return lineContains(geom, p, tol)
	case MultiLineString:
		return multiLineContains(geom, p, tol)
	case Polygon:
		return polygonContains(geom, p, tol)
	case MultiPolygon:
		return multiPolygonContains(geom, p, tol)
	case GeometryCollection:
		for _, child := range geom {
			if contains(child, p, tol) {
				return true
			}
		}
	case Feature:
		return contains(geom.Geometry, p, tol)
	case FeatureCollection:
		for _, feature := range geom {
			if contains(feature, p, tol) {
				return true
			}
		}
	}
	return false
}
