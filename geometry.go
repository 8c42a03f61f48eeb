package geocontains

import "fmt"

// Kind identifies the concrete type of a Geometry.
type Kind int

const (
	KindPoint Kind = iota + 1
	KindMultiPoint
	KindLineString
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
	KindGeometryCollection
	KindSphere
	KindFeature
	KindFeatureCollection
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindMultiPoint:
		return "MultiPoint"
	case KindLineString:
		return "LineString"
	case KindMultiLineString:
		return "MultiLineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiPolygon:
		return "MultiPolygon"
	case KindGeometryCollection:
		return "GeometryCollection"
	case KindSphere:
		return "Sphere"
	case KindFeature:
		return "Feature"
	case KindFeatureCollection:
		return "FeatureCollection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Geometry is a closed set of shapes on the sphere. A nil Geometry is the
// null geometry and contains nothing.
type Geometry interface {
	Kind() Kind
	geometry()
}

var (
	_ Geometry = Point{}
	_ Geometry = MultiPoint{}
	_ Geometry = LineString{}
	_ Geometry = MultiLineString{}
	_ Geometry = Polygon{}
	_ Geometry = MultiPolygon{}
	_ Geometry = GeometryCollection{}
	_ Geometry = Sphere{}
	_ Geometry = Feature{}
	_ Geometry = FeatureCollection{}
)

// Point is a position in degrees. Values outside the usual longitude and
// latitude ranges are taken as literal angles.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func Pt(lon, lat float64) Point {
	return Point{Lon: lon, Lat: lat}
}

func (p Point) String() string {
	return fmt.Sprintf("[%g, %g]", p.Lon, p.Lat)
}

type MultiPoint []Point

// LineString is a chain of geodesic segments between consecutive vertices.
type LineString []Point

type MultiLineString []LineString

// Ring is one closed boundary of a polygon. The closing vertex may be
// omitted, the last vertex is always joined to the first one.
type Ring []Point

// Polygon holds the exterior ring at index 0 followed by its holes.
//
// The interior of a ring is the area on the right-hand side of travel, so a
// small exterior ring is clockwise when drawn with north up. The same ring
// in the opposite direction describes the rest of the sphere.
type Polygon []Ring

type MultiPolygon []Polygon

type GeometryCollection []Geometry

// Sphere is the whole sphere.
type Sphere struct{}

// Feature wraps a geometry with an identifier and free-form properties.
// Only Geometry takes part in containment, it may be nil.
type Feature struct {
	ID         string
	Geometry   Geometry
	Properties map[string]interface{}
}

type FeatureCollection []Feature

func (Point) Kind() Kind              { return KindPoint }
func (MultiPoint) Kind() Kind         { return KindMultiPoint }
func (LineString) Kind() Kind         { return KindLineString }
func (MultiLineString) Kind() Kind    { return KindMultiLineString }
func (Polygon) Kind() Kind            { return KindPolygon }
func (MultiPolygon) Kind() Kind       { return KindMultiPolygon }
func (GeometryCollection) Kind() Kind { return KindGeometryCollection }
func (Sphere) Kind() Kind             { return KindSphere }
func (Feature) Kind() Kind            { return KindFeature }
func (FeatureCollection) Kind() Kind  { return KindFeatureCollection }

func (Point) geometry()              {}
func (MultiPoint) geometry()         {}
func (LineString) geometry()         {}
func (MultiLineString) geometry()    {}
func (Polygon) geometry()            {}
func (MultiPolygon) geometry()       {}
func (GeometryCollection) geometry() {}
func (Sphere) geometry()             {}
func (Feature) geometry()            {}
func (FeatureCollection) geometry()  {}
