package geojson

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/gjson"

	"github.com/mmadfox/geocontains"
)

type Options struct {
	// Rewind reverses the rings of polygons whose exterior runs
	// counter-clockwise in the plane, as RFC 7946 prescribes, so that the
	// polygon covers the area the file means rather than its complement.
	Rewind bool
}

var DefaultOptions = &Options{Rewind: true}

// Parse decodes GeoJSON text. Besides the RFC 7946 types it accepts the
// literal null and {"type":"Sphere"}, at the top level or nested in
// collections and features. A feature may carry a null geometry.
func Parse(data string, opts *Options) (geocontains.Geometry, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	if !gjson.Valid(data) {
		return nil, errInvalidData
	}
	c := converter{rewind: opts.Rewind}
	return c.parse(gjson.Parse(data))
}

// FromObject converts a parsed GeoJSON object into a geometry.
func FromObject(object geojson.Object, opts *Options) (geocontains.Geometry, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	c := converter{rewind: opts.Rewind}
	return c.object(object)
}

var errInvalidData = errors.New("geocontains/geojson: invalid data")

type converter struct {
	rewind bool
}

// parse walks the containers itself and leaves the leaf geometries to
// tidwall/geojson, which knows neither Sphere nor null members.
func (c converter) parse(r gjson.Result) (geocontains.Geometry, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}
	switch r.Get("type").String() {
	case "Sphere":
		return geocontains.Sphere{}, nil
	case "GeometryCollection":
		geometries := r.Get("geometries")
		if !geometries.IsArray() {
			return nil, fmt.Errorf("%w: geometries is not an array", errInvalidData)
		}
		members := geometries.Array()
		gc := make(geocontains.GeometryCollection, 0, len(members))
		for _, member := range members {
			g, err := c.parse(member)
			if err != nil {
				return nil, err
			}
			gc = append(gc, g)
		}
		return gc, nil
	case "Feature":
		g, err := c.parse(r.Get("geometry"))
		if err != nil {
			return nil, err
		}
		return makeFeature(r, g), nil
	case "FeatureCollection":
		features := r.Get("features")
		if !features.IsArray() {
			return nil, fmt.Errorf("%w: features is not an array", errInvalidData)
		}
		var errs *multierror.Error
		members := features.Array()
		fc := make(geocontains.FeatureCollection, 0, len(members))
		for i, member := range members {
			g, err := c.parse(member)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("feature #%d: %w", i, err))
				continue
			}
			feature, ok := g.(geocontains.Feature)
			if !ok {
				feature = geocontains.Feature{Geometry: g}
			}
			fc = append(fc, feature)
		}
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
		return fc, nil
	}
	object, err := geojson.Parse(r.Raw, geojson.DefaultParseOptions)
	if err != nil {
		return nil, fmt.Errorf("geocontains/geojson: %w", err)
	}
	return c.object(object)
}

func makeFeature(r gjson.Result, g geocontains.Geometry) geocontains.Feature {
	feature := geocontains.Feature{Geometry: g}
	if id := r.Get("id"); id.Exists() {
		feature.ID = id.String()
	}
	if props, ok := r.Get("properties").Value().(map[string]interface{}); ok {
		feature.Properties = props
	}
	return feature
}

func (c converter) object(object geojson.Object) (geocontains.Geometry, error) {
	switch o := object.(type) {
	case nil:
		return nil, nil
	case *geojson.Point:
		return point(o.Base()), nil
	case *geojson.MultiPoint:
		mp := make(geocontains.MultiPoint, 0, len(o.Children()))
		for _, child := range o.Children() {
			p, ok := child.(*geojson.Point)
			if !ok {
				return nil, unsupported(child)
			}
			mp = append(mp, point(p.Base()))
		}
		return mp, nil
	case *geojson.LineString:
		return geocontains.LineString(series(o.Base())), nil
	case *geojson.MultiLineString:
		mls := make(geocontains.MultiLineString, 0, len(o.Children()))
		for _, child := range o.Children() {
			line, ok := child.(*geojson.LineString)
			if !ok {
				return nil, unsupported(child)
			}
			mls = append(mls, series(line.Base()))
		}
		return mls, nil
	case *geojson.Polygon:
		return c.polygon(o.Base()), nil
	case *geojson.MultiPolygon:
		mp := make(geocontains.MultiPolygon, 0, len(o.Children()))
		for _, child := range o.Children() {
			poly, ok := child.(*geojson.Polygon)
			if !ok {
				return nil, unsupported(child)
			}
			mp = append(mp, c.polygon(poly.Base()))
		}
		return mp, nil
	case *geojson.Rect:
		return rect(o.Base()), nil
	case *geojson.GeometryCollection:
		gc := make(geocontains.GeometryCollection, 0, len(o.Children()))
		for _, child := range o.Children() {
			g, err := c.object(child)
			if err != nil {
				return nil, err
			}
			gc = append(gc, g)
		}
		return gc, nil
	case *geojson.Feature:
		return c.feature(o)
	case *geojson.FeatureCollection:
		return c.featureCollection(o)
	default:
		return nil, unsupported(object)
	}
}

func (c converter) feature(o *geojson.Feature) (geocontains.Feature, error) {
	g, err := c.object(o.Base())
	if err != nil {
		return geocontains.Feature{}, err
	}
	return makeFeature(gjson.Parse(o.JSON()), g), nil
}

// featureCollection converts every member and reports all failures at once.
func (c converter) featureCollection(o *geojson.FeatureCollection) (geocontains.FeatureCollection, error) {
	var errs *multierror.Error
	children := o.Children()
	fc := make(geocontains.FeatureCollection, 0, len(children))
	for i, child := range children {
		var (
			feature geocontains.Feature
			err     error
		)
		if f, ok := child.(*geojson.Feature); ok {
			feature, err = c.feature(f)
		} else {
			feature.Geometry, err = c.object(child)
		}
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("feature #%d: %w", i, err))
			continue
		}
		fc = append(fc, feature)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fc, nil
}

func (c converter) polygon(poly *geometry.Poly) geocontains.Polygon {
	if poly == nil || poly.Exterior == nil {
		return geocontains.Polygon{}
	}
	reverse := c.rewind && !poly.Exterior.Clockwise()
	rings := make(geocontains.Polygon, 0, 1+len(poly.Holes))
	rings = append(rings, ring(poly.Exterior, reverse))
	for _, hole := range poly.Holes {
		rings = append(rings, ring(hole, reverse))
	}
	return rings
}

type pointSeries interface {
	NumPoints() int
	PointAt(index int) geometry.Point
}

func series(s pointSeries) []geocontains.Point {
	points := make([]geocontains.Point, s.NumPoints())
	for i := range points {
		points[i] = point(s.PointAt(i))
	}
	return points
}

func ring(s pointSeries, reverse bool) geocontains.Ring {
	points := series(s)
	if reverse {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}

// rect returns the clockwise ring around a longitude/latitude box. Its sides
// are geodesics between the corners.
func rect(r geometry.Rect) geocontains.Polygon {
	return geocontains.Polygon{{
		{Lon: r.Min.X, Lat: r.Min.Y},
		{Lon: r.Min.X, Lat: r.Max.Y},
		{Lon: r.Max.X, Lat: r.Max.Y},
		{Lon: r.Max.X, Lat: r.Min.Y},
		{Lon: r.Min.X, Lat: r.Min.Y},
	}}
}

func point(p geometry.Point) geocontains.Point {
	return geocontains.Point{Lon: p.X, Lat: p.Y}
}

func unsupported(object geojson.Object) error {
	return fmt.Errorf("geocontains/geojson: %w",
		&geocontains.UnsupportedGeometryError{Type: fmt.Sprintf("%T", object)})
}
