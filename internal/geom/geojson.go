package geom

import (
	"encoding/json"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// LoadGeo reads a GeoJSON file and returns Data (points, lines, polygons).
func LoadGeo(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON accepts a FeatureCollection, a Feature or a bare geometry. A
// third coordinate is kept as the measure.
func ParseGeoJSON(data []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Data{}, errors.Wrap(err, "geojson")
	}
	var d Data
	switch head.Type {
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Data{}, errors.Wrap(err, "geojson feature collection")
		}
		for _, f := range fc.Features {
			addGeometry(&d, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Data{}, errors.Wrap(err, "geojson feature")
		}
		addGeometry(&d, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Data{}, errors.Wrap(err, "geojson geometry")
		}
		addGeometry(&d, g)
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

func addGeometry(d *Data, g *geojson.Geometry) {
	if g == nil {
		return
	}
	switch g.Type {
	case geojson.GeometryPoint:
		if p, ok := geoPoint(g.Point); ok {
			d.AddPoints([]Point{p})
		}
	case geojson.GeometryMultiPoint:
		d.AddPoints(geoPoints(g.MultiPoint))
	case geojson.GeometryLineString:
		d.AddLine(geoPoints(g.LineString))
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			d.AddLine(geoPoints(ls))
		}
	case geojson.GeometryPolygon:
		d.AddPolygon(geoRings(g.Polygon))
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			d.AddPolygon(geoRings(poly))
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			addGeometry(d, sub)
		}
	}
}

func geoPoint(c []float64) (Point, bool) {
	if len(c) < 2 {
		return Point{}, false
	}
	p := Point{X: c[0], Y: c[1]}
	if len(c) > 2 {
		p.M = c[2]
	}
	return p, true
}

func geoPoints(cs [][]float64) []Point {
	out := make([]Point, 0, len(cs))
	for _, c := range cs {
		if p, ok := geoPoint(c); ok {
			out = append(out, p)
		}
	}
	return out
}

func geoRings(rings [][][]float64) [][]Point {
	out := make([][]Point, 0, len(rings))
	for _, r := range rings {
		out = append(out, geoPoints(r))
	}
	return out
}
