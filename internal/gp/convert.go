package gp

import (
	"github.com/pkg/errors"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
)

func ptr(v float64) *float64 { return &v }

func coords(p geom.Point, withM bool) []float64 {
	if withM {
		return []float64{p.X, p.Y, p.M}
	}
	return []float64{p.X, p.Y}
}

func hasMeasures(pts []geom.Point) bool {
	for _, p := range pts {
		if p.M != 0 {
			return true
		}
	}
	return false
}

func partsJSON(pc geom.PolyCurve, withM bool) [][][]float64 {
	out := make([][][]float64, 0, pc.NumGroups())
	for i := 0; i < pc.NumGroups(); i++ {
		g := pc.GroupPoints(i)
		path := make([][]float64, len(g))
		for j, p := range g {
			path[j] = coords(p, withM)
		}
		out = append(out, path)
	}
	return out
}

// NewGeometry converts a shape to its JSON geometry. M is written only when a
// point carries a non-zero measure.
func NewGeometry(s geom.Shape) (*Geometry, GeometryType, error) {
	switch v := s.(type) {
	case geom.Point:
		g := &Geometry{X: ptr(v.X), Y: ptr(v.Y)}
		if v.M != 0 {
			g.M = ptr(v.M)
			g.HasM = true
		}
		return g, GeometryPoint, nil
	case *geom.Polyline:
		withM := hasMeasures(v.Points())
		return &Geometry{Paths: partsJSON(v.PolyCurve, withM), HasM: withM}, GeometryPolyline, nil
	case *geom.Polygon:
		withM := hasMeasures(v.Points())
		return &Geometry{Rings: partsJSON(v.PolyCurve, withM), HasM: withM}, GeometryPolygon, nil
	case geom.Envelope:
		if v.IsEmpty() {
			return nil, GeometryUnknown, errors.New("gp: empty envelope")
		}
		return &Geometry{XMin: ptr(v.Left), YMin: ptr(v.Bottom), XMax: ptr(v.Right), YMax: ptr(v.Top)}, GeometryEnvelope, nil
	}
	return nil, GeometryUnknown, errors.Wrapf(ErrUnsupportedGeometryType, "%T", s)
}

func pointsJSON(path [][]float64, hasM bool) ([]geom.Point, error) {
	out := make([]geom.Point, len(path))
	for i, c := range path {
		if len(c) < 2 {
			return nil, errors.Errorf("gp: vertex %d has %d ordinates", i, len(c))
		}
		out[i] = geom.Point{X: c[0], Y: c[1]}
		// With hasM the last ordinate is M (x,y,m or x,y,z,m).
		if hasM && len(c) > 2 {
			out[i].M = c[len(c)-1]
		}
	}
	return out, nil
}

func partsFromJSON(parts [][][]float64, hasM bool) ([][]geom.Point, error) {
	out := make([][]geom.Point, 0, len(parts))
	for i, part := range parts {
		pts, err := pointsJSON(part, hasM)
		if err != nil {
			return nil, errors.Wrapf(err, "part %d", i)
		}
		out = append(out, pts)
	}
	return out, nil
}

// Shape converts g, read as geometry type t, to a shape.
func (g *Geometry) Shape(t GeometryType) (geom.Shape, error) {
	if g == nil {
		return nil, errors.New("gp: missing geometry")
	}
	switch t {
	case GeometryPoint:
		if g.X == nil || g.Y == nil {
			return nil, errors.New("gp: point without x/y")
		}
		p := geom.Point{X: *g.X, Y: *g.Y}
		if g.M != nil {
			p.M = *g.M
		}
		return p, nil
	case GeometryPolyline:
		parts, err := partsFromJSON(g.Paths, g.HasM)
		if err != nil {
			return nil, err
		}
		return geom.NewPolylineFromParts(parts), nil
	case GeometryPolygon:
		parts, err := partsFromJSON(g.Rings, g.HasM)
		if err != nil {
			return nil, err
		}
		return geom.NewPolygonFromParts(parts), nil
	case GeometryEnvelope:
		if g.XMin == nil || g.YMin == nil || g.XMax == nil || g.YMax == nil {
			return nil, errors.New("gp: envelope without bounds")
		}
		return geom.Envelope{Left: *g.XMin, Bottom: *g.YMin, Right: *g.XMax, Top: *g.YMax}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedGeometryType, "%v", t)
}

// NewCompressedFeature stores points as a compact geometry string.
func NewCompressedFeature(points []geom.Point, attrs map[string]any) (Feature, error) {
	s, err := compact.Encode(points)
	if err != nil {
		return Feature{}, err
	}
	return Feature{CompressedGeometry: s, Attributes: attrs}, nil
}

// Shape returns the feature's shape, decoding the compressed geometry when
// present. A compressed string always holds a single path or ring.
func (f Feature) Shape(t GeometryType) (geom.Shape, error) {
	if f.CompressedGeometry == "" {
		return f.Geometry.Shape(t)
	}
	pts, err := compact.Decode(f.CompressedGeometry)
	if err != nil {
		return nil, err
	}
	switch t {
	case GeometryPolyline:
		return geom.NewPolylineFromPoints(pts), nil
	case GeometryPolygon:
		return geom.NewPolygonFromPoints(pts), nil
	case GeometryPoint:
		if len(pts) != 1 {
			return nil, errors.Errorf("gp: compressed point has %d vertices", len(pts))
		}
		return pts[0], nil
	}
	return nil, errors.Wrapf(ErrUnsupportedGeometryType, "compressed %v", t)
}

// NewRecordSet builds a record set from shapes of one type.
func NewRecordSet(shapes []geom.Shape, sr *SpatialReference) (*RecordSet, error) {
	rs := &RecordSet{SpatialReference: sr, Features: make([]Feature, 0, len(shapes))}
	for i, s := range shapes {
		g, t, err := NewGeometry(s)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d", i)
		}
		if i == 0 {
			rs.GeometryType = t
		} else if t != rs.GeometryType {
			return nil, errors.Errorf("gp: shape %d is %v, record set is %v", i, t, rs.GeometryType)
		}
		rs.HasM = rs.HasM || g.HasM
		rs.Features = append(rs.Features, Feature{Geometry: g})
	}
	return rs, nil
}

// Shapes decodes every feature in order.
func (rs *RecordSet) Shapes() ([]geom.Shape, error) {
	if rs.GeometryType == GeometryUnknown {
		return nil, errors.Wrap(ErrUnsupportedGeometryType, "record set has no geometry type")
	}
	out := make([]geom.Shape, 0, len(rs.Features))
	for i, f := range rs.Features {
		if f.Geometry != nil && !f.Geometry.HasM && rs.HasM {
			g := *f.Geometry
			g.HasM = true
			f.Geometry = &g
		}
		s, err := f.Shape(rs.GeometryType)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		out = append(out, s)
	}
	return out, nil
}
