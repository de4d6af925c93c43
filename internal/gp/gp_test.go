package gp

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
)

func TestGeometryTypeNames(t *testing.T) {
	for _, gt := range []GeometryType{GeometryPoint, GeometryPolyline, GeometryPolygon, GeometryEnvelope} {
		got, err := ParseGeometryType(gt.JSONName())
		require.NoError(t, err)
		require.Equal(t, gt, got)
	}
	_, err := ParseGeometryType("esriGeometryMultipatch")
	require.True(t, errors.Is(err, ErrUnsupportedGeometryType))
	require.Equal(t, "unknown", GeometryUnknown.String())

	_, err = json.Marshal(GeometryUnknown)
	require.Error(t, err)
}

func TestRecordSetJSON(t *testing.T) {
	body := `{
	  "geometryType": "esriGeometryPolyline",
	  "spatialReference": {"wkid": 4326},
	  "hasM": true,
	  "features": [
	    {"attributes": {"Name": "Route 1"},
	     "geometry": {"paths": [[[-117.2, 34.05, 0], [-117.1, 34.06, 12.5]]]}}
	  ]
	}`
	var rs RecordSet
	require.NoError(t, json.Unmarshal([]byte(body), &rs))
	require.Equal(t, GeometryPolyline, rs.GeometryType)
	require.Equal(t, 4326, rs.SpatialReference.WKID)

	shapes, err := rs.Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	pl := shapes[0].(*geom.Polyline)
	require.Equal(t, []geom.Point{{X: -117.2, Y: 34.05}, {X: -117.1, Y: 34.06, M: 12.5}}, pl.Points())
}

func TestUnsupportedRecordSet(t *testing.T) {
	var rs RecordSet
	err := json.Unmarshal([]byte(`{"geometryType":"esriGeometryMultiPatch","features":[]}`), &rs)
	require.True(t, errors.Is(err, ErrUnsupportedGeometryType))

	_, err = (&RecordSet{}).Shapes()
	require.True(t, errors.Is(err, ErrUnsupportedGeometryType))
}

func TestShapeRoundTrip(t *testing.T) {
	shapes := []geom.Shape{
		geom.Point{X: 1, Y: 2},
		geom.Point{X: 1, Y: 2, M: 3},
		geom.NewPolylineFromParts([][]geom.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}, {{X: 5, Y: 5, M: 2}}}),
		geom.NewPolygonFromPoints([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}),
		geom.Envelope{Left: -1, Top: 2, Right: 3, Bottom: -4},
	}
	for _, s := range shapes {
		g, gt, err := NewGeometry(s)
		require.NoError(t, err)

		b, err := json.Marshal(g)
		require.NoError(t, err)
		var back Geometry
		require.NoError(t, json.Unmarshal(b, &back))

		got, err := back.Shape(gt)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestCompressedFeature(t *testing.T) {
	pts := []geom.Point{{X: -117.19, Y: 34.05, M: 0}, {X: -117.18, Y: 34.06, M: 1.25}}
	f, err := NewCompressedFeature(pts, map[string]any{"Name": "Route 1"})
	require.NoError(t, err)
	require.NotEmpty(t, f.CompressedGeometry)

	s, err := f.Shape(GeometryPolyline)
	require.NoError(t, err)
	got := s.(*geom.Polyline).Points()
	require.Len(t, got, 2)
	h, err := compact.DecodeHeader(f.CompressedGeometry)
	require.NoError(t, err)
	for i := range pts {
		require.InDelta(t, pts[i].X, got[i].X, 1/h.XYMultiplier)
		require.InDelta(t, pts[i].Y, got[i].Y, 1/h.XYMultiplier)
		require.InDelta(t, pts[i].M, got[i].M, compact.MPrecision)
	}

	_, err = Feature{CompressedGeometry: "+0+9"}.Shape(GeometryPolyline)
	require.True(t, errors.Is(err, compact.ErrUnsupportedVersion))

	_, err = f.Shape(GeometryEnvelope)
	require.True(t, errors.Is(err, ErrUnsupportedGeometryType))
}

func TestNewRecordSet(t *testing.T) {
	rs, err := NewRecordSet([]geom.Shape{geom.Point{X: 1, Y: 1}, geom.Point{X: 2, Y: 2, M: 1}}, &SpatialReference{WKID: 4326})
	require.NoError(t, err)
	require.Equal(t, GeometryPoint, rs.GeometryType)
	require.True(t, rs.HasM)

	b, err := json.Marshal(rs)
	require.NoError(t, err)
	require.Contains(t, string(b), `"geometryType":"esriGeometryPoint"`)

	_, err = NewRecordSet([]geom.Shape{geom.Point{}, geom.NewPolylineFromPoints(nil)}, nil)
	require.Error(t, err)
}
