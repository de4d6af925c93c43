package measure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"compactgeo/internal/geom"
)

func TestDistance(t *testing.T) {
	// One degree of longitude on the equator.
	d := Distance(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})
	require.InDelta(t, 111194.93, float64(d), 0.1)
	require.Zero(t, Distance(geom.Point{X: 5, Y: 5}, geom.Point{X: 5, Y: 5}))
}

func TestAssign(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0, M: 9}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	got := Assign(pts)
	require.Equal(t, 9.0, pts[0].M, "input must not change")
	require.Zero(t, got[0].M)
	require.InDelta(t, float64(Of(pts)), got[2].M, 1e-6)
	require.InDelta(t, 2*got[1].M, got[2].M, 1e-6)
	require.Empty(t, Assign(nil))
}

func TestShapeLength(t *testing.T) {
	pl := geom.NewPolylineFromParts([][]geom.Point{{{X: 0}, {X: 1}}, {{X: 10}, {X: 11}}})
	require.InDelta(t, 2*111194.93, float64(Shape(pl)), 0.5)
	require.Zero(t, Shape(geom.Point{X: 3, Y: 4}))
}

func TestRingArea(t *testing.T) {
	sq := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	a := RingArea(sq)
	require.InDelta(t, 1.2364e10, float64(a), 1e8)

	rev := []geom.Point{sq[4], sq[3], sq[2], sq[1], sq[0]}
	require.InDelta(t, float64(a), float64(RingArea(rev)), 1)
	require.Zero(t, RingArea(sq[:2]))
}

func TestPolygonArea(t *testing.T) {
	shell := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0}}
	hole := []geom.Point{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1.5, Y: 1.5}, {X: 0.5, Y: 1.5}, {X: 0.5, Y: 0.5}}
	got := PolygonArea([][]geom.Point{shell, hole})
	require.InDelta(t, float64(RingArea(shell)-RingArea(hole)), float64(got), 1)
	require.Less(t, float64(got), float64(RingArea(shell)))
	require.Zero(t, PolygonArea(nil))

	require.True(t, IsRing(shell))
	require.False(t, IsRing(shell[:4]))
	require.False(t, IsRing([]geom.Point{{}, {}}))
}

func TestStrings(t *testing.T) {
	require.Equal(t, "1.5 km", Length(1500).String())
	require.Equal(t, "12 m", Length(12).String())
	require.Equal(t, "500 mm", Length(0.5).String())
	require.Equal(t, "2 km²", Area(2e6).String())
	require.Equal(t, "1,234.5 m²", Area(1234.5).String())
}
