// Package measure computes route lengths on a spherical earth. Points are read
// as X = longitude, Y = latitude in degrees.
package measure

import (
	"github.com/dustin/go-humanize"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"compactgeo/internal/geom"
)

// radius of the sphere used for every measurement, in metres
const radius = 6371e3

// Length is a distance in metres.
type Length float64

// Area is a surface in square metres.
type Area float64

func arc(a s1.Angle) Length { return Length(a.Radians() * radius) }

func latLng(p geom.Point) s2.LatLng {
	return s2.LatLngFromDegrees(p.Y, p.X)
}

// Distance is the great-circle distance between a and b.
func Distance(a, b geom.Point) Length {
	return arc(latLng(a).Distance(latLng(b)))
}

// Of returns the length of the path through points.
func Of(points []geom.Point) Length {
	var l Length
	for i := 1; i < len(points); i++ {
		l += Distance(points[i-1], points[i])
	}
	return l
}

// Shape sums the lengths of every part of s.
func Shape(s geom.Shape) Length {
	var l Length
	for _, part := range geom.Parts(s) {
		l += Of(part)
	}
	return l
}

// Assign returns a copy of points whose M is the distance travelled from the
// first point.
func Assign(points []geom.Point) []geom.Point {
	out := make([]geom.Point, len(points))
	var l Length
	for i, p := range points {
		if i > 0 {
			l += Distance(points[i-1], p)
		}
		p.M = float64(l)
		out[i] = p
	}
	return out
}

// RingArea is the area enclosed by a ring. The closing vertex may be repeated
// and orientation does not matter.
func RingArea(ring []geom.Point) Area {
	if n := len(ring); n > 1 && ring[0].X == ring[n-1].X && ring[0].Y == ring[n-1].Y {
		ring = ring[:n-1]
	}
	if len(ring) < 3 {
		return 0
	}
	pts := make([]s2.Point, len(ring))
	for i, p := range ring {
		pts[i] = s2.PointFromLatLng(latLng(p))
	}
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return Area(loop.Area() * radius * radius)
}

// PolygonArea is the area of a polygon whose first ring is the shell and
// whose remaining rings are holes.
func PolygonArea(rings [][]geom.Point) Area {
	if len(rings) == 0 {
		return 0
	}
	a := RingArea(rings[0])
	for _, hole := range rings[1:] {
		a -= RingArea(hole)
	}
	return max(a, 0)
}

// IsRing reports whether points close on their first vertex with at least
// four points.
func IsRing(points []geom.Point) bool {
	n := len(points)
	return n >= 4 && points[0].X == points[n-1].X && points[0].Y == points[n-1].Y
}

// String uses SI prefixes on metres, e.g. "1.5 km" or "500 mm".
func (l Length) String() string {
	return humanize.SIWithDigits(float64(l), 3, "m")
}

func (a Area) String() string {
	if a >= 1e6 {
		return humanize.CommafWithDigits(float64(a)/1e6, 3) + " km²"
	}
	return humanize.CommafWithDigits(float64(a), 1) + " m²"
}
