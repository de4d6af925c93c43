package geom

import (
	"github.com/pkg/errors"
)

// ErrGroupMismatch is returned when group sizes do not partition the points.
var ErrGroupMismatch = errors.New("poly: group sizes do not match point count")

// PolyCurve is an ordered point array split into contiguous groups (paths or
// rings). groups[i] is the number of points in group i.
type PolyCurve struct {
	groups []int
	points []Point
	extent Envelope
}

func newPolyCurve(groups []int, points []Point) (PolyCurve, error) {
	sum := 0
	for i, g := range groups {
		if g < 0 {
			return PolyCurve{}, errors.Wrapf(ErrGroupMismatch, "group %d has negative size %d", i, g)
		}
		sum += g
	}
	if sum != len(points) {
		return PolyCurve{}, errors.Wrapf(ErrGroupMismatch, "groups sum to %d, have %d points", sum, len(points))
	}
	pc := PolyCurve{
		groups: append([]int(nil), groups...),
		points: append([]Point(nil), points...),
		extent: EmptyEnvelope(),
	}
	for _, p := range pc.points {
		pc.extent = pc.extent.Union(p)
	}
	return pc, nil
}

func singleGroup(points []Point) []int {
	if len(points) == 0 {
		return nil
	}
	return []int{len(points)}
}

// Points returns a copy of all points in order.
func (pc PolyCurve) Points() []Point { return append([]Point(nil), pc.points...) }

// Groups returns a copy of the group sizes.
func (pc PolyCurve) Groups() []int { return append([]int(nil), pc.groups...) }

func (pc PolyCurve) NumGroups() int { return len(pc.groups) }

func (pc PolyCurve) NumPoints() int { return len(pc.points) }

// Extent is the union of all points, computed at construction.
func (pc PolyCurve) Extent() Envelope { return pc.extent }

// GroupPoints returns the points of group i. It panics if i is out of range.
func (pc PolyCurve) GroupPoints(i int) []Point {
	start := 0
	for _, g := range pc.groups[:i] {
		start += g
	}
	return append([]Point(nil), pc.points[start:start+pc.groups[i]]...)
}

func (pc PolyCurve) parts() [][]Point {
	out := make([][]Point, 0, len(pc.groups))
	start := 0
	for _, g := range pc.groups {
		out = append(out, pc.points[start:start+g:start+g])
		start += g
	}
	return out
}

// Polyline is a PolyCurve whose groups are open paths.
type Polyline struct {
	PolyCurve
}

// Polygon is a PolyCurve whose groups are rings.
type Polygon struct {
	PolyCurve
}

func NewPolyline(groups []int, points []Point) (*Polyline, error) {
	pc, err := newPolyCurve(groups, points)
	if err != nil {
		return nil, err
	}
	return &Polyline{pc}, nil
}

// NewPolylineFromPoints builds a polyline with a single path.
func NewPolylineFromPoints(points []Point) *Polyline {
	pl, _ := NewPolyline(singleGroup(points), points)
	return pl
}

// NewPolylineFromParts builds a polyline with one group per part.
func NewPolylineFromParts(parts [][]Point) *Polyline {
	groups, points := flatten(parts)
	pl, _ := NewPolyline(groups, points)
	return pl
}

func NewPolygon(groups []int, points []Point) (*Polygon, error) {
	pc, err := newPolyCurve(groups, points)
	if err != nil {
		return nil, err
	}
	return &Polygon{pc}, nil
}

// NewPolygonFromPoints builds a polygon with a single ring.
func NewPolygonFromPoints(points []Point) *Polygon {
	pg, _ := NewPolygon(singleGroup(points), points)
	return pg
}

// NewPolygonFromParts builds a polygon with one ring per part.
func NewPolygonFromParts(parts [][]Point) *Polygon {
	groups, points := flatten(parts)
	pg, _ := NewPolygon(groups, points)
	return pg
}

func flatten(parts [][]Point) ([]int, []Point) {
	groups := make([]int, 0, len(parts))
	var points []Point
	for _, p := range parts {
		groups = append(groups, len(p))
		points = append(points, p...)
	}
	return groups, points
}
