package geom

// Point is a planar coordinate with an optional measure.
type Point struct {
	X float64
	Y float64
	M float64
}

// Extent returns the degenerate envelope holding only p.
func (p Point) Extent() Envelope {
	return EmptyEnvelope().Union(p)
}

// Envelope is a bounding box. Top holds the maximum Y, Bottom the minimum.
type Envelope struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// EmptyEnvelope returns the sentinel that the first Union replaces.
func EmptyEnvelope() Envelope {
	return Envelope{Left: 1, Bottom: 1, Right: 0, Top: 0}
}

func (e Envelope) IsEmpty() bool {
	return e.Left > e.Right || e.Bottom > e.Top
}

// Union returns e widened to contain p.
func (e Envelope) Union(p Point) Envelope {
	if e.IsEmpty() {
		return Envelope{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y}
	}
	e.Left = min(e.Left, p.X)
	e.Right = max(e.Right, p.X)
	e.Bottom = min(e.Bottom, p.Y)
	e.Top = max(e.Top, p.Y)
	return e
}

// UnionEnvelope returns e widened to contain o.
func (e Envelope) UnionEnvelope(o Envelope) Envelope {
	if o.IsEmpty() {
		return e
	}
	if e.IsEmpty() {
		return o
	}
	return Envelope{
		Left:   min(e.Left, o.Left),
		Top:    max(e.Top, o.Top),
		Right:  max(e.Right, o.Right),
		Bottom: min(e.Bottom, o.Bottom),
	}
}

func (e Envelope) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.Right - e.Left
}

func (e Envelope) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.Top - e.Bottom
}

// Extent lets an Envelope be used as a Shape.
func (e Envelope) Extent() Envelope { return e }

// BBox converts to the renderer's box.
func (e Envelope) BBox() BBox {
	if e.IsEmpty() {
		return BBox{}
	}
	return BBox{MinX: e.Left, MinY: e.Bottom, MaxX: e.Right, MaxY: e.Top}
}

// Ring returns the closed outline of e, counter-clockwise from bottom-left.
func (e Envelope) Ring() []Point {
	if e.IsEmpty() {
		return nil
	}
	return []Point{
		{X: e.Left, Y: e.Bottom},
		{X: e.Right, Y: e.Bottom},
		{X: e.Right, Y: e.Top},
		{X: e.Left, Y: e.Top},
		{X: e.Left, Y: e.Bottom},
	}
}

// Shape is any geometry with an extent: Point, Envelope, *Polyline or *Polygon.
type Shape interface {
	Extent() Envelope
}

// Parts returns the point groups of s. A Point is one part of one point and an
// Envelope is its closed ring.
func Parts(s Shape) [][]Point {
	switch v := s.(type) {
	case Point:
		return [][]Point{{v}}
	case Envelope:
		if r := v.Ring(); r != nil {
			return [][]Point{r}
		}
		return nil
	case *Polyline:
		return v.parts()
	case *Polygon:
		return v.parts()
	}
	return nil
}
