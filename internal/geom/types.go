package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data is a geometry container for rendering. Every coordinate added to it is
// also kept, with its measure, in Vertices; Groups partitions Vertices into the
// parts that were added (one per line, ring or point batch).
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox

	Vertices []Point
	Groups   []int
}

// Empty reports whether nothing has been added.
func (d Data) Empty() bool {
	return len(d.Vertices) == 0
}

func (d *Data) extend(p Point) {
	if len(d.Vertices) == 0 {
		d.BBox = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	} else {
		d.BBox.MinX = min(d.BBox.MinX, p.X)
		d.BBox.MinY = min(d.BBox.MinY, p.Y)
		d.BBox.MaxX = max(d.BBox.MaxX, p.X)
		d.BBox.MaxY = max(d.BBox.MaxY, p.Y)
	}
	d.Vertices = append(d.Vertices, p)
}

func (d *Data) addGroup(pts []Point) {
	for _, p := range pts {
		d.extend(p)
	}
	d.Groups = append(d.Groups, len(pts))
}

// AddPoints adds a batch of standalone points as one part.
func (d *Data) AddPoints(pts []Point) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		d.Points = append(d.Points, [2]float64{p.X, p.Y})
	}
	d.addGroup(pts)
}

// AddLine adds one path.
func (d *Data) AddLine(pts []Point) {
	if len(pts) == 0 {
		return
	}
	d.Lines = append(d.Lines, xy(pts))
	d.addGroup(pts)
}

// AddPolygon adds one polygon; each ring becomes its own part.
func (d *Data) AddPolygon(rings [][]Point) {
	var poly [][][2]float64
	for _, r := range rings {
		if len(r) == 0 {
			continue
		}
		poly = append(poly, xy(r))
		d.addGroup(r)
	}
	if len(poly) > 0 {
		d.Polygons = append(d.Polygons, poly)
	}
}

// AddShape adds a decoded shape using the layer that matches its type.
func (d *Data) AddShape(s Shape) {
	switch v := s.(type) {
	case Point:
		d.AddPoints([]Point{v})
	case *Polyline:
		for i := 0; i < v.NumGroups(); i++ {
			d.AddLine(v.GroupPoints(i))
		}
	case *Polygon:
		rings := make([][]Point, 0, v.NumGroups())
		for i := 0; i < v.NumGroups(); i++ {
			rings = append(rings, v.GroupPoints(i))
		}
		d.AddPolygon(rings)
	case Envelope:
		d.AddPolygon([][]Point{v.Ring()})
	}
}

// Polyline returns every loaded part as one poly curve.
func (d Data) Polyline() (*Polyline, error) {
	return NewPolyline(d.Groups, d.Vertices)
}

func xy(pts []Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
