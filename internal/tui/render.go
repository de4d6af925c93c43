package tui

import (
	"sort"
	"strings"

	"compactgeo/internal/geom"
)

// bounds is the data bbox with degenerate axes widened so that single points
// and axis-aligned lines still project.
func (m Model) bounds() (geom.BBox, bool) {
	if m.data.Empty() {
		return geom.BBox{}, false
	}
	bb := m.data.BBox
	w, h := bb.MaxX-bb.MinX, bb.MaxY-bb.MinY
	pad := max(w, h) / 2
	if pad == 0 {
		pad = 0.5
	}
	if w == 0 {
		bb.MinX, bb.MaxX = bb.MinX-pad, bb.MaxX+pad
	}
	if h == 0 {
		bb.MinY, bb.MaxY = bb.MinY-pad, bb.MaxY+pad
	}
	return bb, true
}

// normalize maps lon/lat into the zoomed unit square.
func (m Model) normalize(lon, lat float64) (float64, float64, bool) {
	bb, ok := m.bounds()
	if !ok {
		return 0, 0, false
	}
	nx := (lon - bb.MinX) / (bb.MaxX - bb.MinX)
	ny := (lat - bb.MinY) / (bb.MaxY - bb.MinY)
	return 0.5 + (nx-0.5)*m.zoom, 0.5 + (ny-0.5)*m.zoom, true
}

// cellToLonLat converts a map cell back to lon/lat using bbox, zoom and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	bb, ok := m.bounds()
	if !ok || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return bb.MinX + nx*(bb.MaxX-bb.MinX), bb.MinY + ny*(bb.MaxY-bb.MinY), true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(lon, lat)
	if !ok {
		return 0, 0, false
	}
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to cell coordinates.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(lon, lat)
	if !ok {
		return 0, 0, false
	}
	return int(zx*float64(w-1)) + m.offsetX, int((1.0-zy)*float64(h-1)) + m.offsetY, true
}

func (m Model) project(ring [][2]float64, w, h int) [][2]int {
	out := make([][2]int, 0, len(ring))
	for _, p := range ring {
		if x, y, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
			out = append(out, [2]int{x, y})
		}
	}
	return out
}

// fillRing fills a ring on the microgrid with the even-odd rule.
func fillRing(br *brailleBuf, ring [][2]int) {
	for y := 0; y < br.h*4; y++ {
		var xs []int
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if a[1] == b[1] {
				continue
			}
			if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(b[1]-a[1])
				xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1]; x++ {
				br.setPixel(x, y)
			}
		}
	}
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)

	if m.showPolys {
		for _, poly := range m.data.Polygons {
			var rings [][][2]int
			for _, ring := range poly {
				if r := m.project(ring, w, h); len(r) >= 3 {
					rings = append(rings, r)
				}
			}
			if len(rings) == 0 {
				continue
			}
			// holes are not cut out of the fill
			fillRing(br, rings[0])
			for _, r := range rings {
				for i := range r {
					a, b := r[i], r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	if m.showLines {
		for _, ls := range m.data.Lines {
			r := m.project(ls, w, h)
			for i := 1; i < len(r); i++ {
				br.drawLineMicro(r[i-1][0], r[i-1][1], r[i][0], r[i][1])
			}
			if len(r) == 1 {
				br.setPixel(r[0][0], r[0][1])
			}
		}
	}

	// standalone points only show when nothing else is drawn
	if m.showPoints && len(m.data.Lines) == 0 && len(m.data.Polygons) == 0 {
		for _, p := range m.project(m.data.Points, w, h) {
			br.setPixel(p[0], p[1])
		}
	}

	lines := br.toLines()
	if m.hovering {
		cx, cy := m.hoverMicX/2, m.hoverMicY/4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				lines[cy] = string(r[:cx]) + hoverStyle.Render("◯") + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}
