package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"compactgeo/internal/compact"
	"compactgeo/internal/geom"
	"compactgeo/internal/measure"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.frame().contentH-2)
		}
	case tea.KeyMsg:
		// while the list filters, keys belong to it
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.handleKey(msg.String()) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		if strings.TrimSpace(m.ta.Value()) == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if m.loadText(m.ta.Value()) {
			m.pasteMode = false
			m.ta.Blur()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a view-mode key and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	switch key {
	case "ctrl+c", "q":
		return true
	case "1":
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case "2":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "3":
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "0":
		m.zoom = m.initZoom
		m.offsetX, m.offsetY = 0, 0
		m.status = "view reset"
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.frame().contentH-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "i":
		if m.inspectPopup != "" {
			m.inspectPopup = ""
			m.status = "view mode"
			break
		}
		m.inspectPopup = m.inspect()
		m.status = "inspect popup"
	case "l":
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints = !all
		m.showLines = !all
		m.showPolys = !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return false
}

// hover tracks the mouse over the map and snaps the highlight to the nearest
// vertex.
func (m *Model) hover(x, y int) {
	f := m.frame()
	if x < f.mapX || x >= f.mapX+f.mapW || y < f.mapY || y >= f.mapY+f.mapH {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX = x - f.mapX
	m.hoverCellY = y - f.mapY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(m.hoverCellX, m.hoverCellY, f.mapW, f.mapH)

	hx, hy := m.hoverCellX*2, m.hoverCellY*4
	m.hoverMicX, m.hoverMicY = hx, hy
	best := -1
	for _, p := range m.data.Vertices {
		mx, my, ok := m.screenXYMicro(p.X, p.Y, f.mapW, f.mapH)
		if !ok {
			continue
		}
		d := (mx-hx)*(mx-hx) + (my-hy)*(my-hy)
		if best < 0 || d < best {
			best = d
			m.hoverMicX, m.hoverMicY = mx, my
		}
	}
}

// inspect describes the dataset and the vertex nearest the viewport centre.
func (m Model) inspect() string {
	p, idx, ok := m.inspectNearest()
	if !ok {
		return "no feature nearby"
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	bb := m.data.BBox
	lines := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY),
		counts(m.data),
		fmt.Sprintf("nearest #%d: x=%.6f y=%.6f m=%g", idx, p.X, p.Y, p.M),
	}
	if pl, err := m.data.Polyline(); err == nil {
		lines = append(lines, "length: "+measure.Shape(pl).String())
	}
	if len(m.data.Polygons) > 0 {
		lines = append(lines, "area: "+m.polygonArea().String())
	}
	if h, ok := m.compactHeader(); ok {
		lines = append(lines, describeHeader(h))
	}
	return strings.Join(lines, "\n")
}

func (m Model) polygonArea() measure.Area {
	var a measure.Area
	for _, poly := range m.data.Polygons {
		rings := make([][]geom.Point, len(poly))
		for i, r := range poly {
			rings[i] = make([]geom.Point, len(r))
			for j, c := range r {
				rings[i][j] = geom.Point{X: c[0], Y: c[1]}
			}
		}
		a += measure.PolygonArea(rings)
	}
	return a
}

func describeHeader(h compact.Header) string {
	if h.Legacy {
		return fmt.Sprintf("compact: legacy xy=%g", h.XYMultiplier)
	}
	s := fmt.Sprintf("compact: v%d xy=%g", h.Version, h.XYMultiplier)
	if h.Flags.HasZ() {
		s += fmt.Sprintf(" z=%g", h.ZMultiplier)
	}
	if h.Flags.HasM() {
		s += fmt.Sprintf(" m=%g", h.MMultiplier)
	}
	return s
}

// compactHeader returns the header of the first compact string behind the
// current dataset, if it came from one.
func (m Model) compactHeader() (compact.Header, bool) {
	text := m.pasted
	if m.selPath != "" {
		if strings.ToLower(filepath.Ext(m.selPath)) != ".cgeo" {
			return compact.Header{}, false
		}
		b, err := os.ReadFile(m.selPath)
		if err != nil {
			return compact.Header{}, false
		}
		text = string(b)
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		h, err := compact.DecodeHeader(line)
		return h, err == nil
	}
	return compact.Header{}, false
}

// inspectNearest finds the vertex closest to the viewport centre.
func (m Model) inspectNearest() (geom.Point, int, bool) {
	f := m.frame()
	w, h := f.mapW, f.mapH
	cx, cy := w/2, h/2
	best, bestIdx := -1, -1
	for i, p := range m.data.Vertices {
		sx, sy, ok := m.screenXY(p.X, p.Y, w, h)
		if !ok {
			continue
		}
		d := (sx-cx)*(sx-cx) + (sy-cy)*(sy-cy)
		if best < 0 || d < best {
			best, bestIdx = d, i
		}
	}
	if bestIdx < 0 {
		return geom.Point{}, 0, false
	}
	return m.data.Vertices[bestIdx], bestIdx, true
}
