package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"compactgeo/internal/geom"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// Options configure a viewer.
type Options struct {
	// Dir is the directory listed in the file sidebar; empty means the
	// working directory.
	Dir string
	// Zoom is the initial zoom factor; values <= 0 mean 1.
	Zoom float64
	// Logger receives load and decode events. The viewer owns the terminal,
	// so it should write to a file or be a no-op.
	Logger *zap.Logger
}

type Model struct {
	width  int
	height int

	log *zap.Logger

	showSidebar bool
	helpVisible bool

	zoom     float64
	initZoom float64
	offsetX  int
	offsetY  int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	data geom.Data
	// pasted holds the text of the last paste; it is the dataset source when
	// selPath is empty.
	pasted string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	m := Model{
		log:         lg,
		helpVisible: true,
		zoom:        zoom,
		initZoom:    zoom,
		status:      "compactgeo ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		cwd:         opts.Dir,
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT, GeoJSON or compact geometry strings (one per line). Enter renders; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	// columns are inferred per dataset
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// frame is the screen layout shared by View and mouse handling.
type frame struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) frame() frame {
	f := frame{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	side := 0
	if m.showSidebar {
		side = sidebarWidth
		f.mapX = sidebarWidth + 1
	}
	f.mapW = max(10, f.contentW-side-1)
	f.mapH = f.contentH
	return f
}

// setData replaces the dataset and picks the layers that make it visible,
// preferring polygons over lines over points.
func (m *Model) setData(d geom.Data) {
	m.data = d
	m.zoom = m.initZoom
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.showPolys = len(d.Polygons) > 0
	m.showLines = len(d.Lines) > 0 && !m.showPolys
	m.showPoints = len(d.Points) > 0 && !m.showPolys
}
