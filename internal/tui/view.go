package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f := m.frame()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, f.contentH-2)
	}

	header := titleStyle.Render(" compactgeo ─ compact geometry viewer ")
	header = lipgloss.NewStyle().Width(f.contentW).Render(header)

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, f.contentW-6)
		}
		boxW := min(f.mapW, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(f.mapH-2, 20))
		mapView = lipgloss.Place(f.mapW, f.mapH, lipgloss.Center, lipgloss.Center, boxStyle.Width(boxW).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(f.mapW)
		m.ta.SetHeight(min(f.mapH, 12))
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(f.mapW).Height(f.mapH).Render(m.renderMap(f.mapW, f.mapH))
	}

	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		box := popupStyle.MaxWidth(max(20, min(56, f.contentW/2))).Render(m.inspectPopup)
		popup = lipgloss.Place(f.contentW, f.contentH, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacer := max(0, f.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacer+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(f.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(f.contentW).Height(m.height).Render(ui)
}

var helpKeys = []string{
	"↑↓←→ pan",
	"+/- zoom",
	"0 reset",
	"Tab sidebar",
	"Enter open",
	"p paste",
	"a attrs",
	"i inspect",
	"l layers",
	"h help",
	"q quit",
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return dimStyle.Render("  " + strings.Join(helpKeys, "  "))
}
